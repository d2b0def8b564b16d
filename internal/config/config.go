package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration of the server.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Server  ServerConfig  `mapstructure:"server"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GameConfig holds the rules parameters of a match.
type GameConfig struct {
	StartingHandCount int           `mapstructure:"starting_hand_count"`
	MaxHandSize       int           `mapstructure:"max_hand_size"`
	PoolSize          int           `mapstructure:"pool_size"`
	StartingLife      int           `mapstructure:"starting_life"`
	StartingResources int           `mapstructure:"starting_resources"`
	Starter           string        `mapstructure:"starter"`
	Seed              uint64        `mapstructure:"seed"`
	Profiles          ProfileConfig `mapstructure:"profiles"`
}

// ProfileConfig names the two seats.
type ProfileConfig struct {
	UserName string `mapstructure:"user_name"`
	AiName   string `mapstructure:"ai_name"`
}

// CatalogConfig selects where card definitions come from. DatabaseURL is a
// connection string for postgres and a file path for sqlite.
type CatalogConfig struct {
	Source      string            `mapstructure:"source"`
	DatabaseURL string            `mapstructure:"database_url"`
	Deck        string            `mapstructure:"deck"`
	Cards       []CardConfig      `mapstructure:"cards"`
	Decks       map[string][]Copy `mapstructure:"decks"`
}

// CardConfig is a card definition inlined in the config file.
type CardConfig struct {
	ID          string `mapstructure:"id"`
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Visual      string `mapstructure:"visual"`
}

// Copy is one line of an inline deck list.
type Copy struct {
	CardID string `mapstructure:"card_id"`
	Copies int    `mapstructure:"copies"`
}

// ServerConfig configures the websocket observer bridge.
type ServerConfig struct {
	Address           string `mapstructure:"address"`
	AdminPasswordHash string `mapstructure:"admin_password_hash"`
	JournalSize       int    `mapstructure:"journal_size"`
}

const (
	CatalogSourceStatic   = "static"
	CatalogSourcePostgres = "postgres"
	CatalogSourceSQLite   = "sqlite"
)

// Load reads the YAML file at path, applies defaults and HEXCARD_* env
// overrides, and validates the result. An empty path loads defaults only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("HEXCARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration Load produces without a file.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// defaults always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("game.starting_hand_count", 5)
	v.SetDefault("game.max_hand_size", 10)
	v.SetDefault("game.pool_size", 3)
	v.SetDefault("game.starting_life", 20)
	v.SetDefault("game.starting_resources", 0)
	v.SetDefault("game.starter", "random")
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.profiles.user_name", "Player")
	v.SetDefault("game.profiles.ai_name", "Opponent")

	v.SetDefault("catalog.source", CatalogSourceStatic)
	v.SetDefault("catalog.deck", "starter")

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.journal_size", 256)
}

// Validate checks the rules parameters and catalog selection.
func (c *Config) Validate() error {
	var errs []error
	g := c.Game
	if g.StartingHandCount < 0 {
		errs = append(errs, fmt.Errorf("game.starting_hand_count must not be negative, got %d", g.StartingHandCount))
	}
	if g.MaxHandSize < 1 {
		errs = append(errs, fmt.Errorf("game.max_hand_size must be positive, got %d", g.MaxHandSize))
	}
	if g.StartingHandCount > g.MaxHandSize {
		errs = append(errs, fmt.Errorf("game.starting_hand_count %d exceeds game.max_hand_size %d", g.StartingHandCount, g.MaxHandSize))
	}
	if g.PoolSize < 0 {
		errs = append(errs, fmt.Errorf("game.pool_size must not be negative, got %d", g.PoolSize))
	}
	switch g.Starter {
	case "random", "user", "ai":
	default:
		errs = append(errs, fmt.Errorf("game.starter must be random, user or ai, got %q", g.Starter))
	}

	switch c.Catalog.Source {
	case CatalogSourceStatic:
	case CatalogSourcePostgres, CatalogSourceSQLite:
		if c.Catalog.DatabaseURL == "" {
			errs = append(errs, fmt.Errorf("catalog.database_url is required for the %s source", c.Catalog.Source))
		}
	default:
		errs = append(errs, fmt.Errorf("catalog.source must be %s, %s or %s, got %q",
			CatalogSourceStatic, CatalogSourcePostgres, CatalogSourceSQLite, c.Catalog.Source))
	}

	if c.Server.JournalSize < 0 {
		errs = append(errs, fmt.Errorf("server.journal_size must not be negative, got %d", c.Server.JournalSize))
	}
	return errors.Join(errs...)
}
