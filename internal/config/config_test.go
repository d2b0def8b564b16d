package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Game.StartingHandCount)
	assert.Equal(t, 10, cfg.Game.MaxHandSize)
	assert.Equal(t, 3, cfg.Game.PoolSize)
	assert.Equal(t, 20, cfg.Game.StartingLife)
	assert.Equal(t, "random", cfg.Game.Starter)
	assert.Equal(t, CatalogSourceStatic, cfg.Catalog.Source)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.Server.Address)

	assert.Equal(t, cfg, Default())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: json
game:
  starting_hand_count: 4
  max_hand_size: 7
  pool_size: 5
  starter: ai
  seed: 42
catalog:
  cards:
    - id: bolt
      name: Bolt
      description: Deal 3
      visual: red
  decks:
    user:
      - card_id: bolt
        copies: 12
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 4, cfg.Game.StartingHandCount)
	assert.Equal(t, 7, cfg.Game.MaxHandSize)
	assert.Equal(t, 5, cfg.Game.PoolSize)
	assert.Equal(t, "ai", cfg.Game.Starter)
	assert.Equal(t, uint64(42), cfg.Game.Seed)
	require.Len(t, cfg.Catalog.Cards, 1)
	assert.Equal(t, "Bolt", cfg.Catalog.Cards[0].Name)
	require.Len(t, cfg.Catalog.Decks["user"], 1)
	assert.Equal(t, 12, cfg.Catalog.Decks["user"][0].Copies)
	assert.Equal(t, 20, cfg.Game.StartingLife, "unset keys keep defaults")
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HEXCARD_GAME_MAX_HAND_SIZE", "12")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Game.MaxHandSize)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative hand", func(c *Config) { c.Game.StartingHandCount = -1 }, "starting_hand_count"},
		{"zero max", func(c *Config) { c.Game.MaxHandSize = 0 }, "max_hand_size must be positive"},
		{"start over max", func(c *Config) { c.Game.StartingHandCount = 11 }, "exceeds"},
		{"negative pool", func(c *Config) { c.Game.PoolSize = -2 }, "pool_size"},
		{"bad starter", func(c *Config) { c.Game.Starter = "coin" }, "game.starter"},
		{"bad source", func(c *Config) { c.Catalog.Source = "s3" }, "catalog.source"},
		{"postgres without url", func(c *Config) { c.Catalog.Source = CatalogSourcePostgres }, "database_url"},
		{"sqlite without path", func(c *Config) { c.Catalog.Source = CatalogSourceSQLite }, "sqlite source"},
		{"negative journal", func(c *Config) { c.Server.JournalSize = -1 }, "journal_size"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.want)
		})
	}

	assert.NoError(t, Default().Validate())
}
