package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hexcardgame/hexcard-server-go/internal/game/card"
)

// deckRow is one line of the decks file. Position is the line's order
// within its deck and player.
type deckRow struct {
	Deck     string
	Player   card.PlayerID
	Position int
	CardID   string
	Copies   int
}

var errNoRows = errors.New("file has no data rows")

// readCSV returns the data rows of r, skipping the header line. Every row
// must have exactly width fields.
func readCSV(r io.Reader, width int) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = width
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, errNoRows
	}
	return records[1:], nil
}

func parseDefinitions(r io.Reader) ([]card.Definition, error) {
	records, err := readCSV(r, 4)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(records))
	defs := make([]card.Definition, 0, len(records))
	for i, record := range records {
		line := i + 2
		id := strings.TrimSpace(record[0])
		if id == "" {
			return nil, fmt.Errorf("line %d: empty id", line)
		}
		if seen[id] {
			return nil, fmt.Errorf("line %d: duplicate id %q", line, id)
		}
		seen[id] = true
		defs = append(defs, card.Definition{
			ID:          id,
			Name:        record[1],
			Description: record[2],
			Visual:      record[3],
		})
	}
	return defs, nil
}

func parseDecks(r io.Reader) ([]deckRow, error) {
	records, err := readCSV(r, 4)
	if err != nil {
		return nil, err
	}
	type seat struct {
		deck   string
		player card.PlayerID
	}
	positions := make(map[seat]int)
	rows := make([]deckRow, 0, len(records))
	for i, record := range records {
		line := i + 2
		player, err := card.ParsePlayerID(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		copies, err := strconv.Atoi(strings.TrimSpace(record[3]))
		if err != nil || copies < 1 {
			return nil, fmt.Errorf("line %d: copies must be a positive integer, got %q", line, record[3])
		}
		key := seat{deck: strings.TrimSpace(record[0]), player: player}
		rows = append(rows, deckRow{
			Deck:     key.deck,
			Player:   player,
			Position: positions[key],
			CardID:   strings.TrimSpace(record[2]),
			Copies:   copies,
		})
		positions[key]++
	}
	return rows, nil
}
