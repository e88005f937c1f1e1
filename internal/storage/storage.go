// Package storage defines the persisted form of a character and the
// backends that save it together with the items they carry.
package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/cory-johannsen/deltamud/internal/game/inventory"
)

// ErrCharacterNotFound is returned when no saved character has the given name.
var ErrCharacterNotFound = errors.New("character not found")

// Character is the saved state of a player between sessions.
type Character struct {
	Name  string
	Room  string
	Level int
	Gold  int
	Exp   int
	// Cond holds drunk, hunger and thirst in that order.
	Cond   [3]int
	Skills map[string]int
}

// Store saves characters and their items.
//
// SaveCharacter replaces the character's previous item records atomically.
type Store interface {
	LoadCharacter(ctx context.Context, name string) (Character, []inventory.Record, error)
	SaveCharacter(ctx context.Context, c Character, items []inventory.Record) error
	Close() error
}

// Key normalizes a character name for lookup.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
