// Package world holds the static map: zones, their rooms, the exits between
// rooms and the items each room starts with.
package world

import (
	"errors"
	"fmt"
)

// Direction names an exit. Movement commands use the ten below; zones may
// add named exits such as "stairs".
type Direction string

// Walkable directions.
const (
	North     Direction = "north"
	South     Direction = "south"
	East      Direction = "east"
	West      Direction = "west"
	Northeast Direction = "northeast"
	Northwest Direction = "northwest"
	Southeast Direction = "southeast"
	Southwest Direction = "southwest"
	Up        Direction = "up"
	Down      Direction = "down"
)

// Exit leads from a room to TargetRoom, which may lie in another zone.
// Locked exits refuse passage; hidden ones are left out of room listings.
type Exit struct {
	Direction  Direction
	TargetRoom string
	Locked     bool
	Hidden     bool
}

// ItemSpawn places Count copies of an item prototype when the world loads,
// each holding Contents.
type ItemSpawn struct {
	Item     string
	Count    int
	Contents []ItemSpawn
}

// Copies is Count, or one when Count is unset.
func (s ItemSpawn) Copies() int {
	return max(s.Count, 1)
}

func (s ItemSpawn) validate() error {
	if s.Item == "" {
		return errors.New("item spawn must name an item")
	}
	if s.Count < 0 {
		return fmt.Errorf("item %q: count must not be negative", s.Item)
	}
	for _, c := range s.Contents {
		if err := c.validate(); err != nil {
			return fmt.Errorf("inside %q: %w", s.Item, err)
		}
	}
	return nil
}

// Room is one location.
type Room struct {
	ID          string
	ZoneID      string
	Title       string
	Description string
	Exits       []Exit
	Items       []ItemSpawn
}

// ExitForDirection returns the room's exit toward dir.
func (r *Room) ExitForDirection(dir Direction) (Exit, bool) {
	for _, e := range r.Exits {
		if e.Direction == dir {
			return e, true
		}
	}
	return Exit{}, false
}

// VisibleExits returns the exits that are not hidden, in declaration order.
func (r *Room) VisibleExits() []Exit {
	var out []Exit
	for _, e := range r.Exits {
		if !e.Hidden {
			out = append(out, e)
		}
	}
	return out
}

func (r *Room) validate() error {
	switch {
	case r.Title == "":
		return errors.New("title must not be empty")
	case r.Description == "":
		return errors.New("description must not be empty")
	}
	for _, sp := range r.Items {
		if err := sp.validate(); err != nil {
			return err
		}
	}
	for _, e := range r.Exits {
		if e.TargetRoom == "" {
			return fmt.Errorf("exit %q has empty target", e.Direction)
		}
	}
	return nil
}

// Zone is a themed group of rooms loaded from one file.
type Zone struct {
	ID          string
	Name        string
	Description string
	StartRoom   string
	Rooms       map[string]*Room
	// ScriptDir holds the zone's Lua scripts; empty means none.
	ScriptDir string
	// ScriptInstructionLimit overrides the server-wide per-call limit when
	// positive.
	ScriptInstructionLimit int
}

// Validate checks the zone in isolation. Exit targets outside the zone are
// resolved later by Manager.ValidateExits.
//
// Postcondition: Returns nil, or an error describing the first violation.
func (z *Zone) Validate() error {
	if z.ID == "" {
		return errors.New("zone ID must not be empty")
	}
	switch {
	case z.Name == "":
		return fmt.Errorf("zone %q: name must not be empty", z.ID)
	case z.StartRoom == "":
		return fmt.Errorf("zone %q: start_room must not be empty", z.ID)
	case len(z.Rooms) == 0:
		return fmt.Errorf("zone %q: must contain at least one room", z.ID)
	}
	if _, ok := z.Rooms[z.StartRoom]; !ok {
		return fmt.Errorf("zone %q: start_room %q not found in rooms", z.ID, z.StartRoom)
	}
	for id, room := range z.Rooms {
		if room.ID != id {
			return fmt.Errorf("zone %q: room key %q does not match room ID %q", z.ID, id, room.ID)
		}
		if err := room.validate(); err != nil {
			return fmt.Errorf("zone %q: room %q: %w", z.ID, id, err)
		}
	}
	return nil
}
