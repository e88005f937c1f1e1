package world

import (
	"errors"
	"fmt"
	"sort"
)

// Movement errors returned by Navigate.
var (
	ErrNoRoom     = errors.New("no such room")
	ErrNoExit     = errors.New("no exit that way")
	ErrExitLocked = errors.New("exit is locked")
)

// Manager indexes the rooms of every loaded zone.
//
// A Manager is never modified after NewManager, so it is safe for
// concurrent readers without locking.
type Manager struct {
	zones     map[string]*Zone
	zoneIDs   []string
	rooms     map[string]*Room
	roomIDs   []string
	startRoom string
}

// NewManager indexes zones. The first zone's start room is where new
// characters appear.
//
// Precondition: every zone has passed Validate.
// Postcondition: Returns a Manager, or an error naming a duplicate zone or
// room ID.
func NewManager(zones []*Zone) (*Manager, error) {
	m := &Manager{
		zones: make(map[string]*Zone, len(zones)),
		rooms: make(map[string]*Room),
	}
	for _, z := range zones {
		if _, dup := m.zones[z.ID]; dup {
			return nil, fmt.Errorf("duplicate zone ID: %q", z.ID)
		}
		m.zones[z.ID] = z
		m.zoneIDs = append(m.zoneIDs, z.ID)
		for id, room := range z.Rooms {
			if prev, dup := m.rooms[id]; dup {
				return nil, fmt.Errorf("duplicate room ID %q: in zone %q and %q", id, prev.ZoneID, z.ID)
			}
			m.rooms[id] = room
			m.roomIDs = append(m.roomIDs, id)
		}
	}
	sort.Strings(m.zoneIDs)
	sort.Strings(m.roomIDs)
	if len(zones) > 0 {
		m.startRoom = zones[0].StartRoom
	}
	return m, nil
}

// ValidateExits reports every exit whose target is not a loaded room.
//
// Postcondition: Returns nil, or all dangling exits joined.
func (m *Manager) ValidateExits() error {
	var errs []error
	for _, id := range m.roomIDs {
		room := m.rooms[id]
		for _, exit := range room.Exits {
			if _, ok := m.rooms[exit.TargetRoom]; !ok {
				errs = append(errs, fmt.Errorf("zone %q: room %q: exit %q targets unknown room %q",
					room.ZoneID, room.ID, exit.Direction, exit.TargetRoom))
			}
		}
	}
	return errors.Join(errs...)
}

// GetRoom returns the room with the given ID.
func (m *Manager) GetRoom(id string) (*Room, bool) {
	r, ok := m.rooms[id]
	return r, ok
}

// ZoneOf returns the zone containing roomID.
func (m *Manager) ZoneOf(roomID string) (*Zone, bool) {
	r, ok := m.rooms[roomID]
	if !ok {
		return nil, false
	}
	z, ok := m.zones[r.ZoneID]
	return z, ok
}

// Navigate returns the room reached by leaving fromRoomID through dir.
//
// Postcondition: the error wraps ErrNoRoom, ErrNoExit or ErrExitLocked.
func (m *Manager) Navigate(fromRoomID string, dir Direction) (*Room, error) {
	from, ok := m.rooms[fromRoomID]
	if !ok {
		return nil, fmt.Errorf("room %q: %w", fromRoomID, ErrNoRoom)
	}
	exit, ok := from.ExitForDirection(dir)
	if !ok {
		return nil, fmt.Errorf("%s from %q: %w", dir, fromRoomID, ErrNoExit)
	}
	if exit.Locked {
		return nil, fmt.Errorf("%s from %q: %w", dir, fromRoomID, ErrExitLocked)
	}
	target, ok := m.rooms[exit.TargetRoom]
	if !ok {
		return nil, fmt.Errorf("%s from %q leads to %q: %w", dir, fromRoomID, exit.TargetRoom, ErrNoRoom)
	}
	return target, nil
}

// StartRoom returns the room new characters enter, or nil for an empty
// world.
func (m *Manager) StartRoom() *Room {
	return m.rooms[m.startRoom]
}

// RoomCount returns the number of rooms across all zones.
func (m *Manager) RoomCount() int { return len(m.rooms) }

// ZoneCount returns the number of zones.
func (m *Manager) ZoneCount() int { return len(m.zones) }

// AllZones returns the zones ordered by ID.
func (m *Manager) AllZones() []*Zone {
	zones := make([]*Zone, 0, len(m.zoneIDs))
	for _, id := range m.zoneIDs {
		zones = append(zones, m.zones[id])
	}
	return zones
}

// RoomIDs returns every room ID in sorted order.
func (m *Manager) RoomIDs() []string {
	return append([]string(nil), m.roomIDs...)
}
