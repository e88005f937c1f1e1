package inventory

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Manager owns every live item, room item list and carrier, and is the only
// code that changes an item's location.
//
// Manager is not safe for concurrent use. All calls must be serialized by a
// single owner, normally the world dispatcher goroutine.
type Manager struct {
	reg      *Registry
	items    map[ItemID]*Item
	rooms    map[string][]ItemID
	carriers map[string]*Carrier
	trigger  Trigger
	busy     map[ItemID]bool
	logger   *zap.Logger
}

// NewManager creates an empty Manager.
//
// Precondition: reg and logger must not be nil.
// Postcondition: the Manager holds no items and no carriers.
func NewManager(reg *Registry, logger *zap.Logger) *Manager {
	return &Manager{
		reg:      reg,
		items:    make(map[ItemID]*Item),
		rooms:    make(map[string][]ItemID),
		carriers: make(map[string]*Carrier),
		busy:     make(map[ItemID]bool),
		logger:   logger,
	}
}

// SetTrigger installs the hook consulted before and after every Move.
// A nil trigger allows everything.
func (m *Manager) SetTrigger(t Trigger) { m.trigger = t }

// Registry returns the prototype registry used by Spawn.
func (m *Manager) Registry() *Registry { return m.reg }

// RegisterCarrier adds c to the world.
//
// Precondition: c is non-nil and holds no items.
// Postcondition: returns an error if a carrier with c.ID already exists.
func (m *Manager) RegisterCarrier(c *Carrier) error {
	if c.ID == "" {
		return fmt.Errorf("%w: carrier id must not be empty", ErrInvalidOperation)
	}
	if _, exists := m.carriers[c.ID]; exists {
		return fmt.Errorf("%w: carrier %q already registered", ErrInvalidOperation, c.ID)
	}
	m.carriers[c.ID] = c
	return nil
}

// ReleaseCarrier extracts everything the carrier holds and removes it.
//
// Postcondition: Carrier(id) reports false; no item references the carrier.
func (m *Manager) ReleaseCarrier(id string) error {
	c, ok := m.carriers[id]
	if !ok {
		return ErrUnknown
	}
	held := c.Inventory()
	for _, eq := range c.equipment {
		if eq != "" {
			held = append(held, eq)
		}
	}
	var errs []error
	for _, itemID := range held {
		if err := m.Extract(itemID); err != nil {
			errs = append(errs, err)
		}
	}
	delete(m.carriers, id)
	return errors.Join(errs...)
}

// Carrier returns the carrier with the given id.
func (m *Manager) Carrier(id string) (*Carrier, bool) {
	c, ok := m.carriers[id]
	return c, ok
}

// Item returns the live item with the given id.
func (m *Manager) Item(id ItemID) (*Item, bool) {
	it, ok := m.items[id]
	return it, ok
}

// Len returns the number of live items.
func (m *Manager) Len() int { return len(m.items) }

// RoomItems returns a snapshot of the items in room, in insertion order.
func (m *Manager) RoomItems(room string) []ItemID {
	ids := m.rooms[room]
	out := make([]ItemID, len(ids))
	copy(out, ids)
	return out
}

// Contents returns a snapshot of the items directly inside container.
func (m *Manager) Contents(container ItemID) []ItemID {
	it, ok := m.items[container]
	if !ok {
		return nil
	}
	out := make([]ItemID, len(it.contents))
	copy(out, it.contents)
	return out
}

// ContentWeight returns the summed weight of the items directly inside container.
func (m *Manager) ContentWeight(container ItemID) int {
	it, ok := m.items[container]
	if !ok {
		return 0
	}
	total := 0
	for _, id := range it.contents {
		if child, ok := m.items[id]; ok {
			total += child.weight
		}
	}
	return total
}

// Spawn instantiates the prototype defID as an unplaced item.
//
// Postcondition: the returned item is LocNowhere and addressable by Item.
func (m *Manager) Spawn(defID string) (*Item, error) {
	d, ok := m.reg.Item(defID)
	if !ok {
		return nil, fmt.Errorf("spawning %q: %w", defID, ErrUnknown)
	}
	it := newItem(d)
	m.items[it.ID] = it
	return it, nil
}

// Extract detaches and destroys the item together with everything inside it.
//
// Postcondition: on success neither the item nor any of its contents is live;
// on error nothing changed.
func (m *Manager) Extract(id ItemID) error {
	it, ok := m.items[id]
	if !ok {
		return ErrUnknown
	}
	tree := m.subtree(it)
	for _, member := range tree {
		if m.busy[member.ID] {
			return &MoveError{Op: OpExtract, Item: member.ID, Err: ErrBusy}
		}
	}
	// Contents travel with the outermost item, so only it is detached.
	if it.loc.Kind != LocNowhere {
		if err := m.detach(it); err != nil {
			return &MoveError{Op: OpExtract, Item: id, Err: err}
		}
	}
	for _, member := range tree {
		delete(m.items, member.ID)
	}
	return nil
}

// subtree returns it followed by everything nested inside it.
func (m *Manager) subtree(it *Item) []*Item {
	out := []*Item{it}
	for i := 0; i < len(out); i++ {
		for _, child := range out[i].contents {
			if c, ok := m.items[child]; ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// ChangeWeight adjusts an item's weight in place and carries the delta up to
// every enclosing container and the carrier.
//
// Postcondition: on error nothing changed.
func (m *Manager) ChangeWeight(id ItemID, delta int) error {
	it, ok := m.items[id]
	if !ok {
		return ErrUnknown
	}
	if it.weight+delta < 0 {
		return fmt.Errorf("%w: weight of %s would become %d", ErrInvalidOperation, id, it.weight+delta)
	}
	m.propagate(it, delta)
	return nil
}

// Verify audits every location back-reference and aggregate.
//
// Postcondition: returns nil iff every item is listed exactly once by the
// collection its location names, every weight and count aggregate equals
// the sum over what it holds, only containers hold items and every worn
// item can be worn in its slot.
func (m *Manager) Verify() error {
	var errs []error
	listed := make(map[ItemID]int, len(m.items))

	for room, ids := range m.rooms {
		for _, id := range ids {
			listed[id]++
			if it, ok := m.items[id]; !ok || it.loc != ToRoom(room) {
				errs = append(errs, fmt.Errorf("room %s lists %s which claims elsewhere", room, id))
			}
		}
	}
	for _, c := range m.carriers {
		weight, count := 0, 0
		for _, id := range c.inventory {
			listed[id]++
			it, ok := m.items[id]
			if !ok || it.loc != ToInventory(c.ID) {
				errs = append(errs, fmt.Errorf("carrier %s inventory lists %s which claims elsewhere", c.ID, id))
				continue
			}
			weight += it.weight
			count++
		}
		for pos, id := range c.equipment {
			if id == "" {
				continue
			}
			listed[id]++
			it, ok := m.items[id]
			if !ok || it.loc != ToEquipment(c.ID, WearPosition(pos)) {
				errs = append(errs, fmt.Errorf("carrier %s slot %s lists %s which claims elsewhere", c.ID, WearPosition(pos), id))
				continue
			}
			if !it.Wear.Has(WearPosition(pos).Flag()) {
				errs = append(errs, fmt.Errorf("carrier %s slot %s holds %s which cannot be worn there", c.ID, WearPosition(pos), id))
			}
			weight += it.weight
			count++
		}
		if weight != c.weight || count != c.count {
			errs = append(errs, fmt.Errorf("carrier %s aggregates %d/%d, want %d/%d", c.ID, c.weight, c.count, weight, count))
		}
	}
	for _, it := range m.items {
		if len(it.contents) > 0 && !it.IsContainer() {
			errs = append(errs, fmt.Errorf("item %s holds %d items but is not a container", it.ID, len(it.contents)))
		}
		own := it.weight
		for _, id := range it.contents {
			listed[id]++
			child, ok := m.items[id]
			if !ok || child.loc != ToContainer(it.ID) {
				errs = append(errs, fmt.Errorf("container %s lists %s which claims elsewhere", it.ID, id))
				continue
			}
			own -= child.weight
		}
		if own < 0 {
			errs = append(errs, fmt.Errorf("container %s weight %d is less than its contents", it.ID, it.weight))
		}
	}
	for id, it := range m.items {
		want := 1
		if it.loc.Kind == LocNowhere {
			want = 0
		}
		if listed[id] != want {
			errs = append(errs, fmt.Errorf("item %s at %s is listed %d times", id, it.loc, listed[id]))
		}
	}
	sort.Slice(errs, func(i, j int) bool { return errs[i].Error() < errs[j].Error() })
	return errors.Join(errs...)
}
