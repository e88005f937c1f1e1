package inventory

import (
	"fmt"

	"go.uber.org/zap"
)

// LocationKind tags which collection holds an item.
type LocationKind int

// Location kinds.
const (
	LocNowhere LocationKind = iota
	LocRoom
	LocInventory
	LocContainer
	LocEquipment
)

func (k LocationKind) String() string {
	switch k {
	case LocRoom:
		return "room"
	case LocInventory:
		return "inventory"
	case LocContainer:
		return "container"
	case LocEquipment:
		return "equipment"
	}
	return "nowhere"
}

// Location is an item's position. Only the field matching Kind is meaningful;
// Slot is meaningful together with Carrier for LocEquipment.
type Location struct {
	Kind      LocationKind
	Room      string
	Carrier   string
	Container ItemID
	Slot      WearPosition
}

// ToRoom returns a room destination.
func ToRoom(room string) Location { return Location{Kind: LocRoom, Room: room} }

// ToInventory returns a character inventory destination.
func ToInventory(carrier string) Location { return Location{Kind: LocInventory, Carrier: carrier} }

// ToContainer returns a container destination.
func ToContainer(container ItemID) Location {
	return Location{Kind: LocContainer, Container: container}
}

// ToEquipment returns an equipment slot destination.
func ToEquipment(carrier string, slot WearPosition) Location {
	return Location{Kind: LocEquipment, Carrier: carrier, Slot: slot}
}

// Owner returns the id of the collection named by l.
func (l Location) Owner() string {
	switch l.Kind {
	case LocRoom:
		return l.Room
	case LocInventory, LocEquipment:
		return l.Carrier
	case LocContainer:
		return string(l.Container)
	}
	return ""
}

func (l Location) String() string {
	switch l.Kind {
	case LocNowhere:
		return "nowhere"
	case LocEquipment:
		return fmt.Sprintf("equipment:%s/%s", l.Carrier, l.Slot)
	}
	return l.Kind.String() + ":" + l.Owner()
}

// Detach removes the item from whichever collection holds it and subtracts its
// weight from every aggregate above it.
//
// Precondition: id names a live, placed item.
// Postcondition: on success the item is LocNowhere and no collection lists it;
// ErrNotFound means the claimed owner did not list the item and nothing changed.
func (m *Manager) Detach(id ItemID) error {
	it, ok := m.items[id]
	if !ok {
		return ErrUnknown
	}
	if err := m.detach(it); err != nil {
		return &MoveError{Op: OpDetach, Item: id, Err: err}
	}
	return nil
}

func (m *Manager) detach(it *Item) error {
	loc := it.loc
	switch loc.Kind {
	case LocNowhere:
		return ErrNotPlaced
	case LocRoom:
		rest, found := removeID(m.rooms[loc.Room], it.ID)
		if !found {
			return m.corrupt(it)
		}
		if len(rest) == 0 {
			delete(m.rooms, loc.Room)
		} else {
			m.rooms[loc.Room] = rest
		}
	case LocInventory:
		c, ok := m.carriers[loc.Carrier]
		if !ok {
			return m.corrupt(it)
		}
		rest, found := removeID(c.inventory, it.ID)
		if !found {
			return m.corrupt(it)
		}
		c.inventory = rest
		c.weight -= it.weight
		c.count--
	case LocContainer:
		cont, ok := m.items[loc.Container]
		if !ok {
			return m.corrupt(it)
		}
		rest, found := removeID(cont.contents, it.ID)
		if !found {
			return m.corrupt(it)
		}
		cont.contents = rest
		m.propagate(cont, -it.weight)
	case LocEquipment:
		c, ok := m.carriers[loc.Carrier]
		if !ok || !loc.Slot.Valid() || c.equipment[loc.Slot] != it.ID {
			return m.corrupt(it)
		}
		c.equipment[loc.Slot] = ""
		c.weight -= it.weight
		c.count--
	}
	it.loc = Location{}
	return nil
}

// corrupt logs a location mismatch and returns ErrNotFound.
func (m *Manager) corrupt(it *Item) error {
	m.logger.Error("item location corrupted",
		zap.String("item", string(it.ID)),
		zap.String("claimed", it.loc.String()),
	)
	return fmt.Errorf("%w: %s claims %s", ErrNotFound, it.ID, it.loc)
}

// AttachToRoom appends a detached item to a room.
//
// Precondition: the item is LocNowhere; room is non-empty.
// Postcondition: the item is the last entry of RoomItems(room).
func (m *Manager) AttachToRoom(id ItemID, room string) error {
	it, err := m.detached(id)
	if err != nil {
		return &MoveError{Op: OpAttach, Item: id, Err: err}
	}
	if err := m.checkRoom(room); err != nil {
		return &MoveError{Op: OpAttach, Item: id, Err: err}
	}
	m.attachRoom(it, room)
	return nil
}

// AttachToCharacter appends a detached item to a carrier's inventory. No
// carry limit is checked; callers apply their own rules first.
//
// Precondition: the item is LocNowhere.
// Postcondition: CarryWeight grows by the item's weight and CarryCount by one.
func (m *Manager) AttachToCharacter(id ItemID, carrier string) error {
	it, err := m.detached(id)
	if err != nil {
		return &MoveError{Op: OpAttach, Item: id, Err: err}
	}
	c, ok := m.carriers[carrier]
	if !ok {
		return &MoveError{Op: OpAttach, Item: id, Err: ErrUnknown}
	}
	m.attachInventory(it, c)
	return nil
}

// AttachToContainer appends a detached item to a container.
//
// Precondition: the item is LocNowhere.
// Postcondition: on ErrCapacityExceeded, ErrNotContainer or ErrSelfContainment
// nothing changed; on success the container and every enclosing container and
// carrier grow by the item's weight.
func (m *Manager) AttachToContainer(id ItemID, container ItemID) error {
	it, err := m.detached(id)
	if err != nil {
		return &MoveError{Op: OpAttach, Item: id, Err: err}
	}
	cont, err := m.checkContainer(it, container)
	if err != nil {
		return &MoveError{Op: OpAttach, Item: id, Err: err}
	}
	m.attachContainer(it, cont)
	return nil
}

// AttachToEquipment places a detached item in a carrier's slot. An occupied
// slot is never displaced.
//
// Precondition: the item is LocNowhere.
// Postcondition: on ErrSlotOccupied nothing changed.
func (m *Manager) AttachToEquipment(id ItemID, carrier string, slot WearPosition) error {
	it, err := m.detached(id)
	if err != nil {
		return &MoveError{Op: OpAttach, Item: id, Err: err}
	}
	c, err := m.checkSlot(carrier, slot)
	if err != nil {
		return &MoveError{Op: OpAttach, Item: id, Err: err}
	}
	m.attachEquipment(it, c, slot)
	return nil
}

func (m *Manager) detached(id ItemID) (*Item, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, ErrUnknown
	}
	if it.loc.Kind != LocNowhere {
		return nil, ErrAlreadyPlaced
	}
	return it, nil
}

func (m *Manager) checkRoom(room string) error {
	if room == "" {
		return fmt.Errorf("%w: empty room id", ErrInvalidOperation)
	}
	return nil
}

// checkContainer validates it entering container without mutating anything.
// It is valid whether or not it is currently placed.
func (m *Manager) checkContainer(it *Item, container ItemID) (*Item, error) {
	cont, ok := m.items[container]
	if !ok {
		return nil, ErrUnknown
	}
	if cont.ID == it.ID {
		return nil, ErrSelfContainment
	}
	if !cont.IsContainer() {
		return nil, ErrNotContainer
	}
	for cur := cont; cur.loc.Kind == LocContainer; {
		if cur.loc.Container == it.ID {
			return nil, ErrSelfContainment
		}
		next, ok := m.items[cur.loc.Container]
		if !ok {
			break
		}
		cur = next
	}
	load := m.ContentWeight(cont.ID)
	if it.loc.Kind == LocContainer && it.loc.Container == cont.ID {
		load -= it.weight
	}
	if load+it.weight > cont.Values[ContainerCapacity] {
		return nil, fmt.Errorf("%w: %d + %d > %d", ErrCapacityExceeded, load, it.weight, cont.Values[ContainerCapacity])
	}
	return cont, nil
}

func (m *Manager) checkSlot(carrier string, slot WearPosition) (*Carrier, error) {
	c, ok := m.carriers[carrier]
	if !ok {
		return nil, ErrUnknown
	}
	if !slot.Valid() {
		return nil, fmt.Errorf("%w: slot %d", ErrInvalidOperation, slot)
	}
	if c.equipment[slot] != "" {
		return nil, ErrSlotOccupied
	}
	return c, nil
}

func (m *Manager) attachRoom(it *Item, room string) {
	m.rooms[room] = append(m.rooms[room], it.ID)
	it.loc = ToRoom(room)
}

func (m *Manager) attachInventory(it *Item, c *Carrier) {
	c.inventory = append(c.inventory, it.ID)
	c.weight += it.weight
	c.count++
	it.loc = ToInventory(c.ID)
}

func (m *Manager) attachContainer(it *Item, cont *Item) {
	cont.contents = append(cont.contents, it.ID)
	it.loc = ToContainer(cont.ID)
	m.propagate(cont, it.weight)
}

func (m *Manager) attachEquipment(it *Item, c *Carrier, slot WearPosition) {
	c.equipment[slot] = it.ID
	c.weight += it.weight
	c.count++
	it.loc = ToEquipment(c.ID, slot)
}

// propagate adds delta to it and every enclosing container, then to the
// carrier holding the outermost one.
func (m *Manager) propagate(it *Item, delta int) {
	for cur := it; cur != nil; {
		cur.weight += delta
		switch cur.loc.Kind {
		case LocContainer:
			cur = m.items[cur.loc.Container]
		case LocInventory, LocEquipment:
			if c, ok := m.carriers[cur.loc.Carrier]; ok {
				c.weight += delta
			}
			return
		default:
			return
		}
	}
}

// removeID deletes the first occurrence of id, keeping order.
func removeID(ids []ItemID, id ItemID) ([]ItemID, bool) {
	for i, held := range ids {
		if held == id {
			out := make([]ItemID, 0, len(ids)-1)
			out = append(out, ids[:i]...)
			return append(out, ids[i+1:]...), true
		}
	}
	return ids, false
}
