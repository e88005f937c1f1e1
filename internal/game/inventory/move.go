package inventory

import (
	"fmt"

	"go.uber.org/zap"
)

// Op names the game operation behind a move.
type Op string

// Operations.
const (
	OpGet     Op = "get"
	OpPut     Op = "put"
	OpDrop    Op = "drop"
	OpDonate  Op = "donate"
	OpGive    Op = "give"
	OpWear    Op = "wear"
	OpRemove  Op = "remove"
	OpLoad    Op = "load"
	OpDetach  Op = "detach"
	OpAttach  Op = "attach"
	OpExtract Op = "extract"
	OpPour    Op = "pour"
	OpDrain   Op = "drain"
)

// MoveRequest asks the Manager to relocate one item.
type MoveRequest struct {
	Op   Op
	Item ItemID
	// Actor is the carrier performing the move, or "" for world effects.
	Actor string
	Dest  Location
}

// Move describes a relocation. It is passed to triggers before the move and
// returned to the caller after it, carrying enough detail to format messages.
type Move struct {
	Op    Op
	Item  ItemID
	Actor string
	From  Location
	To    Location
}

// Move relocates an item in two phases. Phase one asks the trigger for
// permission without mutating anything. Phase two validates the destination,
// detaches the item, and attaches it to the destination; it never runs after
// a veto or a validation failure, so those leave the world untouched.
//
// Precondition: the item is not already being moved.
// Postcondition: on success the item is at req.Dest and every aggregate is
// updated; on error the world is unchanged.
func (m *Manager) Move(req MoveRequest) (Move, error) {
	it, ok := m.items[req.Item]
	if !ok {
		return Move{}, &MoveError{Op: req.Op, Item: req.Item, Err: ErrUnknown}
	}
	if m.busy[it.ID] {
		return Move{}, &MoveError{Op: req.Op, Item: it.ID, Err: ErrBusy}
	}
	mv := Move{Op: req.Op, Item: it.ID, Actor: req.Actor, From: it.loc, To: req.Dest}

	m.busy[it.ID] = true
	err := m.move(it, mv)
	delete(m.busy, it.ID)
	if err != nil {
		return Move{}, &MoveError{Op: req.Op, Item: it.ID, Err: err}
	}

	if m.trigger != nil {
		m.trigger.Notify(mv)
	}
	return mv, nil
}

func (m *Manager) move(it *Item, mv Move) error {
	if m.trigger != nil && !m.trigger.Allow(mv) {
		m.logger.Debug("move vetoed",
			zap.String("op", string(mv.Op)),
			zap.String("item", string(it.ID)),
			zap.String("actor", mv.Actor),
		)
		return ErrVetoed
	}
	// Triggers may have moved other items; validate against current state.
	if it.loc != mv.From {
		return fmt.Errorf("%w: item moved during permission check", ErrInvalidOperation)
	}
	var (
		carrier *Carrier
		cont    *Item
		err     error
	)
	switch mv.To.Kind {
	case LocRoom:
		err = m.checkRoom(mv.To.Room)
	case LocInventory:
		var ok bool
		if carrier, ok = m.carriers[mv.To.Carrier]; !ok {
			err = ErrUnknown
		}
	case LocContainer:
		cont, err = m.checkContainer(it, mv.To.Container)
	case LocEquipment:
		if !mv.To.Slot.Valid() || !it.Wear.Has(mv.To.Slot.Flag()) {
			err = ErrCannotWear
		} else {
			carrier, err = m.checkSlot(mv.To.Carrier, mv.To.Slot)
		}
	default:
		err = fmt.Errorf("%w: destination %s", ErrInvalidOperation, mv.To)
	}
	if err != nil {
		return err
	}

	if it.loc.Kind != LocNowhere {
		if err := m.detach(it); err != nil {
			return err
		}
	}
	switch mv.To.Kind {
	case LocRoom:
		m.attachRoom(it, mv.To.Room)
	case LocInventory:
		m.attachInventory(it, carrier)
	case LocContainer:
		m.attachContainer(it, cont)
	case LocEquipment:
		m.attachEquipment(it, carrier, mv.To.Slot)
	}
	return nil
}

// Equip wears an item from the actor's inventory. When pos is NoPosition the
// slot is chosen by ResolveWearPosition; a paired slot falls back to its
// secondary index when the primary is taken.
//
// Postcondition: ErrCannotWear if the item lacks the capability,
// ErrSlotOccupied if every candidate slot is taken.
func (m *Manager) Equip(actor string, id ItemID, pos WearPosition) (Move, error) {
	it, ok := m.items[id]
	if !ok {
		return Move{}, &MoveError{Op: OpWear, Item: id, Err: ErrUnknown}
	}
	if pos == NoPosition {
		pos = ResolveWearPosition(it)
	}
	if !pos.Valid() || !it.Wear.Has(pos.Flag()) {
		return Move{}, &MoveError{Op: OpWear, Item: id, Err: ErrCannotWear}
	}
	c, ok := m.carriers[actor]
	if !ok {
		return Move{}, &MoveError{Op: OpWear, Item: id, Err: ErrUnknown}
	}
	slot, err := FreeSlot(c, pos)
	if err != nil {
		return Move{}, &MoveError{Op: OpWear, Item: id, Err: err}
	}
	return m.Move(MoveRequest{Op: OpWear, Item: id, Actor: actor, Dest: ToEquipment(actor, slot)})
}

// Unequip moves whatever the actor wears in pos back to their inventory.
func (m *Manager) Unequip(actor string, pos WearPosition) (Move, error) {
	c, ok := m.carriers[actor]
	if !ok {
		return Move{}, &MoveError{Op: OpRemove, Err: ErrUnknown}
	}
	id := c.Equipped(pos)
	if id == "" {
		return Move{}, &MoveError{Op: OpRemove, Err: fmt.Errorf("%w: nothing worn at %s", ErrInvalidOperation, pos)}
	}
	return m.Move(MoveRequest{Op: OpRemove, Item: id, Actor: actor, Dest: ToInventory(actor)})
}
