package inventory

import (
	"errors"
	"fmt"
	"sort"
)

// Record is the persisted form of one item and its location.
type Record struct {
	ItemID ItemID
	DefID  string
	Kind   LocationKind
	// Owner is the room id, carrier id, or container item id named by Kind.
	Owner string
	Slot  WearPosition
	// Position orders items that share an owner.
	Position int
	Name     string
	Values   [NumValues]int
	// Weight excludes the weight of contained items.
	Weight       int
	Condition    int
	MaxCondition int
}

// Snapshot returns records for everything a carrier holds, including nested
// container contents.
//
// Postcondition: Restore of the result on an empty Manager with the same
// carrier registered reproduces every location and aggregate.
func (m *Manager) Snapshot(carrier string) ([]Record, error) {
	c, ok := m.carriers[carrier]
	if !ok {
		return nil, ErrUnknown
	}
	var out []Record
	for i, id := range c.inventory {
		out = m.appendRecords(out, m.items[id], i)
	}
	n := len(c.inventory)
	for pos, id := range c.equipment {
		if id != "" {
			out = m.appendRecords(out, m.items[id], n+pos)
		}
	}
	return out, nil
}

// SnapshotRoom returns records for every item on the floor of room, including
// nested container contents.
func (m *Manager) SnapshotRoom(room string) []Record {
	var out []Record
	for i, id := range m.rooms[room] {
		out = m.appendRecords(out, m.items[id], i)
	}
	return out
}

func (m *Manager) appendRecords(out []Record, it *Item, position int) []Record {
	rec := Record{
		ItemID:       it.ID,
		DefID:        it.DefID,
		Kind:         it.loc.Kind,
		Owner:        it.loc.Owner(),
		Slot:         NoPosition,
		Position:     position,
		Name:         it.Name,
		Values:       it.Values,
		Weight:       it.weight - m.ContentWeight(it.ID),
		Condition:    it.Condition,
		MaxCondition: it.MaxCondition,
	}
	if it.loc.Kind == LocEquipment {
		rec.Slot = it.loc.Slot
	}
	out = append(out, rec)
	for i, child := range it.contents {
		out = m.appendRecords(out, m.items[child], i)
	}
	return out
}

// Restore recreates items from records and places them. Records may arrive in
// any order; items sharing an owner are placed by Position.
//
// Precondition: carriers named by inventory and equipment records are registered.
// Postcondition: on error nothing changed.
func (m *Manager) Restore(recs []Record) error {
	if err := m.checkRecords(recs); err != nil {
		return err
	}

	created := make(map[ItemID]*Item, len(recs))
	for _, rec := range recs {
		d, _ := m.reg.Item(rec.DefID)
		it := newItem(d)
		it.ID = rec.ItemID
		it.Name = rec.Name
		it.Values = rec.Values
		it.Condition = rec.Condition
		it.MaxCondition = rec.MaxCondition
		it.weight = rec.Weight
		m.items[it.ID] = it
		created[it.ID] = it
	}

	ordered := make([]Record, len(recs))
	copy(ordered, recs)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Owner != ordered[j].Owner {
			return ordered[i].Owner < ordered[j].Owner
		}
		return ordered[i].Position < ordered[j].Position
	})
	// Contents first, so a container carries its full weight when placed.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Kind == LocContainer && ordered[j].Kind != LocContainer
	})
	for _, rec := range ordered {
		it := created[rec.ItemID]
		switch rec.Kind {
		case LocRoom:
			m.attachRoom(it, rec.Owner)
		case LocInventory:
			m.attachInventory(it, m.carriers[rec.Owner])
		case LocContainer:
			m.attachContainer(it, m.items[ItemID(rec.Owner)])
		case LocEquipment:
			m.attachEquipment(it, m.carriers[rec.Owner], rec.Slot)
		}
	}
	return nil
}

func (m *Manager) checkRecords(recs []Record) error {
	var errs []error
	ids := make(map[ItemID]bool, len(recs))
	byID := make(map[ItemID]Record, len(recs))
	slots := make(map[string]bool)
	for _, rec := range recs {
		if ids[rec.ItemID] {
			errs = append(errs, fmt.Errorf("record %s appears twice", rec.ItemID))
		}
		ids[rec.ItemID] = true
		byID[rec.ItemID] = rec
		if _, live := m.items[rec.ItemID]; live {
			errs = append(errs, fmt.Errorf("record %s: %w", rec.ItemID, ErrAlreadyPlaced))
		}
		if _, ok := m.reg.Item(rec.DefID); !ok {
			errs = append(errs, fmt.Errorf("record %s: def %q: %w", rec.ItemID, rec.DefID, ErrUnknown))
		}
		if rec.Weight < 0 {
			errs = append(errs, fmt.Errorf("record %s: negative weight", rec.ItemID))
		}
	}
	for _, rec := range recs {
		switch rec.Kind {
		case LocRoom:
			if rec.Owner == "" {
				errs = append(errs, fmt.Errorf("record %s: empty room", rec.ItemID))
			}
		case LocInventory:
			if _, ok := m.carriers[rec.Owner]; !ok {
				errs = append(errs, fmt.Errorf("record %s: carrier %q: %w", rec.ItemID, rec.Owner, ErrUnknown))
			}
		case LocContainer:
			owner := ItemID(rec.Owner)
			if owner == rec.ItemID {
				errs = append(errs, fmt.Errorf("record %s: %w", rec.ItemID, ErrSelfContainment))
				continue
			}
			var isContainer bool
			if o, ok := byID[owner]; ok {
				d, known := m.reg.Item(o.DefID)
				isContainer = !known || d.Type == TypeContainer
			} else if live, ok := m.items[owner]; ok {
				isContainer = live.IsContainer()
			} else {
				errs = append(errs, fmt.Errorf("record %s: container %q: %w", rec.ItemID, rec.Owner, ErrUnknown))
				continue
			}
			if !isContainer {
				errs = append(errs, fmt.Errorf("record %s: owner %q: %w", rec.ItemID, rec.Owner, ErrNotContainer))
			}
		case LocEquipment:
			c, ok := m.carriers[rec.Owner]
			key := fmt.Sprintf("%s/%d", rec.Owner, rec.Slot)
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("record %s: carrier %q: %w", rec.ItemID, rec.Owner, ErrUnknown))
			case !rec.Slot.Valid():
				errs = append(errs, fmt.Errorf("record %s: slot %d: %w", rec.ItemID, rec.Slot, ErrInvalidOperation))
			case c.equipment[rec.Slot] != "" || slots[key]:
				errs = append(errs, fmt.Errorf("record %s: slot %s: %w", rec.ItemID, rec.Slot, ErrSlotOccupied))
			default:
				if d, known := m.reg.Item(rec.DefID); known {
					if wear, _ := ParseWearFlags(d.Wear); !wear.Has(rec.Slot.Flag()) {
						errs = append(errs, fmt.Errorf("record %s: slot %s: %w", rec.ItemID, rec.Slot, ErrCannotWear))
					}
				}
			}
			slots[key] = true
		default:
			errs = append(errs, fmt.Errorf("record %s: location %s cannot be restored", rec.ItemID, rec.Kind))
		}
	}
	if err := containmentCycle(recs); err != nil {
		return errors.Join(append(errs, err)...)
	}
	errs = append(errs, m.checkCapacities(recs, byID)...)
	return errors.Join(errs...)
}

// checkCapacities reports every container, restored or live, whose contents
// after the restore would weigh more than its capacity.
//
// Precondition: the records form no containment cycle.
func (m *Manager) checkCapacities(recs []Record, byID map[ItemID]Record) []error {
	children := make(map[ItemID][]ItemID)
	for _, rec := range recs {
		if rec.Kind == LocContainer {
			owner := ItemID(rec.Owner)
			children[owner] = append(children[owner], rec.ItemID)
		}
	}
	var total func(id ItemID) int
	total = func(id ItemID) int {
		w := byID[id].Weight
		for _, child := range children[id] {
			w += total(child)
		}
		return w
	}

	var errs []error
	owners := make([]ItemID, 0, len(children))
	for owner := range children {
		owners = append(owners, owner)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })
	for _, owner := range owners {
		var load, capacity int
		if rec, ok := byID[owner]; ok {
			capacity = rec.Values[ContainerCapacity]
		} else if live, ok := m.items[owner]; ok {
			load = m.ContentWeight(owner)
			capacity = live.Values[ContainerCapacity]
		} else {
			continue
		}
		for _, child := range children[owner] {
			load += total(child)
		}
		if load > capacity {
			errs = append(errs, fmt.Errorf("record container %s: %w: %d > %d", owner, ErrCapacityExceeded, load, capacity))
		}
	}
	return errs
}

// containmentCycle reports records whose container chain loops back on itself.
func containmentCycle(recs []Record) error {
	parent := make(map[ItemID]ItemID, len(recs))
	for _, rec := range recs {
		if rec.Kind == LocContainer {
			parent[rec.ItemID] = ItemID(rec.Owner)
		}
	}
	for start := range parent {
		cur := start
		for steps := 0; steps <= len(parent); steps++ {
			next, ok := parent[cur]
			if !ok {
				break
			}
			if next == start {
				return fmt.Errorf("record %s: %w", start, ErrSelfContainment)
			}
			cur = next
		}
	}
	return nil
}
