package inventory

// Carrier is the item-holding side of a character: an ordered inventory, a
// fixed equipment array, and the derived weight and count aggregates.
//
// Aggregates are maintained by the Manager on every move and always equal the
// sum over the top-level inventory and equipped items.
type Carrier struct {
	ID   string
	Name string
	// MaxWeight and MaxCount are the rule limits checked by CanCarry.
	MaxWeight int
	MaxCount  int

	inventory []ItemID
	equipment [NumWearPositions]ItemID
	weight    int
	count     int
}

// NewCarrier returns an empty Carrier.
//
// Precondition: id is non-empty.
func NewCarrier(id, name string, maxWeight, maxCount int) *Carrier {
	return &Carrier{ID: id, Name: name, MaxWeight: maxWeight, MaxCount: maxCount}
}

// CarryWeight returns the total weight of inventory and equipment.
func (c *Carrier) CarryWeight() int { return c.weight }

// CarryCount returns the number of top-level items in inventory and equipment.
func (c *Carrier) CarryCount() int { return c.count }

// Inventory returns a snapshot of the inventory in insertion order.
//
// Postcondition: mutating the returned slice does not affect the Carrier.
func (c *Carrier) Inventory() []ItemID {
	out := make([]ItemID, len(c.inventory))
	copy(out, c.inventory)
	return out
}

// Equipped returns the item in pos, or "" when the slot is empty.
func (c *Carrier) Equipped(pos WearPosition) ItemID {
	if !pos.Valid() {
		return ""
	}
	return c.equipment[pos]
}

// Equipment returns a snapshot of the equipment array.
func (c *Carrier) Equipment() [NumWearPositions]ItemID { return c.equipment }

// CanCarry reports whether adding weight and count stays within the limits.
func (c *Carrier) CanCarry(weight, count int) bool {
	return c.weight+weight <= c.MaxWeight && c.count+count <= c.MaxCount
}

func (c *Carrier) hasInventory(id ItemID) bool {
	for _, held := range c.inventory {
		if held == id {
			return true
		}
	}
	return false
}
