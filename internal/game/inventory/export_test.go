package inventory

// SetLocationForTest overwrites an item's back-reference without touching any
// collection, simulating a corrupted world.
func (m *Manager) SetLocationForTest(id ItemID, loc Location) {
	m.items[id].loc = loc
}
