package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/deltamud/internal/game/inventory"
)

const testItemsYAML = `
items:
  - id: chest
    keywords: chest wooden
    short: a wooden chest
    type: container
    wear: [take]
    weight: 5
    values: [20, 1, 0, 0]
  - id: sack
    keywords: sack
    short: a burlap sack
    type: container
    wear: [take]
    weight: 1
    values: [10, 0, 0, 0]
  - id: dagger
    keywords: dagger
    short: a dagger
    type: weapon
    wear: [take, wield]
    weight: 3
  - id: anvil
    keywords: anvil
    short: an iron anvil
    type: other
    wear: [take]
    weight: 40
  - id: ring
    keywords: ring gold
    short: a gold ring
    type: treasure
    wear: [take, finger]
    weight: 1
  - id: mask
    keywords: mask
    short: a jeweled mask
    type: armor
    wear: [take, finger, face]
    weight: 1
  - id: helmet
    keywords: helmet
    short: a steel helmet
    type: armor
    wear: [take, head]
    weight: 4
  - id: flask
    keywords: flask leather
    short: a leather flask
    type: drinkcon
    wear: [take, hold]
    weight: 12
    values: [10, 10, 0, 0]
    liquid: water
  - id: mug
    keywords: mug
    short: a clay mug
    type: drinkcon
    wear: [take, hold]
    weight: 1
    values: [5, 0, 0, 0]
  - id: fountain
    keywords: fountain
    short: a marble fountain
    type: fountain
    weight: 1000
    values: [1000, 1000, 0, 0]
    liquid: water
`

func newTestManager(t *testing.T) *inventory.Manager {
	t.Helper()
	defs, err := inventory.ParseItems([]byte(testItemsYAML))
	require.NoError(t, err)
	reg := inventory.NewRegistry()
	require.NoError(t, reg.RegisterAll(defs))
	return inventory.NewManager(reg, zap.NewNop())
}

func spawn(t *testing.T, m *inventory.Manager, defID string) *inventory.Item {
	t.Helper()
	it, err := m.Spawn(defID)
	require.NoError(t, err)
	return it
}

func addCarrier(t *testing.T, m *inventory.Manager, id string) *inventory.Carrier {
	t.Helper()
	c := inventory.NewCarrier(id, id, 50, 10)
	require.NoError(t, m.RegisterCarrier(c))
	return c
}

func move(t *testing.T, m *inventory.Manager, id inventory.ItemID, dest inventory.Location) {
	t.Helper()
	_, err := m.Move(inventory.MoveRequest{Op: inventory.OpLoad, Item: id, Dest: dest})
	require.NoError(t, err)
}
