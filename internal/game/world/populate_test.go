package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/deltamud/internal/game/inventory"
)

const populateItemsYAML = `
items:
  - id: chest
    keywords: chest
    short: a chest
    type: container
    weight: 5
    values: [10, 0, 0, 0]
  - id: dagger
    keywords: dagger
    short: a dagger
    type: weapon
    wear: [take, wield]
    weight: 3
`

func newPopulateItems(t *testing.T) *inventory.Manager {
	t.Helper()
	defs, err := inventory.ParseItems([]byte(populateItemsYAML))
	require.NoError(t, err)
	reg := inventory.NewRegistry()
	require.NoError(t, reg.RegisterAll(defs))
	return inventory.NewManager(reg, zap.NewNop())
}

func TestManager_Populate_PlacesRoomItems(t *testing.T) {
	zone := validTestZone()
	zone.Rooms["room_a"].Items = []ItemSpawn{
		{Item: "chest", Contents: []ItemSpawn{{Item: "dagger", Count: 2}}},
		{Item: "dagger"},
	}
	mgr, err := NewManager([]*Zone{zone})
	require.NoError(t, err)
	items := newPopulateItems(t)

	placed, err := mgr.Populate(items, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 4, placed)

	roomItems := items.RoomItems("room_a")
	require.Len(t, roomItems, 2)
	chest, ok := items.Item(roomItems[0])
	require.True(t, ok)
	assert.Equal(t, "chest", chest.DefID)
	assert.Len(t, items.Contents(chest.ID), 2)
	assert.Equal(t, 11, chest.Weight())
	assert.Empty(t, items.RoomItems("room_b"))
	require.NoError(t, items.Verify())
}

func TestManager_Populate_ReportsFailuresAndContinues(t *testing.T) {
	zone := validTestZone()
	zone.Rooms["room_a"].Items = []ItemSpawn{
		{Item: "unicorn"},
		// four daggers weigh 12, over the chest's capacity of 10
		{Item: "chest", Contents: []ItemSpawn{{Item: "dagger", Count: 4}}},
	}
	zone.Rooms["room_b"].Items = []ItemSpawn{{Item: "dagger"}}
	mgr, err := NewManager([]*Zone{zone})
	require.NoError(t, err)
	items := newPopulateItems(t)
	core, logs := observer.New(zapcore.WarnLevel)

	placed, err := mgr.Populate(items, zap.New(core))
	require.Error(t, err)
	assert.ErrorIs(t, err, inventory.ErrUnknown)
	assert.ErrorIs(t, err, inventory.ErrCapacityExceeded)
	assert.Equal(t, 5, placed)
	assert.Len(t, items.RoomItems("room_b"), 1)
	assert.Equal(t, 2, logs.FilterMessage("room item spawn failed").Len())
	require.NoError(t, items.Verify())
	assert.Equal(t, placed, items.Len())
}

func TestManager_RoomIDs_Sorted(t *testing.T) {
	mgr, err := NewManager(testManagerZones())
	require.NoError(t, err)
	assert.Equal(t, []string{"room_a", "room_b"}, mgr.RoomIDs())
}
