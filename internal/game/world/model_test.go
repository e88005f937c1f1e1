package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validTestZone is a square with a locked shop to the east and a hidden
// cellar below.
func validTestZone() *Zone {
	return &Zone{
		ID:        "test",
		Name:      "Test Zone",
		StartRoom: "room_a",
		Rooms: map[string]*Room{
			"room_a": {
				ID: "room_a", ZoneID: "test", Title: "Market Square", Description: "Stalls line the square.",
				Exits: []Exit{
					{Direction: North, TargetRoom: "room_b"},
					{Direction: Down, TargetRoom: "room_b", Hidden: true},
				},
			},
			"room_b": {
				ID: "room_b", ZoneID: "test", Title: "General Store", Description: "Shelves of goods.",
				Exits: []Exit{
					{Direction: South, TargetRoom: "room_a"},
					{Direction: East, TargetRoom: "room_a", Locked: true},
				},
			},
		},
	}
}

func TestZone_Validate(t *testing.T) {
	require.NoError(t, validTestZone().Validate())

	tests := []struct {
		name   string
		mutate func(z *Zone)
		want   string
	}{
		{"no id", func(z *Zone) { z.ID = "" }, "zone ID must not be empty"},
		{"no name", func(z *Zone) { z.Name = "" }, "name must not be empty"},
		{"no start", func(z *Zone) { z.StartRoom = "" }, "start_room must not be empty"},
		{"start missing", func(z *Zone) { z.StartRoom = "attic" }, `start_room "attic" not found`},
		{"no rooms", func(z *Zone) { z.Rooms = nil }, "at least one room"},
		{"key mismatch", func(z *Zone) { z.Rooms["room_b"].ID = "shop" }, "does not match"},
		{"no title", func(z *Zone) { z.Rooms["room_a"].Title = "" }, "title must not be empty"},
		{"no description", func(z *Zone) { z.Rooms["room_b"].Description = "" }, "description must not be empty"},
		{"empty exit", func(z *Zone) { z.Rooms["room_a"].Exits[0].TargetRoom = "" }, "has empty target"},
		{"unnamed spawn", func(z *Zone) { z.Rooms["room_a"].Items = []ItemSpawn{{Count: 2}} }, "must name an item"},
		{"negative count", func(z *Zone) { z.Rooms["room_a"].Items = []ItemSpawn{{Item: "bread", Count: -1}} }, "count must not be negative"},
		{"bad contents", func(z *Zone) {
			z.Rooms["room_a"].Items = []ItemSpawn{{Item: "chest", Contents: []ItemSpawn{{}}}}
		}, `inside "chest"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := validTestZone()
			tt.mutate(z)
			err := z.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestZone_Validate_AllowsExitsIntoOtherZones(t *testing.T) {
	z := validTestZone()
	z.Rooms["room_a"].Exits = append(z.Rooms["room_a"].Exits, Exit{Direction: West, TargetRoom: "city_gate"})
	assert.NoError(t, z.Validate())
}

func TestRoom_Exits(t *testing.T) {
	room := validTestZone().Rooms["room_a"]

	ex, ok := room.ExitForDirection(Down)
	require.True(t, ok)
	assert.True(t, ex.Hidden)
	_, ok = room.ExitForDirection(Up)
	assert.False(t, ok)

	visible := room.VisibleExits()
	require.Len(t, visible, 1)
	assert.Equal(t, North, visible[0].Direction)
}

func TestItemSpawn_Copies(t *testing.T) {
	assert.Equal(t, 1, ItemSpawn{Item: "bread"}.Copies())
	assert.Equal(t, 1, ItemSpawn{Item: "bread", Count: -3}.Copies())
	assert.Equal(t, 4, ItemSpawn{Item: "bread", Count: 4}.Copies())
}
