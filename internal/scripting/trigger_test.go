package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/deltamud/internal/game/inventory"
	"github.com/cory-johannsen/deltamud/internal/scripting"
)

const triggerItemsYAML = `
items:
  - id: bread
    keywords: bread loaf
    short: a loaf of bread
    type: food
    wear: [take]
    weight: 1
  - id: ring
    keywords: ring
    short: a gold ring
    type: treasure
    wear: [take, finger]
    weight: 1
`

func newTriggerItems(t *testing.T) *inventory.Manager {
	t.Helper()
	defs, err := inventory.ParseItems([]byte(triggerItemsYAML))
	require.NoError(t, err)
	reg := inventory.NewRegistry()
	require.NoError(t, reg.RegisterAll(defs))
	items := inventory.NewManager(reg, zap.NewNop())
	require.NoError(t, items.RegisterCarrier(inventory.NewCarrier("hero", "Hero", 50, 10)))
	return items
}

func fixedScope(mv inventory.Move) scripting.Scope {
	return scripting.Scope{Zone: "keep", Room: "hall", ActorName: "Hero"}
}

func TestTriggers_ExplicitFalseVetoes(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadZone("keep", writeTempLua(t, "keep.lua", `
		function allow_get(mv)
			if mv.def == "bread" then return false end
			return true
		end
	`), 0))
	items := newTriggerItems(t)
	items.SetTrigger(scripting.NewTriggers(mgr, items, fixedScope, zap.NewNop()))

	bread, err := items.Spawn("bread")
	require.NoError(t, err)
	require.NoError(t, items.AttachToRoom(bread.ID, "hall"))
	ring, err := items.Spawn("ring")
	require.NoError(t, err)
	require.NoError(t, items.AttachToRoom(ring.ID, "hall"))

	_, err = items.Move(inventory.MoveRequest{Op: inventory.OpGet, Item: bread.ID, Actor: "hero", Dest: inventory.ToInventory("hero")})
	assert.ErrorIs(t, err, inventory.ErrVetoed)
	assert.Equal(t, inventory.LocRoom, bread.Location().Kind)

	_, err = items.Move(inventory.MoveRequest{Op: inventory.OpGet, Item: ring.ID, Actor: "hero", Dest: inventory.ToInventory("hero")})
	require.NoError(t, err)
	assert.Equal(t, inventory.LocInventory, ring.Location().Kind)
}

func TestTriggers_MissingHookAndErrorsAllow(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadZone("keep", writeTempLua(t, "keep.lua", `
		function allow_drop(mv)
			error("broken hook")
		end
	`), 0))
	items := newTriggerItems(t)
	items.SetTrigger(scripting.NewTriggers(mgr, items, fixedScope, zap.NewNop()))

	bread, err := items.Spawn("bread")
	require.NoError(t, err)
	require.NoError(t, items.AttachToCharacter(bread.ID, "hero"))

	_, err = items.Move(inventory.MoveRequest{Op: inventory.OpDrop, Item: bread.ID, Actor: "hero", Dest: inventory.ToRoom("hall")})
	require.NoError(t, err)
	_, err = items.Move(inventory.MoveRequest{Op: inventory.OpGet, Item: bread.ID, Actor: "hero", Dest: inventory.ToInventory("hero")})
	require.NoError(t, err)
}

func TestTriggers_NotifyReceivesMoveFields(t *testing.T) {
	mgr, _ := newTestManager(t)
	var told []string
	mgr.Tell = func(uid, msg string) { told = append(told, uid+": "+msg) }
	require.NoError(t, mgr.LoadZone("keep", writeTempLua(t, "keep.lua", `
		function on_wear(mv)
			engine.world.tell(mv.actor, mv.actor_name .. " wears " .. mv.def .. " on " .. mv.slot ..
				" from " .. mv.from_kind .. " in " .. mv.room)
		end
	`), 0))
	items := newTriggerItems(t)
	items.SetTrigger(scripting.NewTriggers(mgr, items, fixedScope, zap.NewNop()))

	ring, err := items.Spawn("ring")
	require.NoError(t, err)
	require.NoError(t, items.AttachToCharacter(ring.ID, "hero"))
	_, err = items.Equip("hero", ring.ID, inventory.NoPosition)
	require.NoError(t, err)

	require.Len(t, told, 1)
	assert.Equal(t, "hero: Hero wears ring on "+ring.Location().Slot.String()+" from inventory in hall", told[0])
}

func TestItemInfoFor(t *testing.T) {
	items := newTriggerItems(t)
	ring, err := items.Spawn("ring")
	require.NoError(t, err)
	require.NoError(t, items.AttachToRoom(ring.ID, "hall"))

	info := scripting.ItemInfoFor(items, string(ring.ID))
	require.NotNil(t, info)
	assert.Equal(t, "ring", info.DefID)
	assert.Equal(t, "treasure", info.Type)
	assert.Equal(t, "room:hall", info.Where)
	assert.Nil(t, scripting.ItemInfoFor(items, "missing"))
}
