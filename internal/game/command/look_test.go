package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/deltamud/internal/game/command"
)

func TestLook_Room(t *testing.T) {
	f := newFixture(t)
	f.spawnRoom(t, "dagger", "hall")

	out := f.run(t, f.alice, "look")
	assert.Equal(t, "The Hall\nA drafty hall.\n[ Exits: north east ]\nA dagger is here.\nBob is standing here.", out)
}

func TestLook_InContainer(t *testing.T) {
	f := newFixture(t)
	sack := f.spawnHeld(t, "sack", f.alice)
	f.spawnIn(t, "bread", sack)
	f.spawnRoom(t, "sack", "hall")

	assert.Equal(t, "a burlap sack (carried) :\na loaf of bread", f.run(t, f.alice, "look in sack"))
	assert.Equal(t, "a burlap sack (here) :\n Nothing.", f.run(t, f.bob, "look in sack"))

	require.NoError(t, sack.SetClosed(true))
	assert.Equal(t, "It is closed.", f.run(t, f.alice, "look in sack"))
}

func TestLook_InDrinkContainer(t *testing.T) {
	f := newFixture(t)
	f.spawnHeld(t, "flask", f.alice)
	f.spawnHeld(t, "mug", f.alice)
	f.spawnHeld(t, "ring", f.alice)

	assert.Equal(t, "It's full of a clear liquid.", f.run(t, f.alice, "look in flask"))
	assert.Equal(t, "It is empty.", f.run(t, f.alice, "look in mug"))
	assert.Equal(t, "There's nothing inside that!", f.run(t, f.alice, "look in ring"))
	assert.Equal(t, "You do not see that item here.", f.run(t, f.alice, "look in jug"))

	f.run(t, f.alice, "pour flask mug")
	assert.Equal(t, "It's about half full of a clear liquid.", f.run(t, f.alice, "look in flask"))
}

func TestOpenClose(t *testing.T) {
	f := newFixture(t)
	sack := f.spawnHeld(t, "sack", f.alice)
	f.spawnHeld(t, "ring", f.alice)

	assert.Equal(t, "Okay.", f.run(t, f.alice, "close sack"))
	assert.True(t, sack.Closed())
	assert.Equal(t, "But it's already closed!", f.run(t, f.alice, "close sack"))
	assert.Equal(t, "Okay.", f.run(t, f.alice, "open sack"))
	assert.False(t, sack.Closed())
	assert.Equal(t, "But it's already open!", f.run(t, f.alice, "open sack"))
	assert.Equal(t, "That's not a container.", f.run(t, f.alice, "open ring"))
	assert.Equal(t, "Open what?", f.run(t, f.alice, "open"))
	assert.Equal(t, []string{"Alice closes a burlap sack.", "Alice opens a burlap sack."}, drain(f.bob))
}

func TestInventory(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "You are carrying:\n  Nothing.", f.run(t, f.alice, "i"))

	f.spawnHeld(t, "dagger", f.alice)
	f.alice.Gold = 3
	assert.Equal(t, "You are carrying:\na dagger\nYou have 3 gold coins.", f.run(t, f.alice, "inventory"))
}

func TestMove(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, f.alice, "n")
	assert.Contains(t, out, "The Yard")
	assert.Equal(t, "yard", f.alice.RoomID)
	assert.Equal(t, []string{"Alice leaves north."}, drain(f.bob))

	assert.Equal(t, "Alas, you cannot go that way...", f.run(t, f.alice, "east"))
	f.run(t, f.alice, "south")
	assert.Equal(t, "It seems to be locked.", f.run(t, f.alice, "east"))
	assert.Equal(t, "hall", f.alice.RoomID)
}

func TestExecute_SystemCommands(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "Huh?!?", f.run(t, f.alice, "dance"))
	assert.Equal(t, "You have to type quit--no less, to quit!", f.run(t, f.alice, "qui"))
	assert.Equal(t, "", f.run(t, f.alice, "   "))

	help := f.run(t, f.alice, "help")
	assert.Contains(t, help, "Items:")
	assert.Contains(t, help, "Consumables:")
	assert.Contains(t, help, "  get ")

	_, err := f.env.Execute(f.alice, "quit")
	assert.ErrorIs(t, err, command.ErrQuit)
}
