package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/deltamud/internal/game/inventory"
)

func TestDrop_ToRoom(t *testing.T) {
	f := newFixture(t)
	dagger := f.spawnHeld(t, "dagger", f.alice)

	assert.Equal(t, "You drop a dagger.", f.run(t, f.alice, "drop dagger"))
	assert.Equal(t, []inventory.ItemID{dagger.ID}, f.env.Items.RoomItems("hall"))
	assert.Zero(t, f.carrier(t, f.alice).CarryCount())
	assert.Equal(t, []string{"Alice drops a dagger."}, drain(f.bob))
}

func TestDrop_All(t *testing.T) {
	f := newFixture(t)
	f.spawnHeld(t, "dagger", f.alice)
	f.spawnHeld(t, "ring", f.alice)

	assert.Equal(t, "You drop a dagger.\nYou drop a gold ring.", f.run(t, f.alice, "drop all"))
	assert.Len(t, f.env.Items.RoomItems("hall"), 2)
	assert.Equal(t, "You don't seem to be carrying anything.", f.run(t, f.alice, "drop all"))
}

func TestDrop_CursedItemStays(t *testing.T) {
	f := newFixture(t)
	skull := f.spawnHeld(t, "cursed", f.alice)

	assert.Equal(t, "You can't drop a grinning skull, it must be CURSED!", f.run(t, f.alice, "drop skull"))
	assert.Equal(t, []inventory.ItemID{skull.ID}, f.carrier(t, f.alice).Inventory())

	zeus := f.join(t, "zeus", "Zeus", 31)
	f.spawnHeld(t, "cursed", zeus)
	assert.Equal(t, "You drop a grinning skull.", f.run(t, zeus, "drop skull"))
}

func TestJunk_DestroysAndRewards(t *testing.T) {
	f := newFixture(t)
	dagger := f.spawnHeld(t, "dagger", f.alice)
	bread := f.spawnHeld(t, "bread", f.alice)

	assert.Equal(t, "You junk a dagger.  It vanishes in a puff of smoke!\nYou have been rewarded by the gods!",
		f.run(t, f.alice, "junk dagger"))
	_, live := f.env.Items.Item(dagger.ID)
	assert.False(t, live)
	assert.Equal(t, 200, f.alice.Gold, "reward is capped at 200")

	f.run(t, f.alice, "junk bread")
	_, live = f.env.Items.Item(bread.ID)
	assert.False(t, live)
	assert.Equal(t, 202, f.alice.Gold, "cost 40 pays 40>>4")
	require.NoError(t, f.env.Items.Verify())
}

func TestJunk_RefusesAll(t *testing.T) {
	f := newFixture(t)
	f.spawnHeld(t, "ring", f.alice)
	assert.Equal(t, "You can't junk all at once.", f.run(t, f.alice, "junk all"))
	assert.Equal(t, 1, f.carrier(t, f.alice).CarryCount())
}

func TestJunk_ContainerTakesContents(t *testing.T) {
	f := newFixture(t)
	sack := f.spawnHeld(t, "sack", f.alice)
	bread := f.spawnIn(t, "bread", sack)

	f.run(t, f.alice, "junk sack")
	_, live := f.env.Items.Item(bread.ID)
	assert.False(t, live)
	assert.Zero(t, f.carrier(t, f.alice).CarryWeight())
}

func TestDonate_ReachesDonationRoom(t *testing.T) {
	f := newFixture(t, 1)
	ring := f.spawnHeld(t, "ring", f.alice)

	assert.Equal(t, "You donate a gold ring.", f.run(t, f.alice, "donate ring"))
	assert.Equal(t, []inventory.ItemID{ring.ID}, f.env.Items.RoomItems("donation"))
	assert.Zero(t, f.alice.Gold)
}

func TestDonate_GodsMayRefuse(t *testing.T) {
	f := newFixture(t, 0)
	ring := f.spawnHeld(t, "ring", f.alice)

	assert.Equal(t, "You donate a gold ring.  It vanishes in a puff of smoke!\nYou have been rewarded by the gods!",
		f.run(t, f.alice, "donate ring"))
	_, live := f.env.Items.Item(ring.ID)
	assert.False(t, live)
	assert.Empty(t, f.env.Items.RoomItems("donation"))
	assert.Equal(t, 1, f.alice.Gold)
}

func TestDonate_Disabled(t *testing.T) {
	f := newFixture(t)
	f.env.DonationRoom = ""
	f.spawnHeld(t, "ring", f.alice)
	assert.Equal(t, "Sorry, you can't donate anything right now.", f.run(t, f.alice, "donate ring"))
}

func TestDropCoins_RoundTrip(t *testing.T) {
	f := newFixture(t)
	f.alice.Gold = 50

	assert.Equal(t, "You don't have that many coins!", f.run(t, f.alice, "drop 100 coins"))
	assert.Equal(t, "Sorry, you can't do that.", f.run(t, f.alice, "drop 0 coins"))
	assert.Equal(t, "You drop some gold.", f.run(t, f.alice, "drop 20 coins"))
	assert.Equal(t, 30, f.alice.Gold)

	pile := f.env.Items.RoomItems("hall")
	require.Len(t, pile, 1)
	coins, _ := f.env.Items.Item(pile[0])
	assert.Equal(t, 20, coins.Values[inventory.MoneyAmount])

	assert.Equal(t, "You get a pile of gold coins.\nThere were 20 coins.", f.run(t, f.bob, "get coins"))
	assert.Equal(t, 20, f.bob.Gold)
}
