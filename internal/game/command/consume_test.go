package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/deltamud/internal/game/inventory"
	"github.com/cory-johannsen/deltamud/internal/game/session"
)

func TestEat(t *testing.T) {
	f := newFixture(t)
	bread := f.spawnHeld(t, "bread", f.alice)
	f.alice.Cond[session.Hunger] = 10

	assert.Equal(t, "You eat a loaf of bread.", f.run(t, f.alice, "eat bread"))
	assert.Equal(t, 16, f.alice.Cond[session.Hunger])
	_, live := f.env.Items.Item(bread.ID)
	assert.False(t, live)
	assert.False(t, f.alice.Poisoned)
	assert.Equal(t, []string{"Alice eats a loaf of bread."}, drain(f.bob))
}

func TestEat_Rejections(t *testing.T) {
	f := newFixture(t)
	f.spawnHeld(t, "bread", f.alice)
	f.spawnHeld(t, "ring", f.alice)

	assert.Equal(t, "Eat what?", f.run(t, f.alice, "eat"))
	assert.Equal(t, "You don't seem to have an apple.", f.run(t, f.alice, "eat apple"))
	assert.Equal(t, "You can't eat THAT!", f.run(t, f.alice, "eat ring"))
	assert.Equal(t, "You are too full to eat more!", f.run(t, f.alice, "eat bread"))
	assert.Equal(t, 2, f.carrier(t, f.alice).CarryCount())
}

func TestEat_Poisoned(t *testing.T) {
	f := newFixture(t)
	f.spawnHeld(t, "mushroom", f.alice)
	f.alice.Cond[session.Hunger] = 0

	out := f.run(t, f.alice, "eat mushroom")
	assert.Equal(t, "You eat a spotted mushroom.\nOops, that tasted rather strange!", out)
	assert.True(t, f.alice.Poisoned)
	assert.Equal(t, 2, f.alice.Cond[session.Hunger])
}

func TestTaste(t *testing.T) {
	f := newFixture(t)
	bread := f.spawnHeld(t, "bread", f.alice)
	f.alice.Cond[session.Hunger] = 10

	assert.Equal(t, "You nibble a little bit of a loaf of bread.", f.run(t, f.alice, "taste bread"))
	assert.Equal(t, 11, f.alice.Cond[session.Hunger])
	assert.Equal(t, 5, bread.Values[inventory.FoodFill])

	bread.Values[inventory.FoodFill] = 1
	assert.Equal(t, "You nibble a little bit of a loaf of bread.\nThere's nothing left now.", f.run(t, f.alice, "taste bread"))
	_, live := f.env.Items.Item(bread.ID)
	assert.False(t, live)
}

func TestDrink_Water(t *testing.T) {
	// Water has no drunk effect, so the amount is rolled in [3, 10].
	f := newFixture(t, 2)
	flask := f.spawnHeld(t, "flask", f.alice)
	f.alice.Cond[session.Thirst] = 4
	f.alice.Cond[session.Hunger] = 10

	assert.Equal(t, "You drink the water.", f.run(t, f.alice, "drink flask"))
	assert.Equal(t, 5, flask.Values[inventory.DrinkVolume])
	assert.Equal(t, 7, flask.Weight())
	assert.Equal(t, 7, f.carrier(t, f.alice).CarryWeight())
	assert.Equal(t, 16, f.alice.Cond[session.Thirst])
	assert.Equal(t, 11, f.alice.Cond[session.Hunger])
	require.NoError(t, f.env.Items.Verify())
}

func TestDrink_DrunkAmountFollowsThirst(t *testing.T) {
	f := newFixture(t)
	skin := f.spawnHeld(t, "wineskin", f.alice)
	skin.Values[inventory.DrinkTainted] = 0
	f.alice.Cond[session.Thirst] = 15
	f.alice.Cond[session.Hunger] = 10

	// (25 - 15) / 5 = 2 units of wine.
	assert.Equal(t, "You drink the wine.", f.run(t, f.alice, "drink wineskin"))
	assert.Equal(t, 3, skin.Values[inventory.DrinkVolume])
	assert.Equal(t, 2, f.alice.Cond[session.Drunk])
	assert.Equal(t, 17, f.alice.Cond[session.Thirst])
}

func TestDrink_Rejections(t *testing.T) {
	f := newFixture(t)
	f.spawnHeld(t, "mug", f.alice)
	f.spawnHeld(t, "ring", f.alice)
	f.spawnRoom(t, "flask", "hall")
	f.alice.Cond[session.Hunger] = 10
	f.alice.Cond[session.Thirst] = 10

	assert.Equal(t, "Drink from what?", f.run(t, f.alice, "drink"))
	assert.Equal(t, "You can't find it!", f.run(t, f.alice, "drink barrel"))
	assert.Equal(t, "You can't drink from that!", f.run(t, f.alice, "drink ring"))
	assert.Equal(t, "You have to be holding that to drink from it.", f.run(t, f.alice, "drink flask"))
	assert.Equal(t, "It's empty.", f.run(t, f.alice, "drink mug"))

	f.alice.Cond[session.Drunk] = 15
	assert.Equal(t, "You can't seem to get close enough to your mouth.", f.run(t, f.alice, "drink mug"))
	f.alice.Cond[session.Drunk] = 0
	f.alice.Cond[session.Hunger] = 24
	assert.Equal(t, "Your stomach can't contain anymore!", f.run(t, f.alice, "drink mug"))
}

func TestDrink_FountainOnFloor(t *testing.T) {
	f := newFixture(t, 7)
	fountain := f.spawnRoom(t, "fountain", "hall")
	f.alice.Cond[session.Thirst] = 0
	f.alice.Cond[session.Hunger] = 10

	out := f.run(t, f.alice, "drink fountain")
	assert.Equal(t, "You drink the water.\nYou don't feel thirsty any more.", out)
	assert.Equal(t, 990, fountain.Values[inventory.DrinkVolume])
	assert.Equal(t, 24, f.alice.Cond[session.Thirst])
}

func TestSip_TaintedPoisons(t *testing.T) {
	f := newFixture(t)
	skin := f.spawnHeld(t, "wineskin", f.alice)
	f.alice.Cond[session.Thirst] = 10
	f.alice.Cond[session.Hunger] = 10

	out := f.run(t, f.alice, "sip wineskin")
	assert.Equal(t, "It tastes like wine.\nOops, it tasted rather strange!", out)
	assert.True(t, f.alice.Poisoned)
	assert.Equal(t, 4, skin.Values[inventory.DrinkVolume])
	assert.Equal(t, 1, skin.Values[inventory.DrinkTainted], "taint stays until the container is empty")
}

func TestTaste_LiquidSips(t *testing.T) {
	f := newFixture(t)
	flask := f.spawnHeld(t, "flask", f.alice)
	f.alice.Cond[session.Hunger] = 10
	f.alice.Cond[session.Thirst] = 5

	assert.Equal(t, "It tastes like water.", f.run(t, f.alice, "taste flask"))
	assert.Equal(t, 9, flask.Values[inventory.DrinkVolume])
}

func TestDrink_LastDropResetsContainer(t *testing.T) {
	f := newFixture(t)
	skin := f.spawnHeld(t, "wineskin", f.alice)
	skin.Values[inventory.DrinkTainted] = 0
	f.alice.Cond[session.Thirst] = 0
	f.alice.Cond[session.Hunger] = 10

	// (25 - 0) / 5 = 5 units drains the whole skin.
	f.run(t, f.alice, "drink wineskin")
	assert.Zero(t, skin.Values[inventory.DrinkVolume])
	assert.Equal(t, int(inventory.LiquidNone), skin.Values[inventory.DrinkLiquid])
	assert.Equal(t, "wineskin", skin.Name)
	assert.Equal(t, "It's empty.", f.run(t, f.alice, "drink wineskin"))
}
