package command_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/deltamud/internal/config"
	"github.com/cory-johannsen/deltamud/internal/game/command"
	"github.com/cory-johannsen/deltamud/internal/game/dice"
	"github.com/cory-johannsen/deltamud/internal/game/inventory"
	"github.com/cory-johannsen/deltamud/internal/game/session"
	"github.com/cory-johannsen/deltamud/internal/game/world"
	"github.com/cory-johannsen/deltamud/internal/messaging"
)

const testItemsYAML = `
items:
  - id: sack
    keywords: sack burlap
    short: a burlap sack
    type: container
    wear: [take]
    weight: 1
    values: [10, 1, 0, 0]
  - id: bread
    keywords: bread loaf
    short: a loaf of bread
    type: food
    wear: [take]
    weight: 1
    cost: 40
    values: [6, 0, 0, 0]
  - id: mushroom
    keywords: mushroom
    short: a spotted mushroom
    type: food
    wear: [take]
    weight: 1
    values: [2, 0, 0, 1]
  - id: dagger
    keywords: dagger
    short: a dagger
    type: weapon
    wear: [take, wield]
    weight: 3
    cost: 6400
  - id: ring
    keywords: ring gold
    short: a gold ring
    type: treasure
    wear: [take, finger]
    weight: 1
  - id: helmet
    keywords: helmet
    short: a steel helmet
    type: armor
    wear: [take, head]
    weight: 4
    condition: 4
  - id: cursed
    keywords: skull
    short: a grinning skull
    type: other
    wear: [take, hold]
    extra: [no_drop]
    weight: 1
  - id: torch
    keywords: torch
    short: a torch
    type: light
    wear: [take]
    weight: 1
  - id: anvil
    keywords: anvil
    short: an iron anvil
    type: other
    wear: [take]
    weight: 40
  - id: statue
    keywords: statue
    short: a marble statue
    type: other
    weight: 5
  - id: flask
    keywords: flask leather
    short: a leather flask
    type: drinkcon
    wear: [take, hold]
    weight: 12
    values: [10, 10, 0, 0]
    liquid: water
  - id: wineskin
    keywords: wineskin
    short: a wineskin
    type: drinkcon
    wear: [take, hold]
    weight: 6
    values: [8, 5, 0, 1]
    liquid: wine
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
  - id: gold_coins
    keywords: coins gold
    short: a pile of gold coins
    type: money
    wear: [take]
    weight: 1
`

func testWorld(t *testing.T) *world.Manager {
	t.Helper()
	mgr, err := world.NewManager([]*world.Zone{{
		ID:        "town",
		Name:      "Town",
		StartRoom: "hall",
		Rooms: map[string]*world.Room{
			"hall": {
				ID: "hall", ZoneID: "town", Title: "The Hall", Description: "A drafty hall.",
				Exits: []world.Exit{
					{Direction: world.North, TargetRoom: "yard"},
					{Direction: world.East, TargetRoom: "vault", Locked: true},
				},
			},
			"yard":     {ID: "yard", ZoneID: "town", Title: "The Yard", Description: "A muddy yard.", Exits: []world.Exit{{Direction: world.South, TargetRoom: "hall"}}},
			"vault":    {ID: "vault", ZoneID: "town", Title: "The Vault", Description: "Dark."},
			"donation": {ID: "donation", ZoneID: "town", Title: "Donation Room", Description: "Piles of junk."},
		},
	}})
	require.NoError(t, err)
	return mgr
}

// fixture is a tiny world with two mortal players, Alice and Bob, in the hall.
type fixture struct {
	env   *command.Env
	alice *session.PlayerSession
	bob   *session.PlayerSession
}

// newFixture builds the fixture; rolls script every random draw.
func newFixture(t *testing.T, rolls ...int) *fixture {
	t.Helper()
	if len(rolls) == 0 {
		rolls = []int{0}
	}
	logger := zaptest.NewLogger(t)
	defs, err := inventory.ParseItems([]byte(testItemsYAML))
	require.NoError(t, err)
	reg := inventory.NewRegistry()
	require.NoError(t, reg.RegisterAll(defs))

	sessions := session.NewManager()
	env := &command.Env{
		Items:        inventory.NewManager(reg, logger),
		Sessions:     sessions,
		World:        testWorld(t),
		Pub:          messaging.NewLocalPublisher(sessions),
		Roller:       dice.NewLoggedRoller(dice.NewFixedSource(rolls...), logger),
		Registry:     command.DefaultRegistry(),
		Rules:        config.RulesConfig{CarryWeight: 50, CarryCount: 5, ImmortalLevel: 31},
		DonationRoom: "donation",
		MoneyItem:    "gold_coins",
		Logger:       logger,
	}
	f := &fixture{env: env}
	f.alice = f.join(t, "alice", "Alice", 1)
	f.bob = f.join(t, "bob", "Bob", 1)
	return f
}

func (f *fixture) join(t *testing.T, uid, name string, level int) *session.PlayerSession {
	t.Helper()
	sess, err := f.env.Sessions.Join(uid, name, "hall", level)
	require.NoError(t, err)
	require.NoError(t, f.env.Items.RegisterCarrier(
		inventory.NewCarrier(uid, name, f.env.Rules.CarryWeight, f.env.Rules.CarryCount)))
	return sess
}

func (f *fixture) run(t *testing.T, sess *session.PlayerSession, line string) string {
	t.Helper()
	out, err := f.env.Execute(sess, line)
	require.NoError(t, err)
	return out
}

func (f *fixture) spawnRoom(t *testing.T, def, room string) *inventory.Item {
	t.Helper()
	it, err := f.env.Items.Spawn(def)
	require.NoError(t, err)
	require.NoError(t, f.env.Items.AttachToRoom(it.ID, room))
	return it
}

func (f *fixture) spawnHeld(t *testing.T, def string, sess *session.PlayerSession) *inventory.Item {
	t.Helper()
	it, err := f.env.Items.Spawn(def)
	require.NoError(t, err)
	require.NoError(t, f.env.Items.AttachToCharacter(it.ID, sess.UID))
	return it
}

func (f *fixture) spawnIn(t *testing.T, def string, cont *inventory.Item) *inventory.Item {
	t.Helper()
	it, err := f.env.Items.Spawn(def)
	require.NoError(t, err)
	require.NoError(t, f.env.Items.AttachToContainer(it.ID, cont.ID))
	return it
}

func (f *fixture) carrier(t *testing.T, sess *session.PlayerSession) *inventory.Carrier {
	t.Helper()
	c, ok := f.env.Items.Carrier(sess.UID)
	require.True(t, ok)
	return c
}

// drain returns every message pushed to sess since the last drain.
func drain(sess *session.PlayerSession) []string {
	var out []string
	for {
		select {
		case msg := <-sess.Outbox.Events():
			out = append(out, msg)
		default:
			return out
		}
	}
}
