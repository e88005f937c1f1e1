package gameserver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/deltamud/internal/config"
	"github.com/cory-johannsen/deltamud/internal/game/command"
	"github.com/cory-johannsen/deltamud/internal/game/dice"
	"github.com/cory-johannsen/deltamud/internal/game/inventory"
	"github.com/cory-johannsen/deltamud/internal/game/session"
	"github.com/cory-johannsen/deltamud/internal/game/world"
	"github.com/cory-johannsen/deltamud/internal/gameserver"
	"github.com/cory-johannsen/deltamud/internal/messaging"
	"github.com/cory-johannsen/deltamud/internal/scripting"
	"github.com/cory-johannsen/deltamud/internal/storage/bolt"
)

const worldItemsYAML = `
items:
  - id: bread
    keywords: bread loaf
    short: a loaf of bread
    type: food
    wear: [take]
    weight: 1
    values: [6, 0, 0, 0]
  - id: sack
    keywords: sack
    short: a burlap sack
    type: container
    wear: [take]
    weight: 1
    values: [10, 0, 0, 0]
  - id: ring
    keywords: ring
    short: a gold ring
    type: treasure
    wear: [take, finger]
    weight: 1
`

func newTestEnv(t *testing.T, scriptDir string) *command.Env {
	t.Helper()
	logger := zaptest.NewLogger(t)
	defs, err := inventory.ParseItems([]byte(worldItemsYAML))
	require.NoError(t, err)
	reg := inventory.NewRegistry()
	require.NoError(t, reg.RegisterAll(defs))

	wm, err := world.NewManager([]*world.Zone{{
		ID: "town", Name: "Town", StartRoom: "hall", ScriptDir: scriptDir,
		Rooms: map[string]*world.Room{
			"hall": {ID: "hall", ZoneID: "town", Title: "The Hall", Description: "A drafty hall.",
				Exits: []world.Exit{{Direction: world.North, TargetRoom: "yard"}}},
			"yard": {ID: "yard", ZoneID: "town", Title: "The Yard", Description: "A muddy yard.",
				Exits: []world.Exit{{Direction: world.South, TargetRoom: "hall"}}},
		},
	}})
	require.NoError(t, err)

	sessions := session.NewManager()
	return &command.Env{
		Items:    inventory.NewManager(reg, logger),
		Sessions: sessions,
		World:    wm,
		Pub:      messaging.NewLocalPublisher(sessions),
		Roller:   dice.NewLoggedRoller(dice.NewFixedSource(0), logger),
		Registry: command.DefaultRegistry(),
		Rules: config.RulesConfig{
			CarryWeight: 50, CarryCount: 10, ImmortalLevel: 31, StartingGold: 100,
		},
		MoneyItem: "gold_coins",
		Logger:    logger,
	}
}

func startWorld(t *testing.T, env *command.Env, dbPath string) *gameserver.World {
	t.Helper()
	store, err := bolt.Open(dbPath)
	require.NoError(t, err)
	w := gameserver.NewWorld(env, store, 16, zaptest.NewLogger(t))
	done := make(chan error, 1)
	go func() { done <- w.Start() }()
	t.Cleanup(func() {
		w.Stop()
		<-done
		_ = store.Close()
	})
	return w
}

func spawnAt(t *testing.T, w *gameserver.World, def string, dest inventory.Location) inventory.ItemID {
	t.Helper()
	var id inventory.ItemID
	var err error
	require.NoError(t, w.Do(context.Background(), func() {
		var it *inventory.Item
		it, err = w.Env().Items.Spawn(def)
		if err != nil {
			return
		}
		id = it.ID
		_, err = w.Env().Items.Move(inventory.MoveRequest{Op: inventory.OpLoad, Item: it.ID, Dest: dest})
	}))
	require.NoError(t, err)
	return id
}

func drainEvents(sess *session.PlayerSession) []string {
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

func TestWorld_LoginFreshCharacter(t *testing.T) {
	env := newTestEnv(t, "")
	w := startWorld(t, env, filepath.Join(t.TempDir(), "items.db"))
	ctx := context.Background()

	sess, view, err := w.Login(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.UID)
	assert.Equal(t, "Alice", sess.CharName)
	assert.Equal(t, "hall", sess.RoomID)
	assert.Equal(t, 100, sess.Gold)
	assert.Equal(t, session.MaxCondition, sess.Cond[session.Hunger])
	assert.Contains(t, view, "The Hall")

	_, _, err = w.Login(ctx, "ALICE")
	assert.ErrorIs(t, err, gameserver.ErrAlreadyPlaying)
}

func TestWorld_LogoutSavesAndLoginRestores(t *testing.T) {
	db := filepath.Join(t.TempDir(), "items.db")
	ctx := context.Background()

	env := newTestEnv(t, "")
	w := startWorld(t, env, db)
	_, _, err := w.Login(ctx, "alice")
	require.NoError(t, err)
	sack := spawnAt(t, w, "sack", inventory.ToInventory("alice"))
	spawnAt(t, w, "bread", inventory.ToContainer(sack))
	spawnAt(t, w, "ring", inventory.ToRoom("hall"))

	out, err := w.Submit(ctx, "alice", "get ring")
	require.NoError(t, err)
	assert.Equal(t, "You get a gold ring.", out)
	out, err = w.Submit(ctx, "alice", "wear ring")
	require.NoError(t, err)
	assert.Contains(t, out, "a gold ring")
	_, err = w.Submit(ctx, "alice", "north")
	require.NoError(t, err)

	require.NoError(t, w.Logout(ctx, "alice"))
	require.NoError(t, w.Do(ctx, func() {
		_, ok := env.Items.Carrier("alice")
		assert.False(t, ok)
		assert.Zero(t, env.Items.Len())
	}))
	_, err = w.Submit(ctx, "alice", "look")
	assert.Error(t, err)

	sess, view, err := w.Login(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, "yard", sess.RoomID)
	assert.Contains(t, view, "The Yard")

	inv, err := w.Submit(ctx, "alice", "inventory")
	require.NoError(t, err)
	assert.Equal(t, "You are carrying:\na burlap sack\nYou have 100 gold coins.", inv)
	eq, err := w.Submit(ctx, "alice", "equipment")
	require.NoError(t, err)
	assert.Contains(t, eq, "a gold ring")
	in, err := w.Submit(ctx, "alice", "look in sack")
	require.NoError(t, err)
	assert.Equal(t, "a burlap sack (carried) :\na loaf of bread", in)
	require.NoError(t, w.Do(ctx, func() { assert.NoError(t, env.Items.Verify()) }))
}

func TestWorld_SubmitQuitAndUnknownPlayer(t *testing.T) {
	env := newTestEnv(t, "")
	w := startWorld(t, env, filepath.Join(t.TempDir(), "items.db"))
	ctx := context.Background()

	_, err := w.Submit(ctx, "ghost", "look")
	assert.Error(t, err)

	_, _, err = w.Login(ctx, "bob")
	require.NoError(t, err)
	out, err := w.Submit(ctx, "bob", "quit")
	assert.ErrorIs(t, err, command.ErrQuit)
	assert.NotEmpty(t, out)
	out, err = w.Submit(ctx, "bob", "xyzzy")
	require.NoError(t, err)
	assert.Equal(t, "Huh?!?", out)
}

func TestWorld_ArrivalAndDepartureMessages(t *testing.T) {
	env := newTestEnv(t, "")
	w := startWorld(t, env, filepath.Join(t.TempDir(), "items.db"))
	ctx := context.Background()

	alice, _, err := w.Login(ctx, "alice")
	require.NoError(t, err)
	_, _, err = w.Login(ctx, "bob")
	require.NoError(t, err)
	require.NoError(t, w.Logout(ctx, "bob"))

	assert.Equal(t, []string{"Bob has entered the game.", "Bob has left the game."}, drainEvents(alice))
}

func TestWorld_StopRejectsWork(t *testing.T) {
	env := newTestEnv(t, "")
	store, err := bolt.Open(filepath.Join(t.TempDir(), "items.db"))
	require.NoError(t, err)
	defer store.Close()
	w := gameserver.NewWorld(env, store, 1, zaptest.NewLogger(t))
	done := make(chan error, 1)
	go func() { done <- w.Start() }()
	w.Stop()
	require.NoError(t, <-done)

	err = w.Do(context.Background(), func() {})
	assert.ErrorIs(t, err, gameserver.ErrStopped)
}

func TestWorld_DoHonorsContext(t *testing.T) {
	env := newTestEnv(t, "")
	store, err := bolt.Open(filepath.Join(t.TempDir(), "items.db"))
	require.NoError(t, err)
	defer store.Close()
	// Never started: the queue fills and the caller gives up.
	w := gameserver.NewWorld(env, store, 1, zaptest.NewLogger(t))
	defer w.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = w.Do(ctx, func() {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWorld_LoginAbandonedWhileQueuedLeavesNoSession(t *testing.T) {
	env := newTestEnv(t, "")
	w := startWorld(t, env, filepath.Join(t.TempDir(), "items.db"))

	started := make(chan struct{})
	release := make(chan struct{})
	blocked := make(chan error, 1)
	go func() {
		blocked <- w.Do(context.Background(), func() {
			close(started)
			<-release
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, _, err := w.Login(ctx, "Bob")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	require.NoError(t, <-blocked)

	var playing bool
	require.NoError(t, w.Do(context.Background(), func() {
		_, playing = env.Sessions.Get("bob")
	}))
	assert.False(t, playing)

	sess, _, err := w.Login(context.Background(), "Bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", sess.UID)
}

func TestWorld_LogoutRunsDespiteCancelledContext(t *testing.T) {
	env := newTestEnv(t, "")
	w := startWorld(t, env, filepath.Join(t.TempDir(), "items.db"))
	_, _, err := w.Login(context.Background(), "carol")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.Logout(ctx, "carol"))

	var playing bool
	require.NoError(t, w.Do(context.Background(), func() {
		_, playing = env.Sessions.Get("carol")
	}))
	assert.False(t, playing)
}

func TestWorld_DoWaitsForStartedJob(t *testing.T) {
	env := newTestEnv(t, "")
	w := startWorld(t, env, filepath.Join(t.TempDir(), "items.db"))

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	finished := false
	err := w.Do(ctx, func() {
		close(started)
		cancel()
		time.Sleep(20 * time.Millisecond)
		finished = true
	})
	require.NoError(t, err)
	assert.True(t, finished)
}

func TestWorld_SaveAll(t *testing.T) {
	db := filepath.Join(t.TempDir(), "items.db")
	env := newTestEnv(t, "")
	w := startWorld(t, env, db)
	ctx := context.Background()
	for _, name := range []string{"alice", "bob"} {
		_, _, err := w.Login(ctx, name)
		require.NoError(t, err)
	}
	n, err := w.SaveAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestWorld_DecayConditions(t *testing.T) {
	env := newTestEnv(t, "")
	w := startWorld(t, env, filepath.Join(t.TempDir(), "items.db"))
	ctx := context.Background()

	alice, _, err := w.Login(ctx, "alice")
	require.NoError(t, err)
	zeus, _, err := w.Login(ctx, "zeus")
	require.NoError(t, err)

	require.NoError(t, w.Do(ctx, func() {
		drainEvents(alice)
		drainEvents(zeus)
		zeus.Level = 31
		alice.Cond = session.Conditions{session.Drunk: 1, session.Hunger: 1, session.Thirst: 10}
		zeus.Cond = session.Conditions{session.Drunk: 0, session.Hunger: 1, session.Thirst: 1}
		w.DecayConditions()
	}))

	assert.Equal(t, session.Conditions{session.Drunk: 0, session.Hunger: 0, session.Thirst: 9}, alice.Cond)
	assert.Equal(t, []string{"You are hungry.", "You are now sober."}, drainEvents(alice))
	assert.Equal(t, session.Conditions{session.Drunk: 0, session.Hunger: 1, session.Thirst: 1}, zeus.Cond)
	assert.Empty(t, drainEvents(zeus))
}

func TestWorld_ScriptVetoKeepsItem(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "town.lua"), []byte(`
		function allow_drop(mv)
			if mv.room == "hall" then
				engine.world.tell(mv.actor, "Not in the hall, " .. mv.actor_name .. ".")
				return false
			end
			return true
		end
		function on_get(mv)
			local info = engine.item.query(mv.item)
			engine.world.broadcast(mv.room, mv.actor_name .. " picked up " .. info.short .. ".")
		end
	`), 0644))
	env := newTestEnv(t, dir)
	logger := zaptest.NewLogger(t)
	mgr := scripting.NewManager(env.Roller, logger)
	require.NoError(t, gameserver.LoadScripts(mgr, env, "", 0, logger))
	gameserver.BindScripts(mgr, env)

	w := startWorld(t, env, filepath.Join(t.TempDir(), "items.db"))
	ctx := context.Background()
	alice, _, err := w.Login(ctx, "alice")
	require.NoError(t, err)
	bob, _, err := w.Login(ctx, "bob")
	require.NoError(t, err)
	spawnAt(t, w, "bread", inventory.ToInventory("alice"))
	spawnAt(t, w, "ring", inventory.ToRoom("hall"))
	require.NoError(t, w.Do(ctx, func() {
		drainEvents(alice)
		drainEvents(bob)
	}))

	out, err := w.Submit(ctx, "alice", "drop bread")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, []string{"Not in the hall, Alice."}, drainEvents(alice))

	_, err = w.Submit(ctx, "alice", "north")
	require.NoError(t, err)
	out, err = w.Submit(ctx, "alice", "drop bread")
	require.NoError(t, err)
	assert.Equal(t, "You drop a loaf of bread.", out)

	_, err = w.Submit(ctx, "bob", "get ring")
	require.NoError(t, err)
	assert.Contains(t, drainEvents(bob), "Bob picked up a gold ring.")
}
