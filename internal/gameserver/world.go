// Package gameserver runs the world goroutine and the services around it.
package gameserver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/deltamud/internal/game/command"
	"github.com/cory-johannsen/deltamud/internal/game/inventory"
	"github.com/cory-johannsen/deltamud/internal/game/session"
	"github.com/cory-johannsen/deltamud/internal/storage"
)

// ErrStopped is returned by World calls made after Stop.
var ErrStopped = errors.New("world stopped")

// ErrAlreadyPlaying is returned when a character logs in twice.
var ErrAlreadyPlaying = errors.New("character is already playing")

// Job states. A queued job is claimed exactly once, either by the world
// goroutine to run it or by its caller giving up on it.
const (
	jobQueued int32 = iota
	jobRunning
	jobAbandoned
)

type job struct {
	fn    func()
	state *atomic.Int32
	done  chan struct{}
}

// World owns the game state and runs every mutation on one goroutine.
//
// The inventory Manager is not safe for concurrent use; connections hand
// their work to World instead of touching it directly.
//
// It implements server.Service: Start runs the loop until Stop.
type World struct {
	env    *command.Env
	store  storage.Store
	queue  chan job
	logger *zap.Logger

	stop     chan struct{}
	stopOnce sync.Once
}

// NewWorld creates a stopped World.
//
// Precondition: env, store and logger must be non-nil; queueSize >= 1.
// Postcondition: Returns a World ready to Start.
func NewWorld(env *command.Env, store storage.Store, queueSize int, logger *zap.Logger) *World {
	if queueSize < 1 {
		queueSize = 1
	}
	return &World{
		env:    env,
		store:  store,
		queue:  make(chan job, queueSize),
		logger: logger,
		stop:   make(chan struct{}),
	}
}

// Env returns the command environment the world goroutine runs against.
func (w *World) Env() *command.Env { return w.env }

// Start processes queued work until Stop is called.
func (w *World) Start() error {
	for {
		select {
		case j := <-w.queue:
			w.run(j)
		case <-w.stop:
			return nil
		}
	}
}

// Stop ends the loop. Work still queued is dropped.
func (w *World) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
}

func (w *World) run(j job) {
	defer close(j.done)
	if !j.state.CompareAndSwap(jobQueued, jobRunning) {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("world job panicked", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()
	j.fn()
}

// Do runs fn on the world goroutine and waits for it to finish.
//
// Postcondition: returns nil exactly when fn ran. A non-nil
// error means fn never ran and never will; once fn has started, Do waits
// for it regardless of ctx.
func (w *World) Do(ctx context.Context, fn func()) error {
	j := job{fn: fn, state: new(atomic.Int32), done: make(chan struct{})}
	select {
	case w.queue <- j:
	case <-w.stop:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	var err error
	select {
	case <-j.done:
		return nil
	case <-w.stop:
		err = ErrStopped
	case <-ctx.Done():
		err = ctx.Err()
	}
	if j.state.CompareAndSwap(jobQueued, jobAbandoned) {
		return err
	}
	<-j.done
	return nil
}

// Submit runs one command line for the player uid and returns its output.
//
// Postcondition: returns command.ErrQuit when the player asked to leave.
func (w *World) Submit(ctx context.Context, uid, line string) (string, error) {
	var (
		out     string
		execErr error
	)
	err := w.Do(ctx, func() {
		sess, ok := w.env.Sessions.Get(uid)
		if !ok {
			execErr = fmt.Errorf("player %q is not logged in", uid)
			return
		}
		out, execErr = w.env.Execute(sess, line)
	})
	if err != nil {
		return "", err
	}
	if execErr != nil && !errors.Is(execErr, command.ErrQuit) {
		w.logger.Error("command failed", zap.String("uid", uid), zap.String("line", line), zap.Error(execErr))
	}
	return out, execErr
}

// Login places the named character in the world, restoring its saved state
// and items. Unknown names start fresh in the start room.
//
// Precondition: name must be non-empty.
// Postcondition: on success the session is registered together with its
// carrier and the returned text is the room the player sees.
func (w *World) Login(ctx context.Context, name string) (*session.PlayerSession, string, error) {
	var (
		sess   *session.PlayerSession
		view   string
		jobErr error
	)
	err := w.Do(ctx, func() {
		sess, jobErr = w.login(ctx, name)
		if jobErr == nil {
			view = w.env.RenderRoom(sess)
		}
	})
	if err != nil {
		return nil, "", err
	}
	return sess, view, jobErr
}

func (w *World) login(ctx context.Context, name string) (*session.PlayerSession, error) {
	uid := storage.Key(name)
	if uid == "" {
		return nil, errors.New("name must not be empty")
	}
	if _, ok := w.env.Sessions.Get(uid); ok {
		return nil, ErrAlreadyPlaying
	}

	start := time.Now()
	c, recs, err := w.store.LoadCharacter(ctx, uid)
	fresh := errors.Is(err, storage.ErrCharacterNotFound)
	if err != nil && !fresh {
		return nil, fmt.Errorf("loading %q: %w", name, err)
	}
	if fresh {
		c = w.newCharacter(name)
	}
	if _, ok := w.env.World.GetRoom(c.Room); !ok {
		c.Room = w.env.World.StartRoom().ID
	}

	sess, err := w.env.Sessions.Join(uid, c.Name, c.Room, c.Level)
	if err != nil {
		return nil, err
	}
	sess.Gold, sess.Exp = c.Gold, c.Exp
	if c.Skills != nil {
		sess.Skills = c.Skills
	}
	if !fresh {
		sess.Cond = session.Conditions(c.Cond)
	}

	carrier := inventory.NewCarrier(uid, c.Name, w.env.Rules.CarryWeight, w.env.Rules.CarryCount)
	if err := w.env.Items.RegisterCarrier(carrier); err != nil {
		_ = w.env.Sessions.Leave(uid)
		return nil, err
	}
	if err := w.env.Items.Restore(recs); err != nil {
		_ = w.env.Items.ReleaseCarrier(uid)
		_ = w.env.Sessions.Leave(uid)
		return nil, fmt.Errorf("restoring items for %q: %w", name, err)
	}

	w.logger.Info("player logged in",
		zap.String("uid", uid),
		zap.String("room", c.Room),
		zap.Bool("new", fresh),
		zap.Int("items", len(recs)),
		zap.Duration("elapsed", time.Since(start)),
	)
	if err := w.env.Pub.Room(c.Room, []string{uid}, c.Name+" has entered the game."); err != nil {
		w.logger.Debug("arrival not delivered", zap.Error(err))
	}
	return sess, nil
}

func (w *World) newCharacter(name string) storage.Character {
	name = strings.TrimSpace(name)
	return storage.Character{
		Name:  strings.ToUpper(name[:1]) + strings.ToLower(name[1:]),
		Room:  w.env.World.StartRoom().ID,
		Level: 1,
		Gold:  w.env.Rules.StartingGold,
		Cond:  [3]int(session.Conditions{session.Drunk: 0, session.Hunger: session.MaxCondition, session.Thirst: session.MaxCondition}),
	}
}

// Logout saves the player and removes them and everything they carry from
// the world.
//
// ctx bounds the save only. The removal itself is never abandoned, since a
// dropped logout would leave the character stuck in the world.
//
// Postcondition: the session and carrier are gone even when the save fails;
// the save error is returned.
func (w *World) Logout(ctx context.Context, uid string) error {
	var jobErr error
	err := w.Do(context.WithoutCancel(ctx), func() {
		sess, ok := w.env.Sessions.Get(uid)
		if !ok {
			jobErr = fmt.Errorf("player %q is not logged in", uid)
			return
		}
		jobErr = w.save(ctx, sess)
		if err := w.env.Items.ReleaseCarrier(uid); err != nil {
			w.logger.Error("releasing carrier", zap.String("uid", uid), zap.Error(err))
		}
		room := sess.RoomID
		if err := w.env.Sessions.Leave(uid); err != nil {
			w.logger.Error("removing session", zap.String("uid", uid), zap.Error(err))
		}
		if err := w.env.Pub.Room(room, nil, sess.CharName+" has left the game."); err != nil {
			w.logger.Debug("departure not delivered", zap.Error(err))
		}
		w.logger.Info("player logged out", zap.String("uid", uid))
	})
	if err != nil {
		return err
	}
	return jobErr
}

// SaveAll writes every connected player to the store.
//
// Postcondition: returns the number saved and every save error joined.
func (w *World) SaveAll(ctx context.Context) (int, error) {
	var (
		saved int
		errs  []error
	)
	err := w.Do(ctx, func() {
		for _, sess := range w.env.Sessions.All() {
			if err := w.save(ctx, sess); err != nil {
				errs = append(errs, err)
				continue
			}
			saved++
		}
	})
	if err != nil {
		return 0, err
	}
	return saved, errors.Join(errs...)
}

// save runs on the world goroutine so a quick reconnect always sees the
// last write.
func (w *World) save(ctx context.Context, sess *session.PlayerSession) error {
	recs, err := w.env.Items.Snapshot(sess.UID)
	if err != nil {
		return fmt.Errorf("snapshot of %q: %w", sess.UID, err)
	}
	c := storage.Character{
		Name:   sess.CharName,
		Room:   sess.RoomID,
		Level:  sess.Level,
		Gold:   sess.Gold,
		Exp:    sess.Exp,
		Cond:   [3]int(sess.Cond),
		Skills: sess.Skills,
	}
	if err := w.store.SaveCharacter(ctx, c, recs); err != nil {
		w.logger.Error("saving character", zap.String("uid", sess.UID), zap.Error(err))
		return err
	}
	return nil
}

// DecayConditions lowers hunger, thirst and drunkenness of every mortal by
// one and tells them when they become hungry, thirsty or sober.
//
// Precondition: called on the world goroutine.
func (w *World) DecayConditions() {
	for _, sess := range w.env.Sessions.All() {
		if w.env.Immortal(sess) {
			continue
		}
		wasDrunk := sess.Cond[session.Drunk] > 0
		var msgs []string
		if sess.Cond.Gain(session.Hunger, -1) == 0 {
			msgs = append(msgs, "You are hungry.")
		}
		if sess.Cond.Gain(session.Thirst, -1) == 0 {
			msgs = append(msgs, "You are thirsty.")
		}
		if sess.Cond.Gain(session.Drunk, -1) == 0 && wasDrunk {
			msgs = append(msgs, "You are now sober.")
		}
		for _, msg := range msgs {
			if err := w.env.Pub.Player(sess.UID, msg); err != nil {
				w.logger.Debug("condition message not delivered", zap.String("uid", sess.UID), zap.Error(err))
			}
		}
	}
}
