package command

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/deltamud/internal/config"
	"github.com/cory-johannsen/deltamud/internal/game/dice"
	"github.com/cory-johannsen/deltamud/internal/game/inventory"
	"github.com/cory-johannsen/deltamud/internal/game/session"
	"github.com/cory-johannsen/deltamud/internal/game/world"
	"github.com/cory-johannsen/deltamud/internal/messaging"
)

// ErrQuit is returned by Execute when the player asked to leave.
var ErrQuit = errors.New("player quit")

// Env is everything a command handler may touch.
//
// An Env is used only from the world goroutine; handlers call the inventory
// Manager directly and never lock.
type Env struct {
	Items    *inventory.Manager
	Sessions *session.Manager
	World    *world.Manager
	Pub      messaging.Publisher
	Roller   *dice.Roller
	Registry *Registry
	Rules    config.RulesConfig
	// DonationRoom receives donated items; empty disables donate.
	DonationRoom string
	// MoneyItem is the prototype spawned for dropped coins.
	MoneyItem string
	Logger    *zap.Logger
}

// Immortal reports whether sess bypasses carry limits and cursed items.
func (e *Env) Immortal(sess *session.PlayerSession) bool {
	return sess.Level >= e.Rules.ImmortalLevel
}

// carrier returns the item-holding side of sess.
func (e *Env) carrier(sess *session.PlayerSession) *inventory.Carrier {
	c, ok := e.Items.Carrier(sess.UID)
	if !ok {
		e.Logger.Error("session has no carrier", zap.String("uid", sess.UID))
		return inventory.NewCarrier(sess.UID, sess.CharName, 0, 0)
	}
	return c
}

func (e *Env) item(id inventory.ItemID) *inventory.Item {
	it, _ := e.Items.Item(id)
	return it
}

// toRoom sends msg to everyone in the actor's room except the actor.
func (e *Env) toRoom(sess *session.PlayerSession, format string, args ...any) {
	e.toRoomExcept(sess.RoomID, []string{sess.UID}, format, args...)
}

func (e *Env) toRoomExcept(room string, exclude []string, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if err := e.Pub.Room(room, exclude, msg); err != nil {
		e.Logger.Debug("room message not delivered", zap.String("room", room), zap.Error(err))
	}
}

func (e *Env) toPlayer(uid, format string, args ...any) {
	if err := e.Pub.Player(uid, fmt.Sprintf(format, args...)); err != nil {
		e.Logger.Debug("player message not delivered", zap.String("uid", uid), zap.Error(err))
	}
}

// reply accumulates the lines shown to the actor.
type reply struct {
	lines []string
}

func (r *reply) add(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *reply) String() string {
	return strings.Join(r.lines, "\n")
}

// an returns the indefinite article for word.
func an(word string) string {
	if word != "" && strings.ContainsRune("aeiouAEIOU", rune(word[0])) {
		return "an"
	}
	return "a"
}

// capitalize upper-cases the first letter of s, as room messages start with
// an item's short description.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// rejection translates a recoverable Location Manager error into player text.
// It returns "" for vetoes, whose scripts speak for themselves.
func rejection(err error, it *inventory.Item) string {
	switch {
	case errors.Is(err, inventory.ErrVetoed):
		return ""
	case errors.Is(err, inventory.ErrBusy):
		return fmt.Sprintf("%s is already on the move.", capitalize(it.ShortDesc))
	case errors.Is(err, inventory.ErrCapacityExceeded):
		return fmt.Sprintf("%s won't fit.", capitalize(it.ShortDesc))
	case errors.Is(err, inventory.ErrSelfContainment):
		return "You attempt to fold it into itself, but fail."
	case errors.Is(err, inventory.ErrCannotWear):
		return fmt.Sprintf("You can't wear %s there.", it.ShortDesc)
	case errors.Is(err, inventory.ErrSlotOccupied):
		return "You're already using something there."
	}
	return "You can't do that."
}

// moveFailed reports err to the actor, logging anything that is not a game rule.
func (e *Env) moveFailed(out *reply, err error, it *inventory.Item) {
	if !inventory.IsRecoverable(err) {
		e.Logger.Error("item move failed", zap.String("item", string(it.ID)), zap.Error(err))
		out.add("Something went wrong.")
		return
	}
	if msg := rejection(err, it); msg != "" {
		out.add("%s", msg)
	}
}
