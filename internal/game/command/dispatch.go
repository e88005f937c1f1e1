package command

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/deltamud/internal/game/session"
	"github.com/cory-johannsen/deltamud/internal/game/world"
)

// HandlerFunc runs one command for sess and returns the text for the actor.
type HandlerFunc func(e *Env, sess *session.PlayerSession, args []string) string

var handlers = map[string]HandlerFunc{
	HandlerLook:      HandleLook,
	HandlerInventory: HandleInventory,
	HandlerEquipment: HandleEquipment,
	HandlerGet:       HandleGet,
	HandlerPut:       HandlePut,
	HandlerDrop:      HandleDrop,
	HandlerJunk:      HandleJunk,
	HandlerDonate:    HandleDonate,
	HandlerGive:      HandleGive,
	HandlerWear:      HandleWear,
	HandlerWield:     HandleWield,
	HandlerHold:      HandleHold,
	HandlerRemove:    HandleRemove,
	HandlerEat:       HandleEat,
	HandlerTaste:     HandleTaste,
	HandlerDrink:     HandleDrink,
	HandlerSip:       HandleSip,
	HandlerPour:      HandlePour,
	HandlerFill:      HandleFill,
	HandlerOpen:      HandleOpen,
	HandlerClose:     HandleClose,
	HandlerSacrifice: HandleSacrifice,
	HandlerRepair:    HandleRepair,
	HandlerHelp:      HandleHelp,
}

// Execute parses line and runs the matching command for sess.
//
// Precondition: called only from the world goroutine.
// Postcondition: returns ErrQuit when the player asked to leave; any other
// error means the command table is inconsistent.
func (e *Env) Execute(sess *session.PlayerSession, line string) (string, error) {
	parsed := Parse(line)
	if parsed.Command == "" {
		return "", nil
	}
	cmd, ok := e.Registry.Resolve(parsed.Command)
	switch {
	case !ok && strings.HasPrefix("quit", parsed.Command):
		return "You have to type quit--no less, to quit!", nil
	case !ok:
		return "Huh?!?", nil
	}

	e.Logger.Debug("command",
		zap.String("uid", sess.UID),
		zap.String("cmd", cmd.Name),
		zap.Strings("args", parsed.Args),
	)

	switch cmd.Handler {
	case HandlerQuit:
		return "Goodbye, friend.. Come back soon!", ErrQuit
	case HandlerMove:
		return HandleMove(e, sess, world.Direction(cmd.Name)), nil
	}
	h, ok := handlers[cmd.Handler]
	if !ok {
		return "", fmt.Errorf("command %q: no handler %q", cmd.Name, cmd.Handler)
	}
	return h(e, sess, parsed.Args), nil
}
