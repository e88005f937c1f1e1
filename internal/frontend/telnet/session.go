package telnet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/cory-johannsen/deltamud/internal/game/command"
	"github.com/cory-johannsen/deltamud/internal/game/session"
	"github.com/cory-johannsen/deltamud/internal/gameserver"
)

// Game is the part of the world a connection talks to.
type Game interface {
	Login(ctx context.Context, name string) (*session.PlayerSession, string, error)
	Submit(ctx context.Context, uid, line string) (string, error)
	Logout(ctx context.Context, uid string) error
}

// RelayFunc subscribes push to the messages addressed to uid and returns the
// unsubscribe function.
type RelayFunc func(uid string, push func(string) error) (func(), error)

// Name length limits.
const (
	MinNameLength = 2
	MaxNameLength = 15
)

// loginAttempts bounds how many names a client may try.
const loginAttempts = 5

// Handler logs a client in by name and then feeds its lines to the world.
type Handler struct {
	game   Game
	relay  RelayFunc
	banner string
	logger *zap.Logger
	// LogoutTimeout bounds the final save after a client leaves.
	LogoutTimeout time.Duration
}

// NewHandler creates a Handler. relay may be nil when messages reach the
// player's outbox directly.
//
// Precondition: game and logger must be non-nil.
func NewHandler(game Game, relay RelayFunc, serverName string, logger *zap.Logger) *Handler {
	return &Handler{
		game:          game,
		relay:         relay,
		banner:        serverName,
		logger:        logger,
		LogoutTimeout: 10 * time.Second,
	}
}

// HandleSession implements SessionHandler.
func (h *Handler) HandleSession(ctx context.Context, conn *Conn) error {
	if err := conn.WriteText(Colorize(Bold+Cyan, "Welcome to "+h.banner+"!")); err != nil {
		return err
	}
	sess, view, err := h.login(ctx, conn)
	if err != nil {
		return err
	}
	uid := sess.UID

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		forward(sess.Outbox, conn)
	}()
	// Logout closes the outbox, which ends forward.
	defer func() {
		lctx, cancel := context.WithTimeout(context.Background(), h.LogoutTimeout)
		defer cancel()
		if err := h.game.Logout(lctx, uid); err != nil {
			h.logger.Error("logout failed", zap.String("uid", uid), zap.Error(err))
			_ = sess.Outbox.Close()
		}
		wg.Wait()
	}()

	if h.relay != nil {
		stop, err := h.relay(uid, sess.Outbox.Push)
		if err != nil {
			return fmt.Errorf("relaying messages for %s: %w", uid, err)
		}
		defer stop()
	}

	if err := conn.WriteText(view); err != nil {
		return err
	}
	return h.commandLoop(ctx, conn, uid)
}

func (h *Handler) login(ctx context.Context, conn *Conn) (*session.PlayerSession, string, error) {
	for attempt := 0; attempt < loginAttempts; attempt++ {
		if err := conn.WritePrompt("By what name do you wish to be known? "); err != nil {
			return nil, "", err
		}
		line, err := conn.ReadLine()
		if err != nil {
			return nil, "", err
		}
		name := strings.TrimSpace(line)
		if !ValidName(name) {
			if err := conn.WriteText("Illegal name, try another."); err != nil {
				return nil, "", err
			}
			continue
		}
		sess, view, err := h.game.Login(ctx, name)
		switch {
		case errors.Is(err, gameserver.ErrAlreadyPlaying):
			if err := conn.WriteText("That character is already playing."); err != nil {
				return nil, "", err
			}
			continue
		case err != nil:
			h.logger.Error("login failed", zap.String("name", name), zap.Error(err))
			_ = conn.WriteText("Sorry, the world is not accepting players right now.")
			return nil, "", err
		}
		return sess, view, nil
	}
	_ = conn.WriteText("Too many attempts.")
	return nil, "", errors.New("too many login attempts")
}

func (h *Handler) commandLoop(ctx context.Context, conn *Conn, uid string) error {
	for {
		if err := conn.WritePrompt(Colorize(Green, "> ")); err != nil {
			return err
		}
		line, err := conn.ReadLine()
		if err != nil {
			return err
		}
		out, err := h.game.Submit(ctx, uid, line)
		if out != "" {
			if werr := conn.WriteText(out); werr != nil {
				return werr
			}
		}
		switch {
		case errors.Is(err, command.ErrQuit):
			return nil
		case err != nil && ctx.Err() != nil:
			return ctx.Err()
		case errors.Is(err, gameserver.ErrStopped):
			return err
		}
	}
}

// forward writes everything pushed to out until it is closed.
func forward(out *session.Outbox, conn *Conn) {
	for msg := range out.Events() {
		if err := conn.WriteText(msg); err != nil {
			return
		}
	}
}

// ValidName reports whether name is usable as a character name: letters
// only, within the length limits.
func ValidName(name string) bool {
	if len(name) < MinNameLength || len(name) > MaxNameLength {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
