// Package messaging delivers text produced by the world goroutine to the
// players who should see it.
package messaging

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/deltamud/internal/game/session"
)

// Publisher sends text to one player or to everyone in a room.
type Publisher interface {
	// Player delivers msg to the player with the given uid.
	Player(uid, msg string) error
	// Room delivers msg to every player in roomID except those in exclude.
	Room(roomID string, exclude []string, msg string) error
}

// Roster finds the players present in a room.
type Roster interface {
	UIDsInRoom(roomID string) []string
}

// roomFanout delivers msg to every roster member of roomID not excluded,
// continuing past individual failures.
func roomFanout(roster Roster, roomID string, exclude []string, msg string, send func(uid, msg string) error) error {
	skip := make(map[string]bool, len(exclude))
	for _, uid := range exclude {
		skip[uid] = true
	}
	var errs []error
	for _, uid := range roster.UIDsInRoom(roomID) {
		if skip[uid] {
			continue
		}
		if err := send(uid, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LocalPublisher pushes directly onto each player's Outbox.
type LocalPublisher struct {
	sessions *session.Manager
}

// NewLocalPublisher creates a LocalPublisher over sessions.
//
// Precondition: sessions must be non-nil.
func NewLocalPublisher(sessions *session.Manager) *LocalPublisher {
	return &LocalPublisher{sessions: sessions}
}

// Player implements Publisher.
func (p *LocalPublisher) Player(uid, msg string) error {
	sess, ok := p.sessions.Get(uid)
	if !ok {
		return fmt.Errorf("player %q not online", uid)
	}
	if sess.Outbox == nil {
		return fmt.Errorf("player %q has no connection", uid)
	}
	return sess.Outbox.Push(msg)
}

// Room implements Publisher.
func (p *LocalPublisher) Room(roomID string, exclude []string, msg string) error {
	return roomFanout(p.sessions, roomID, exclude, msg, p.Player)
}
