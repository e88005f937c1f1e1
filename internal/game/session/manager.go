// Package session tracks connected players and which room each occupies.
package session

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Lookup errors.
var (
	ErrConnected    = errors.New("player already connected")
	ErrNotConnected = errors.New("player not connected")
)

// PlayerSession is a connected character.
//
// Only RoomID is maintained by Manager; the world goroutine owns the rest.
type PlayerSession struct {
	// UID identifies the player and doubles as the carrier id for items.
	UID      string
	CharName string
	RoomID   string
	// Level gates immortal privileges.
	Level int
	Gold  int
	// Exp pays for repairs and is earned by sacrifices.
	Exp      int
	Skills   map[string]int
	Cond     Conditions
	Poisoned bool
	// Outbox receives text addressed to the player.
	Outbox *Outbox
}

// Skill returns the player's percentage in the named skill.
func (s *PlayerSession) Skill(name string) int {
	return s.Skills[name]
}

// Manager indexes sessions by UID and by room. It is safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	players map[string]*PlayerSession
	rooms   map[string]map[string]*PlayerSession
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{
		players: make(map[string]*PlayerSession),
		rooms:   make(map[string]map[string]*PlayerSession),
	}
}

// Join connects a character in roomID with full hunger and thirst and a
// fresh Outbox.
//
// Postcondition: returns ErrConnected if uid is already present.
func (m *Manager) Join(uid, charName, roomID string, level int) (*PlayerSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.players[uid]; ok {
		return nil, fmt.Errorf("%s: %w", uid, ErrConnected)
	}
	sess := &PlayerSession{
		UID:      uid,
		CharName: charName,
		RoomID:   roomID,
		Level:    level,
		Skills:   map[string]int{},
		Cond:     Conditions{Hunger: MaxCondition, Thirst: MaxCondition},
		Outbox:   NewOutbox(DefaultOutboxSize),
	}
	m.players[uid] = sess
	m.enter(sess)
	return sess, nil
}

// Leave disconnects uid and closes its Outbox.
func (m *Manager) Leave(uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.players[uid]
	if !ok {
		return fmt.Errorf("%s: %w", uid, ErrNotConnected)
	}
	m.exit(sess)
	delete(m.players, uid)
	if sess.Outbox != nil {
		_ = sess.Outbox.Close()
	}
	return nil
}

// Move relocates uid to roomID and returns the room it left.
func (m *Manager) Move(uid, roomID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.players[uid]
	if !ok {
		return "", fmt.Errorf("%s: %w", uid, ErrNotConnected)
	}
	from := sess.RoomID
	m.exit(sess)
	sess.RoomID = roomID
	m.enter(sess)
	return from, nil
}

func (m *Manager) enter(sess *PlayerSession) {
	occupants, ok := m.rooms[sess.RoomID]
	if !ok {
		occupants = make(map[string]*PlayerSession)
		m.rooms[sess.RoomID] = occupants
	}
	occupants[sess.UID] = sess
}

func (m *Manager) exit(sess *PlayerSession) {
	occupants := m.rooms[sess.RoomID]
	delete(occupants, sess.UID)
	if len(occupants) == 0 {
		delete(m.rooms, sess.RoomID)
	}
}

// Get returns the session for uid.
func (m *Manager) Get(uid string) (*PlayerSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.players[uid]
	return sess, ok
}

// InRoom returns the players in roomID ordered by character name.
func (m *Manager) InRoom(roomID string) []*PlayerSession {
	m.mu.RLock()
	out := make([]*PlayerSession, 0, len(m.rooms[roomID]))
	for _, sess := range m.rooms[roomID] {
		out = append(out, sess)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CharName < out[j].CharName })
	return out
}

// UIDsInRoom returns the UIDs present in roomID in sorted order.
func (m *Manager) UIDsInRoom(roomID string) []string {
	m.mu.RLock()
	uids := make([]string, 0, len(m.rooms[roomID]))
	for uid := range m.rooms[roomID] {
		uids = append(uids, uid)
	}
	m.mu.RUnlock()
	sort.Strings(uids)
	return uids
}

// FindInRoom returns the first player in roomID, by name order, whose
// character name starts with name, ignoring case.
func (m *Manager) FindInRoom(roomID, name string) (*PlayerSession, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, false
	}
	for _, sess := range m.InRoom(roomID) {
		if strings.HasPrefix(strings.ToLower(sess.CharName), name) {
			return sess, true
		}
	}
	return nil, false
}

// All returns every session ordered by UID.
func (m *Manager) All() []*PlayerSession {
	m.mu.RLock()
	out := make([]*PlayerSession, 0, len(m.players))
	for _, sess := range m.players {
		out = append(out, sess)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out
}

// Count returns the number of connected players.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.players)
}
