package gameserver

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/deltamud/internal/game/command"
	"github.com/cory-johannsen/deltamud/internal/game/inventory"
	"github.com/cory-johannsen/deltamud/internal/scripting"
)

// LoadScripts starts a VM for every zone that names a script directory and
// the shared VM for globalDir when it is set.
//
// Postcondition: returns the first load error; zones loaded before it stay loaded.
func LoadScripts(mgr *scripting.Manager, env *command.Env, globalDir string, instLimit int, logger *zap.Logger) error {
	for _, z := range env.World.AllZones() {
		if z.ScriptDir == "" {
			continue
		}
		limit := z.ScriptInstructionLimit
		if limit == 0 {
			limit = instLimit
		}
		if err := mgr.LoadZone(z.ID, z.ScriptDir, limit); err != nil {
			return err
		}
		logger.Info("zone scripts loaded", zap.String("zone", z.ID), zap.String("dir", z.ScriptDir))
	}
	if globalDir != "" {
		if err := mgr.LoadGlobal(globalDir, instLimit); err != nil {
			return err
		}
	}
	return nil
}

// BindScripts connects the engine.* callbacks of mgr to env and installs the
// item hooks on env.Items. Callbacks run on the world goroutine.
func BindScripts(mgr *scripting.Manager, env *command.Env) {
	mgr.QueryItem = func(id string) *scripting.ItemInfo {
		return scripting.ItemInfoFor(env.Items, id)
	}
	mgr.QueryRoom = func(roomID string) *scripting.RoomInfo {
		room, ok := env.World.GetRoom(roomID)
		if !ok {
			return nil
		}
		info := &scripting.RoomInfo{ID: room.ID, Title: room.Title}
		for _, id := range env.Items.RoomItems(roomID) {
			if it, ok := env.Items.Item(id); ok {
				info.Items = append(info.Items, it.ShortDesc)
			}
		}
		return info
	}
	mgr.Broadcast = func(roomID, msg string) {
		if err := env.Pub.Room(roomID, nil, msg); err != nil {
			env.Logger.Debug("script broadcast not delivered", zap.String("room", roomID), zap.Error(err))
		}
	}
	mgr.Tell = func(uid, msg string) {
		if err := env.Pub.Player(uid, msg); err != nil {
			env.Logger.Debug("script tell not delivered", zap.String("uid", uid), zap.Error(err))
		}
	}
	env.Items.SetTrigger(scripting.NewTriggers(mgr, env.Items, MoveScope(env), env.Logger))
}

// MoveScope finds the room a move happens in: the actor's room, or for
// world moves the room holding the destination or the source.
func MoveScope(env *command.Env) scripting.ScopeFunc {
	return func(mv inventory.Move) scripting.Scope {
		var sc scripting.Scope
		if sess, ok := env.Sessions.Get(mv.Actor); ok {
			sc.Room, sc.ActorName = sess.RoomID, sess.CharName
		}
		if sc.Room == "" {
			sc.Room = roomOf(env, mv.To)
		}
		if sc.Room == "" {
			sc.Room = roomOf(env, mv.From)
		}
		if z, ok := env.World.ZoneOf(sc.Room); ok {
			sc.Zone = z.ID
		}
		return sc
	}
}

func roomOf(env *command.Env, loc inventory.Location) string {
	for depth := 0; depth < 32; depth++ {
		switch loc.Kind {
		case inventory.LocRoom:
			return loc.Room
		case inventory.LocInventory, inventory.LocEquipment:
			if sess, ok := env.Sessions.Get(loc.Carrier); ok {
				return sess.RoomID
			}
			return ""
		case inventory.LocContainer:
			it, ok := env.Items.Item(loc.Container)
			if !ok {
				return ""
			}
			loc = it.Location()
		default:
			return ""
		}
	}
	return ""
}
