package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/deltamud/internal/game/inventory"
	"github.com/cory-johannsen/deltamud/internal/game/session"
	"github.com/cory-johannsen/deltamud/internal/game/world"
)

// HandleLook processes "look", "look in <container>" and "look <obj>".
func HandleLook(e *Env, sess *session.PlayerSession, args []string) string {
	if len(args) == 0 {
		return e.RenderRoom(sess)
	}
	c := e.carrier(sess)
	if strings.EqualFold(args[0], "in") {
		if len(args) < 2 {
			return "Look in what?"
		}
		it, onFloor := e.findNear(c, sess.RoomID, args[1])
		if it == nil {
			return "You do not see that item here."
		}
		return e.lookIn(it, onFloor)
	}
	a1, _ := twoArgs(args)
	it, _ := e.findNear(c, sess.RoomID, a1)
	if it == nil {
		it, _ = e.findEquipped(c, a1)
	}
	if it == nil {
		return "You do not see that here."
	}
	if it.LongDesc != "" {
		return it.LongDesc
	}
	return fmt.Sprintf("You see nothing special about %s.", it.ShortDesc)
}

// RenderRoom describes the actor's room: title, description, exits, the
// items on the floor and the other players present.
func (e *Env) RenderRoom(sess *session.PlayerSession) string {
	room, ok := e.World.GetRoom(sess.RoomID)
	if !ok {
		e.Logger.Warn("player in unknown room", zap.String("room", sess.RoomID))
		return "You are floating in a void."
	}
	var out reply
	out.add("%s", room.Title)
	if room.Description != "" {
		out.add("%s", strings.TrimRight(room.Description, "\n"))
	}

	exits := room.VisibleExits()
	dirs := make([]string, 0, len(exits))
	for _, ex := range exits {
		dirs = append(dirs, string(ex.Direction))
	}
	if len(dirs) == 0 {
		out.add("[ Exits: None! ]")
	} else {
		out.add("[ Exits: %s ]", strings.Join(dirs, " "))
	}

	for _, it := range e.matchAll(e.Items.RoomItems(room.ID), "") {
		if it.LongDesc != "" {
			out.add("%s", it.LongDesc)
		} else {
			out.add("%s is here.", capitalize(it.ShortDesc))
		}
	}
	for _, other := range e.Sessions.InRoom(room.ID) {
		if other.UID != sess.UID {
			out.add("%s is standing here.", other.CharName)
		}
	}
	return out.String()
}

var fullness = [...]string{"less than half ", "about half ", "more than half ", ""}

// lookIn lists a container's contents or describes a drink container's level.
func (e *Env) lookIn(it *inventory.Item, onFloor bool) string {
	var out reply
	switch {
	case it.IsLiquidContainer():
		vol, capacity := it.Values[inventory.DrinkVolume], it.Values[inventory.DrinkCapacity]
		if vol <= 0 || capacity <= 0 {
			out.add("It is empty.")
			break
		}
		amt := vol * 3 / capacity
		if amt > 3 {
			amt = 3
		}
		info, _ := inventory.Liquid(it.Values[inventory.DrinkLiquid]).Info()
		out.add("It's %sfull of a %s liquid.", fullness[amt], info.Color)
	case !it.IsContainer():
		out.add("There's nothing inside that!")
	case it.Closed():
		out.add("It is closed.")
	default:
		where := "carried"
		if onFloor {
			where = "here"
		}
		out.add("%s (%s) :", it.ShortDesc, where)
		contents := e.matchAll(e.Items.Contents(it.ID), "")
		if len(contents) == 0 {
			out.add(" Nothing.")
		}
		for _, child := range contents {
			out.add("%s", child.ShortDesc)
		}
	}
	return out.String()
}

// HandleInventory lists what the actor carries.
func HandleInventory(e *Env, sess *session.PlayerSession, _ []string) string {
	var out reply
	out.add("You are carrying:")
	items := e.matchAll(e.carrier(sess).Inventory(), "")
	if len(items) == 0 {
		out.add("  Nothing.")
	}
	for _, it := range items {
		out.add("%s", it.ShortDesc)
	}
	if sess.Gold > 0 {
		out.add("You have %d gold %s.", sess.Gold, coinWord(sess.Gold))
	}
	return out.String()
}

// HandleEquipment lists what the actor wears, in slot order.
func HandleEquipment(e *Env, sess *session.PlayerSession, _ []string) string {
	var out reply
	out.add("You are using:")
	c := e.carrier(sess)
	found := false
	for pos := inventory.WearPosition(0); pos < inventory.NumWearPositions; pos++ {
		it := e.item(c.Equipped(pos))
		if it == nil {
			continue
		}
		found = true
		out.add("%-20s%s", pos.Display(), it.ShortDesc)
	}
	if !found {
		out.add(" Nothing.")
	}
	return out.String()
}

// HandleOpen processes "open <container>".
func HandleOpen(e *Env, sess *session.PlayerSession, args []string) string {
	return e.setClosed(sess, args, false)
}

// HandleClose processes "close <container>".
func HandleClose(e *Env, sess *session.PlayerSession, args []string) string {
	return e.setClosed(sess, args, true)
}

func (e *Env) setClosed(sess *session.PlayerSession, args []string, closed bool) string {
	verb, verbs, done := "open", "opens", "open"
	if closed {
		verb, verbs, done = "close", "closes", "closed"
	}
	a1, _ := twoArgs(args)
	if a1 == "" {
		return capitalize(verb) + " what?"
	}
	it, _ := e.findNear(e.carrier(sess), sess.RoomID, a1)
	switch {
	case it == nil:
		return fmt.Sprintf("There doesn't seem to be %s %s here.", an(a1), a1)
	case !it.IsContainer():
		return "That's not a container."
	case !it.Closeable():
		return "You can't do that."
	case it.Closed() == closed:
		return fmt.Sprintf("But it's already %s!", done)
	case !closed && it.Values[inventory.ContainerFlags]&inventory.ContLocked != 0:
		return "It seems to be locked."
	}
	if err := it.SetClosed(closed); err != nil {
		return "You can't do that."
	}
	e.toRoom(sess, "%s %s %s.", sess.CharName, verbs, it.ShortDesc)
	return "Okay."
}

// HandleMove moves the actor through an exit and shows the new room.
func HandleMove(e *Env, sess *session.PlayerSession, dir world.Direction) string {
	dest, err := e.World.Navigate(sess.RoomID, dir)
	switch {
	case errors.Is(err, world.ErrExitLocked):
		return "It seems to be locked."
	case err != nil:
		return "Alas, you cannot go that way..."
	}
	from, err := e.Sessions.Move(sess.UID, dest.ID)
	if err != nil {
		e.Logger.Error("moving player", zap.String("uid", sess.UID), zap.Error(err))
		return "Alas, you cannot go that way..."
	}
	e.toRoomExcept(from, []string{sess.UID}, "%s leaves %s.", sess.CharName, dir)
	e.toRoom(sess, "%s has arrived.", sess.CharName)
	return e.RenderRoom(sess)
}

// HandleHelp lists the commands by category.
func HandleHelp(e *Env, _ *session.PlayerSession, _ []string) string {
	byCat := e.Registry.CommandsByCategory()
	cats := make([]string, 0, len(byCat))
	for cat := range byCat {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	var out reply
	for _, cat := range cats {
		cmds := byCat[cat]
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
		out.add("%s:", strings.ToUpper(cat[:1])+cat[1:])
		for _, cmd := range cmds {
			out.add("  %-12s %s", cmd.Name, cmd.Help)
		}
	}
	return out.String()
}
