package command

import (
	"github.com/cory-johannsen/deltamud/internal/game/inventory"
	"github.com/cory-johannsen/deltamud/internal/game/session"
)

// HandlePut processes "put <obj>|all|all.<obj> <container>".
//
// Precondition: sess has a registered carrier.
// Postcondition: each item put is inside the container; an item that does not
// fit stays in the actor's inventory.
func HandlePut(e *Env, sess *session.PlayerSession, args []string) string {
	var out reply
	c := e.carrier(sess)
	a1, a2 := twoArgs(args)
	mode, word := splitDots(a1)

	if a1 == "" {
		out.add("Put what in what?")
		return out.String()
	}
	if mode == findAllDot && word == "" {
		out.add("Put all of what?")
		return out.String()
	}
	if a2 == "" {
		what := "it"
		if mode != findIndiv {
			what = "them"
		}
		out.add("What do you want to put %s in?", what)
		return out.String()
	}

	cont, _ := e.findNear(c, sess.RoomID, a2)
	switch {
	case cont == nil:
		out.add("You don't see %s %s here.", an(a2), a2)
		return out.String()
	case !cont.IsContainer():
		out.add("%s is not a container.", capitalize(cont.ShortDesc))
		return out.String()
	case cont.Closed():
		out.add("You'd better open it first!")
		return out.String()
	}

	if mode == findIndiv {
		it := e.findIn(c.Inventory(), word)
		if it == nil {
			out.add("You aren't carrying %s %s.", an(word), word)
			return out.String()
		}
		e.performPut(&out, sess, it, cont)
		return out.String()
	}

	found := false
	for _, it := range e.matchAll(c.Inventory(), word) {
		if it.ID == cont.ID {
			continue
		}
		found = true
		e.performPut(&out, sess, it, cont)
	}
	if !found {
		if mode == findAll {
			out.add("You don't seem to have anything to put in it.")
		} else {
			out.add("You don't seem to have any %ss.", word)
		}
	}
	return out.String()
}

func (e *Env) performPut(out *reply, sess *session.PlayerSession, it, cont *inventory.Item) {
	if _, err := e.Items.Move(inventory.MoveRequest{
		Op: inventory.OpPut, Item: it.ID, Actor: sess.UID, Dest: inventory.ToContainer(cont.ID),
	}); err != nil {
		e.moveFailed(out, err, it)
		return
	}
	out.add("You put %s in %s.", it.ShortDesc, cont.ShortDesc)
	e.toRoom(sess, "%s puts %s in %s.", sess.CharName, it.ShortDesc, cont.ShortDesc)
}
