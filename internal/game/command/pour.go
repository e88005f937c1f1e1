package command

import (
	"errors"
	"strings"

	"github.com/cory-johannsen/deltamud/internal/game/inventory"
	"github.com/cory-johannsen/deltamud/internal/game/session"
)

// HandlePour processes "pour <container> out" and "pour <container> <container>".
//
// Precondition: sess has a registered carrier.
// Postcondition: as much liquid as fits moved from the first container to the second.
func HandlePour(e *Env, sess *session.PlayerSession, args []string) string {
	var out reply
	c := e.carrier(sess)
	a1, a2 := twoArgs(args)

	if a1 == "" {
		out.add("From what do you want to pour?")
		return out.String()
	}
	from := e.findIn(c.Inventory(), a1)
	switch {
	case from == nil:
		out.add("You can't find it!")
		return out.String()
	case from.Type != inventory.TypeDrinkCon:
		out.add("You can't pour from that!")
		return out.String()
	case from.Values[inventory.DrinkVolume] <= 0:
		out.add("%s is empty.", capitalize(from.ShortDesc))
		return out.String()
	case a2 == "":
		out.add("Where do you want it?  Out or in what?")
		return out.String()
	}

	if strings.EqualFold(a2, "out") {
		if _, err := e.Items.Empty(from.ID); err != nil {
			e.moveFailed(&out, err, from)
			return out.String()
		}
		out.add("You empty %s.", from.ShortDesc)
		e.toRoom(sess, "%s empties %s.", sess.CharName, from.ShortDesc)
		return out.String()
	}

	to := e.findIn(c.Inventory(), a2)
	switch {
	case to == nil:
		out.add("You can't find it!")
		return out.String()
	case to.Type != inventory.TypeDrinkCon:
		out.add("You can't pour anything into that.")
		return out.String()
	}
	p, err := e.Items.Transfer(from.ID, to.ID, 0)
	if err != nil {
		e.pourFailed(&out, err, from)
		return out.String()
	}
	out.add("You pour the %s into %s.", p.Liquid, to.ShortDesc)
	e.toRoom(sess, "%s pours %s into %s.", sess.CharName, p.Liquid, to.ShortDesc)
	return out.String()
}

// HandleFill processes "fill <container> <fountain>".
func HandleFill(e *Env, sess *session.PlayerSession, args []string) string {
	var out reply
	c := e.carrier(sess)
	a1, a2 := twoArgs(args)

	if a1 == "" {
		out.add("What do you want to fill?  And what are you filling it from?")
		return out.String()
	}
	to := e.findIn(c.Inventory(), a1)
	switch {
	case to == nil:
		out.add("You can't find it!")
		return out.String()
	case to.Type != inventory.TypeDrinkCon:
		out.add("You can't fill %s!", to.ShortDesc)
		return out.String()
	case a2 == "":
		out.add("What do you want to fill %s from?", to.ShortDesc)
		return out.String()
	}
	from := e.findIn(e.Items.RoomItems(sess.RoomID), a2)
	switch {
	case from == nil:
		out.add("There doesn't seem to be %s %s here.", an(a2), a2)
		return out.String()
	case from.Type != inventory.TypeFountain:
		out.add("You can't fill something from %s.", from.ShortDesc)
		return out.String()
	case from.Values[inventory.DrinkVolume] <= 0:
		out.add("%s is empty.", capitalize(from.ShortDesc))
		return out.String()
	}
	if _, err := e.Items.Transfer(from.ID, to.ID, 0); err != nil {
		e.pourFailed(&out, err, from)
		return out.String()
	}
	out.add("You gently fill %s from %s.", to.ShortDesc, from.ShortDesc)
	e.toRoom(sess, "%s gently fills %s from %s.", sess.CharName, to.ShortDesc, from.ShortDesc)
	return out.String()
}

func (e *Env) pourFailed(out *reply, err error, it *inventory.Item) {
	switch {
	case errors.Is(err, inventory.ErrSelfContainment):
		out.add("A most unproductive effort.")
	case errors.Is(err, inventory.ErrIncompatibleContents):
		out.add("There is already another liquid in it!")
	case errors.Is(err, inventory.ErrCapacityExceeded):
		out.add("There is no room for more.")
	default:
		e.moveFailed(out, err, it)
	}
}
