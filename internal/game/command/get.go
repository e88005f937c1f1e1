package command

import (
	"github.com/cory-johannsen/deltamud/internal/game/inventory"
	"github.com/cory-johannsen/deltamud/internal/game/session"
)

// HandleGet processes "get <obj>|all|all.<obj> [container]".
//
// Precondition: sess has a registered carrier.
// Postcondition: every item picked up is in the actor's inventory; money
// picked up is added to Gold and extracted.
func HandleGet(e *Env, sess *session.PlayerSession, args []string) string {
	var out reply
	c := e.carrier(sess)
	a1, a2 := twoArgs(args)

	switch {
	case !e.Immortal(sess) && c.CarryCount() >= c.MaxCount:
		out.add("Your arms are already full!")
	case a1 == "":
		out.add("Get what?")
	case a2 == "":
		e.getFromRoom(&out, sess, c, a1)
	default:
		e.getFromContainers(&out, sess, c, a1, a2)
	}
	return out.String()
}

func (e *Env) getFromRoom(out *reply, sess *session.PlayerSession, c *inventory.Carrier, arg string) {
	mode, word := splitDots(arg)
	if mode == findIndiv {
		it := e.findIn(e.Items.RoomItems(sess.RoomID), word)
		if it == nil {
			out.add("You don't see %s %s here.", an(word), word)
			return
		}
		e.performGet(out, sess, c, it, nil)
		return
	}
	if mode == findAllDot && word == "" {
		out.add("Get all of what?")
		return
	}
	found := e.matchAll(e.Items.RoomItems(sess.RoomID), word)
	if len(found) == 0 {
		if mode == findAll {
			out.add("There doesn't seem to be anything here.")
		} else {
			out.add("You don't see any %ss here.", word)
		}
		return
	}
	for _, it := range found {
		e.performGet(out, sess, c, it, nil)
	}
}

func (e *Env) getFromContainers(out *reply, sess *session.PlayerSession, c *inventory.Carrier, arg, contArg string) {
	mode, word := splitDots(contArg)
	if mode == findIndiv {
		cont, _ := e.findNear(c, sess.RoomID, word)
		switch {
		case cont == nil:
			out.add("You don't have %s %s.", an(word), word)
		case !cont.IsContainer():
			out.add("%s is not a container.", capitalize(cont.ShortDesc))
		default:
			e.getFromContainer(out, sess, c, cont, arg)
		}
		return
	}
	if mode == findAllDot && word == "" {
		out.add("Get from all of what?")
		return
	}
	candidates := e.matchAll(c.Inventory(), word)
	candidates = append(candidates, e.matchAll(e.Items.RoomItems(sess.RoomID), word)...)
	found := false
	for _, cont := range candidates {
		if cont.IsContainer() {
			found = true
			e.getFromContainer(out, sess, c, cont, arg)
		} else if mode == findAllDot {
			found = true
			out.add("%s is not a container.", capitalize(cont.ShortDesc))
		}
	}
	if !found {
		if mode == findAll {
			out.add("You can't seem to find any containers.")
		} else {
			out.add("You can't seem to find any %ss here.", word)
		}
	}
}

func (e *Env) getFromContainer(out *reply, sess *session.PlayerSession, c *inventory.Carrier, cont *inventory.Item, arg string) {
	if cont.Closed() {
		out.add("%s is closed.", capitalize(cont.ShortDesc))
		return
	}
	mode, word := splitDots(arg)
	if mode == findIndiv {
		it := e.findIn(e.Items.Contents(cont.ID), word)
		if it == nil {
			out.add("There doesn't seem to be %s %s in %s.", an(word), word, cont.ShortDesc)
			return
		}
		e.performGet(out, sess, c, it, cont)
		return
	}
	if mode == findAllDot && word == "" {
		out.add("Get all of what?")
		return
	}
	found := e.matchAll(e.Items.Contents(cont.ID), word)
	if len(found) == 0 {
		if mode == findAll {
			out.add("%s seems to be empty.", capitalize(cont.ShortDesc))
		} else {
			out.add("You can't seem to find any %ss in %s.", word, cont.ShortDesc)
		}
		return
	}
	for _, it := range found {
		e.performGet(out, sess, c, it, cont)
	}
}

// canTake applies the mortal carry rules to picking up it.
func (e *Env) canTake(out *reply, sess *session.PlayerSession, c *inventory.Carrier, it *inventory.Item) bool {
	if e.Immortal(sess) {
		return true
	}
	switch {
	case c.CarryCount() >= c.MaxCount:
		out.add("%s: you can't carry that many items.", it.ShortDesc)
	case !c.CanCarry(it.Weight(), 1):
		out.add("%s: you can't carry that much weight.", it.ShortDesc)
	case !it.Wear.Has(inventory.WearTake):
		out.add("%s: you can't take that!", it.ShortDesc)
	default:
		return true
	}
	return false
}

// performGet moves it into the actor's inventory. cont is the container it
// comes from, or nil for the room floor. Items taken out of a carried
// container add no weight, so only the count is checked for them.
func (e *Env) performGet(out *reply, sess *session.PlayerSession, c *inventory.Carrier, it, cont *inventory.Item) {
	fromCarried := cont != nil && e.carriedBy(cont, sess.UID)
	if fromCarried {
		if !e.Immortal(sess) && c.CarryCount() >= c.MaxCount {
			out.add("%s: you can't hold any more items.", it.ShortDesc)
			return
		}
	} else if !e.canTake(out, sess, c, it) {
		return
	}

	if _, err := e.Items.Move(inventory.MoveRequest{
		Op: inventory.OpGet, Item: it.ID, Actor: sess.UID, Dest: inventory.ToInventory(sess.UID),
	}); err != nil {
		e.moveFailed(out, err, it)
		return
	}
	if cont != nil {
		out.add("You get %s from %s.", it.ShortDesc, cont.ShortDesc)
		e.toRoom(sess, "%s gets %s from %s.", sess.CharName, it.ShortDesc, cont.ShortDesc)
	} else {
		out.add("You get %s.", it.ShortDesc)
		e.toRoom(sess, "%s gets %s.", sess.CharName, it.ShortDesc)
	}
	e.checkMoney(out, sess, it)
}

// checkMoney converts a money item just picked up into gold.
func (e *Env) checkMoney(out *reply, sess *session.PlayerSession, it *inventory.Item) {
	if it.Type != inventory.TypeMoney || it.Values[inventory.MoneyAmount] <= 0 {
		return
	}
	amount := it.Values[inventory.MoneyAmount]
	if err := e.Items.Extract(it.ID); err != nil {
		e.moveFailed(out, err, it)
		return
	}
	if amount > 1 {
		out.add("There were %d coins.", amount)
	}
	sess.Gold += amount
}

// carriedBy reports whether the outermost holder of it is the carrier uid.
func (e *Env) carriedBy(it *inventory.Item, uid string) bool {
	for it != nil {
		loc := it.Location()
		switch loc.Kind {
		case inventory.LocInventory, inventory.LocEquipment:
			return loc.Carrier == uid
		case inventory.LocContainer:
			it = e.item(loc.Container)
		default:
			return false
		}
	}
	return false
}
