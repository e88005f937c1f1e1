package command

import (
	"errors"
	"strings"

	"github.com/cory-johannsen/deltamud/internal/game/inventory"
	"github.com/cory-johannsen/deltamud/internal/game/session"
)

// wearText holds the messages for one primary slot.
type wearText struct {
	self    string // "You wear %s on your head."
	room    string // "%s wears %s on their head."
	already string
}

var wearMessages = map[inventory.WearPosition]wearText{
	inventory.WearLight: {"You light %s and hold it.", "%s lights %s and holds it.",
		"You're already using a light."},
	inventory.WearFingerR: {"You slide %s on to your ring finger.", "%s slides %s on to a ring finger.",
		"You're already wearing something on both of your ring fingers."},
	inventory.WearNeck1: {"You wear %s around your neck.", "%s wears %s around their neck.",
		"You can't wear anything else around your neck."},
	inventory.WearOnBody: {"You wear %s on your body.", "%s wears %s on their body.",
		"You're already wearing something on your body."},
	inventory.WearOnHead: {"You wear %s on your head.", "%s wears %s on their head.",
		"You're already wearing something on your head."},
	inventory.WearOnLegs: {"You put %s on your legs.", "%s puts %s on their legs.",
		"You're already wearing something on your legs."},
	inventory.WearOnFeet: {"You wear %s on your feet.", "%s wears %s on their feet.",
		"You're already wearing something on your feet."},
	inventory.WearOnHands: {"You put %s on your hands.", "%s puts %s on their hands.",
		"You're already wearing something on your hands."},
	inventory.WearOnArms: {"You wear %s on your arms.", "%s wears %s on their arms.",
		"You're already wearing something on your arms."},
	inventory.WearOnShield: {"You start to use %s as a shield.", "%s straps %s around their arm as a shield.",
		"You're already using a shield."},
	inventory.WearOnAbout: {"You wear %s around your body.", "%s wears %s about their body.",
		"You're already wearing something about your body."},
	inventory.WearOnWaist: {"You wear %s around your waist.", "%s wears %s around their waist.",
		"You already have something around your waist."},
	inventory.WearWristR: {"You put %s on around your wrist.", "%s puts %s on around a wrist.",
		"You're already wearing something around both of your wrists."},
	inventory.WearWielded: {"You wield %s.", "%s wields %s.",
		"You're already wielding a weapon."},
	inventory.WearHeld: {"You grab %s.", "%s grabs %s.",
		"You're already holding something."},
	inventory.WearOnShoulders: {"You wear %s on your shoulders.", "%s wears %s on their shoulders.",
		"You're already wearing something on your shoulders."},
	inventory.WearAnkleR: {"You put %s on around your ankle.", "%s puts %s on around an ankle.",
		"You're already wearing something around both of your ankles."},
	inventory.WearOnFace: {"You wear %s on your face.", "%s wears %s on their face.",
		"You're already wearing something on your face."},
}

// HandleWear processes "wear <obj> [<body part>]" and "wear all|all.<obj>".
//
// Precondition: sess has a registered carrier.
// Postcondition: each item worn moved from inventory to an equipment slot.
func HandleWear(e *Env, sess *session.PlayerSession, args []string) string {
	var out reply
	c := e.carrier(sess)
	a1, a2 := twoArgs(args)
	if a1 == "" {
		out.add("Wear what?")
		return out.String()
	}
	mode, word := splitDots(a1)

	if mode != findIndiv {
		if a2 != "" {
			out.add("You can't specify the same body location for more than one item!")
			return out.String()
		}
		if mode == findAllDot && word == "" {
			out.add("Wear all of what?")
			return out.String()
		}
		worn := 0
		for _, it := range e.matchAll(c.Inventory(), word) {
			pos := inventory.ResolveWearPosition(it)
			if pos == inventory.NoPosition {
				if mode == findAllDot {
					out.add("You can't wear %s.", it.ShortDesc)
				}
				continue
			}
			worn++
			e.performWear(&out, sess, c, it, pos)
		}
		if worn == 0 && len(out.lines) == 0 {
			if mode == findAll {
				out.add("You don't seem to have anything wearable.")
			} else {
				out.add("You don't seem to have any %ss.", word)
			}
		}
		return out.String()
	}

	it := e.findIn(c.Inventory(), word)
	if it == nil {
		out.add("You don't seem to have %s %s.", an(word), word)
		return out.String()
	}
	pos := inventory.ResolveWearPosition(it)
	if a2 != "" {
		if pos = inventory.WearPositionByKeyword(a2); pos == inventory.NoPosition {
			out.add("'%s'?  What part of your body is THAT?", a2)
			return out.String()
		}
	}
	if pos == inventory.NoPosition {
		out.add("You can't wear %s.", it.ShortDesc)
		return out.String()
	}
	e.performWear(&out, sess, c, it, pos)
	return out.String()
}

// HandleWield processes "wield <obj>".
func HandleWield(e *Env, sess *session.PlayerSession, args []string) string {
	var out reply
	c := e.carrier(sess)
	a1, _ := twoArgs(args)
	if a1 == "" {
		out.add("Wield what?")
		return out.String()
	}
	it := e.findIn(c.Inventory(), a1)
	switch {
	case it == nil:
		out.add("You don't seem to have %s %s.", an(a1), a1)
	case !it.Wear.Has(inventory.WearWield):
		out.add("You can't wield that.")
	default:
		e.performWear(&out, sess, c, it, inventory.WearWielded)
	}
	return out.String()
}

// HandleHold processes "hold <obj>". Lights are held in the light slot.
func HandleHold(e *Env, sess *session.PlayerSession, args []string) string {
	var out reply
	c := e.carrier(sess)
	a1, _ := twoArgs(args)
	if a1 == "" {
		out.add("Hold what?")
		return out.String()
	}
	it := e.findIn(c.Inventory(), a1)
	if it == nil {
		out.add("You don't seem to have %s %s.", an(a1), a1)
		return out.String()
	}
	if it.Type == inventory.TypeLight {
		e.performWear(&out, sess, c, it, inventory.WearLight)
		return out.String()
	}
	switch it.Type {
	case inventory.TypeWand, inventory.TypeStaff, inventory.TypeScroll, inventory.TypePotion:
	default:
		if !it.Wear.Has(inventory.WearHold) {
			out.add("You can't hold that.")
			return out.String()
		}
	}
	e.performWear(&out, sess, c, it, inventory.WearHeld)
	return out.String()
}

// performWear equips it at pos, falling back to the second slot of a pair.
func (e *Env) performWear(out *reply, sess *session.PlayerSession, c *inventory.Carrier, it *inventory.Item, pos inventory.WearPosition) {
	msg, ok := wearMessages[pos]
	if !ok || !it.Wear.Has(pos.Flag()) {
		out.add("You can't wear %s there.", it.ShortDesc)
		return
	}
	if _, err := inventory.FreeSlot(c, pos); err != nil {
		out.add("%s", msg.already)
		return
	}
	if _, err := e.Items.Equip(sess.UID, it.ID, pos); err != nil {
		if errors.Is(err, inventory.ErrSlotOccupied) {
			out.add("%s", msg.already)
			return
		}
		e.moveFailed(out, err, it)
		return
	}
	out.add(msg.self, it.ShortDesc)
	e.toRoom(sess, msg.room, sess.CharName, it.ShortDesc)
}

// HandleRemove processes "remove <obj>|all|all.<obj>".
//
// Postcondition: each item removed is back in the actor's inventory.
func HandleRemove(e *Env, sess *session.PlayerSession, args []string) string {
	var out reply
	c := e.carrier(sess)
	a1, _ := twoArgs(args)
	if a1 == "" {
		out.add("Remove what?")
		return out.String()
	}
	mode, word := splitDots(a1)

	if mode == findIndiv {
		it, pos := e.findEquipped(c, word)
		if it == nil {
			out.add("You don't seem to be using %s %s.", an(word), word)
			return out.String()
		}
		e.performRemove(&out, sess, c, it, pos)
		return out.String()
	}
	if mode == findAllDot && word == "" {
		out.add("Remove all of what?")
		return out.String()
	}

	found := false
	for pos := inventory.WearPosition(0); pos < inventory.NumWearPositions; pos++ {
		it := e.item(c.Equipped(pos))
		if it == nil || (word != "" && !it.Matches(word)) {
			continue
		}
		found = true
		e.performRemove(&out, sess, c, it, pos)
	}
	if !found {
		if mode == findAll {
			out.add("You're not using anything.")
		} else {
			out.add("You don't seem to be using any %ss.", strings.ToLower(word))
		}
	}
	return out.String()
}

// performRemove moves the item worn at pos back to inventory. Removing an
// item does not change the carried count, so the check only stops a mortal
// already over the limit.
func (e *Env) performRemove(out *reply, sess *session.PlayerSession, c *inventory.Carrier, it *inventory.Item, pos inventory.WearPosition) {
	if !e.Immortal(sess) && c.CarryCount() > c.MaxCount {
		out.add("%s: you can't carry that many items!", it.ShortDesc)
		return
	}
	if _, err := e.Items.Unequip(sess.UID, pos); err != nil {
		e.moveFailed(out, err, it)
		return
	}
	out.add("You stop using %s.", it.ShortDesc)
	e.toRoom(sess, "%s stops using %s.", sess.CharName, it.ShortDesc)
}
