package command

import (
	"github.com/cory-johannsen/deltamud/internal/game/inventory"
	"github.com/cory-johannsen/deltamud/internal/game/session"
)

// repairCost is the experience a mortal spends on each repair attempt.
const repairCost = 10000

// HandleSacrifice processes "sacrifice <obj>" for an empty item on the floor.
//
// Postcondition: the item is destroyed and a mortal gains one experience point.
func HandleSacrifice(e *Env, sess *session.PlayerSession, args []string) string {
	var out reply
	a1, _ := twoArgs(args)
	if a1 == "" {
		out.add("What do you want to sacrifice?")
		return out.String()
	}
	it := e.findIn(e.Items.RoomItems(sess.RoomID), a1)
	switch {
	case it == nil:
		out.add("You don't see such an object.")
		return out.String()
	case !it.Wear.Has(inventory.WearTake):
		out.add("You can't sacrifice that!")
		return out.String()
	case len(e.Items.Contents(it.ID)) > 0:
		out.add("It's not empty!")
		return out.String()
	}

	if err := e.Items.Extract(it.ID); err != nil {
		e.moveFailed(&out, err, it)
		return out.String()
	}
	out.add("You sacrifice %s.", it.ShortDesc)
	e.toRoom(sess, "%s sacrifices %s.", sess.CharName, it.ShortDesc)
	if !e.Immortal(sess) {
		out.add("You have been rewarded by the gods!")
		sess.Exp++
	}
	return out.String()
}

// HandleRepair processes "repair <obj>". Each attempt costs a mortal
// experience and permanently lowers the item's maximum condition; a failed
// roll damages the item further and an item past ruin crumbles.
//
// Precondition: the actor knows the repair skill.
func HandleRepair(e *Env, sess *session.PlayerSession, args []string) string {
	var out reply
	skill := sess.Skill("repair")
	if skill <= 0 {
		out.add("You don't know how to repair things!")
		return out.String()
	}
	a1, _ := twoArgs(args)
	if a1 == "" {
		out.add("Repair what?")
		return out.String()
	}
	it := e.findIn(e.carrier(sess).Inventory(), a1)
	switch {
	case it == nil:
		out.add("You don't seem to have %s %s.", an(a1), a1)
		return out.String()
	case it.Condition == 0 && it.MaxCondition == 0:
		out.add("%s seems to already be indestructible!", capitalize(it.ShortDesc))
		return out.String()
	case it.Condition == it.MaxCondition:
		out.add("%s seems to already be in perfect condition!", capitalize(it.ShortDesc))
		return out.String()
	}

	if !e.Immortal(sess) {
		if sess.Exp <= repairCost {
			out.add("You do not have enough experience to attempt to repair it!")
			return out.String()
		}
		sess.Exp -= repairCost
		out.add("Your repair attempt costs you 10,000 experience points.")
	}

	if it.Condition < 0 {
		if err := e.Items.Extract(it.ID); err != nil {
			e.moveFailed(&out, err, it)
			return out.String()
		}
		out.add("You completely ruin %s and it crumbles away!", it.ShortDesc)
		e.toRoom(sess, "%s tries to repair %s, but it crumbles away!", sess.CharName, it.ShortDesc)
		return out.String()
	}

	if !e.Roller.Check(skill) {
		it.Condition -= 2
		it.MaxCondition--
		out.add("Your clumsy attempt at repairing %s damages it even more!", it.ShortDesc)
		e.toRoom(sess, "%s tries to repair %s, but only makes it worse!", sess.CharName, it.ShortDesc)
		return out.String()
	}
	it.MaxCondition--
	it.Condition = it.MaxCondition
	out.add("You repair %s and it looks in excellent condition again!", it.ShortDesc)
	e.toRoom(sess, "%s repairs %s, making it as good as new again!", sess.CharName, it.ShortDesc)
	return out.String()
}
