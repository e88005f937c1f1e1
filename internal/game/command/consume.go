package command

import (
	"github.com/cory-johannsen/deltamud/internal/game/inventory"
	"github.com/cory-johannsen/deltamud/internal/game/session"
)

// HandleEat processes "eat <food>".
func HandleEat(e *Env, sess *session.PlayerSession, args []string) string {
	return e.eat(sess, args, false)
}

// HandleTaste processes "taste <food>". Tasting a drink container sips from it.
func HandleTaste(e *Env, sess *session.PlayerSession, args []string) string {
	return e.eat(sess, args, true)
}

// eat implements eat and taste.
//
// Postcondition: eaten food is destroyed; tasted food loses one unit of
// fill and is destroyed when none is left.
func (e *Env) eat(sess *session.PlayerSession, args []string, taste bool) string {
	var out reply
	a1, _ := twoArgs(args)
	if a1 == "" {
		out.add("Eat what?")
		return out.String()
	}
	food := e.findIn(e.carrier(sess).Inventory(), a1)
	if food == nil {
		out.add("You don't seem to have %s %s.", an(a1), a1)
		return out.String()
	}
	if taste && food.IsLiquidContainer() {
		return e.drink(sess, args, true)
	}
	if food.Type != inventory.TypeFood && !e.Immortal(sess) {
		out.add("You can't eat THAT!")
		return out.String()
	}
	if sess.Cond.Full(session.Hunger) {
		out.add("You are too full to eat more!")
		return out.String()
	}

	amount := food.Values[inventory.FoodFill]
	if taste {
		amount = 1
		out.add("You nibble a little bit of %s.", food.ShortDesc)
		e.toRoom(sess, "%s tastes a little bit of %s.", sess.CharName, food.ShortDesc)
	} else {
		out.add("You eat %s.", food.ShortDesc)
		e.toRoom(sess, "%s eats %s.", sess.CharName, food.ShortDesc)
	}

	sess.Cond.Gain(session.Hunger, amount)
	if sess.Cond.Full(session.Hunger) {
		out.add("You are full.")
	}
	if food.Values[inventory.FoodPoisoned] != 0 && !e.Immortal(sess) {
		out.add("Oops, that tasted rather strange!")
		e.toRoom(sess, "%s coughs and utters some strange sounds.", sess.CharName)
		sess.Poisoned = true
	}

	if taste {
		food.Values[inventory.FoodFill]--
		if food.Values[inventory.FoodFill] > 0 {
			return out.String()
		}
		out.add("There's nothing left now.")
	}
	if err := e.Items.Extract(food.ID); err != nil {
		e.moveFailed(&out, err, food)
	}
	return out.String()
}

// HandleDrink processes "drink <container|fountain>".
func HandleDrink(e *Env, sess *session.PlayerSession, args []string) string {
	return e.drink(sess, args, false)
}

// HandleSip processes "sip <container|fountain>".
func HandleSip(e *Env, sess *session.PlayerSession, args []string) string {
	return e.drink(sess, args, true)
}

// drink implements drink and sip. Drink containers must be carried; fountains
// may be drunk from the floor.
//
// Postcondition: the container's volume and weight drop by the amount drunk,
// and each condition gains the liquid's effect times amount / 4.
func (e *Env) drink(sess *session.PlayerSession, args []string, sip bool) string {
	var out reply
	a1, _ := twoArgs(args)
	if a1 == "" {
		out.add("Drink from what?")
		return out.String()
	}
	src, onFloor := e.findNear(e.carrier(sess), sess.RoomID, a1)
	switch {
	case src == nil:
		out.add("You can't find it!")
		return out.String()
	case !src.IsLiquidContainer():
		out.add("You can't drink from that!")
		return out.String()
	case onFloor && src.Type == inventory.TypeDrinkCon:
		out.add("You have to be holding that to drink from it.")
		return out.String()
	case sess.Cond[session.Drunk] > 14 && sess.Cond[session.Thirst] > 0:
		out.add("You can't seem to get close enough to your mouth.")
		e.toRoom(sess, "%s tries to drink but misses their mouth!", sess.CharName)
		return out.String()
	case sess.Cond.Full(session.Hunger) && sess.Cond[session.Thirst] > 0:
		out.add("Your stomach can't contain anymore!")
		return out.String()
	case src.Values[inventory.DrinkVolume] <= 0:
		out.add("It's empty.")
		return out.String()
	}

	liquid := inventory.Liquid(src.Values[inventory.DrinkLiquid])
	aff, _ := liquid.Info()
	amount := 1
	if sip {
		out.add("It tastes like %s.", liquid)
		e.toRoom(sess, "%s sips from %s.", sess.CharName, src.ShortDesc)
	} else {
		out.add("You drink the %s.", liquid)
		e.toRoom(sess, "%s drinks %s from %s.", sess.CharName, liquid, src.ShortDesc)
		if aff.Drunk > 0 {
			amount = (25 - sess.Cond[session.Thirst]) / aff.Drunk
		} else {
			amount = e.Roller.Number(3, 10)
		}
	}
	if amount <= 0 {
		return out.String()
	}

	d, err := e.Items.Drain(src.ID, amount)
	if err != nil {
		e.moveFailed(&out, err, src)
		return out.String()
	}

	sess.Cond.Gain(session.Drunk, aff.Drunk*d.Amount/4)
	sess.Cond.Gain(session.Hunger, aff.Hunger*d.Amount/4)
	sess.Cond.Gain(session.Thirst, aff.Thirst*d.Amount/4)
	if sess.Cond.TooDrunk() {
		out.add("You feel drunk.")
	}
	if sess.Cond.Full(session.Thirst) {
		out.add("You don't feel thirsty any more.")
	}
	if sess.Cond.Full(session.Hunger) {
		out.add("You are full.")
	}
	if d.Tainted {
		out.add("Oops, it tasted rather strange!")
		e.toRoom(sess, "%s chokes and utters some strange sounds.", sess.CharName)
		sess.Poisoned = true
	}
	return out.String()
}
