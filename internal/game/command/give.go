package command

import (
	"github.com/cory-johannsen/deltamud/internal/game/inventory"
	"github.com/cory-johannsen/deltamud/internal/game/session"
)

// HandleGive processes "give <obj>|all|all.<obj> <player>" and
// "give <n> coins <player>".
//
// Precondition: sess has a registered carrier.
// Postcondition: each item given is in the victim's inventory.
func HandleGive(e *Env, sess *session.PlayerSession, args []string) string {
	var out reply

	if amount, ok := coinAmount(args); ok {
		_, name := twoArgs(args[1:])
		vict := e.giveTarget(&out, sess, name)
		if vict != nil {
			e.giveCoins(&out, sess, vict, amount)
		}
		return out.String()
	}

	a1, a2 := twoArgs(args)
	if a1 == "" {
		out.add("Give what to who?")
		return out.String()
	}
	vict := e.giveTarget(&out, sess, a2)
	if vict == nil {
		return out.String()
	}

	c := e.carrier(sess)
	mode, word := splitDots(a1)
	if mode == findIndiv {
		it := e.findIn(c.Inventory(), word)
		if it == nil {
			out.add("You don't seem to have %s %s.", an(word), word)
			return out.String()
		}
		e.performGive(&out, sess, vict, it)
		return out.String()
	}
	if mode == findAllDot && word == "" {
		out.add("All of what?")
		return out.String()
	}
	found := e.matchAll(c.Inventory(), word)
	if len(found) == 0 {
		out.add("You don't seem to be holding anything.")
	}
	for _, it := range found {
		e.performGive(&out, sess, vict, it)
	}
	return out.String()
}

// giveTarget resolves the recipient of a give.
func (e *Env) giveTarget(out *reply, sess *session.PlayerSession, name string) *session.PlayerSession {
	if name == "" {
		out.add("To who?")
		return nil
	}
	vict, ok := e.Sessions.FindInRoom(sess.RoomID, name)
	if !ok {
		out.add("No-one by that name here.")
		return nil
	}
	if vict.UID == sess.UID {
		out.add("What's the point of that?")
		return nil
	}
	return vict
}

func (e *Env) performGive(out *reply, sess, vict *session.PlayerSession, it *inventory.Item) {
	if it.Extra.Has(inventory.ExtraNoDrop) && !e.Immortal(sess) {
		out.add("You can't let go of %s!!  Yeech!", it.ShortDesc)
		return
	}
	if !e.Immortal(vict) {
		vc := e.carrier(vict)
		if vc.CarryCount() >= vc.MaxCount {
			out.add("%s seems to have their hands full.", vict.CharName)
			return
		}
		if !vc.CanCarry(it.Weight(), 1) {
			out.add("%s can't carry that much weight.", vict.CharName)
			return
		}
	}

	if _, err := e.Items.Move(inventory.MoveRequest{
		Op: inventory.OpGive, Item: it.ID, Actor: sess.UID, Dest: inventory.ToInventory(vict.UID),
	}); err != nil {
		e.moveFailed(out, err, it)
		return
	}
	out.add("You give %s to %s.", it.ShortDesc, vict.CharName)
	e.toPlayer(vict.UID, "%s gives you %s.", sess.CharName, it.ShortDesc)
	e.toRoomExcept(sess.RoomID, []string{sess.UID, vict.UID}, "%s gives %s to %s.", sess.CharName, it.ShortDesc, vict.CharName)
}

func (e *Env) giveCoins(out *reply, sess, vict *session.PlayerSession, amount int) {
	switch {
	case amount < 1:
		out.add("Heh heh heh.. we are jolly funny today, eh?")
		return
	case amount > sess.Gold && !e.Immortal(sess):
		out.add("You don't have that many coins!")
		return
	}
	if !e.Immortal(sess) {
		sess.Gold -= amount
	}
	vict.Gold += amount

	what := "some gold"
	if amount == 1 {
		what = "a gold coin"
	}
	out.add("You give %s to %s.", what, vict.CharName)
	e.toPlayer(vict.UID, "%s gives you %d gold %s.", sess.CharName, amount, coinWord(amount))
	e.toRoomExcept(sess.RoomID, []string{sess.UID, vict.UID}, "%s gives %s to %s.", sess.CharName, what, vict.CharName)
}

func coinWord(n int) string {
	if n == 1 {
		return "coin"
	}
	return "coins"
}
