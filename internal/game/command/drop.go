package command

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/deltamud/internal/game/inventory"
	"github.com/cory-johannsen/deltamud/internal/game/session"
)

// dropMode selects between the three ways of letting go of an item.
type dropMode struct {
	verb  string // "drop", "junk", "donate"
	verbs string // third person
	op    inventory.Op
}

var (
	modeDrop   = dropMode{verb: "drop", verbs: "drops", op: inventory.OpDrop}
	modeJunk   = dropMode{verb: "junk", verbs: "junks", op: inventory.OpExtract}
	modeDonate = dropMode{verb: "donate", verbs: "donates", op: inventory.OpDonate}
)

// HandleDrop processes "drop <obj>|all|all.<obj>|<n> coins".
func HandleDrop(e *Env, sess *session.PlayerSession, args []string) string {
	return e.letGo(sess, args, modeDrop)
}

// HandleJunk processes "junk <obj>". Junked items are destroyed and the gods
// pay a small reward to mortals.
func HandleJunk(e *Env, sess *session.PlayerSession, args []string) string {
	return e.letGo(sess, args, modeJunk)
}

// HandleDonate processes "donate <obj>". Donated items usually reappear in
// the donation room.
func HandleDonate(e *Env, sess *session.PlayerSession, args []string) string {
	if e.DonationRoom == "" {
		return "Sorry, you can't donate anything right now."
	}
	return e.letGo(sess, args, modeDonate)
}

// letGo implements drop, junk and donate.
//
// Postcondition: dropped items lie in the actor's room; donated items lie in
// the donation room or are destroyed; junked items are destroyed.
func (e *Env) letGo(sess *session.PlayerSession, args []string, m dropMode) string {
	var out reply
	c := e.carrier(sess)

	if amount, ok := coinAmount(args); ok {
		e.dropCoins(&out, sess, amount, m)
		return out.String()
	}

	a1, _ := twoArgs(args)
	if a1 == "" {
		out.add("What do you want to %s?", m.verb)
		return out.String()
	}
	mode, word := splitDots(a1)
	if mode != findIndiv && m != modeDrop {
		out.add("You can't %s all at once.", m.verb)
		return out.String()
	}

	reward := 0
	switch {
	case mode == findIndiv:
		it := e.findIn(c.Inventory(), word)
		if it == nil {
			out.add("You don't seem to have %s %s.", an(word), word)
			break
		}
		reward += e.performDrop(&out, sess, it, m)
	case mode == findAllDot && word == "":
		out.add("What do you want to %s all of?", m.verb)
	default:
		found := e.matchAll(c.Inventory(), word)
		if len(found) == 0 {
			if mode == findAll {
				out.add("You don't seem to be carrying anything.")
			} else {
				out.add("You don't seem to have any %ss.", word)
			}
		}
		for _, it := range found {
			reward += e.performDrop(&out, sess, it, m)
		}
	}

	if reward > 0 && !e.Immortal(sess) {
		out.add("You have been rewarded by the gods!")
		sess.Gold += reward
	}
	return out.String()
}

// performDrop lets go of one item and returns the gods' reward for it.
func (e *Env) performDrop(out *reply, sess *session.PlayerSession, it *inventory.Item, m dropMode) int {
	if it.Extra.Has(inventory.ExtraNoDrop) && !e.Immortal(sess) {
		out.add("You can't %s %s, it must be CURSED!", m.verb, it.ShortDesc)
		return 0
	}
	if m == modeJunk && it.Extra.Has(inventory.ExtraNoJunk) {
		out.add("You can't junk %s.", it.ShortDesc)
		return 0
	}

	switch m {
	case modeDrop:
		if _, err := e.Items.Move(inventory.MoveRequest{
			Op: inventory.OpDrop, Item: it.ID, Actor: sess.UID, Dest: inventory.ToRoom(sess.RoomID),
		}); err != nil {
			e.moveFailed(out, err, it)
			return 0
		}
		out.add("You drop %s.", it.ShortDesc)
		e.toRoom(sess, "%s drops %s.", sess.CharName, it.ShortDesc)
		return 0

	case modeDonate:
		if !it.Extra.Has(inventory.ExtraNoDonate) && e.Roller.Number(0, 2) != 0 {
			if _, err := e.Items.Move(inventory.MoveRequest{
				Op: inventory.OpDonate, Item: it.ID, Actor: sess.UID, Dest: inventory.ToRoom(e.DonationRoom),
			}); err != nil {
				e.moveFailed(out, err, it)
				return 0
			}
			out.add("You donate %s.", it.ShortDesc)
			e.toRoom(sess, "%s donates %s.", sess.CharName, it.ShortDesc)
			e.toRoomExcept(e.DonationRoom, nil, "%s suddenly appears in a puff of smoke!", capitalize(it.ShortDesc))
			return 0
		}
	}

	// Junked, or a donation the gods refused.
	reward := it.Cost >> 4
	if reward > 200 {
		reward = 200
	}
	if reward < 1 {
		reward = 1
	}
	if err := e.Items.Extract(it.ID); err != nil {
		e.moveFailed(out, err, it)
		return 0
	}
	out.add("You %s %s.  It vanishes in a puff of smoke!", m.verb, it.ShortDesc)
	e.toRoom(sess, "%s %s %s.  It vanishes in a puff of smoke!", sess.CharName, m.verbs, it.ShortDesc)
	return reward
}

// dropCoins turns amount gold into a money item. Junked coins are simply lost.
func (e *Env) dropCoins(out *reply, sess *session.PlayerSession, amount int, m dropMode) {
	switch {
	case amount < 1:
		out.add("Sorry, you can't do that.")
		return
	case amount > sess.Gold:
		out.add("You don't have that many coins!")
		return
	}

	if m == modeJunk {
		sess.Gold -= amount
		out.add("You junk some gold.  It vanishes in a puff of smoke!")
		e.toRoom(sess, "%s junks some gold.  It vanishes in a puff of smoke!", sess.CharName)
		return
	}

	room := sess.RoomID
	if m == modeDonate {
		room = e.DonationRoom
	}
	pile, err := e.Items.Spawn(e.MoneyItem)
	if err != nil {
		e.Logger.Error("spawning coins failed", zap.String("def", e.MoneyItem), zap.Error(err))
		out.add("Heh heh heh.. we are jolly funny today, eh?")
		return
	}
	pile.Values[inventory.MoneyAmount] = amount
	if err := e.Items.AttachToRoom(pile.ID, room); err != nil {
		_ = e.Items.Extract(pile.ID)
		e.moveFailed(out, err, pile)
		return
	}
	sess.Gold -= amount
	out.add("You %s some gold.", m.verb)
	e.toRoom(sess, "%s %s some gold.", sess.CharName, m.verbs)
	if m == modeDonate {
		e.toRoomExcept(room, nil, "Some gold suddenly appears in a puff of smoke!")
	}
}
