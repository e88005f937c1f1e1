package command

import (
	"strconv"
	"strings"

	"github.com/cory-johannsen/deltamud/internal/game/inventory"
)

// dotMode is how an object argument selects items.
type dotMode int

const (
	findIndiv  dotMode = iota // "sword" or "2.sword"
	findAll                   // "all"
	findAllDot                // "all.sword"
)

// splitDots classifies arg and returns the keyword it names, if any.
func splitDots(arg string) (dotMode, string) {
	lower := strings.ToLower(arg)
	switch {
	case lower == "all":
		return findAll, ""
	case strings.HasPrefix(lower, "all."):
		return findAllDot, arg[len("all."):]
	}
	return findIndiv, arg
}

// splitNumber parses "3.sword" into (3, "sword"). A bare keyword is (1, keyword).
func splitNumber(arg string) (int, string) {
	dot := strings.IndexByte(arg, '.')
	if dot <= 0 {
		return 1, arg
	}
	n, err := strconv.Atoi(arg[:dot])
	if err != nil || n < 1 {
		return 1, arg
	}
	return n, arg[dot+1:]
}

// findIn returns the item in ids named by arg, honoring an "n." prefix.
func (e *Env) findIn(ids []inventory.ItemID, arg string) *inventory.Item {
	n, word := splitNumber(arg)
	for _, id := range ids {
		it := e.item(id)
		if it == nil || !it.Matches(word) {
			continue
		}
		n--
		if n == 0 {
			return it
		}
	}
	return nil
}

// matchAll returns the items in ids matching word; an empty word matches all.
// The result is a snapshot, so callers may move items while ranging over it.
func (e *Env) matchAll(ids []inventory.ItemID, word string) []*inventory.Item {
	var out []*inventory.Item
	for _, id := range ids {
		it := e.item(id)
		if it == nil {
			continue
		}
		if word == "" || it.Matches(word) {
			out = append(out, it)
		}
	}
	return out
}

// findEquipped returns the worn item named by arg and its slot.
func (e *Env) findEquipped(c *inventory.Carrier, arg string) (*inventory.Item, inventory.WearPosition) {
	n, word := splitNumber(arg)
	for pos := inventory.WearPosition(0); pos < inventory.NumWearPositions; pos++ {
		it := e.item(c.Equipped(pos))
		if it == nil || !it.Matches(word) {
			continue
		}
		n--
		if n == 0 {
			return it, pos
		}
	}
	return nil, inventory.NoPosition
}

// findNear looks in the actor's inventory first and then the room floor.
// onFloor reports where the item was found.
func (e *Env) findNear(c *inventory.Carrier, room, arg string) (it *inventory.Item, onFloor bool) {
	if it := e.findIn(c.Inventory(), arg); it != nil {
		return it, false
	}
	if it := e.findIn(e.Items.RoomItems(room), arg); it != nil {
		return it, true
	}
	return nil, false
}

// twoArgs returns the first two words of args, skipping filler words.
func twoArgs(args []string) (string, string) {
	var words []string
	for _, a := range args {
		switch strings.ToLower(a) {
		case "in", "into", "from", "with", "at", "to", "the":
			continue
		}
		words = append(words, a)
	}
	var a1, a2 string
	if len(words) > 0 {
		a1 = words[0]
	}
	if len(words) > 1 {
		a2 = words[1]
	}
	return a1, a2
}

// coinAmount parses "<n> coins" at the start of args.
func coinAmount(args []string) (int, bool) {
	if len(args) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, false
	}
	switch strings.ToLower(args[1]) {
	case "coin", "coins":
		return n, true
	}
	return 0, false
}
