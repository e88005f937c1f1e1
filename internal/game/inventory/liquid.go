package inventory

import (
	"fmt"
	"strings"
)

// Liquid identifies the contents of a drink container; it is stored in
// Values[DrinkLiquid].
type Liquid int

// Liquids. LiquidNone marks an empty container.
const (
	LiquidNone Liquid = iota
	LiquidWater
	LiquidBeer
	LiquidWine
	LiquidAle
	LiquidDarkAle
	LiquidWhisky
	LiquidLemonade
	LiquidFirebreather
	LiquidLocalSpecial
	LiquidSlimeMold
	LiquidMilk
	LiquidTea
	LiquidCoffee
	LiquidBlood
	LiquidSaltWater
	LiquidClearWater
)

// LiquidInfo describes a liquid and its effect per unit drunk.
type LiquidInfo struct {
	// Keyword is prefixed to a filled container's name.
	Keyword string
	Name    string
	Color   string
	Drunk   int
	Hunger  int
	Thirst  int
}

var liquids = map[Liquid]LiquidInfo{
	LiquidWater:        {"water", "water", "clear", 0, 1, 10},
	LiquidBeer:         {"beer", "beer", "brown", 3, 2, 5},
	LiquidWine:         {"wine", "wine", "clear", 5, 2, 5},
	LiquidAle:          {"ale", "ale", "brown", 2, 2, 5},
	LiquidDarkAle:      {"ale", "dark ale", "dark", 1, 2, 5},
	LiquidWhisky:       {"whisky", "whisky", "golden", 6, 1, 4},
	LiquidLemonade:     {"lemonade", "lemonade", "red", 0, 1, 8},
	LiquidFirebreather: {"firebreather", "firebreather", "green", 10, 0, 0},
	LiquidLocalSpecial: {"local", "local speciality", "clear", 3, 3, 3},
	LiquidSlimeMold:    {"juice", "slime mold juice", "light green", 0, 4, -8},
	LiquidMilk:         {"milk", "milk", "white", 0, 3, 6},
	LiquidTea:          {"tea", "tea", "brown", 0, 1, 6},
	LiquidCoffee:       {"coffee", "coffee", "black", 0, 1, 6},
	LiquidBlood:        {"blood", "blood", "red", 0, 2, -1},
	LiquidSaltWater:    {"salt", "salt water", "clear", 0, 1, -2},
	LiquidClearWater:   {"water", "clear water", "crystal clear", 0, 0, 13},
}

// Info returns the table entry for l.
func (l Liquid) Info() (LiquidInfo, bool) {
	info, ok := liquids[l]
	return info, ok
}

// String returns the display name of l.
func (l Liquid) String() string {
	if info, ok := liquids[l]; ok {
		return info.Name
	}
	return "nothing"
}

// LiquidByKeyword looks a liquid up by display name, e.g. "dark ale".
func LiquidByKeyword(name string) (Liquid, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for l := LiquidWater; l <= LiquidClearWater; l++ {
		if liquids[l].Name == name {
			return l, true
		}
	}
	return LiquidNone, false
}

func composeLiquidName(l Liquid, base string) string {
	info, ok := liquids[l]
	if !ok {
		return base
	}
	return info.Keyword + " " + base
}

// Pour is the result of a Transfer.
type Pour struct {
	Source  ItemID
	Dest    ItemID
	Amount  int
	Liquid  Liquid
	Tainted bool
	// SourceEmptied reports that the source reached zero volume and was reset.
	SourceEmptied bool
}

// Drink is the result of a Drain.
type Drink struct {
	Item    ItemID
	Amount  int
	Liquid  Liquid
	Tainted bool
	Emptied bool
}

// Transfer moves liquid from src into dst, as pour and fill do.
// A requested amount <= 0 means as much as fits.
//
// Precondition: src is a drink container or fountain; dst is a drink container.
// Postcondition: the amount moved is min(requested, src volume, dst free
// capacity); dst is tainted if either side was; both weights change by exactly
// the amount moved; a source left empty is reset to its base name.
// On error nothing changed.
func (m *Manager) Transfer(src, dst ItemID, requested int) (Pour, error) {
	from, ok := m.items[src]
	if !ok {
		return Pour{}, &MoveError{Op: OpPour, Item: src, Err: ErrUnknown}
	}
	to, ok := m.items[dst]
	if !ok {
		return Pour{}, &MoveError{Op: OpPour, Item: dst, Err: ErrUnknown}
	}
	if src == dst {
		return Pour{}, &MoveError{Op: OpPour, Item: src, Err: ErrSelfContainment}
	}
	if !from.IsLiquidContainer() || to.Type != TypeDrinkCon {
		return Pour{}, &MoveError{Op: OpPour, Item: src, Err: ErrNotLiquid}
	}
	vol := from.Values[DrinkVolume]
	if vol <= 0 {
		return Pour{}, &MoveError{Op: OpPour, Item: src, Err: ErrEmpty}
	}
	liquid := Liquid(from.Values[DrinkLiquid])
	if to.Values[DrinkVolume] > 0 && Liquid(to.Values[DrinkLiquid]) != liquid {
		return Pour{}, &MoveError{Op: OpPour, Item: dst, Err: fmt.Errorf("%w: %s into %s", ErrIncompatibleContents, liquid, Liquid(to.Values[DrinkLiquid]))}
	}
	free := to.Values[DrinkCapacity] - to.Values[DrinkVolume]
	if free <= 0 {
		return Pour{}, &MoveError{Op: OpPour, Item: dst, Err: ErrCapacityExceeded}
	}
	amount := vol
	if requested > 0 && requested < amount {
		amount = requested
	}
	if free < amount {
		amount = free
	}

	tainted := from.Values[DrinkTainted] != 0
	if to.Values[DrinkVolume] == 0 {
		to.Values[DrinkLiquid] = int(liquid)
		to.Name = composeLiquidName(liquid, to.BaseName)
	}
	to.Values[DrinkVolume] += amount
	if tainted {
		to.Values[DrinkTainted] = 1
	}
	m.propagate(to, amount)

	from.Values[DrinkVolume] -= amount
	m.propagate(from, -amount)
	emptied := from.Values[DrinkVolume] == 0
	if emptied {
		resetLiquid(from)
	}

	return Pour{
		Source:        src,
		Dest:          dst,
		Amount:        amount,
		Liquid:        liquid,
		Tainted:       to.Values[DrinkTainted] != 0,
		SourceEmptied: emptied,
	}, nil
}

// Drain removes up to amount units from a liquid container, as drinking does.
//
// Postcondition: volume and weight both drop by the amount drained; a
// container left empty is reset. Drink reports the taint before any reset.
func (m *Manager) Drain(id ItemID, amount int) (Drink, error) {
	it, ok := m.items[id]
	if !ok {
		return Drink{}, &MoveError{Op: OpDrain, Item: id, Err: ErrUnknown}
	}
	if !it.IsLiquidContainer() {
		return Drink{}, &MoveError{Op: OpDrain, Item: id, Err: ErrNotLiquid}
	}
	vol := it.Values[DrinkVolume]
	if vol <= 0 {
		return Drink{}, &MoveError{Op: OpDrain, Item: id, Err: ErrEmpty}
	}
	if amount <= 0 || amount > vol {
		amount = vol
	}
	d := Drink{
		Item:    id,
		Amount:  amount,
		Liquid:  Liquid(it.Values[DrinkLiquid]),
		Tainted: it.Values[DrinkTainted] != 0,
	}
	it.Values[DrinkVolume] -= amount
	m.propagate(it, -amount)
	if it.Values[DrinkVolume] == 0 {
		resetLiquid(it)
		d.Emptied = true
	}
	return d, nil
}

// Empty pours out the whole contents of a drink container.
//
// Postcondition: the container is empty and reset; returns the amount removed.
func (m *Manager) Empty(id ItemID) (int, error) {
	d, err := m.Drain(id, 0)
	if err != nil {
		return 0, err
	}
	return d.Amount, nil
}

func resetLiquid(it *Item) {
	it.Values[DrinkVolume] = 0
	it.Values[DrinkLiquid] = int(LiquidNone)
	it.Values[DrinkTainted] = 0
	it.Name = it.BaseName
}
