package inventory

import (
	"strings"

	"github.com/google/uuid"
)

// ItemID is the stable handle of a live item.
type ItemID string

// NewItemID returns a fresh random ItemID.
//
// Postcondition: the returned id is non-empty and unique with overwhelming probability.
func NewItemID() ItemID {
	return ItemID(uuid.New().String())
}

// Value array indices by item type.
const (
	// Containers.
	ContainerCapacity = 0
	ContainerFlags    = 1
	ContainerKey      = 2

	// Drink containers and fountains.
	DrinkCapacity = 0
	DrinkVolume   = 1
	DrinkLiquid   = 2
	DrinkTainted  = 3

	// Food.
	FoodFill     = 0
	FoodPoisoned = 3

	// Money.
	MoneyAmount = 0
)

// Container flag bits stored in Values[ContainerFlags].
const (
	ContCloseable = 1 << iota
	ContPickproof
	ContClosed
	ContLocked
)

// Item is a live object in the world. Location state is owned by the Manager
// and is only changed through it.
type Item struct {
	ID    ItemID
	DefID string
	// Name holds the keywords used to address the item; BaseName is the
	// prototype keyword list before any liquid prefix was composed onto it.
	Name      string
	BaseName  string
	ShortDesc string
	LongDesc  string
	Type      ItemType
	Wear      WearFlag
	Extra     ExtraFlag
	Cost      int
	Values    [NumValues]int
	// Condition counts remaining repair slots; MaxCondition 0 means indestructible.
	Condition    int
	MaxCondition int

	// weight includes the weight of everything inside the item.
	weight   int
	loc      Location
	contents []ItemID
}

// Weight returns the item's weight including its contents.
func (it *Item) Weight() int { return it.weight }

// Location returns where the item currently resides.
func (it *Item) Location() Location { return it.loc }

// IsContainer reports whether the item can hold other items.
func (it *Item) IsContainer() bool { return it.Type == TypeContainer }

// IsLiquidContainer reports whether the item holds a liquid volume.
func (it *Item) IsLiquidContainer() bool {
	return it.Type == TypeDrinkCon || it.Type == TypeFountain
}

// Closed reports whether a container is closed.
func (it *Item) Closed() bool {
	return it.IsContainer() && it.Values[ContainerFlags]&ContClosed != 0
}

// Closeable reports whether a container can be opened and closed.
func (it *Item) Closeable() bool {
	return it.IsContainer() && it.Values[ContainerFlags]&ContCloseable != 0
}

// SetClosed opens or closes a closeable container.
//
// Postcondition: returns ErrNotContainer for non-containers and
// ErrInvalidOperation for containers that cannot be closed.
func (it *Item) SetClosed(closed bool) error {
	if !it.IsContainer() {
		return ErrNotContainer
	}
	if !it.Closeable() {
		return ErrInvalidOperation
	}
	if closed {
		it.Values[ContainerFlags] |= ContClosed
	} else {
		it.Values[ContainerFlags] &^= ContClosed
	}
	return nil
}

// Matches reports whether word is a prefix of any of the item's keywords.
func (it *Item) Matches(word string) bool {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return false
	}
	for _, kw := range strings.Fields(strings.ToLower(it.Name)) {
		if strings.HasPrefix(kw, word) {
			return true
		}
	}
	return false
}

// newItem instantiates d with a fresh id.
func newItem(d *ItemDef) *Item {
	wear, _ := ParseWearFlags(d.Wear)
	extra, _ := ParseExtraFlags(d.Extra)
	it := &Item{
		ID:           NewItemID(),
		DefID:        d.ID,
		Name:         d.Keywords,
		BaseName:     d.Keywords,
		ShortDesc:    d.ShortDesc,
		LongDesc:     d.LongDesc,
		Type:         d.Type,
		Wear:         wear,
		Extra:        extra,
		Cost:         d.Cost,
		Condition:    d.Condition,
		MaxCondition: d.Condition,
		weight:       d.Weight,
	}
	copy(it.Values[:], d.Values)
	if !it.IsLiquidContainer() {
		return it
	}
	if l, ok := LiquidByKeyword(d.Liquid); ok {
		it.Values[DrinkLiquid] = int(l)
	}
	if it.Values[DrinkVolume] > 0 {
		it.Name = composeLiquidName(Liquid(it.Values[DrinkLiquid]), it.BaseName)
	} else {
		resetLiquid(it)
	}
	return it
}
