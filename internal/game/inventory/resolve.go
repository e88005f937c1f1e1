package inventory

import "strings"

// wearScan is the order in which ResolveWearPosition inspects capabilities.
var wearScan = []WearPosition{
	WearFingerR,
	WearNeck1,
	WearOnBody,
	WearOnHead,
	WearOnLegs,
	WearOnFeet,
	WearOnHands,
	WearOnArms,
	WearOnShield,
	WearOnAbout,
	WearOnWaist,
	WearWristR,
	WearOnShoulders,
	WearAnkleR,
	WearOnFace,
}

// ResolveWearPosition picks the slot an item is worn in when the player names
// none. Every capability is scanned and the last match wins, so an item that
// can go on both finger and face resolves to face.
//
// Postcondition: returns a primary slot, or NoPosition when the item is not wearable.
func ResolveWearPosition(it *Item) WearPosition {
	found := NoPosition
	for _, pos := range wearScan {
		if it.Wear.Has(pos.Flag()) {
			found = pos
		}
	}
	return found
}

// FreeSlot returns pos if it is empty, else the secondary slot of a pair if
// that is empty.
//
// Postcondition: returns ErrSlotOccupied when no candidate is free.
func FreeSlot(c *Carrier, pos WearPosition) (WearPosition, error) {
	if !pos.Valid() {
		return NoPosition, ErrInvalidOperation
	}
	if c.equipment[pos] == "" {
		return pos, nil
	}
	if sec := pos.Secondary(); sec.Valid() && c.equipment[sec] == "" {
		return sec, nil
	}
	return NoPosition, ErrSlotOccupied
}

// WearPositionByKeyword maps a player-supplied body part to its primary slot.
// Abbreviations are accepted; the first keyword in slot order wins.
//
// Postcondition: returns NoPosition when word matches nothing.
func WearPositionByKeyword(word string) WearPosition {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return NoPosition
	}
	for pos := WearPosition(0); pos < NumWearPositions; pos++ {
		kw := positions[pos].keyword
		// Secondary slots are reached only through fallback, and light and
		// wield have their own commands.
		if strings.HasPrefix(kw, "!") || pos == WearLight || pos == WearWielded || pos == WearHeld {
			continue
		}
		if strings.HasPrefix(kw, word) {
			return pos
		}
	}
	return NoPosition
}
