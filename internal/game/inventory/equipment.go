package inventory

import "strings"

// WearPosition indexes a character's equipment array.
type WearPosition int

// Equipment slots, in display order.
const (
	WearLight WearPosition = iota
	WearFingerR
	WearFingerL
	WearNeck1
	WearNeck2
	WearOnBody
	WearOnHead
	WearOnLegs
	WearOnFeet
	WearOnHands
	WearOnArms
	WearOnShield
	WearOnAbout
	WearOnWaist
	WearWristR
	WearWristL
	WearWielded
	WearHeld
	WearOnShoulders
	WearAnkleR
	WearAnkleL
	WearOnFace

	// NumWearPositions is the size of the equipment array.
	NumWearPositions
)

// NoPosition is returned when no slot applies.
const NoPosition WearPosition = -1

type positionInfo struct {
	flag    WearFlag
	keyword string
	display string
	// secondary is the fallback slot for the first index of a pair.
	secondary WearPosition
}

var positions = [NumWearPositions]positionInfo{
	WearLight:       {WearTake, "light", "<used as light>", NoPosition},
	WearFingerR:     {WearFinger, "finger", "<worn on finger>", WearFingerL},
	WearFingerL:     {WearFinger, "!finger", "<worn on finger>", NoPosition},
	WearNeck1:       {WearNeck, "neck", "<worn around neck>", WearNeck2},
	WearNeck2:       {WearNeck, "!neck", "<worn around neck>", NoPosition},
	WearOnBody:      {WearBody, "body", "<worn on body>", NoPosition},
	WearOnHead:      {WearHead, "head", "<worn on head>", NoPosition},
	WearOnLegs:      {WearLegs, "legs", "<worn on legs>", NoPosition},
	WearOnFeet:      {WearFeet, "feet", "<worn on feet>", NoPosition},
	WearOnHands:     {WearHands, "hands", "<worn on hands>", NoPosition},
	WearOnArms:      {WearArms, "arms", "<worn on arms>", NoPosition},
	WearOnShield:    {WearShield, "shield", "<worn as shield>", NoPosition},
	WearOnAbout:     {WearAbout, "about", "<worn about body>", NoPosition},
	WearOnWaist:     {WearWaist, "waist", "<worn about waist>", NoPosition},
	WearWristR:      {WearWrist, "wrist", "<worn around wrist>", WearWristL},
	WearWristL:      {WearWrist, "!wrist", "<worn around wrist>", NoPosition},
	WearWielded:     {WearWield, "wield", "<wielded>", NoPosition},
	WearHeld:        {WearTake, "hold", "<held>", NoPosition},
	WearOnShoulders: {WearShoulders, "shoulders", "<worn on shoulders>", NoPosition},
	WearAnkleR:      {WearAnkle, "ankle", "<worn around ankle>", WearAnkleL},
	WearAnkleL:      {WearAnkle, "!ankle", "<worn around ankle>", NoPosition},
	WearOnFace:      {WearFace, "face", "<worn on face>", NoPosition},
}

// Valid reports whether p indexes the equipment array.
func (p WearPosition) Valid() bool { return p >= 0 && p < NumWearPositions }

// Flag returns the capability an item needs to occupy p.
func (p WearPosition) Flag() WearFlag {
	if !p.Valid() {
		return 0
	}
	return positions[p].flag
}

// Display returns the equipment-list label for p.
func (p WearPosition) Display() string {
	if !p.Valid() {
		return "<nowhere>"
	}
	return positions[p].display
}

// String returns the keyword of p.
func (p WearPosition) String() string {
	if !p.Valid() {
		return "none"
	}
	return strings.TrimPrefix(positions[p].keyword, "!")
}

// Secondary returns the fallback slot of a paired primary slot, or NoPosition.
func (p WearPosition) Secondary() WearPosition {
	if !p.Valid() {
		return NoPosition
	}
	return positions[p].secondary
}
