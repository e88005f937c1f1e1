package inventory

import (
	"fmt"
	"strings"
)

// NumValues is the length of an item's polymorphic value array.
const NumValues = 4

// WearFlag is a bit set of places an item can be worn, plus TAKE.
type WearFlag uint32

// Wear capability bits.
const (
	WearTake WearFlag = 1 << iota
	WearFinger
	WearNeck
	WearBody
	WearHead
	WearLegs
	WearFeet
	WearHands
	WearArms
	WearShield
	WearAbout
	WearWaist
	WearWrist
	WearWield
	WearHold
	WearShoulders
	WearAnkle
	WearFace
)

var wearFlagNames = []struct {
	name string
	flag WearFlag
}{
	{"take", WearTake},
	{"finger", WearFinger},
	{"neck", WearNeck},
	{"body", WearBody},
	{"head", WearHead},
	{"legs", WearLegs},
	{"feet", WearFeet},
	{"hands", WearHands},
	{"arms", WearArms},
	{"shield", WearShield},
	{"about", WearAbout},
	{"waist", WearWaist},
	{"wrist", WearWrist},
	{"wield", WearWield},
	{"hold", WearHold},
	{"shoulders", WearShoulders},
	{"ankle", WearAnkle},
	{"face", WearFace},
}

// Has reports whether every bit in f is set.
func (w WearFlag) Has(f WearFlag) bool { return w&f == f }

// String renders the set bits as a space-separated list.
func (w WearFlag) String() string {
	var parts []string
	for _, n := range wearFlagNames {
		if w.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

// ParseWearFlags converts YAML names into a WearFlag.
//
// Postcondition: returns an error naming the first unknown entry.
func ParseWearFlags(names []string) (WearFlag, error) {
	var out WearFlag
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		found := false
		for _, n := range wearFlagNames {
			if n.name == name {
				out |= n.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown wear flag %q", raw)
		}
	}
	return out, nil
}

// ExtraFlag is a bit set of item properties.
type ExtraFlag uint32

// Extra property bits.
const (
	ExtraGlow ExtraFlag = 1 << iota
	ExtraHum
	ExtraNoRent
	ExtraNoDonate
	ExtraInvisible
	ExtraMagic
	ExtraNoDrop
	ExtraBless
	ExtraNoSell
	ExtraNoJunk
)

var extraFlagNames = []struct {
	name string
	flag ExtraFlag
}{
	{"glow", ExtraGlow},
	{"hum", ExtraHum},
	{"no_rent", ExtraNoRent},
	{"no_donate", ExtraNoDonate},
	{"invisible", ExtraInvisible},
	{"magic", ExtraMagic},
	{"no_drop", ExtraNoDrop},
	{"bless", ExtraBless},
	{"no_sell", ExtraNoSell},
	{"no_junk", ExtraNoJunk},
}

// Has reports whether every bit in f is set.
func (e ExtraFlag) Has(f ExtraFlag) bool { return e&f == f }

// ParseExtraFlags converts YAML names into an ExtraFlag.
func ParseExtraFlags(names []string) (ExtraFlag, error) {
	var out ExtraFlag
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		found := false
		for _, n := range extraFlagNames {
			if n.name == name {
				out |= n.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown extra flag %q", raw)
		}
	}
	return out, nil
}
