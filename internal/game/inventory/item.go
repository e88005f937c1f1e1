// Package inventory owns the rules for where an item may reside and the
// transitions between those locations. An item lies in a room, is carried in
// a character's inventory, sits inside a container item, or is worn in an
// equipment slot.
package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ItemType selects how an item's Values are interpreted.
type ItemType string

// Item types.
const (
	TypeLight     ItemType = "light"
	TypeScroll    ItemType = "scroll"
	TypeWand      ItemType = "wand"
	TypeStaff     ItemType = "staff"
	TypeWeapon    ItemType = "weapon"
	TypeTreasure  ItemType = "treasure"
	TypeArmor     ItemType = "armor"
	TypePotion    ItemType = "potion"
	TypeOther     ItemType = "other"
	TypeTrash     ItemType = "trash"
	TypeContainer ItemType = "container"
	TypeNote      ItemType = "note"
	TypeDrinkCon  ItemType = "drinkcon"
	TypeKey       ItemType = "key"
	TypeFood      ItemType = "food"
	TypeMoney     ItemType = "money"
	TypeFountain  ItemType = "fountain"
)

var validTypes = map[ItemType]bool{
	TypeLight: true, TypeScroll: true, TypeWand: true, TypeStaff: true,
	TypeWeapon: true, TypeTreasure: true, TypeArmor: true, TypePotion: true,
	TypeOther: true, TypeTrash: true, TypeContainer: true, TypeNote: true,
	TypeDrinkCon: true, TypeKey: true, TypeFood: true, TypeMoney: true,
	TypeFountain: true,
}

// ItemDef is the static prototype of an item loaded from YAML.
type ItemDef struct {
	ID        string   `yaml:"id"`
	Keywords  string   `yaml:"keywords"`
	ShortDesc string   `yaml:"short"`
	LongDesc  string   `yaml:"long"`
	Type      ItemType `yaml:"type"`
	Wear      []string `yaml:"wear"`
	Extra     []string `yaml:"extra"`
	Weight    int      `yaml:"weight"`
	Cost      int      `yaml:"cost"`
	Values    []int    `yaml:"values"`
	// Liquid names the initial contents of a drink container or fountain.
	Liquid string `yaml:"liquid"`
	// Condition is the item's durability in repair slots; 0 means indestructible.
	Condition int `yaml:"condition"`
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if strings.TrimSpace(d.Keywords) == "" {
		errs = append(errs, errors.New("keywords must not be empty"))
	}
	if d.ShortDesc == "" {
		errs = append(errs, errors.New("short must not be empty"))
	}
	if !validTypes[d.Type] {
		errs = append(errs, fmt.Errorf("type %q is not a known item type", d.Type))
	}
	if d.Weight < 0 {
		errs = append(errs, errors.New("weight must be >= 0"))
	}
	if len(d.Values) > NumValues {
		errs = append(errs, fmt.Errorf("values holds at most %d entries, got %d", NumValues, len(d.Values)))
	}
	if _, err := ParseWearFlags(d.Wear); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseExtraFlags(d.Extra); err != nil {
		errs = append(errs, err)
	}
	if d.Liquid != "" {
		if d.Type != TypeDrinkCon && d.Type != TypeFountain {
			errs = append(errs, fmt.Errorf("liquid is only valid on drinkcon and fountain, not %q", d.Type))
		} else if _, ok := LiquidByKeyword(d.Liquid); !ok {
			errs = append(errs, fmt.Errorf("unknown liquid %q", d.Liquid))
		}
	}
	if (d.Type == TypeDrinkCon || d.Type == TypeFountain) && len(d.Values) > DrinkVolume {
		if d.Values[DrinkVolume] > d.Weight {
			errs = append(errs, errors.New("weight must be >= the initial liquid volume"))
		}
		if len(d.Values) > DrinkCapacity && d.Values[DrinkVolume] > d.Values[DrinkCapacity] {
			errs = append(errs, errors.New("liquid volume must not exceed capacity"))
		}
	}
	if d.Condition < 0 {
		errs = append(errs, errors.New("condition must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %q validation failed: %w", d.ID, errors.Join(errs...))
	}
	return nil
}

// LoadItems reads all *.yaml and *.yml files from dir. Each file holds a list
// of item definitions; every definition is validated.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid ItemDefs or the first encountered error.
func LoadItems(dir string) ([]*ItemDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadItems: cannot read directory %q: %w", dir, err)
	}

	var defs []*ItemDef
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: cannot read file %q: %w", path, err)
		}
		parsed, err := ParseItems(data)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: %q: %w", path, err)
		}
		defs = append(defs, parsed...)
	}
	return defs, nil
}

// ParseItems decodes a YAML document of the form `items: [...]`.
//
// Postcondition: every returned def has passed Validate.
func ParseItems(data []byte) ([]*ItemDef, error) {
	var file struct {
		Items []*ItemDef `yaml:"items"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing items: %w", err)
	}
	for _, d := range file.Items {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	return file.Items, nil
}
