package world

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// zoneFile is the on-disk layout of a zone. Unknown keys are rejected so a
// misspelled field fails the load instead of being ignored.
type zoneFile struct {
	Zone struct {
		ID                     string     `yaml:"id"`
		Name                   string     `yaml:"name"`
		Description            string     `yaml:"description"`
		StartRoom              string     `yaml:"start_room"`
		ScriptDir              string     `yaml:"script_dir"`
		ScriptInstructionLimit int        `yaml:"script_instruction_limit"`
		Rooms                  []roomFile `yaml:"rooms"`
	} `yaml:"zone"`
}

type roomFile struct {
	ID          string      `yaml:"id"`
	Title       string      `yaml:"title"`
	Description string      `yaml:"description"`
	Exits       []exitFile  `yaml:"exits"`
	Items       []spawnFile `yaml:"items"`
}

type exitFile struct {
	Direction string `yaml:"direction"`
	Target    string `yaml:"target"`
	Locked    bool   `yaml:"locked"`
	Hidden    bool   `yaml:"hidden"`
}

type spawnFile struct {
	Item     string      `yaml:"item"`
	Count    int         `yaml:"count"`
	Contents []spawnFile `yaml:"contents"`
}

func (s spawnFile) spawn() ItemSpawn {
	sp := ItemSpawn{Item: s.Item, Count: s.Count}
	for _, c := range s.Contents {
		sp.Contents = append(sp.Contents, c.spawn())
	}
	return sp
}

func (f zoneFile) zone() (*Zone, error) {
	yz := f.Zone
	z := &Zone{
		ID:                     yz.ID,
		Name:                   yz.Name,
		Description:            strings.TrimSpace(yz.Description),
		StartRoom:              yz.StartRoom,
		ScriptDir:              yz.ScriptDir,
		ScriptInstructionLimit: yz.ScriptInstructionLimit,
		Rooms:                  make(map[string]*Room, len(yz.Rooms)),
	}
	for _, yr := range yz.Rooms {
		if _, dup := z.Rooms[yr.ID]; dup {
			return nil, fmt.Errorf("zone %q: room %q defined twice", yz.ID, yr.ID)
		}
		room := &Room{
			ID:          yr.ID,
			ZoneID:      yz.ID,
			Title:       yr.Title,
			Description: strings.TrimSpace(yr.Description),
		}
		for _, ye := range yr.Exits {
			room.Exits = append(room.Exits, Exit{
				Direction:  Direction(strings.ToLower(ye.Direction)),
				TargetRoom: ye.Target,
				Locked:     ye.Locked,
				Hidden:     ye.Hidden,
			})
		}
		for _, ys := range yr.Items {
			room.Items = append(room.Items, ys.spawn())
		}
		z.Rooms[room.ID] = room
	}
	return z, nil
}

// LoadZoneFromFile reads and validates one zone file.
//
// Postcondition: Returns a validated Zone or an error naming path.
func LoadZoneFromFile(path string) (*Zone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading zone file %s: %w", path, err)
	}
	z, err := LoadZoneFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return z, nil
}

// LoadZoneFromBytes parses and validates a zone document.
//
// Postcondition: Returns a validated Zone or a non-nil error.
func LoadZoneFromBytes(data []byte) (*Zone, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f zoneFile
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing zone YAML: %w", err)
	}
	z, err := f.zone()
	if err != nil {
		return nil, err
	}
	if err := z.Validate(); err != nil {
		return nil, fmt.Errorf("validating zone: %w", err)
	}
	return z, nil
}

// LoadZonesFromDir loads every .yaml or .yml file in dir, in name order.
//
// Postcondition: Returns at least one zone, or the first error.
func LoadZonesFromDir(dir string) ([]*Zone, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading zone directory %s: %w", dir, err)
	}
	var zones []*Zone
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		z, err := LoadZoneFromFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	if len(zones) == 0 {
		return nil, fmt.Errorf("no zone files found in %s", dir)
	}
	return zones, nil
}
