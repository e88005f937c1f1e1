// Package bolt is a single-file storage.Store for servers run without
// PostgreSQL.
package bolt

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"

	bbolt "go.etcd.io/bbolt"

	"github.com/cory-johannsen/deltamud/internal/game/inventory"
	"github.com/cory-johannsen/deltamud/internal/storage"
)

var (
	bucketCharacters = []byte("characters")
	bucketItems      = []byte("items")
	// bucketOwners maps an item id to the character key whose save holds it.
	bucketOwners = []byte("owners")
)

// ErrDuplicateItem is returned when one save lists the same item twice.
var ErrDuplicateItem = errors.New("item listed twice in one save")

// itemList is the gob envelope for one character's records.
type itemList struct {
	Records []inventory.Record
}

// Store wraps a bbolt database.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the database file at path and ensures all buckets exist.
//
// Postcondition: Returns an open Store or a non-nil error.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("bolt: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketCharacters, bucketItems, bucketOwners} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bolt: create buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// Path returns the filesystem path of the database.
func (s *Store) Path() string {
	return s.db.Path()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadCharacter implements storage.Store.
func (s *Store) LoadCharacter(_ context.Context, name string) (storage.Character, []inventory.Record, error) {
	key := []byte(storage.Key(name))
	var (
		c    storage.Character
		recs []inventory.Record
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketCharacters).Get(key)
		if data == nil {
			return storage.ErrCharacterNotFound
		}
		if err := decode(data, &c); err != nil {
			return fmt.Errorf("bolt: decode character %q: %w", name, err)
		}
		if data := tx.Bucket(bucketItems).Get(key); data != nil {
			var list itemList
			if err := decode(data, &list); err != nil {
				return fmt.Errorf("bolt: decode items for %q: %w", name, err)
			}
			recs = list.Records
		}
		return nil
	})
	if err != nil {
		return storage.Character{}, nil, err
	}
	if recs == nil {
		recs = []inventory.Record{}
	}
	return c, recs, nil
}

// SaveCharacter implements storage.Store. Items previously saved under a
// different character are removed from that character's records.
//
// Precondition: c.Name must be non-empty.
// Postcondition: on error nothing changed.
func (s *Store) SaveCharacter(_ context.Context, c storage.Character, items []inventory.Record) error {
	key := storage.Key(c.Name)
	if key == "" {
		return errors.New("bolt: saving character: name must not be empty")
	}
	seen := make(map[inventory.ItemID]bool, len(items))
	for _, rec := range items {
		if seen[rec.ItemID] {
			return ErrDuplicateItem
		}
		seen[rec.ItemID] = true
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		chars, itemsB, owners := tx.Bucket(bucketCharacters), tx.Bucket(bucketItems), tx.Bucket(bucketOwners)

		var previous itemList
		if data := itemsB.Get([]byte(key)); data != nil {
			if err := decode(data, &previous); err != nil {
				return fmt.Errorf("bolt: decode items for %q: %w", c.Name, err)
			}
		}
		for _, rec := range previous.Records {
			if err := owners.Delete([]byte(rec.ItemID)); err != nil {
				return err
			}
		}

		for _, rec := range items {
			// Values returned by Get are only valid until the next write.
			prev := string(owners.Get([]byte(rec.ItemID)))
			if prev != "" && prev != key {
				if err := dropItem(itemsB, []byte(prev), rec.ItemID); err != nil {
					return err
				}
			}
			if err := owners.Put([]byte(rec.ItemID), []byte(key)); err != nil {
				return err
			}
		}

		charData, err := encode(c)
		if err != nil {
			return fmt.Errorf("bolt: encode character %q: %w", c.Name, err)
		}
		if err := chars.Put([]byte(key), charData); err != nil {
			return err
		}
		itemData, err := encode(itemList{Records: items})
		if err != nil {
			return fmt.Errorf("bolt: encode items for %q: %w", c.Name, err)
		}
		return itemsB.Put([]byte(key), itemData)
	})
}

// dropItem removes id from the item list saved under owner.
func dropItem(b *bbolt.Bucket, owner []byte, id inventory.ItemID) error {
	data := b.Get(owner)
	if data == nil {
		return nil
	}
	var list itemList
	if err := decode(data, &list); err != nil {
		return fmt.Errorf("bolt: decode items for %q: %w", owner, err)
	}
	kept := list.Records[:0]
	for _, rec := range list.Records {
		if rec.ItemID != id {
			kept = append(kept, rec)
		}
	}
	out, err := encode(itemList{Records: kept})
	if err != nil {
		return err
	}
	return b.Put(owner, out)
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

var _ storage.Store = (*Store)(nil)
