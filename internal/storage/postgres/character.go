package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/deltamud/internal/game/inventory"
	"github.com/cory-johannsen/deltamud/internal/storage"
)

// ErrDuplicateItem is returned when one save lists the same item twice.
var ErrDuplicateItem = errors.New("item listed twice in one save")

// CharacterRepository persists characters and the item records they carry.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository returns a repository over db. Closing the
// repository closes db.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// LoadCharacter returns the saved character and its item records.
//
// Postcondition: Returns storage.ErrCharacterNotFound if name was never saved.
func (r *CharacterRepository) LoadCharacter(ctx context.Context, name string) (storage.Character, []inventory.Record, error) {
	var c storage.Character
	err := r.db.QueryRow(ctx, `
		SELECT display, room, level, gold, exp, drunk, hunger, thirst, skills
		FROM characters WHERE name = $1`,
		storage.Key(name),
	).Scan(&c.Name, &c.Room, &c.Level, &c.Gold, &c.Exp, &c.Cond[0], &c.Cond[1], &c.Cond[2], &c.Skills)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.Character{}, nil, storage.ErrCharacterNotFound
		}
		return storage.Character{}, nil, fmt.Errorf("loading character %q: %w", name, err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT item_id, def_id, kind, owner, slot, position, name, vals, weight, cond_slots, max_cond_slots
		FROM item_records WHERE character_name = $1
		ORDER BY owner, position`,
		storage.Key(name),
	)
	if err != nil {
		return storage.Character{}, nil, fmt.Errorf("loading items for %q: %w", name, err)
	}
	defer rows.Close()

	recs := make([]inventory.Record, 0)
	for rows.Next() {
		var (
			rec        inventory.Record
			id         string
			kind, slot int16
			vals       []int32
		)
		if err := rows.Scan(&id, &rec.DefID, &kind, &rec.Owner, &slot, &rec.Position,
			&rec.Name, &vals, &rec.Weight, &rec.Condition, &rec.MaxCondition); err != nil {
			return storage.Character{}, nil, fmt.Errorf("scanning item record: %w", err)
		}
		rec.ItemID = inventory.ItemID(id)
		rec.Kind = inventory.LocationKind(kind)
		rec.Slot = inventory.WearPosition(slot)
		for i := 0; i < len(vals) && i < inventory.NumValues; i++ {
			rec.Values[i] = int(vals[i])
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return storage.Character{}, nil, fmt.Errorf("reading item records: %w", err)
	}
	return c, recs, nil
}

// SaveCharacter upserts the character and replaces its item records in one
// transaction. Records for the same items saved earlier under another
// character are removed, so the latest owner wins.
//
// Precondition: c.Name must be non-empty.
// Postcondition: on error nothing changed.
func (r *CharacterRepository) SaveCharacter(ctx context.Context, c storage.Character, items []inventory.Record) error {
	key := storage.Key(c.Name)
	if key == "" {
		return errors.New("saving character: name must not be empty")
	}
	skills := c.Skills
	if skills == nil {
		skills = map[string]int{}
	}
	ids := make([]string, len(items))
	for i, rec := range items {
		ids[i] = string(rec.ItemID)
	}

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO characters (name, display, room, level, gold, exp, drunk, hunger, thirst, skills)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			ON CONFLICT (name) DO UPDATE SET
				display = EXCLUDED.display, room = EXCLUDED.room, level = EXCLUDED.level,
				gold = EXCLUDED.gold, exp = EXCLUDED.exp, drunk = EXCLUDED.drunk,
				hunger = EXCLUDED.hunger, thirst = EXCLUDED.thirst, skills = EXCLUDED.skills,
				updated_at = NOW()`,
			key, c.Name, c.Room, c.Level, c.Gold, c.Exp, c.Cond[0], c.Cond[1], c.Cond[2], skills,
		); err != nil {
			return fmt.Errorf("upserting character: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM item_records WHERE character_name = $1 OR item_id = ANY($2)`,
			key, ids,
		); err != nil {
			return fmt.Errorf("clearing item records: %w", err)
		}
		if len(items) == 0 {
			return nil
		}
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"item_records"},
			[]string{"item_id", "character_name", "def_id", "kind", "owner", "slot", "position",
				"name", "vals", "weight", "cond_slots", "max_cond_slots"},
			pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
				rec := items[i]
				vals := make([]int32, inventory.NumValues)
				for j, v := range rec.Values {
					vals[j] = int32(v)
				}
				return []any{
					string(rec.ItemID), key, rec.DefID, int16(rec.Kind), rec.Owner, int16(rec.Slot),
					rec.Position, rec.Name, vals, rec.Weight, rec.Condition, rec.MaxCondition,
				}, nil
			}),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateItem
			}
			return fmt.Errorf("writing item records: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving character %q: %w", c.Name, err)
	}
	return nil
}

// Close releases the pool.
func (r *CharacterRepository) Close() error {
	r.db.Close()
	return nil
}

var _ storage.Store = (*CharacterRepository)(nil)
