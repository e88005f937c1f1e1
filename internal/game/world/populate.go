package world

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/deltamud/internal/game/inventory"
)

// Populate spawns the starting items of every room into items.
// A spawn that fails is extracted again and reported; the remaining spawns
// still run.
//
// Precondition: items and logger must be non-nil; every room ID is unique.
// Postcondition: Returns the number of items placed and the joined spawn errors.
func (m *Manager) Populate(items *inventory.Manager, logger *zap.Logger) (int, error) {
	placed := 0
	var errs []error
	for _, id := range m.roomIDs {
		for _, sp := range m.rooms[id].Items {
			for i := 0; i < sp.Copies(); i++ {
				n, err := spawnInto(items, sp, inventory.ToRoom(id))
				placed += n
				if err != nil {
					logger.Warn("room item spawn failed",
						zap.String("room", id),
						zap.String("item", sp.Item),
						zap.Error(err),
					)
					errs = append(errs, fmt.Errorf("room %q: %w", id, err))
				}
			}
		}
	}
	return placed, errors.Join(errs...)
}

// spawnInto places one copy of sp and its contents at dest.
func spawnInto(items *inventory.Manager, sp ItemSpawn, dest inventory.Location) (int, error) {
	it, err := items.Spawn(sp.Item)
	if err != nil {
		return 0, err
	}
	if _, err := items.Move(inventory.MoveRequest{Op: inventory.OpLoad, Item: it.ID, Dest: dest}); err != nil {
		_ = items.Extract(it.ID)
		return 0, err
	}
	placed := 1
	var errs []error
	for _, c := range sp.Contents {
		for i := 0; i < c.Copies(); i++ {
			n, err := spawnInto(items, c, inventory.ToContainer(it.ID))
			placed += n
			if err != nil {
				errs = append(errs, fmt.Errorf("inside %q: %w", sp.Item, err))
			}
		}
	}
	return placed, errors.Join(errs...)
}
