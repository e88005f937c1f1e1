package inventory

import (
	"errors"
	"fmt"
)

// Location Manager failure kinds. Callers match these with errors.Is.
var (
	// ErrNotFound reports that an item claims an owner which does not hold it.
	// It signals corrupted world state and is never expected in normal play.
	ErrNotFound = errors.New("item not found in claimed location")
	// ErrCapacityExceeded reports that a container cannot take the item's weight,
	// or that a liquid container has no free volume.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrSlotOccupied reports that the target equipment slot already holds an item.
	ErrSlotOccupied = errors.New("equipment slot occupied")
	// ErrIncompatibleContents reports a liquid type mismatch on pour or fill.
	ErrIncompatibleContents = errors.New("incompatible contents")
	// ErrInvalidOperation reports a move that can never succeed as requested.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrVetoed reports that a trigger refused the move before any mutation.
	ErrVetoed = errors.New("move vetoed by trigger")
	// ErrUnknown reports a handle that does not name a live entity.
	ErrUnknown = errors.New("unknown handle")
)

// Specific invalid operations.
var (
	ErrSelfContainment = fmt.Errorf("%w: item cannot contain itself", ErrInvalidOperation)
	ErrNotContainer    = fmt.Errorf("%w: target is not a container", ErrInvalidOperation)
	ErrNotLiquid       = fmt.Errorf("%w: not a liquid container", ErrInvalidOperation)
	ErrEmpty           = fmt.Errorf("%w: container is empty", ErrInvalidOperation)
	ErrNotPlaced       = fmt.Errorf("%w: item has no location", ErrInvalidOperation)
	ErrAlreadyPlaced   = fmt.Errorf("%w: item must be detached first", ErrInvalidOperation)
	ErrCannotWear      = fmt.Errorf("%w: item cannot be worn there", ErrInvalidOperation)
	ErrBusy            = fmt.Errorf("%w: item is already being moved", ErrInvalidOperation)
)

// MoveError records which operation failed on which item.
type MoveError struct {
	Op   Op
	Item ItemID
	Err  error
}

// Error implements error.
func (e *MoveError) Error() string {
	return fmt.Sprintf("inventory: %s %s: %v", e.Op, e.Item, e.Err)
}

// Unwrap returns the underlying failure kind.
func (e *MoveError) Unwrap() error { return e.Err }

// IsRecoverable reports whether err is an expected game-rule rejection that
// leaves world state untouched and should be shown to the player.
//
// Postcondition: returns false for nil, ErrNotFound, and foreign errors.
func IsRecoverable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrNotFound):
		return false
	case errors.Is(err, ErrCapacityExceeded),
		errors.Is(err, ErrSlotOccupied),
		errors.Is(err, ErrIncompatibleContents),
		errors.Is(err, ErrInvalidOperation),
		errors.Is(err, ErrVetoed):
		return true
	}
	return false
}
