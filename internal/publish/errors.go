package publish

import "errors"

var (
	// ErrDraftNotFound is returned when the requested root has no draft row.
	ErrDraftNotFound = errors.New("draft not found")
	// ErrItemNotFound is returned when a selected item has no live draft row.
	ErrItemNotFound = errors.New("selected item not found")
	// ErrItemNotInCollection is returned when a selected item belongs to a
	// different collection than the one being published.
	ErrItemNotInCollection = errors.New("selected item does not belong to the collection")
)
