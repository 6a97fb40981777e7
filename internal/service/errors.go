package service

import (
	"fmt"
)

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports that an id does not exist in the targeted collection.
type NotFoundError struct {
	Resource string
	ID       int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// InvalidReferenceError reports a cart line that names a menu item the
// catalog does not contain.
type InvalidReferenceError struct {
	ItemID int
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("Menu item with id %d not found", e.ItemID)
}
