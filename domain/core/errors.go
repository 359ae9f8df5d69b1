package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrPlayerNotFound   = fmt.Errorf("%w: player", ErrNotFound)
	ErrSnapshotNotFound = fmt.Errorf("%w: snapshot", ErrNotFound)

	// Input table errors
	ErrSchema           = errors.New("required field missing from input table")
	ErrMissingAttribute = errors.New("policy attribute not populated")

	// Scoring configuration errors
	ErrEmptyCategorySet = errors.New("category set is empty")
	ErrUnknownPolicy    = errors.New("unknown replacement pool policy")

	// Collaborator errors
	ErrNoData = errors.New("no data available")
)

// Error constructors with context
func NewSchemaError(field string) error {
	return fmt.Errorf("%w: %s", ErrSchema, field)
}

func NewMissingAttributeError(attribute string) error {
	return fmt.Errorf("%w: %s", ErrMissingAttribute, attribute)
}

func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsSchemaError(err error) bool {
	return errors.Is(err, ErrSchema)
}
