package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	FieldID         = "id"
	FieldPassengers = "passengers"

	MsgInvalidID         = "Airplane ID must be a positive integer."
	MsgNegativePassenger = "Passenger count cannot be negative."
	MsgDuplicateID       = "airplane with this id already exists."
	MsgNoAirplanes       = "No airplanes found."
	MsgInvalidInteger    = "A valid integer is required."
	MsgUnexpected        = "An unexpected error occurred."
)

var (
	ErrLimitReached  = errors.New("airplane limit reached")
	ErrAlreadyExists = errors.New("airplane already exists")
)

// LimitMessage is the client-facing text for ErrLimitReached.
func LimitMessage(limit int) string {
	return fmt.Sprintf("You can only assess up to %d airplanes.", limit)
}

// ValidationError maps a field name to the message describing why it was rejected.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

func NewFieldError(field, msg string) *ValidationError {
	e := &ValidationError{}
	e.add(field, msg)
	return e
}

// ValidateAirplane checks every field and reports all violations at once.
func ValidateAirplane(id, passengers int64) error {
	verr := &ValidationError{}
	if id <= 0 {
		verr.add(FieldID, MsgInvalidID)
	}
	if passengers < 0 {
		verr.add(FieldPassengers, MsgNegativePassenger)
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
