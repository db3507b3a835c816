// Package apperrors defines the error taxonomy surfaced by the campaign
// services. Handlers map these to HTTP statuses with errors.Is / errors.As.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that an entity id did not resolve.
type ErrNotFound struct {
	Entity string
	ID     uint
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Entity, e.ID)
}

func NewNotFound(entity string, id uint) error {
	return &ErrNotFound{Entity: entity, ID: id}
}

// ErrReferenceNotFound reports that a foreign dimension id does not exist in
// reference data.
type ErrReferenceNotFound struct {
	Field string
	ID    uint
}

func (e *ErrReferenceNotFound) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Field, e.ID)
}

func NewReferenceNotFound(field string, id uint) error {
	return &ErrReferenceNotFound{Field: field, ID: id}
}

// ErrDuplicateName reports a collision on the generated campaign name.
type ErrDuplicateName struct {
	Name string
}

func (e *ErrDuplicateName) Error() string {
	return fmt.Sprintf("campaign name %q already exists", e.Name)
}

func NewDuplicateName(name string) error {
	return &ErrDuplicateName{Name: name}
}

// ErrInvalidTransition reports a state-machine guard failure: the campaign is
// not in the status the requested action requires.
type ErrInvalidTransition struct {
	Action        string
	CurrentStatus string
	Required      string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("cannot %s campaign in status %q, must be %q", e.Action, e.CurrentStatus, e.Required)
}

func NewInvalidTransition(action, current, required string) error {
	return &ErrInvalidTransition{Action: action, CurrentStatus: current, Required: required}
}

// ErrInvalidState reports an assignment attempt on a non-Active campaign.
type ErrInvalidState struct {
	Message string
}

func (e *ErrInvalidState) Error() string {
	return e.Message
}

func NewInvalidState(message string) error {
	return &ErrInvalidState{Message: message}
}

// ErrValidation reports malformed input: missing required field, out-of-range
// retry values, bad date ordering.
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

func NewValidation(format string, args ...interface{}) error {
	return &ErrValidation{Message: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is an ErrNotFound.
func IsNotFound(err error) bool {
	var target *ErrNotFound
	return errors.As(err, &target)
}

// IsReferenceNotFound reports whether err is an ErrReferenceNotFound.
func IsReferenceNotFound(err error) bool {
	var target *ErrReferenceNotFound
	return errors.As(err, &target)
}

// IsDuplicateName reports whether err is an ErrDuplicateName.
func IsDuplicateName(err error) bool {
	var target *ErrDuplicateName
	return errors.As(err, &target)
}

// IsInvalidTransition reports whether err is an ErrInvalidTransition.
func IsInvalidTransition(err error) bool {
	var target *ErrInvalidTransition
	return errors.As(err, &target)
}

// IsInvalidState reports whether err is an ErrInvalidState.
func IsInvalidState(err error) bool {
	var target *ErrInvalidState
	return errors.As(err, &target)
}

// IsValidation reports whether err is an ErrValidation.
func IsValidation(err error) bool {
	var target *ErrValidation
	return errors.As(err, &target)
}
