// Package guard provides the constructor guard pattern used across the
// application to ensure value objects and commands are only created through
// their designated constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guarded object
// was not constructed and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. Embed it in a
// struct and initialize it with NewConstructorGuard inside the constructor;
// a zero-value struct will then fail Validate.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking its owner as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it
// returns validationError, or ErrDefaultConstructorGuard when validationError
// is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError != nil {
		return validationError
	}
	return ErrDefaultConstructorGuard
}
