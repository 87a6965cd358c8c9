// Package guard marks value objects and commands as built by their constructors,
// so a zero-value struct literal can be told apart from a validated instance.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types whose invariants are established in a constructor.
//
// Example:
//
//	type AdvanceRouteCommand struct {
//	    index int
//	    guard guard.ConstructorGuard
//	}
//
//	func (c AdvanceRouteCommand) Validate() error {
//	    return c.guard.Validate(ErrAdvanceRouteCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that reports the owning value as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
