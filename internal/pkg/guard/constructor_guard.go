// Package guard detects domain values that skipped their constructor.
//
// A zero-value struct in Go is always constructible, so aggregates such as
// orders and operators embed a ConstructorGuard set only by NewX/RestoreX.
// Methods that must not run on a zero value call Validate first.
package guard

import "errors"

var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is true only when produced by NewConstructorGuard.
type ConstructorGuard struct {
	constructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil for a constructed guard. For a zero value it returns
// err, or ErrDefaultConstructorGuard when err is nil.
func (g ConstructorGuard) Validate(err error) error {
	if g.constructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}

// IsConstructed reports whether the guard came from NewConstructorGuard.
func (g ConstructorGuard) IsConstructed() bool {
	return g.constructed
}
