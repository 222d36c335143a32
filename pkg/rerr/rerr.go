// Package rerr defines the core's error vocabulary.
//
// The core distinguishes four kinds of failure. Three of them —
// not-found, unsupported, internal — are ordinary values returned
// through the normal (result, error) idiom and are safe to test with
// errors.Is. The fourth, invariant-violated, signals a precondition
// broken by the caller (an empty symbol path, a reference that claims
// to be absolute while carrying relative anchor data); it is raised as
// a panic and recovered only at the resolver's outermost boundary, so
// a caller bug can never leave project state half-mutated.
package rerr

import "errors"

// ErrNotFound means the lookup completed but found nothing; project
// state is unaffected. Surfaced to the caller as an absent result.
var ErrNotFound = errors.New("modelica: not found")

// ErrUnsupported means the caller asked for a resolution mode the core
// does not implement (currently: anything but declaration resolution).
var ErrUnsupported = errors.New("modelica: unsupported resolution mode")

// ErrInternal wraps an unexpected failure encountered while loading a
// file the resolver needs mid-walk — I/O reading a sibling file, or
// that file failing to parse. project.GetDocument logs it at Warn and
// reports the document absent, so the resolver's candidate loop simply
// treats it as not-found and keeps trying the remaining candidates.
var ErrInternal = errors.New("modelica: internal resolution error")

// InvariantError is panicked when a caller-supplied precondition does
// not hold. It is never returned as a normal error value.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "modelica: invariant violated: " + e.Msg
}

// Invariant panics with an InvariantError carrying msg. Call sites use
// this for preconditions that are the caller's responsibility to
// uphold (constructing a reference from an empty symbol path, for
// instance), never for ordinary lookup failure.
func Invariant(msg string) {
	panic(&InvariantError{Msg: msg})
}

// Recover turns a panicking InvariantError into an error return,
// re-panicking anything else. Intended to be deferred exactly once, at
// the resolver's single outermost boundary.
func Recover(errp *error) {
	if r := recover(); r != nil {
		if ie, ok := r.(*InvariantError); ok {
			*errp = ie
			return
		}
		panic(r)
	}
}
