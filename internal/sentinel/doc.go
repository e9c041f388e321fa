// Package sentinel provides a string-backed error type that can be declared
// as a const.
//
// Errors created with errors.New live in package-level vars and can be
// reassigned by any importer. Error values are constants, so the lifecycle
// errors returned by the pool (ErrNotStarted, ErrStopped, ...) cannot be
// swapped out from under callers, and errors.Is still matches them through
// fmt.Errorf("%w") chains.
package sentinel
