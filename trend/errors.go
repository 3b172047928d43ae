package trend

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidValue is returned when a channel is first seen with a null sample.
	ErrInvalidValue = errors.New("invalid value")

	// ErrCapacityMisconfiguration is returned for a non-positive window capacity
	// (or any other configuration that cannot describe a display window).
	ErrCapacityMisconfiguration = errors.New("capacity misconfiguration")

	// ErrUnknownArea marks a notification addressed to an area the registry never
	// created. It is raised as a panic, never returned.
	ErrUnknownArea = errors.New("unknown area")
)

// ensureNoErr panics on invariant violations.
func ensureNoErr(err error, format string, args ...any) {
	if err != nil {
		panic(fmt.Errorf(format+": %w", append(args, err)...))
	}
}
