package layeredconfig

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a key has no value in any source, directly
	// or through cascading. A key whose only appearance is a type placeholder
	// is still not found.
	ErrNotFound = errors.New("configuration key not found")

	// ErrCoerce is returned when a raw string value cannot be parsed as the
	// semantic type declared or inferred for its key.
	ErrCoerce = errors.New("cannot coerce configuration value")

	// ErrNoWriteTarget is returned by Set when no source knows the key, so
	// there is no defensible source to create it in.
	ErrNoWriteTarget = errors.New("no configuration source accepts this key")

	// ErrUnknownSource is returned by SetIn when no source carries the
	// requested name.
	ErrUnknownSource = errors.New("unknown configuration source")
)

func notFound(key string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, key)
}
