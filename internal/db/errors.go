package db

import (
	"fmt"
)

// UnsupportedDialectError is returned when a descriptor names a dialect with
// no registered adapter.
type UnsupportedDialectError struct {
	Dialect Dialect
}

func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("database type %q is not supported", e.Dialect)
}

// ConnectionError wraps a network or authentication failure while
// establishing a pool. The driver message is kept for diagnostics.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect to %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
