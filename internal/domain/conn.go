package domain

import "errors"

// ConnID identifies a single live transport session. Assigned by the
// transport adapter at upgrade time, stable for the connection's lifetime.
type ConnID string

var ErrDuplicateConnection = errors.New("connection id already registered")
