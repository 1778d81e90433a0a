package types

import "errors"

// ErrInvalidID is returned by the ParseX constructors when the raw string
// is not a well-formed identifier. HTTP handlers map it to a 400.
var ErrInvalidID = errors.New("invalid identifier format")
