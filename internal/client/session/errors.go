package session

import "errors"

// ErrNoHost is returned by host capabilities that are not available.
var ErrNoHost = errors.New("host capability unavailable")
