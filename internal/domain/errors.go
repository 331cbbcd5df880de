package domain

import "errors"

// ErrNotFound is returned by collaborator clients when the remote service
// answers 404.
var ErrNotFound = errors.New("not found")
