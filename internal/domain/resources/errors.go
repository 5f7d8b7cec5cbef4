package resources

import "errors"

// ErrNotFound is returned when no resource matches the requested ID
var ErrNotFound = errors.New("resource not found")

// ErrInvalidTransition is returned for publication status changes outside the lifecycle
var ErrInvalidTransition = errors.New("invalid publication status transition")

// ErrInvalidMetadata is returned when the submitted metadata is not a well-formed XML document
var ErrInvalidMetadata = errors.New("invalid metadata document")
