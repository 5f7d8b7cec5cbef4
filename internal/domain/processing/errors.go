package processing

import "errors"

var (
	// ErrUnknownService is returned when no processor is registered under the requested name
	ErrUnknownService = errors.New("unknown processing service")
	// ErrQueueFull is returned when the worker queue cannot take another job
	ErrQueueFull = errors.New("processing queue is full")
	// ErrJobNotFound is returned when no job matches the requested ID
	ErrJobNotFound = errors.New("processing job not found")
	// ErrResultNotReady is returned when a download is requested before the job succeeded
	ErrResultNotReady = errors.New("processing result not ready")
	// ErrUnsupportedInput is returned when a service does not accept the kind of input given
	ErrUnsupportedInput = errors.New("input not supported by processing service")
)
