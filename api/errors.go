package api

import (
	"errors"
	"fmt"
)

// ErrNetwork matches every failure to reach the backend or the stream.
var ErrNetwork = errors.New("network failure")

// ErrNotConnected is returned when a stream command is sent while the
// stream is down.
var ErrNotConnected = errors.New("stream not connected")

// NetworkError describes a failed request. It matches ErrNetwork.
type NetworkError struct {
	Op     string // HTTP method or stream operation
	Path   string
	Status int // HTTP status, 0 when no response arrived
	Err    error
}

func (e *NetworkError) Error() string {
	msg := "network failure: " + e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(": status %d", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }
