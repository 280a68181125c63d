package bitkit

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCapacity is returned when a backend is constructed with a
	// non-positive capacity.
	ErrInvalidCapacity = errors.New("capacity must be positive")

	// ErrUnsupported is returned by operations that a sentinel or immutable
	// instance cannot support by contract.
	ErrUnsupported = errors.New("operation not supported")
)

// ErrInvalidRange indicates a range argument with End < Start.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidRange struct {
	Start int64
	End   int64
	cause error
}

func (e *ErrInvalidRange) Error() string {
	return fmt.Sprintf("invalid range: end %d < start %d", e.End, e.Start)
}

func (e *ErrInvalidRange) Unwrap() error { return e.cause }

// NewErrInvalidRange builds an ErrInvalidRange for [start, end).
func NewErrInvalidRange(start, end int64) *ErrInvalidRange {
	return &ErrInvalidRange{Start: start, End: end}
}

// ErrSnapshotFormat indicates a corrupted or unsupported binary snapshot.
// It is returned during deserialization and is never silently coerced.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrSnapshotFormat struct {
	Reason string
	cause  error
}

func (e *ErrSnapshotFormat) Error() string {
	return fmt.Sprintf("snapshot format: %s", e.Reason)
}

func (e *ErrSnapshotFormat) Unwrap() error { return e.cause }

// NewErrSnapshotFormat builds an ErrSnapshotFormat with an optional cause.
func NewErrSnapshotFormat(reason string, cause error) *ErrSnapshotFormat {
	return &ErrSnapshotFormat{Reason: reason, cause: cause}
}

// ErrDomainExceeded indicates an index beyond a backend's native domain,
// e.g. a run endpoint past 2^32-1 handed to the packed run builder.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDomainExceeded struct {
	Index int64
	Limit int64
	cause error
}

func (e *ErrDomainExceeded) Error() string {
	return fmt.Sprintf("index %d outside representable domain [0, %d)", e.Index, e.Limit)
}

func (e *ErrDomainExceeded) Unwrap() error { return e.cause }

// NewErrDomainExceeded builds an ErrDomainExceeded for index against limit.
func NewErrDomainExceeded(index, limit int64) *ErrDomainExceeded {
	return &ErrDomainExceeded{Index: index, Limit: limit}
}
