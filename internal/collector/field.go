package collector

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Markers substituted for values that could not be collected.
const (
	NotAvailable = "not available"
	NotDetected  = "not detected"
)

var (
	// ErrUnavailable is returned by accessors that do not exist on the
	// current platform.
	ErrUnavailable = errors.New("data source unavailable on this platform")

	errNotCollected = errors.New("not collected")
)

// Field holds the outcome of a single probe: either a value or the reason
// the value is missing. The zero Field marshals as a "not collected" marker,
// so a report field is never absent from the JSON document.
type Field[T any] struct {
	value T
	err   error
	ok    bool
}

// Ok wraps a successfully collected value.
func Ok[T any](v T) Field[T] {
	return Field[T]{value: v, ok: true}
}

// Fail records why a value could not be collected.
func Fail[T any](err error) Field[T] {
	if err == nil {
		err = errNotCollected
	}
	return Field[T]{err: err}
}

// Get returns the collected value or the failure reason.
func (f Field[T]) Get() (T, error) {
	if !f.ok {
		return f.value, f.Err()
	}
	return f.value, nil
}

// Err returns nil for a collected value.
func (f Field[T]) Err() error {
	if f.ok {
		return nil
	}
	if f.err == nil {
		return errNotCollected
	}
	return f.err
}

// Marker returns the string written in place of a failed value.
func (f Field[T]) Marker() string {
	if err := f.Err(); err != nil {
		return ErrorMarker(err)
	}
	return ""
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.ok {
		return marshal(f.Marker())
	}
	return marshal(f.value)
}

// marshal encodes v without HTML escaping so that nested values keep
// characters like '<' and '&' as written.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ErrorMarker formats err as the string stored in a failed report field.
func ErrorMarker(err error) string {
	return fmt.Sprintf("error: %v", err)
}
