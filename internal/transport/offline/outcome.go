package offline

import (
	"errors"
	"fmt"
	"strings"

	"dfxid/internal/domain"
)

// ErrNotSupported is returned by calls that cannot be signed offline.
var ErrNotSupported = errors.New("not supported in offline signing mode")

// Status distinguishes a written message from a failed write.
type Status int

const (
	StatusWritten Status = iota + 1
	StatusFailed
)

// Outcome is the result of one offline write.
type Outcome struct {
	Status   Status
	CallType domain.CallType
	Path     string
	// Err is set when Status is StatusFailed.
	Err error
}

// Message is the human-readable summary of a written outcome.
func (o Outcome) Message() string {
	kind := o.CallType.String()
	if kind != "" {
		kind = strings.ToUpper(kind[:1]) + kind[1:]
	}
	return fmt.Sprintf("%s message generated at [%s]", kind, o.Path)
}

// asError converts the outcome into the value returned through domain.Transport.
func (o Outcome) asError() error {
	if o.Status == StatusWritten {
		return &WrittenError{Outcome: o}
	}
	return fmt.Errorf("writing %s message to %q: %w", o.CallType, o.Path, o.Err)
}

// WrittenError aborts a transport call after the signed message is on disk.
// It signals success to callers aware of offline mode.
type WrittenError struct {
	Outcome Outcome
}

func (e *WrittenError) Error() string { return e.Outcome.Message() }

// Written reports whether err is the offline sentinel and returns its Outcome.
func Written(err error) (Outcome, bool) {
	var w *WrittenError
	if errors.As(err, &w) {
		return w.Outcome, true
	}
	return Outcome{}, false
}
