package offline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"dfxid/internal/domain"
)

// Transport writes query and update envelopes to path instead of sending them.
type Transport struct {
	path     string
	template domain.SignedMessage

	mu    sync.Mutex
	state State
}

// New returns a Transport writing to path with template as the message base.
func New(path string, template domain.SignedMessage) *Transport {
	return &Transport{path: path, template: template}
}

// State returns the state reached by the most recent call.
func (t *Transport) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// WriteQuery writes a query message for envelope.
func (t *Transport) WriteQuery(ctx context.Context, envelope []byte) Outcome {
	return t.write(ctx, domain.CallQuery, func(m domain.SignedMessage) domain.SignedMessage {
		return m.WithContent(envelope)
	})
}

// WriteUpdate writes an update message for envelope carrying requestID.
func (t *Transport) WriteUpdate(ctx context.Context, envelope []byte, requestID domain.RequestID) Outcome {
	return t.write(ctx, domain.CallUpdate, func(m domain.SignedMessage) domain.SignedMessage {
		return m.WithRequestID(requestID).WithContent(envelope)
	})
}

func (t *Transport) write(ctx context.Context, call domain.CallType, fill func(domain.SignedMessage) domain.SignedMessage) Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := Outcome{CallType: call, Path: t.path}
	fail := func(err error) Outcome {
		t.state = StateFailed
		out.Status, out.Err = StatusFailed, err
		return out
	}

	t.state = StateBuildingEnvelope
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	msg := fill(t.template.WithCallType(call))

	b, err := json.Marshal(msg)
	if err != nil {
		return fail(err)
	}
	t.state = StateSerialized

	if err := os.WriteFile(t.path, b, 0o644); err != nil {
		return fail(err)
	}
	t.state = StateAbortedBySentinel
	out.Status = StatusWritten
	return out
}

// Read writes a query message and always returns an error: *WrittenError on
// success.
func (t *Transport) Read(ctx context.Context, envelope []byte) ([]byte, error) {
	return nil, t.WriteQuery(ctx, envelope).asError()
}

// Submit writes an update message and always returns an error: *WrittenError
// on success.
func (t *Transport) Submit(ctx context.Context, envelope []byte, requestID domain.RequestID) error {
	return t.WriteUpdate(ctx, envelope, requestID).asError()
}

func (t *Transport) ReadState(context.Context, string, []byte) ([]byte, error) {
	return nil, fmt.Errorf("read_state calls: %w", ErrNotSupported)
}

func (t *Transport) Call(context.Context, string, []byte) error {
	return fmt.Errorf("call calls: %w", ErrNotSupported)
}

func (t *Transport) Status(context.Context) ([]byte, error) {
	return nil, fmt.Errorf("status calls: %w", ErrNotSupported)
}

// Compile-time assertion that Transport implements domain.Transport.
var _ domain.Transport = (*Transport)(nil)
