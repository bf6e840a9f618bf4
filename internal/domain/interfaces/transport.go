package interfaces

import (
	"context"

	domaintypes "dfxid/internal/domain/types"
)

// Transport carries finished envelopes to a replica.
type Transport interface {
	// Read sends a query envelope and returns the raw response.
	Read(ctx context.Context, envelope []byte) ([]byte, error)
	// Submit sends an update envelope identified by requestID.
	Submit(ctx context.Context, envelope []byte, requestID domaintypes.RequestID) error
	// ReadState asks for certified state of a canister.
	ReadState(ctx context.Context, canisterID string, envelope []byte) ([]byte, error)
	// Call sends a generic call to a canister.
	Call(ctx context.Context, canisterID string, envelope []byte) error
	// Status returns the replica status document.
	Status(ctx context.Context) ([]byte, error)
}
