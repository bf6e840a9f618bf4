package types

import "encoding/hex"

// CallType is the kind of canister call carried by a signed message.
type CallType string

const (
	CallQuery  CallType = "query"
	CallUpdate CallType = "update"
)

// String returns the string form of the call type.
func (c CallType) String() string { return string(c) }

// RequestID is the SHA-256 digest identifying an update request.
type RequestID [32]byte

// String returns the lowercase hex form of the request id.
func (id RequestID) String() string { return hex.EncodeToString(id[:]) }
