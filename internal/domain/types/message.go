package types

import "encoding/hex"

// SignedMessageVersion is written into every SignedMessage.
const SignedMessageVersion = 1

// SignedMessage is the document produced by offline signing.
//
// Callers fill the metadata; the transport sets CallType, Content and, for
// updates, RequestID.
type SignedMessage struct {
	Version       int      `json:"version" yaml:"version"`
	Network       string   `json:"network" yaml:"network"`
	CallType      CallType `json:"call_type" yaml:"-"`
	Sender        string   `json:"sender" yaml:"sender"`
	CanisterID    string   `json:"canister_id" yaml:"canister_id"`
	MethodName    string   `json:"method_name" yaml:"method_name"`
	Arg           string   `json:"arg" yaml:"arg"`
	RequestID     string   `json:"request_id,omitempty" yaml:"-"`
	Content       string   `json:"content" yaml:"-"`
	IngressExpiry uint64   `json:"ingress_expiry" yaml:"ingress_expiry"`
	Creation      uint64   `json:"creation" yaml:"creation"`
}

// WithCallType returns a copy of m with the call type set.
func (m SignedMessage) WithCallType(c CallType) SignedMessage {
	m.CallType = c
	return m
}

// WithRequestID returns a copy of m carrying id.
func (m SignedMessage) WithRequestID(id RequestID) SignedMessage {
	m.RequestID = id.String()
	return m
}

// WithContent returns a copy of m whose content is the hex form of envelope.
func (m SignedMessage) WithContent(envelope []byte) SignedMessage {
	m.Content = hex.EncodeToString(envelope)
	return m
}

// Merge returns m with every non-zero metadata field of o applied on top.
func (m SignedMessage) Merge(o SignedMessage) SignedMessage {
	if o.Version != 0 {
		m.Version = o.Version
	}
	if o.Network != "" {
		m.Network = o.Network
	}
	if o.Sender != "" {
		m.Sender = o.Sender
	}
	if o.CanisterID != "" {
		m.CanisterID = o.CanisterID
	}
	if o.MethodName != "" {
		m.MethodName = o.MethodName
	}
	if o.Arg != "" {
		m.Arg = o.Arg
	}
	if o.IngressExpiry != 0 {
		m.IngressExpiry = o.IngressExpiry
	}
	if o.Creation != 0 {
		m.Creation = o.Creation
	}
	return m
}
