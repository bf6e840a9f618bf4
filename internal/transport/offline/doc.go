// Package offline implements domain.Transport for air-gapped signing.
//
// Instead of sending a query or update envelope, the Transport merges it
// into a caller-supplied SignedMessage template, writes the JSON document to
// a fixed path and aborts the call with a *WrittenError. Callers that expect
// a transport error to mean "not sent" therefore stop, and callers that know
// about offline mode recover the Outcome with Written.
//
// ReadState, Call and Status have no signed-message shape and fail with
// ErrNotSupported without touching the filesystem.
package offline
