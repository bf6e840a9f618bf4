// Package envelope builds signed canister call envelopes.
//
// # Layout
//
// The call content is a CBOR map encoded in core deterministic mode:
//   - request_type: "query" or "call"
//   - sender: principal bytes of the signing key
//   - canister_id, method_name, arg
//   - ingress_expiry: nanoseconds since the Unix epoch
//   - nonce: 16 random bytes, update calls only
//
// The request id is SHA-256 over the encoded content. The sender signs the
// domain separator "\x0Aic-request" followed by the request id. The envelope
// map {content, sender_pubkey, sender_sig} is wrapped in the CBOR
// self-describe tag.
//
// Query envelopes are deterministic for a given key and request; update
// envelopes differ on every call because of the nonce.
package envelope
