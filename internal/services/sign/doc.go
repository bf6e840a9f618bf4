// Package sign produces offline-signed canister calls.
//
// Service.Sign loads the selected identity, builds and signs the call
// envelope and hands it to the offline transport, which writes the signed
// message to disk and aborts the call. That abort is the success path here:
// Sign converts it into a Result. Every other transport error is a failure.
//
// Message metadata is layered: built-in defaults, then an optional YAML
// template file, then the values given on the request. The sender is always
// the principal of the signing identity.
package sign
