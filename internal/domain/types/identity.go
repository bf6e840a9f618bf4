package types

const (
	// DefaultIdentityName is the identity created on first run.
	DefaultIdentityName = "default"
	// AnonymousIdentityName denotes unauthenticated access and is never a real identity.
	AnonymousIdentityName = "anonymous"
)

// GlobalConfiguration is the process-wide identity.json at the config root.
type GlobalConfiguration struct {
	Default string `json:"default"`
}

// IdentityConfiguration is the optional identity.json inside an identity directory.
// Its absence implies a PEM key.
type IdentityConfiguration struct {
	HSM *HardwareIdentityConfiguration `json:"hsm,omitempty"`
}

// HardwareIdentityConfiguration locates a key held by a PKCS#11 module.
type HardwareIdentityConfiguration struct {
	// PKCS11LibPath is the module to load, e.g. "/usr/local/lib/opensc-pkcs11.so".
	PKCS11LibPath string `json:"pkcs11_lib_path"`
	// KeyID is a sequence of pairs of hex digits.
	KeyID string `json:"key_id"`
}

// CreationParameters selects the key source of a new identity.
// A nil Hardware requests a freshly generated PEM key.
type CreationParameters struct {
	Hardware *HardwareIdentityConfiguration
}
