package identity

import (
	"errors"
	"fmt"
)

var (
	// ErrIdentityDoesNotExist is matched by *DoesNotExistError.
	ErrIdentityDoesNotExist = errors.New("identity does not exist")
	// ErrIdentityAlreadyExists is returned when a create or rename target is taken.
	ErrIdentityAlreadyExists = errors.New("identity already exists")
	// ErrCannotCreateAnonymousIdentity guards the reserved anonymous name.
	ErrCannotCreateAnonymousIdentity = errors.New("cannot create an anonymous identity")
	// ErrCannotDeleteDefaultIdentity is returned when removing the persisted default.
	ErrCannotDeleteDefaultIdentity = errors.New("cannot delete the default identity")
	// ErrCannotRenameIdentityDirectory is matched by *RenameError.
	ErrCannotRenameIdentityDirectory = errors.New("cannot rename identity directory")
	// ErrCannotGenerateKeyPair is matched by *KeyGenerationError.
	ErrCannotGenerateKeyPair = errors.New("cannot generate key pair")
	// ErrCannotFindHomeDirectory is returned when the legacy key location cannot be resolved.
	ErrCannotFindHomeDirectory = errors.New("cannot find home directory")
	// ErrInvalidIdentityName rejects names that would escape the registry root.
	ErrInvalidIdentityName = errors.New("invalid identity name")
	// ErrCannotExportHardwareIdentity is returned by ExportPEM for HSM identities.
	ErrCannotExportHardwareIdentity = errors.New("cannot export a hardware identity")
	// ErrHSMPinMissing is returned when the PIN environment variable is unset.
	ErrHSMPinMissing = fmt.Errorf("there is no %s environment variable", HSMPinEnv)
	// ErrInvalidIdentityConfiguration is returned for an identity.json without a usable key source.
	ErrInvalidIdentityConfiguration = errors.New("identity configuration names no key")
	// ErrHardwareModuleUnavailable is returned when no PKCS#11 module can be opened.
	ErrHardwareModuleUnavailable = errors.New("PKCS#11 module unavailable")
)

// DoesNotExistError reports an identity with neither key file present.
type DoesNotExistError struct {
	Name string
	Path string
}

func (e *DoesNotExistError) Error() string {
	return fmt.Sprintf("identity %s does not exist at %s", e.Name, e.Path)
}

func (e *DoesNotExistError) Unwrap() error { return ErrIdentityDoesNotExist }

// RenameError wraps the filesystem failure of a directory rename.
type RenameError struct {
	From string
	To   string
	Err  error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("cannot rename identity directory from %s to %s: %v", e.From, e.To, e.Err)
}

func (e *RenameError) Unwrap() []error { return []error{ErrCannotRenameIdentityDirectory, e.Err} }

// KeyGenerationError wraps a failure of the secure random source or key encoding.
type KeyGenerationError struct {
	Err error
}

func (e *KeyGenerationError) Error() string {
	return fmt.Sprintf("cannot generate key pair: %v", e.Err)
}

func (e *KeyGenerationError) Unwrap() []error { return []error{ErrCannotGenerateKeyPair, e.Err} }
