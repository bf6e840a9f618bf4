package identity

import (
	"encoding/hex"
	"errors"
	"fmt"

	"dfxid/internal/domain"
)

// HardwareModule is an opened PKCS#11 library. Implementations log in with
// pin for every call and never expose private key material.
type HardwareModule interface {
	PublicKey(keyID []byte, pin string) ([]byte, error)
	Sign(keyID []byte, pin string, msg []byte) ([]byte, error)
	Close() error
}

// ModuleOpener loads the PKCS#11 library at libPath.
type ModuleOpener func(libPath string) (HardwareModule, error)

// unavailableModule is the default opener; this build carries no PKCS#11 driver.
func unavailableModule(libPath string) (HardwareModule, error) {
	return nil, fmt.Errorf("%w: %s", ErrHardwareModuleUnavailable, libPath)
}

// HardwareSigner delegates signing to a key held by a PKCS#11 module.
// The module is opened per call and only after a PIN is available.
type HardwareSigner struct {
	cfg   domain.HardwareIdentityConfiguration
	keyID []byte
	open  ModuleOpener
	pin   PinSource
}

// NewHardwareSigner validates cfg without opening the module.
func NewHardwareSigner(cfg domain.HardwareIdentityConfiguration, open ModuleOpener, pin PinSource) (*HardwareSigner, error) {
	keyID, err := decodeKeyID(cfg)
	if err != nil {
		return nil, err
	}
	if open == nil {
		open = unavailableModule
	}
	if pin == nil {
		pin = EnvPin
	}
	return &HardwareSigner{cfg: cfg, keyID: keyID, open: open, pin: pin}, nil
}

func (h *HardwareSigner) Sign(msg []byte) ([]byte, error) {
	var sig []byte
	err := h.withModule(func(m HardwareModule, pin string) (err error) {
		sig, err = m.Sign(h.keyID, pin, msg)
		return err
	})
	return sig, err
}

func (h *HardwareSigner) PublicKey() ([]byte, error) {
	var der []byte
	err := h.withModule(func(m HardwareModule, pin string) (err error) {
		der, err = m.PublicKey(h.keyID, pin)
		return err
	})
	return der, err
}

func (h *HardwareSigner) withModule(fn func(HardwareModule, string) error) error {
	pin, err := h.pin()
	if err != nil {
		return err
	}
	m, err := h.open(h.cfg.PKCS11LibPath)
	if err != nil {
		return err
	}
	err = fn(m, pin)
	if cerr := m.Close(); err == nil {
		err = cerr
	}
	return err
}

func decodeKeyID(cfg domain.HardwareIdentityConfiguration) ([]byte, error) {
	if cfg.PKCS11LibPath == "" {
		return nil, errors.New("pkcs11_lib_path is required")
	}
	keyID, err := hex.DecodeString(cfg.KeyID)
	if err != nil || len(keyID) == 0 {
		return nil, fmt.Errorf("key_id %q must be a non-empty sequence of hex digit pairs", cfg.KeyID)
	}
	return keyID, nil
}

// Compile-time assertion that HardwareSigner implements domain.Signer.
var _ domain.Signer = (*HardwareSigner)(nil)
