package identity

import "os"

// HSMPinEnv holds the PIN used to log in to a PKCS#11 module.
const HSMPinEnv = "DFX_HSM_PIN"

// PinSource yields the PIN for a hardware identity at signing time.
type PinSource func() (string, error)

// EnvPin reads the PIN from HSMPinEnv.
func EnvPin() (string, error) {
	pin, ok := os.LookupEnv(HSMPinEnv)
	if !ok {
		return "", ErrHSMPinMissing
	}
	return pin, nil
}
