package crypto

import (
	"crypto/sha256"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"strings"
)

const (
	selfAuthenticatingSuffix = 0x02
	anonymousSuffix          = 0x04
)

// ErrInvalidPrincipal is returned for malformed principal text.
var ErrInvalidPrincipal = errors.New("invalid principal")

var principalEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// SelfAuthenticatingPrincipal returns the principal bytes bound to a DER public key.
func SelfAuthenticatingPrincipal(der []byte) []byte {
	sum := sha256.Sum224(der)
	return append(sum[:], selfAuthenticatingSuffix)
}

// AnonymousPrincipal returns the principal used for unauthenticated calls.
func AnonymousPrincipal() []byte { return []byte{anonymousSuffix} }

// PrincipalText renders principal bytes in their checksummed textual form:
// lowercase base32 of crc32 || bytes, grouped by five with dashes.
func PrincipalText(p []byte) string {
	buf := make([]byte, 4, 4+len(p))
	binary.BigEndian.PutUint32(buf, crc32.ChecksumIEEE(p))
	buf = append(buf, p...)

	enc := strings.ToLower(principalEncoding.EncodeToString(buf))
	var b strings.Builder
	for i := 0; i < len(enc); i += 5 {
		if i > 0 {
			b.WriteByte('-')
		}
		b.WriteString(enc[i:min(i+5, len(enc))])
	}
	return b.String()
}

// ParsePrincipalText is the inverse of PrincipalText. The checksum and the
// dash grouping must both match.
func ParsePrincipalText(text string) ([]byte, error) {
	raw, err := principalEncoding.DecodeString(strings.ToUpper(strings.ReplaceAll(text, "-", "")))
	if err != nil || len(raw) < 4 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrincipal, text)
	}
	p := raw[4:]
	if binary.BigEndian.Uint32(raw[:4]) != crc32.ChecksumIEEE(p) || PrincipalText(p) != text {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrincipal, text)
	}
	return p, nil
}
