package crypto_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dfxid/internal/crypto"
)

func TestPrincipalText_KnownValues(t *testing.T) {
	assert.Equal(t, "2vxsx-fae", crypto.PrincipalText(crypto.AnonymousPrincipal()))
	assert.Equal(t, "aaaaa-aa", crypto.PrincipalText(nil))
}

func TestSelfAuthenticatingPrincipal_Shape(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	der, err := crypto.PublicKeyDER(pub)
	require.NoError(t, err)

	p := crypto.SelfAuthenticatingPrincipal(der)
	require.Len(t, p, 29)
	assert.Equal(t, byte(0x02), p[28])

	text := crypto.PrincipalText(p)
	assert.Regexp(t, regexp.MustCompile(`^([a-z2-7]{5}-){10}[a-z2-7]{3}$`), text)
	assert.Equal(t, text, strings.ToLower(text))
	assert.Equal(t, text, crypto.PrincipalText(crypto.SelfAuthenticatingPrincipal(der)))
}

func TestFingerprint(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	der, err := crypto.PublicKeyDER(pub)
	require.NoError(t, err)

	fp, err := crypto.Fingerprint(der)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(fp, "SHA256:"))

	_, err = crypto.Fingerprint([]byte("junk"))
	require.Error(t, err)
}

func TestParsePrincipalText(t *testing.T) {
	p, err := crypto.ParsePrincipalText("ryjl3-tyaaa-aaaaa-aaaba-cai")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 2, 1, 1}, p)

	p, err = crypto.ParsePrincipalText("2vxsx-fae")
	require.NoError(t, err)
	assert.Equal(t, crypto.AnonymousPrincipal(), p)

	for _, bad := range []string{"", "2vxsx-fa", "2vxsxfae", "2vxsx-faf", "ryjl3-tyaaa-aaaaa-aaaba-caj", "not a principal"} {
		_, err := crypto.ParsePrincipalText(bad)
		assert.ErrorIs(t, err, crypto.ErrInvalidPrincipal, bad)
	}
}
