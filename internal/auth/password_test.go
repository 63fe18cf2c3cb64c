package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// low-cost parameters keep the test fast
func testHasher() *Hasher {
	return NewHasher(8*1024, 1, 1)
}

func TestHashAndVerify(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("hunter22")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := h.Verify(encoded, "hunter22")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(encoded, "wrong-password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashesAreSalted(t *testing.T) {
	h := testHasher()

	first, err := h.Hash("hunter22")
	require.NoError(t, err)
	second, err := h.Hash("hunter22")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyHonorsEmbeddedParams(t *testing.T) {
	encoded, err := NewHasher(16*1024, 2, 1).Hash("hunter22")
	require.NoError(t, err)

	// a hasher with different params must still verify the old hash
	ok, err := testHasher().Verify(encoded, "hunter22")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	h := testHasher()

	for _, encoded := range []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8192,t=1,p=1$not-base64!$aGFzaA",
	} {
		_, err := h.Verify(encoded, "hunter22")
		assert.ErrorIs(t, err, ErrInvalidHash, "hash %q", encoded)
	}
}
