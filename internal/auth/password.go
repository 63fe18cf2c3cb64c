package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argonSaltLen = 16
	argonKeyLen  = 32
)

// ErrInvalidHash is returned when a stored hash cannot be parsed.
var ErrInvalidHash = errors.New("invalid password hash encoding")

// Hasher produces and verifies argon2id password hashes using the
// standard PHC string encoding.
type Hasher struct {
	memory  uint32
	time    uint32
	threads uint8
}

// NewHasher builds a hasher with the given argon2id parameters.
func NewHasher(memory, time uint32, threads uint8) *Hasher {
	if memory == 0 {
		memory = 64 * 1024
	}
	if time == 0 {
		time = 3
	}
	if threads == 0 {
		threads = 2
	}
	return &Hasher{memory: memory, time: time, threads: threads}
}

// Hash derives a salted argon2id hash of the password.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(password), salt, h.time, h.memory, h.threads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memory,
		h.time,
		h.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Verify reports whether the password matches the encoded hash. The
// parameters embedded in the hash take precedence over the hasher's own,
// so old hashes keep verifying after a parameter change.
func (h *Hasher) Verify(encoded, password string) (bool, error) {
	memory, time, threads, salt, key, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

func decodeHash(encoded string) (memory, time uint32, threads uint8, salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		err = ErrInvalidHash
		return
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		err = ErrInvalidHash
		return
	}
	if version != argon2.Version {
		err = ErrInvalidHash
		return
	}

	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		err = ErrInvalidHash
		return
	}

	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		err = ErrInvalidHash
		return
	}
	if key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		err = ErrInvalidHash
		return
	}
	return
}
