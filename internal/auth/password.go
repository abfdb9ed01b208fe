package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// defaultArgon2Params are used for new hashes, stored hashes carry
// their own so they stay verifiable after these change
var defaultArgon2Params = argon2Params{
	memory:  64 * 1024,
	time:    3,
	threads: 4,
	keyLen:  32,
	saltLen: 16,
}

type argon2Params struct {
	memory  uint32
	time    uint32
	threads uint8
	keyLen  uint32
	saltLen int
}

// passwordHash is a decoded `$argon2id$v=..$m=..,t=..,p=..$salt$hash`
type passwordHash struct {
	params argon2Params
	salt   []byte
	hash   []byte
}

func (h passwordHash) String() string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.memory, h.params.time, h.params.threads,
		base64.RawStdEncoding.EncodeToString(h.salt),
		base64.RawStdEncoding.EncodeToString(h.hash),
	)
}

func parsePasswordHash(encoded string) (*passwordHash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, fmt.Errorf("not an argon2id hash")
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, fmt.Errorf("unsupported argon2 version[%s]", parts[2])
	}
	output := passwordHash{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &output.params.memory, &output.params.time, &output.params.threads); err != nil {
		return nil, fmt.Errorf("failed to parse argon2 parameters: %w", err)
	}
	var err error
	if output.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	if output.hash, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, fmt.Errorf("failed to decode hash: %w", err)
	}
	output.params.keyLen = uint32(len(output.hash))
	output.params.saltLen = len(output.salt)
	return &output, nil
}

// HashPassword returns the argon2id PHC-style encoding of `password`
func HashPassword(password string) (string, error) {
	params := defaultArgon2Params
	salt := make([]byte, params.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	return passwordHash{
		params: params,
		salt:   salt,
		hash:   argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, params.keyLen),
	}.String(), nil
}

// ValidatePassword reports whether `password` matches the argon2id
// `encoded` hash, an unparseable hash never matches
func ValidatePassword(password, encoded string) bool {
	stored, err := parsePasswordHash(encoded)
	if err != nil {
		return false
	}
	p := stored.params
	hash := argon2.IDKey([]byte(password), stored.salt, p.time, p.memory, p.threads, p.keyLen)
	return subtle.ConstantTimeCompare(hash, stored.hash) == 1
}
