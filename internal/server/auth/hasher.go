package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/notevault/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns a secret into a one-way digest and checks a secret
// against a stored digest. Verify returns (false, nil) on a mismatch and an
// error wrapping common.ErrorHasher when the digest itself is unusable.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(digest, secret string) (bool, error)
}

var (
	_ PasswordHasher = (*Argon2id)(nil)
	_ PasswordHasher = (*Bcrypt)(nil)
)

// Argon2id hashes into the PHC string format
// $argon2id$v=19$m=<KiB>,t=<iterations>,p=<threads>$<salt>$<key>.
type Argon2id struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// NewArgon2id returns a hasher with interactive parameters: 64 MiB, 2 passes,
// one lane.
func NewArgon2id() *Argon2id {
	return &Argon2id{
		Memory:      64 * 1024,
		Iterations:  2,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func (a *Argon2id) Hash(secret string) (string, error) {
	salt := make([]byte, a.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: salt: %v", common.ErrorHasher, err)
	}

	key := argon2.IDKey([]byte(secret), salt, a.Iterations, a.Memory, a.Parallelism, a.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		a.Memory,
		a.Iterations,
		a.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

func (a *Argon2id) Verify(digest, secret string) (bool, error) {
	p, salt, key, err := decodeArgon2id(digest)
	if err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrorHasher, err)
	}

	computed := argon2.IDKey([]byte(secret), salt, p.Iterations, p.Memory, p.Parallelism, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, computed) == 1, nil
}

func decodeArgon2id(digest string) (*Argon2id, []byte, []byte, error) {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 {
		return nil, nil, nil, errors.New("invalid digest format")
	}
	if parts[1] != "argon2id" {
		return nil, nil, nil, fmt.Errorf("unsupported algorithm %q", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid version: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf("unsupported version %d", version)
	}

	p := &Argon2id{}
	var threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &threads); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if p.Memory == 0 || p.Iterations == 0 || threads == 0 || threads > 255 {
		return nil, nil, nil, errors.New("parameters out of range")
	}
	p.Parallelism = uint8(threads)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid salt encoding: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid key encoding: %w", err)
	}
	if len(key) == 0 {
		return nil, nil, nil, errors.New("empty key")
	}

	return p, salt, key, nil
}

// Bcrypt hashes with golang.org/x/crypto/bcrypt at the given cost.
type Bcrypt struct {
	Cost int
}

func NewBcrypt(cost int) *Bcrypt {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{Cost: cost}
}

func (b *Bcrypt) Hash(secret string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), b.Cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password longer than 72 bytes", common.ErrorInvalidInput)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorHasher, err)
	}
	return string(h), nil
}

func (b *Bcrypt) Verify(digest, secret string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", common.ErrorHasher, err)
	}
}

// NewHasher builds the hasher named by algo ("argon2id" or "bcrypt").
func NewHasher(algo string, bcryptCost int) (PasswordHasher, error) {
	switch algo {
	case "", "argon2id":
		return NewArgon2id(), nil
	case "bcrypt":
		return NewBcrypt(bcryptCost), nil
	default:
		return nil, fmt.Errorf("%w: unknown hasher %q", common.ErrorInvalidInput, algo)
	}
}
