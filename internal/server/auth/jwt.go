// Package auth holds the credential primitives of the server: password
// hashers and the user token minter.
package auth

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrorNoSigningKey = errors.New("no token signing key configured")

// TokenMinter issues the opaque token handed to a user once at signup.
type TokenMinter interface {
	Mint(userID string) (string, error)
	Algorithm() string
}

// Claims carries the trustchain id as issuer and the user id as subject.
// Tokens have no expiry: they are minted once and stored with the user.
type Claims struct {
	jwt.RegisteredClaims
}

type signer struct {
	issuer  string
	method  jwt.SigningMethod
	signKey any
	verKey  any
	now     func() time.Time
}

func (s *signer) Algorithm() string { return s.method.Alg() }

func (s *signer) Mint(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("empty user id")
	}
	token := jwt.NewWithClaims(s.method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   s.issuer,
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	})
	return token.SignedString(s.signKey)
}

// NewEd25519Minter signs EdDSA tokens with the trustchain private key.
func NewEd25519Minter(trustchainID string, key ed25519.PrivateKey) TokenMinter {
	return &signer{
		issuer:  trustchainID,
		method:  jwt.SigningMethodEdDSA,
		signKey: key,
		verKey:  key.Public(),
		now:     time.Now,
	}
}

// NewHMACMinter signs HS256 tokens with a shared secret.
func NewHMACMinter(trustchainID string, secret []byte) TokenMinter {
	return &signer{
		issuer:  trustchainID,
		method:  jwt.SigningMethodHS256,
		signKey: secret,
		verKey:  secret,
		now:     time.Now,
	}
}

// ParseEd25519Key decodes a base64 Ed25519 private key given either as the
// 32-byte seed or the 64-byte expanded key.
func ParseEd25519Key(encoded string) (ed25519.PrivateKey, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode trustchain key: %w", err)
	}
	switch len(raw) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(raw), nil
	default:
		return nil, fmt.Errorf("trustchain key must be %d or %d bytes, got %d",
			ed25519.SeedSize, ed25519.PrivateKeySize, len(raw))
	}
}

// NewMinter prefers the trustchain key and falls back to the shared secret.
func NewMinter(trustchainID, privateKey, secret string) (TokenMinter, error) {
	if privateKey != "" {
		key, err := ParseEd25519Key(privateKey)
		if err != nil {
			return nil, err
		}
		return NewEd25519Minter(trustchainID, key), nil
	}
	if secret != "" {
		return NewHMACMinter(trustchainID, []byte(secret)), nil
	}
	return nil, ErrorNoSigningKey
}
