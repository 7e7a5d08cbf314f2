// Package cryptox seals payloads on the client before they reach the vault.
// The server only ever sees the sealed bytes.
package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"errors"

	"github.com/dmitrijs2005/notevault/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	saltSize = 16
	keySize  = 32
)

// magic prefixes every sealed payload so Open can tell it from plain data.
var magic = []byte("nv1")

var (
	ErrNotSealed     = errors.New("payload is not sealed")
	ErrDecryptFailed = errors.New("wrong passphrase or corrupted payload")
)

// DeriveKey stretches a passphrase into an AES-256 key.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, keySize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext with AES-GCM under a key derived from passphrase.
// Layout: magic | salt | nonce | ciphertext.
func Seal(passphrase, plaintext []byte) ([]byte, error) {
	salt := common.GenerateRandByteArray(saltSize)
	if salt == nil {
		return nil, errors.New("random source failed")
	}

	key := DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())
	if nonce == nil {
		return nil, errors.New("random source failed")
	}

	out := make([]byte, 0, len(magic)+saltSize+len(nonce)+len(plaintext)+aesgcm.Overhead())
	out = append(out, magic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return aesgcm.Seal(out, nonce, plaintext, nil), nil
}

// Open reverses Seal.
func Open(passphrase, sealed []byte) ([]byte, error) {
	if !IsSealed(sealed) {
		return nil, ErrNotSealed
	}
	rest := sealed[len(magic):]
	salt, rest := rest[:saltSize], rest[saltSize:]

	key := DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(rest) < aesgcm.NonceSize()+aesgcm.Overhead() {
		return nil, ErrNotSealed
	}
	nonce, ciphertext := rest[:aesgcm.NonceSize()], rest[aesgcm.NonceSize():]

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plaintext, nil
}

// IsSealed reports whether data carries the Seal header.
func IsSealed(data []byte) bool {
	return len(data) > len(magic)+saltSize && bytes.HasPrefix(data, magic)
}
