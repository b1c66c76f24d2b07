package connstore

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/pkg/errors"
	"golang.org/x/crypto/nacl/secretbox"
)

const keySize = 32

// sealDSN encrypts plaintext under key with a fresh random nonce,
// returning the nonce-prefixed ciphertext base64-encoded for storage in
// a YAML document.
func sealDSN(key *[keySize]byte, plaintext string) (string, error) {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", errors.Wrap(err, "connstore: generating nonce")
	}

	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// openDSN reverses sealDSN.
func openDSN(key *[keySize]byte, encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errors.Wrap(err, "connstore: decoding ciphertext")
	}
	if len(sealed) < 24 {
		return "", errors.New("connstore: ciphertext too short")
	}

	var nonce [24]byte
	copy(nonce[:], sealed[:24])

	plaintext, ok := secretbox.Open(nil, sealed[24:], &nonce, key)
	if !ok {
		return "", errors.New("connstore: decryption failed (wrong key or corrupted data)")
	}
	return string(plaintext), nil
}
