// Package secrets encrypts customer identifiers before they reach the
// database. The key lives in a file next to the binary, generated on first
// run. Losing the key makes previously stored names and phone numbers
// unrecoverable; there is no rotation support.
package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/nacl/secretbox"
)

const keySize = 32

var ErrDecrypt = errors.New("secrets: cannot decrypt value")

type Cipher struct {
	key [keySize]byte
}

// LoadOrCreate reads the key file, generating it with 0600 permissions if absent.
func LoadOrCreate(path string) (*Cipher, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		raw = make([]byte, keySize)
		if _, err := rand.Read(raw); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, raw, 0o600); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	if len(raw) != keySize {
		return nil, fmt.Errorf("secrets: key file %s must hold %d bytes, has %d", path, keySize, len(raw))
	}
	c := &Cipher{}
	copy(c.key[:], raw)
	return c, nil
}

// Encrypt seals a value with a fresh nonce. Empty input stays empty, matching
// how optional fields are stored.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", err
	}
	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &c.key)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

func (c *Cipher) Decrypt(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}
	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil || len(raw) < 24 {
		return "", ErrDecrypt
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	plain, ok := secretbox.Open(nil, raw[24:], &nonce, &c.key)
	if !ok {
		return "", ErrDecrypt
	}
	return string(plain), nil
}
