package services

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// AuthService checks the single shared back-office credential. The stored
// hash uses the standard argon2id encoding
// ($argon2id$v=19$m=...,t=...,p=...$salt$hash), so hashes produced by any
// argon2 tooling work unchanged.
type AuthService struct {
	Username     string
	PasswordHash string
}

func NewAuthService(username, passwordHash string) *AuthService {
	return &AuthService{Username: username, PasswordHash: passwordHash}
}

func (s *AuthService) Login(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || username != s.Username {
		return ErrBadCreds
	}
	ok, err := verifyArgon2id(s.PasswordHash, password)
	if err != nil || !ok {
		return ErrBadCreds
	}
	return nil
}

func verifyArgon2id(encoded, password string) (bool, error) {
	parts := strings.Split(encoded, "$")
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, hash
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, fmt.Errorf("unsupported hash format")
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, err
	}
	if version != argon2.Version {
		return false, fmt.Errorf("unsupported argon2 version %d", version)
	}
	var mem uint32
	var iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return false, err
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, err
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, err
	}
	got := argon2.IDKey([]byte(password), salt, iters, mem, par, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
