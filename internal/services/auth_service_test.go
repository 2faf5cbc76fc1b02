package services_test

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"golang.org/x/crypto/argon2"

	"unobhala/internal/services"
)

// encodeArgon2id produces the standard encoded form any argon2 tool emits.
func encodeArgon2id(t *testing.T, password string) string {
	t.Helper()
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		t.Fatal(err)
	}
	var (
		mem   uint32 = 64 * 1024
		iters uint32 = 1
		par   uint8  = 2
	)
	hash := argon2.IDKey([]byte(password), salt, iters, mem, par, 32)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, mem, iters, par,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))
}

func TestLoginAcceptsCorrectCredential(t *testing.T) {
	svc := services.NewAuthService("admin", encodeArgon2id(t, "unoBhala#2024"))

	if err := svc.Login("admin", "unoBhala#2024"); err != nil {
		t.Fatalf("valid credential rejected: %v", err)
	}
	// Username whitespace is tolerated, the password is not.
	if err := svc.Login("  admin  ", "unoBhala#2024"); err != nil {
		t.Fatalf("trimmed username rejected: %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := services.NewAuthService("admin", encodeArgon2id(t, "unoBhala#2024"))

	cases := []struct{ user, pass string }{
		{"admin", "wrong"},
		{"admin", ""},
		{"root", "unoBhala#2024"},
		{"", "unoBhala#2024"},
		{"admin", "unoBhala#2024 "},
	}
	for _, tc := range cases {
		if err := svc.Login(tc.user, tc.pass); !errors.Is(err, services.ErrBadCreds) {
			t.Fatalf("login(%q, %q): want ErrBadCreds, got %v", tc.user, tc.pass, err)
		}
	}
}

func TestLoginRejectsMalformedStoredHash(t *testing.T) {
	for _, hash := range []string{"", "plaintext", "$argon2i$v=19$m=65536,t=1,p=2$abc$def"} {
		svc := services.NewAuthService("admin", hash)
		if err := svc.Login("admin", "anything"); !errors.Is(err, services.ErrBadCreds) {
			t.Fatalf("hash %q: want ErrBadCreds, got %v", hash, err)
		}
	}
}
