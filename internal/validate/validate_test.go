package validate_test

import (
	"strings"
	"testing"

	"unobhala/internal/validate"
)

func TestName(t *testing.T) {
	if got, ok := validate.Name("  Nomsa Dlamini  "); !ok || got != "Nomsa Dlamini" {
		t.Fatalf("want trimmed name, got %q %v", got, ok)
	}
	if _, ok := validate.Name("   "); ok {
		t.Fatal("blank name must fail")
	}
	if _, ok := validate.Name(strings.Repeat("a", 61)); ok {
		t.Fatal("overlong name must fail")
	}
}

func TestPhone(t *testing.T) {
	good := []string{"0821234567", "+27 82 123 4567", "012 345-6789"}
	for _, s := range good {
		if _, ok := validate.Phone(s); !ok {
			t.Fatalf("%q must validate", s)
		}
	}
	bad := []string{"", "12345", "phone", "082<script>", "0" + strings.Repeat("1", 25)}
	for _, s := range bad {
		if _, ok := validate.Phone(s); ok {
			t.Fatalf("%q must fail", s)
		}
	}
}

func TestEmailOptional(t *testing.T) {
	if got, ok := validate.Email(""); !ok || got != "" {
		t.Fatal("empty email is allowed")
	}
	if _, ok := validate.Email("thandi@example.com"); !ok {
		t.Fatal("plain address must validate")
	}
	if _, ok := validate.Email("not-an-email"); ok {
		t.Fatal("malformed address must fail")
	}
}

func TestGrade(t *testing.T) {
	if got, ok := validate.Grade(" Grade 8 "); !ok || got != "Grade 8" {
		t.Fatalf("want Grade 8, got %q %v", got, ok)
	}
	if _, ok := validate.Grade(""); ok {
		t.Fatal("empty grade must fail")
	}
	if _, ok := validate.Grade("Grade 8; DROP TABLE"); ok {
		t.Fatal("punctuation must fail")
	}
}

func TestQ(t *testing.T) {
	if got, ok := validate.Q(" maths "); !ok || got != "maths" {
		t.Fatalf("want maths, got %q %v", got, ok)
	}
	if _, ok := validate.Q("%' OR 1=1 --"); ok {
		t.Fatal("query metacharacters must fail")
	}
	long, ok := validate.Q(strings.Repeat("a", 80))
	if !ok || len(long) != 50 {
		t.Fatalf("long query must clamp to 50, got %d %v", len(long), ok)
	}
}
