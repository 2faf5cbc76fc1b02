package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	rePhone = regexp.MustCompile(`^[0-9+][0-9 ()-]{6,19}$`)
	reQ     = regexp.MustCompile(`^[A-Za-z0-9 _'\-]{1,50}$`)
	reGrade = regexp.MustCompile(`^[A-Za-z0-9 \-]{1,20}$`)
)

// Name validates a required displayable name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

// Email validates an optional email; empty is allowed.
func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	if len(s) > 60 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Grade(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reGrade.MatchString(s)
}

// Q validates a catalog search query: trims, clamps length, restricts characters.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}
