package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	rePhone = regexp.MustCompile(`^\+?[0-9 -]{7,20}$`)
)

// BuyerName validates the primary display name (marketplace handle or full
// name). Required on every order.
func BuyerName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Email validates an optional e-mail; empty is fine.
func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	if len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Phone validates an optional phone number; empty is fine.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, rePhone.MatchString(s)
}

// Milliliters parses a volume typed with either decimal separator.
func Milliliters(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// Money parses a non-negative amount typed with either decimal separator.
// Empty means zero, matching how the add-perfume form has always behaved.
func Money(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
