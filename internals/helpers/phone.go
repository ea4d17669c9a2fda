package helper

import (
	"errors"
	"strings"
)

// ErrInvalidPhone means the number does not reduce to a Philippine mobile
// (10 digits starting with 9) after stripping prefixes.
var ErrInvalidPhone = errors.New("invalid Philippine mobile number")

// mobileCore strips a raw phone string down to the bare 10-digit mobile
// core (9XXXXXXXXX). Both output formats derive from this single
// intermediate so the two call sites can never drift apart.
func mobileCore(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "63"):
		digits = digits[2:]
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		digits = digits[1:]
	}

	if len(digits) != 10 || digits[0] != '9' {
		return "", ErrInvalidPhone
	}
	return digits, nil
}

// LocalPhone returns the 09XXXXXXXXX form used for storage and validation.
func LocalPhone(raw string) (string, error) {
	core, err := mobileCore(raw)
	if err != nil {
		return "", err
	}
	return "0" + core, nil
}

// InternationalPhone returns the 63XXXXXXXXXX form the SMS gateway expects.
func InternationalPhone(raw string) (string, error) {
	core, err := mobileCore(raw)
	if err != nil {
		return "", err
	}
	return "63" + core, nil
}
