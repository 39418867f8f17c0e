// file: internal/isbn/isbn.go
// version: 1.0.0
// guid: 3f8a1c2d-4b5e-6f70-8a91-b2c3d4e5f607

package isbn

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalid is returned when an ISBN fails its checksum or has an
// unusable length.
var ErrInvalid = errors.New("invalid ISBN")

// ErrNotConvertible is returned when a valid ISBN-13 cannot be expressed
// as an ISBN-10 because it does not carry the 978 Bookland prefix.
var ErrNotConvertible = errors.New("ISBN not convertible")

// Strip removes everything that is not a letter or digit, then replaces
// any remaining non-digit character with 'X' so the ISBN-10 check
// character survives normalization.
func Strip(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsLetter(r) || r == '_':
			b.WriteByte('X')
		}
	}
	return b.String()
}

// IsValid reports whether the input is a valid ISBN-10 or ISBN-13.
// Any other stripped length is simply invalid.
func IsValid(raw string) bool {
	switch len(Strip(raw)) {
	case 10:
		return IsValid10(raw)
	case 13:
		return IsValid13(raw)
	default:
		return false
	}
}

// IsValid10 validates an ISBN-10 checksum: digits weighted 10 down to 1,
// with 'X' counting as 10. Valid iff the sum is divisible by 11.
func IsValid10(raw string) bool {
	s := Strip(raw)
	if len(s) != 10 {
		return false
	}
	sum := 0
	weight := 10
	for _, c := range s {
		v, ok := digitValue(c)
		if !ok {
			return false
		}
		sum += weight * v
		weight--
	}
	return sum%11 == 0
}

// IsValid13 validates an ISBN-13 checksum: alternating weights 1 and 3
// over all thirteen digits. Valid iff the sum is divisible by 10.
func IsValid13(raw string) bool {
	s := Strip(raw)
	if len(s) != 13 {
		return false
	}
	sum := 0
	for i, c := range s {
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if i%2 == 0 {
			sum += d
		} else {
			sum += 3 * d
		}
	}
	return sum%10 == 0
}

// CheckDigit10 computes the ISBN-10 check character for a 9-digit stem.
// Weights run 10 down to 2; 11-(sum mod 11) maps 10 to "X" and 11 to "0".
func CheckDigit10(stem string) (string, error) {
	s := Strip(stem)
	if len(s) != 9 {
		return "", ErrInvalid
	}
	sum := 0
	weight := 10
	for _, c := range s {
		if c < '0' || c > '9' {
			return "", ErrInvalid
		}
		sum += weight * int(c-'0')
		weight--
	}
	switch check := 11 - (sum % 11); check {
	case 10:
		return "X", nil
	case 11:
		return "0", nil
	default:
		return string(rune('0' + check)), nil
	}
}

// CheckDigit13 computes the ISBN-13 check digit for a 12-digit stem
// using the alternating 1,3 weighting. 10-(sum mod 10) maps 10 to "0".
func CheckDigit13(stem string) (string, error) {
	s := Strip(stem)
	if len(s) != 12 {
		return "", ErrInvalid
	}
	sum := 0
	for i, c := range s {
		if c < '0' || c > '9' {
			return "", ErrInvalid
		}
		d := int(c - '0')
		if i%2 == 0 {
			sum += d
		} else {
			sum += 3 * d
		}
	}
	if check := 10 - (sum % 10); check != 10 {
		return string(rune('0' + check)), nil
	}
	return "0", nil
}

// Convert turns a valid ISBN-10 into its ISBN-13 form or a valid
// 978-prefixed ISBN-13 into its ISBN-10 form. Conversion of an invalid
// ISBN fails with ErrInvalid; a non-978 ISBN-13 fails with
// ErrNotConvertible.
func Convert(raw string) (string, error) {
	s := Strip(raw)
	if !IsValid(s) {
		return "", ErrInvalid
	}
	if len(s) == 10 {
		stem := "978" + s[:9]
		check, err := CheckDigit13(stem)
		if err != nil {
			return "", err
		}
		return stem + check, nil
	}
	if !strings.HasPrefix(s, "978") {
		return "", ErrNotConvertible
	}
	stem := s[3 : len(s)-1]
	check, err := CheckDigit10(stem)
	if err != nil {
		return "", err
	}
	return stem + check, nil
}

// To13 normalizes a valid ISBN of either length to its stripped ISBN-13
// form.
func To13(raw string) (string, error) {
	s := Strip(raw)
	if !IsValid(s) {
		return "", ErrInvalid
	}
	if len(s) == 13 {
		return s, nil
	}
	return Convert(s)
}

// To10 normalizes a valid ISBN of either length to its stripped ISBN-10
// form. Fails with ErrNotConvertible for non-978 ISBN-13s.
func To10(raw string) (string, error) {
	s := Strip(raw)
	if !IsValid(s) {
		return "", ErrInvalid
	}
	if len(s) == 10 {
		return s, nil
	}
	return Convert(s)
}

func digitValue(c rune) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c == 'X' || c == 'x':
		return 10, true
	default:
		return 0, false
	}
}
