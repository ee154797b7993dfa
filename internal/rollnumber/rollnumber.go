// Package rollnumber normalizes and validates Ontario property roll numbers.
package rollnumber

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	// MinLength is the shortest valid normalized roll number.
	MinLength = 18
	// MaxLength is the longest valid normalized roll number.
	MaxLength = 20
)

// ErrInvalid is returned for roll numbers that fail shape validation.
var ErrInvalid = errors.New("invalid roll number")

// Normalize strips whitespace and dashes from a raw roll number.
// "19-12 34-567-890123456" -> "191234567890123456"
func Normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

// IsValid reports whether a normalized roll number is all ASCII digits with a
// length between MinLength and MaxLength.
func IsValid(roll string) bool {
	if len(roll) < MinLength || len(roll) > MaxLength {
		return false
	}
	for i := 0; i < len(roll); i++ {
		if roll[i] < '0' || roll[i] > '9' {
			return false
		}
	}
	return true
}

// Parse normalizes raw and validates the result.
func Parse(raw string) (string, error) {
	roll := Normalize(raw)
	if !IsValid(roll) {
		return "", fmt.Errorf("%w: %q", ErrInvalid, raw)
	}
	return roll, nil
}

// SplitBatch splits multi-line input into raw roll numbers, one per
// non-blank line, with surrounding space trimmed.
func SplitBatch(text string) []string {
	var rolls []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rolls = append(rolls, line)
	}
	return rolls
}
