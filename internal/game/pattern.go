package game

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrEmptyAnswer is returned by ValidateAnswer for blank input.
	ErrEmptyAnswer = errors.New("answer is required")
	// ErrInvalidPattern is returned when the text is not a valid pattern.
	ErrInvalidPattern = errors.New("invalid pattern")
)

// ValidateAnswer is the presentation-side check run before Answer.
// It trims the text and returns it if it is non-empty and compiles.
func ValidateAnswer(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyAnswer
	}
	if _, err := compilePattern(trimmed); err != nil {
		return "", err
	}
	return trimmed, nil
}

// IsLiteral reports whether text counts as a literal guess.
func IsLiteral(text string) bool {
	return literalRe.MatchString(strings.ToLower(strings.TrimSpace(text)))
}

// compilePattern compiles text as a case-insensitive pattern.
func compilePattern(text string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return re, nil
}
