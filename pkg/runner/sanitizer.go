package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 4KB (conservative default)
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "TOYROBOT_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge     = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8       = errors.New("input contains invalid UTF-8 sequences")
	ErrControlCharacters = errors.New("input contains control characters")
)

// SanitizeInput checks a command line using the limit resolved from the environment.
func SanitizeInput(input string) (string, error) {
	return SanitizeInputWithLimit(input, getMaxInputSize())
}

// SanitizeInputWithLimit checks a command line against a size limit, UTF-8 validity
// and control characters. Accepted lines are returned unchanged; nothing is stripped
// or truncated, since an edited line could turn into a different valid command.
func SanitizeInputWithLimit(input string, limit int) (string, error) {
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// Tabs are allowed: they may separate PLACE from its arguments.
	if i := strings.IndexFunc(input, isUnsafeControl); i >= 0 {
		return "", fmt.Errorf("%w: offset=%d", ErrControlCharacters, i)
	}
	return input, nil
}

func isUnsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}

func getMaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
