package anonymizer

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrEmptyName is returned for names that are empty or whitespace only
var ErrEmptyName = errors.New("anonymizer: empty name")

// Initials abbreviates a name to the uppercased first letter of each whitespace-separated token.
// "Mary Jane Watson" becomes "MJW". The result cannot be reversed into the name.
func Initials(name string) (string, error) {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return "", ErrEmptyName
	}

	var b strings.Builder
	b.Grow(len(tokens))

	for _, token := range tokens {
		r, _ := utf8.DecodeRuneInString(token)
		b.WriteRune(unicode.ToUpper(r))
	}

	return b.String(), nil
}
