package cssprune

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/yacobolo/cssprune/internal/rules"
)

// LoadUsedClasses reads a class list written by CollectClasses.
// Names may be separated by whitespace or commas, a leading "." is ignored.
// A missing or unreadable list is an error; an empty list is not.
func LoadUsedClasses(path string) (rules.ClassSet, error) {
	// #nosec G304 - path comes from trusted configuration
	content, err := os.ReadFile(path)
	if err != nil {
		return rules.ClassSet{}, fmt.Errorf("load used classes: %w", err)
	}
	if !utf8.Valid(content) {
		return rules.ClassSet{}, fmt.Errorf("load used classes: %w", fileError(path, OpDecode, ErrInvalidUTF8))
	}
	return rules.ParseClassList(string(content)), nil
}
