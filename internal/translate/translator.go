// Package translate talks to the external translation capability.
package translate

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrDisabled            = errors.New("translation is disabled")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// Translator translates a single text from source to target language.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

type disabled struct{}

// Disabled returns a Translator that always fails with ErrDisabled.
func Disabled() Translator {
	return disabled{}
}

func (disabled) Translate(context.Context, string, string, string) (string, error) {
	return "", ErrDisabled
}
