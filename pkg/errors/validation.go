package errors

import (
	"math"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxWordLength is the longest word or translation accepted, in runes.
const MaxWordLength = 200

// ValidateWord validates a vocabulary word after trimming surrounding space.
//
// The validation rules are:
//   - No empty (or whitespace-only) words
//   - No control characters (tabs and newlines included)
//   - Maximum length of MaxWordLength runes
func ValidateWord(word string) error {
	return validateText("word", word)
}

// ValidateTranslation validates a translation with the same rules as ValidateWord.
func ValidateTranslation(translation string) error {
	return validateText("translation", translation)
}

func validateText(field, s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", field)
	}
	if !utf8.ValidString(s) {
		return New(ErrCodeInvalidInput, "%s is not valid UTF-8", field)
	}
	if n := utf8.RuneCountInString(s); n > MaxWordLength {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", field, MaxWordLength)
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", field)
		}
	}
	return nil
}

// ValidateCanvas checks that a layout canvas has a positive, finite area.
// A failing canvas must not be laid out; callers render an empty state instead.
func ValidateCanvas(width, height float64) error {
	if math.IsNaN(width) || math.IsNaN(height) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return New(ErrCodeInvalidGeometry, "canvas size must be finite")
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidGeometry, "canvas size must be positive, got %gx%g", width, height)
	}
	return nil
}

// ValidatePublicURL checks the base URL the server advertises in its QR
// code: http or https with a host, and no query or fragment to which
// "/wall.svg" could not be appended.
func ValidatePublicURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "public URL %q is malformed", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "public URL must use http or https, got %q", raw)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "public URL %q has no host", raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return New(ErrCodeInvalidInput, "public URL %q must not carry a query or fragment", raw)
	}
	return nil
}
