package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestNewAndWrap(t *testing.T) {
	err := New(ErrCodeDuplicateWord, "word %q already exists", "Tree")
	if err.Code != ErrCodeDuplicateWord || err.Message != `word "Tree" already exists` {
		t.Errorf("New() = %+v", err)
	}
	if got := err.Error(); got != `DUPLICATE_WORD: word "Tree" already exists` {
		t.Errorf("Error() = %q", got)
	}

	wrapped := Wrap(ErrCodeStorage, fs.ErrPermission, "save %s", "words.json")
	if wrapped.Cause != fs.ErrPermission {
		t.Errorf("Cause = %v", wrapped.Cause)
	}
	if !errors.Is(wrapped, fs.ErrPermission) {
		t.Error("errors.Is should see the cause")
	}
	if got := wrapped.Error(); got != "STORAGE_ERROR: save words.json: permission denied" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsAndGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		is   Code
		want bool
	}{
		{"direct", New(ErrCodeWordNotFound, "no word 7"), ErrCodeWordNotFound, ErrCodeWordNotFound, true},
		{"other code", New(ErrCodeWordNotFound, "no word 7"), ErrCodeWordNotFound, ErrCodeDuplicateWord, false},
		{"outer code wins", Wrap(ErrCodeStorage, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeStorage, ErrCodeInvalidInput, false},
		{"through fmt wrapping", fmt.Errorf("import: %w", New(ErrCodeInvalidFormat, "bad yaml")), ErrCodeInvalidFormat, ErrCodeInvalidFormat, true},
		{"plain", errors.New("plain"), "", ErrCodeInternal, false},
		{"nil", nil, "", ErrCodeInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if got := Is(tt.err, tt.is); got != tt.want {
				t.Errorf("Is(%s) = %v, want %v", tt.is, got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeInvalidInput, "word cannot be empty"), "word cannot be empty"},
		{"plain", errors.New("plain error"), "plain error"},
		{"validation hides cause", Wrap(ErrCodeInvalidFormat, errors.New("line 3: unexpected ':'"), "words.yaml is not valid YAML"), "words.yaml is not valid YAML"},
		{"storage keeps cause", Wrap(ErrCodeStorage, fs.ErrPermission, "save words.json"), "save words.json: permission denied"},
		{"nested causes", Wrap(ErrCodeNetwork, Wrap(ErrCodeTimeout, errors.New("deadline exceeded"), "openai timed out"), "suggest"), "suggest: openai timed out: deadline exceeded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidGeometry, "bad canvas"), 400},
		{New(ErrCodeInvalidBackend, "unknown backend"), 400},
		{New(ErrCodeUnauthorized, "bad key"), 401},
		{New(ErrCodeWordNotFound, "missing"), 404},
		{New(ErrCodeDuplicateWord, "dup"), 409},
		{New(ErrCodeRateLimited, "slow down"), 429},
		{Wrap(ErrCodeInternal, New(ErrCodeWordNotFound, "inner"), "outer"), 500},
		{errors.New("plain"), 500},
		{New(ErrCodeUnsupported, "no provider"), 501},
		{New(ErrCodeStorage, "mongo down"), 502},
		{New(ErrCodeTimeout, "slow provider"), 504},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
