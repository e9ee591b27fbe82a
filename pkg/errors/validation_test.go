package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateWord(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Hello", false},
		{"chinese", "你好", false},
		{"surrounding space", "  World  ", false},
		{"phrase", "ice cream", false},

		{"empty", "", true},
		{"whitespace only", "   \t ", true},
		{"inner newline", "foo\nbar", true},
		{"null byte", "foo\x00bar", true},
		{"too long", strings.Repeat("a", MaxWordLength+1), true},
		{"invalid utf8", "\xff\xfe", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWord(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWord(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateWord(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateTranslationNamesField(t *testing.T) {
	err := ValidateTranslation("")
	if err == nil {
		t.Fatal("expected error for empty translation")
	}
	if !strings.Contains(UserMessage(err), "translation") {
		t.Errorf("message %q does not mention the field", UserMessage(err))
	}
}

func TestValidateCanvas(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"typical", 800, 600, false},
		{"tiny", 1, 1, false},
		{"zero width", 0, 600, true},
		{"zero height", 800, 0, true},
		{"negative", -10, 600, true},
		{"nan", math.NaN(), 600, true},
		{"inf", math.Inf(1), 600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCanvas(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCanvas(%v, %v) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidGeometry) {
				t.Errorf("ValidateCanvas returned wrong error code: %v", err)
			}
		})
	}
}

func TestValidatePublicURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"http://192.168.1.20:8080", false},
		{"https://wall.example.com/classroom", false},
		{"", true},
		{"ftp://example.com", true},
		{"example.com", true},
		{"http://", true},
		{"http://wall.local/?token=1", true},
		{"http://wall.local/#top", true},
		{"http://[::1", true},
	}

	for _, tt := range tests {
		err := ValidatePublicURL(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePublicURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidInput) {
			t.Errorf("ValidatePublicURL(%q) code = %s", tt.input, GetCode(err))
		}
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidGeometry,
		ErrCodeInvalidFormat,
		ErrCodeInvalidStyle,
		ErrCodeInvalidBackend,
		ErrCodeDuplicateWord,
		ErrCodeNotFound,
		ErrCodeWordNotFound,
		ErrCodeFileNotFound,
		ErrCodeStorage,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeRateLimited,
		ErrCodeUnauthorized,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
