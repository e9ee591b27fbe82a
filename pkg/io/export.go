package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/wordwall/pkg/errors"
	"github.com/matzehuels/wordwall/pkg/vocab"
)

// ExportPrefix starts every default export file name.
const ExportPrefix = "vocabulary"

type record struct {
	Word        string `json:"word" yaml:"word"`
	Translation string `json:"translation" yaml:"translation"`
	Mastered    bool   `json:"mastered" yaml:"mastered"`
}

func records(words []vocab.Word) []record {
	out := make([]record, len(words))
	for i, w := range words {
		out[i] = record{Word: w.Text, Translation: w.Translation, Mastered: w.Mastered}
	}
	return out
}

// WriteJSON writes words as an indented JSON array.
func WriteJSON(w io.Writer, words []vocab.Word) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records(words)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML writes words as a YAML list.
func WriteYAML(w io.Writer, words []vocab.Word) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records(words)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// Write encodes words in the named format.
func Write(w io.Writer, words []vocab.Word, format string) error {
	switch format {
	case FormatJSON, "":
		return WriteJSON(w, words)
	case FormatYAML:
		return WriteYAML(w, words)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "cannot export format %q (valid: json, yaml)", format)
	}
}

// Export writes words to path in the named format.
func Export(path string, words []vocab.Word, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, words, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// DefaultExportName returns e.g. "vocabulary_2024-05-01.json".
func DefaultExportName(t time.Time, format string) string {
	if format == "" {
		format = FormatJSON
	}
	return fmt.Sprintf("%s_%s.%s", ExportPrefix, t.Format("2006-01-02"), format)
}
