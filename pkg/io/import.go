package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/wordwall/pkg/errors"
	"github.com/matzehuels/wordwall/pkg/vocab"
)

// Supported file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "txt"
)

// Formats lists the supported formats.
var Formats = []string{FormatJSON, FormatYAML, FormatText}

// ReadJSON decodes a JSON word array from r, skipping unusable entries.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]vocab.Word, error) {
	var raw any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON")
	}
	return fromList(raw)
}

// ReadYAML decodes a YAML word list from r, with the same rules as ReadJSON.
func ReadYAML(r io.Reader) ([]vocab.Word, error) {
	var raw any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode YAML")
	}
	return fromList(raw)
}

// ReadText parses "word = translation" lines.
func ReadText(r io.Reader) ([]vocab.Word, error) {
	var words []vocab.Word
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, translation, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if w, ok := entry(strings.TrimSpace(word), strings.TrimSpace(translation)); ok {
			words = append(words, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return nonEmpty(words)
}

// Import reads the file at path, choosing the format from its extension.
// Unknown extensions are read as JSON.
func Import(path string) ([]vocab.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch FormatFromPath(path) {
	case FormatYAML:
		return ReadYAML(f)
	case FormatText:
		return ReadText(f)
	default:
		return ReadJSON(f)
	}
}

// FormatFromPath maps a file extension to a format name.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".txt":
		return FormatText
	default:
		return FormatJSON
	}
}

func fromList(raw any) ([]vocab.Word, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "expected a list of words")
	}

	var words []vocab.Word
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		word, ok1 := obj["word"].(string)
		translation, ok2 := obj["translation"].(string)
		if !ok1 || !ok2 {
			continue
		}
		if w, ok := entry(word, translation); ok {
			w.Mastered = truthy(obj["mastered"])
			words = append(words, w)
		}
	}
	return nonEmpty(words)
}

func entry(word, translation string) (vocab.Word, bool) {
	if errors.ValidateWord(word) != nil || errors.ValidateTranslation(translation) != nil {
		return vocab.Word{}, false
	}
	return vocab.Word{Text: strings.TrimSpace(word), Translation: strings.TrimSpace(translation)}, true
}

func nonEmpty(words []vocab.Word) ([]vocab.Word, error) {
	if len(words) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no valid words found")
	}
	return words, nil
}

// truthy follows JavaScript's Boolean() conversion for decoded values.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	default:
		return true
	}
}
