package cache

import "fmt"

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey identifies a layout of a word snapshot.
	LayoutKey(wordsHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string

	// TranslationKey identifies a translation suggestion.
	TranslationKey(provider, model, word string) string
}

// LayoutKeyOpts are the options that change a computed layout.
type LayoutKeyOpts struct {
	Width       float64 `json:"w"`
	Height      float64 `json:"h"`
	Seed        uint64  `json:"seed"`
	MaxAttempts int     `json:"attempts"`
	Collision   float64 `json:"collision"`
	Measurer    string  `json:"measurer"`
	Correct     bool    `json:"correct"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Style  string  `json:"style"`
	Theme  string  `json:"theme,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
	Engine string  `json:"engine,omitempty"`
}

// DefaultKeyer hashes key options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(wordsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", wordsHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

func (DefaultKeyer) TranslationKey(provider, model, word string) string {
	return fmt.Sprintf("translate:%s:%s:%s", provider, model, word)
}
