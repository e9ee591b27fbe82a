package styles

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wordwall/pkg/errors"
	"github.com/matzehuels/wordwall/pkg/wall"
)

// Built-in theme names.
const (
	StyleLight = "light"
	StyleDark  = "dark"
)

// Names lists the built-in themes.
var Names = []string{StyleLight, StyleDark}

// Theme is a named set of colors for rendering.
type Theme struct {
	Name            string   `toml:"name" json:"name"`
	Background      string   `toml:"background" json:"background"`
	FontFamily      string   `toml:"font_family" json:"fontFamily"`
	Palette         []string `toml:"palette" json:"palette"`
	MasteredOpacity float64  `toml:"mastered_opacity" json:"masteredOpacity"`
}

// Light is the default theme: dark ink on white.
func Light() Theme {
	return Theme{
		Name:       StyleLight,
		Background: "#ffffff",
		FontFamily: "Helvetica, Arial, sans-serif",
		Palette: []string{
			"#34495e", "#5d6d7e", "#7f8c8d", "#839192", "#a6acaf",
			"#c0392b", "#2980b9", "#27ae60", "#8e44ad",
		},
		MasteredOpacity: 0.35,
	}
}

// Dark is the night theme.
func Dark() Theme {
	return Theme{
		Name:       StyleDark,
		Background: "#1e1f26",
		FontFamily: "Helvetica, Arial, sans-serif",
		Palette: []string{
			"#ecf0f1", "#d5dbdb", "#bfc9ca", "#aab7b8", "#95a5a6",
			"#ff6b6b", "#4dabf7", "#51cf66", "#cc5de8",
		},
		MasteredOpacity: 0.3,
	}
}

// Get returns a built-in theme by name.
func Get(name string) (Theme, error) {
	switch strings.ToLower(name) {
	case "", StyleLight:
		return Light(), nil
	case StyleDark:
		return Dark(), nil
	}
	return Theme{}, errors.New(errors.ErrCodeInvalidStyle,
		"invalid style: %q (must be one of: %s)", name, strings.Join(Names, ", "))
}

// LoadTheme reads a TOML theme file.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Theme{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "theme %s not found", path)
		}
		return Theme{}, fmt.Errorf("read theme: %w", err)
	}
	return ParseTheme(string(data))
}

// ParseTheme decodes a TOML theme on top of [Light].
func ParseTheme(data string) (Theme, error) {
	t := Light()
	t.Name = "custom"
	t.Palette = nil
	if _, err := toml.Decode(data, &t); err != nil {
		return Theme{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "parse theme")
	}
	if len(t.Palette) == 0 {
		t.Palette = Light().Palette
	}
	if err := t.Validate(); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// Validate checks colors and the palette size.
func (t Theme) Validate() error {
	if len(t.Palette) != wall.NumColorClasses {
		return errors.New(errors.ErrCodeInvalidStyle,
			"palette must have %d colors, got %d", wall.NumColorClasses, len(t.Palette))
	}
	for _, c := range append([]string{t.Background}, t.Palette...) {
		if _, err := ParseHex(c); err != nil {
			return err
		}
	}
	if t.MasteredOpacity < 0 || t.MasteredOpacity > 1 {
		return errors.New(errors.ErrCodeInvalidStyle,
			"mastered_opacity must be within [0, 1], got %g", t.MasteredOpacity)
	}
	return nil
}

// Color returns the CSS color of a color class (1-based). Out-of-range
// classes wrap around the palette.
func (t Theme) Color(class int) string {
	if len(t.Palette) == 0 {
		return "#000000"
	}
	i := (class - 1) % len(t.Palette)
	if i < 0 {
		i += len(t.Palette)
	}
	return t.Palette[i]
}

// Opacity returns the fill opacity for a word.
func (t Theme) Opacity(mastered bool) float64 {
	if mastered {
		return t.MasteredOpacity
	}
	return 1
}

// ParseHex parses #rgb or #rrggbb.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 || !strings.HasPrefix(s, "#") {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidStyle, "invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidStyle, "invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
