package style

import (
	"fmt"
	"strings"
)

// ColorScheme names a heading palette.
type ColorScheme string

const (
	Classic      ColorScheme = "classic"
	Modern       ColorScheme = "modern"
	Professional ColorScheme = "professional"
	Elegant      ColorScheme = "elegant"
)

// FontSize names a point-size tier.
type FontSize string

const (
	Small  FontSize = "small"
	Normal FontSize = "normal"
	Large  FontSize = "large"
)

const (
	DefaultColorScheme = Classic
	DefaultFontSize    = Normal
	DefaultFontFamily  = "Calibri"
)

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as an uppercase six-digit hex string, as used by WordprocessingML.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

type palette struct {
	heading    RGB
	subheading RGB
}

// Sizes holds point sizes for the three text roles.
type Sizes struct {
	Name    int
	Heading int
	Normal  int
}

var palettes = map[ColorScheme]palette{
	Classic:      {heading: RGB{0, 32, 96}, subheading: RGB{0, 51, 153}},
	Modern:       {heading: RGB{0, 128, 128}, subheading: RGB{0, 150, 150}},
	Professional: {heading: RGB{128, 0, 0}, subheading: RGB{153, 0, 0}},
	Elegant:      {heading: RGB{64, 64, 64}, subheading: RGB{96, 96, 96}},
}

var sizeTiers = map[FontSize]Sizes{
	Small:  {Name: 16, Heading: 12, Normal: 10},
	Normal: {Name: 18, Heading: 14, Normal: 11},
	Large:  {Name: 20, Heading: 16, Normal: 12},
}

// Config is the style selection posted by clients. Empty fields take defaults.
type Config struct {
	ColorScheme string `json:"colorScheme,omitempty"`
	FontFamily  string `json:"fontFamily,omitempty"`
	FontSize    string `json:"fontSize,omitempty"`
}

// Resolved carries the concrete rendering parameters for one render pass.
type Resolved struct {
	Scheme     ColorScheme
	Size       FontSize
	Heading    RGB
	Subheading RGB
	FontFamily string
	Sizes      Sizes
}

// ConfigError reports an unrecognized style value.
type ConfigError struct {
	Field string
	Value string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("unknown %s: %q", e.Field, e.Value)
}

// ParseColorScheme maps a client value onto a ColorScheme. The empty string
// selects the default; any other unknown value is rejected.
func ParseColorScheme(raw string) (ColorScheme, error) {
	if raw == "" {
		return DefaultColorScheme, nil
	}
	scheme := ColorScheme(raw)
	if _, ok := palettes[scheme]; !ok {
		return "", &ConfigError{Field: "colorScheme", Value: raw}
	}
	return scheme, nil
}

// ParseFontSize maps a client value onto a FontSize.
func ParseFontSize(raw string) (FontSize, error) {
	if raw == "" {
		return DefaultFontSize, nil
	}
	size := FontSize(raw)
	if _, ok := sizeTiers[size]; !ok {
		return "", &ConfigError{Field: "fontSize", Value: raw}
	}
	return size, nil
}

// Resolve turns a Config into concrete colors and point sizes.
func Resolve(cfg Config) (Resolved, error) {
	scheme, err := ParseColorScheme(cfg.ColorScheme)
	if err != nil {
		return Resolved{}, err
	}
	size, err := ParseFontSize(cfg.FontSize)
	if err != nil {
		return Resolved{}, err
	}
	font := cfg.FontFamily
	if strings.TrimSpace(font) == "" {
		font = DefaultFontFamily
	}
	p := palettes[scheme]
	return Resolved{
		Scheme:     scheme,
		Size:       size,
		Heading:    p.heading,
		Subheading: p.subheading,
		FontFamily: font,
		Sizes:      sizeTiers[size],
	}, nil
}

// Default returns the resolved style for an empty Config.
func Default() Resolved {
	resolved, _ := Resolve(Config{})
	return resolved
}

// ColorSchemes lists the known schemes in a stable order.
func ColorSchemes() []ColorScheme {
	return []ColorScheme{Classic, Modern, Professional, Elegant}
}

// FontSizes lists the known size tiers in a stable order.
func FontSizes() []FontSize {
	return []FontSize{Small, Normal, Large}
}
