package passport

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownOption is returned when a country, background or clothing key is not in the catalog.
var ErrUnknownOption = errors.New("unknown option")

// Default option keys.
const (
	DefaultCountry    = "USA"
	DefaultBackground = "OffWhite"
	DefaultClothing   = "none"
)

// Options is the resolved set of choices for one generation request.
type Options struct {
	Country    Country    `json:"country"`
	Background Background `json:"background"`
	Clothing   Clothing   `json:"clothing"`
}

// DefaultOptions returns USA, off-white background and unchanged clothing.
func DefaultOptions() Options {
	opts, err := ParseOptions("", "", "")
	if err != nil {
		panic("catalog defaults are missing: " + err.Error())
	}
	return opts
}

// ParseOptions resolves option keys. Empty strings select the defaults.
func ParseOptions(country, background, clothing string) (Options, error) {
	return catalog.ParseOptions(country, background, clothing)
}

// ParseOptions resolves option keys against this catalog.
func (c *Catalog) ParseOptions(country, background, clothing string) (Options, error) {
	var opts Options
	var err error

	if opts.Country, err = c.FindCountry(orDefault(country, DefaultCountry)); err != nil {
		return Options{}, err
	}
	if opts.Background, err = c.FindBackground(orDefault(background, DefaultBackground)); err != nil {
		return Options{}, err
	}
	if opts.Clothing, err = c.FindClothing(orDefault(clothing, DefaultClothing)); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// FindCountry looks up a country by key, name or alias.
func (c *Catalog) FindCountry(key string) (Country, error) {
	want := normalizeKey(key)
	for _, country := range c.Countries {
		if matches(want, country.Key, country.Name, country.Aliases) {
			return country, nil
		}
	}
	return Country{}, fmt.Errorf("%w: country %q", ErrUnknownOption, key)
}

// FindBackground looks up a background by key, name or alias.
func (c *Catalog) FindBackground(key string) (Background, error) {
	want := normalizeKey(key)
	for _, bg := range c.Backgrounds {
		if matches(want, bg.Key, bg.Name, bg.Aliases) {
			return bg, nil
		}
	}
	return Background{}, fmt.Errorf("%w: background %q", ErrUnknownOption, key)
}

// FindClothing looks up a clothing option by key, name or alias.
func (c *Catalog) FindClothing(key string) (Clothing, error) {
	want := normalizeKey(key)
	for _, cl := range c.Clothing {
		if matches(want, cl.Key, cl.Name, cl.Aliases) {
			return cl, nil
		}
	}
	return Clothing{}, fmt.Errorf("%w: clothing %q", ErrUnknownOption, key)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func matches(want, key, name string, aliases []string) bool {
	if want == "" {
		return false
	}
	if want == normalizeKey(key) || want == normalizeKey(name) {
		return true
	}
	for _, a := range aliases {
		if want == normalizeKey(a) {
			return true
		}
	}
	return false
}

// removeDiacritics removes diacritical marks from a string (e.g., "Čína" -> "Cina").
func removeDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// normalizeKey folds case, diacritics and separators so "Off-White",
// "off white" and "OffWhite" compare equal.
func normalizeKey(s string) string {
	s = strings.ToLower(removeDiacritics(s))
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '_' || r == '.' {
			return -1
		}
		return r
	}, s)
}
