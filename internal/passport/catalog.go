// Package passport holds the catalog of passport photo options (country crop
// sizes, background colors and clothing) used to steer photo generation.
package passport

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Country is a passport photo standard identified by its issuing country.
type Country struct {
	Key     string   `yaml:"key" json:"key"`
	Name    string   `yaml:"name" json:"name"`
	Aliases []string `yaml:"aliases" json:"-"`
	Width   float64  `yaml:"width" json:"width"`
	Height  float64  `yaml:"height" json:"height"`
	Unit    string   `yaml:"unit" json:"unit"` // "in" or "mm"
}

// Size formats the crop size as used in prompts, e.g. "2x2 inches" or "35x45mm".
func (c Country) Size() string {
	w := strconv.FormatFloat(c.Width, 'f', -1, 64)
	h := strconv.FormatFloat(c.Height, 'f', -1, 64)
	if c.Unit == "in" {
		return w + "x" + h + " inches"
	}
	return w + "x" + h + c.Unit
}

// AspectRatio returns width divided by height of the crop.
func (c Country) AspectRatio() float64 {
	if c.Height == 0 {
		return 0
	}
	return c.Width / c.Height
}

// Background is a solid background color the photo is placed on.
type Background struct {
	Key     string   `yaml:"key" json:"key"`
	Name    string   `yaml:"name" json:"name"`
	Aliases []string `yaml:"aliases" json:"-"`
	Hex     string   `yaml:"hex" json:"hex"`
}

// Clothing is an optional outfit replacement.
type Clothing struct {
	Key     string   `yaml:"key" json:"key"`
	Name    string   `yaml:"name" json:"name"`
	Aliases []string `yaml:"aliases" json:"-"`
	// Prompt is empty when the original clothing is kept.
	Prompt string `yaml:"prompt" json:"-"`
}

// Catalog lists every selectable option.
type Catalog struct {
	Countries   []Country    `yaml:"countries" json:"countries"`
	Backgrounds []Background `yaml:"backgrounds" json:"backgrounds"`
	Clothing    []Clothing   `yaml:"clothing" json:"clothing"`
	Tips        []string     `yaml:"tips" json:"tips"`
}

var catalog = mustLoadCatalog()

func mustLoadCatalog() *Catalog {
	c, err := parseCatalog(catalogYAML)
	if err != nil {
		// Embedded file, so this only fails on a broken build.
		panic("failed to load embedded catalog.yaml: " + err.Error())
	}
	return c
}

func parseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if len(c.Countries) == 0 || len(c.Backgrounds) == 0 || len(c.Clothing) == 0 {
		return nil, errors.New("catalog is missing countries, backgrounds or clothing")
	}
	for _, country := range c.Countries {
		if country.Width <= 0 || country.Height <= 0 {
			return nil, fmt.Errorf("country %q has an invalid size", country.Key)
		}
	}
	return &c, nil
}

// Default returns the shared option catalog.
func Default() *Catalog {
	return catalog
}

// Tips returns the capture recommendations shown before a photo is uploaded.
func Tips() []string {
	return append([]string(nil), catalog.Tips...)
}
