// Package paper describes physical print media and computes how passport photo
// copies are tiled onto them.
package paper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kozaktomas/passport-photo/internal/constants"
)

// ErrUnknownProfile is returned when a paper profile name is not registered.
var ErrUnknownProfile = errors.New("unknown paper profile")

// Orientation is the fixed working orientation of a paper profile.
type Orientation string

// Orientation values.
const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Profile is an immutable specification of a physical output medium.
// Dimensions and grid are given in the native portrait orientation.
type Profile struct {
	Name        string      `json:"name"`
	WidthIn     float64     `json:"width_in"`
	HeightIn    float64     `json:"height_in"`
	DPI         int         `json:"dpi"`
	Columns     int         `json:"columns"`
	Rows        int         `json:"rows"`
	Orientation Orientation `json:"orientation"`
	// PageSize names a standard document page size; empty means a custom page.
	PageSize string `json:"page_size,omitempty"`
}

// Copies returns the number of photo copies on one sheet.
func (p Profile) Copies() int {
	return p.Columns * p.Rows
}

// WorkingSize returns the width and height in inches after orientation is applied.
func (p Profile) WorkingSize() (float64, float64) {
	if p.Orientation == Landscape {
		return p.HeightIn, p.WidthIn
	}
	return p.WidthIn, p.HeightIn
}

// WorkingGrid returns the columns and rows after orientation is applied.
func (p Profile) WorkingGrid() (int, int) {
	if p.Orientation == Landscape {
		return p.Rows, p.Columns
	}
	return p.Columns, p.Rows
}

const mmPerInch = 25.4

// Registered paper profiles.
var (
	// Small4x6 is a 4x6 inch photo print, used portrait with a 2x3 grid.
	Small4x6 = Profile{
		Name:        "4x6",
		WidthIn:     4,
		HeightIn:    6,
		DPI:         constants.PrintDPI,
		Columns:     2,
		Rows:        3,
		Orientation: Portrait,
	}

	// LargeA4 is an A4 sheet (210x297mm), always used landscape so that four
	// copies fit on each row.
	LargeA4 = Profile{
		Name:        "A4",
		WidthIn:     210 / mmPerInch,
		HeightIn:    297 / mmPerInch,
		DPI:         constants.PrintDPI,
		Columns:     2,
		Rows:        4,
		Orientation: Landscape,
		PageSize:    "A4",
	}
)

// Default returns the profile offered first, the 4x6 print.
func Default() Profile {
	return Small4x6
}

// Profiles returns all registered profiles in display order.
func Profiles() []Profile {
	return []Profile{Small4x6, LargeA4}
}

// Lookup resolves a profile by name (case-insensitive).
func Lookup(name string) (Profile, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range Profiles() {
		if strings.ToLower(p.Name) == key {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}
