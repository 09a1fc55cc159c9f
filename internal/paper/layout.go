package paper

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/kozaktomas/passport-photo/internal/constants"
)

// ErrInvalidDimension matches every InvalidDimensionError via errors.Is.
var ErrInvalidDimension = errors.New("invalid source dimension")

// InvalidDimensionError reports a non-positive or non-finite source size.
type InvalidDimensionError struct {
	Width  float64
	Height float64
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("invalid source dimensions %vx%v: width and height must be positive and finite", e.Width, e.Height)
}

// Is makes errors.Is(err, ErrInvalidDimension) work.
func (e *InvalidDimensionError) Is(target error) bool {
	return target == ErrInvalidDimension
}

// Slot is one grid cell reserved for a photo copy (pixels, top-left origin).
type Slot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Placement is the scaled, centered position of a photo copy within its slot.
type Placement struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect rounds the placement to whole pixels for drawing.
func (p Placement) Rect() image.Rectangle {
	x0 := int(math.Round(p.X))
	y0 := int(math.Round(p.Y))
	x1 := int(math.Round(p.X + p.Width))
	y1 := int(math.Round(p.Y + p.Height))
	return image.Rect(x0, y0, x1, y1)
}

// LayoutPlan is the fully resolved pixel geometry of one print sheet.
type LayoutPlan struct {
	Profile          Profile     `json:"profile"`
	Orientation      Orientation `json:"orientation"`
	PixelWidth       int         `json:"pixel_width"`
	PixelHeight      int         `json:"pixel_height"`
	EffectiveColumns int         `json:"effective_columns"`
	EffectiveRows    int         `json:"effective_rows"`
	Slots            []Slot      `json:"slots"`
	Placements       []Placement `json:"placements"`
}

// SlotWidth returns the width of every slot in pixels.
func (l LayoutPlan) SlotWidth() float64 {
	return float64(l.PixelWidth) / float64(l.EffectiveColumns)
}

// SlotHeight returns the height of every slot in pixels.
func (l LayoutPlan) SlotHeight() float64 {
	return float64(l.PixelHeight) / float64(l.EffectiveRows)
}

func validDimension(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// ComputeLayoutPlan tiles the profile's sheet into equal slots and fits a
// source of the given pixel size into each one, centered and capped at
// SlotFillRatio of the slot. It is pure and deterministic.
func ComputeLayoutPlan(profile Profile, sourceWidth, sourceHeight float64) (LayoutPlan, error) {
	if !validDimension(sourceWidth) || !validDimension(sourceHeight) {
		return LayoutPlan{}, &InvalidDimensionError{Width: sourceWidth, Height: sourceHeight}
	}

	widthIn, heightIn := profile.WorkingSize()
	cols, rows := profile.WorkingGrid()
	if cols < 1 || rows < 1 || profile.DPI < 1 {
		return LayoutPlan{}, fmt.Errorf("paper profile %q has an empty grid", profile.Name)
	}

	plan := LayoutPlan{
		Profile:          profile,
		Orientation:      profile.Orientation,
		PixelWidth:       int(math.Round(widthIn * float64(profile.DPI))),
		PixelHeight:      int(math.Round(heightIn * float64(profile.DPI))),
		EffectiveColumns: cols,
		EffectiveRows:    rows,
		Slots:            make([]Slot, 0, cols*rows),
		Placements:       make([]Placement, 0, cols*rows),
	}

	slotW := plan.SlotWidth()
	slotH := plan.SlotHeight()

	// The scale is identical for every slot.
	scale := min(slotW/sourceWidth, slotH/sourceHeight) * constants.SlotFillRatio
	destW := sourceWidth * scale
	destH := sourceHeight * scale

	for row := range rows {
		for col := range cols {
			slot := Slot{
				X:      float64(col) * slotW,
				Y:      float64(row) * slotH,
				Width:  slotW,
				Height: slotH,
			}
			plan.Slots = append(plan.Slots, slot)
			plan.Placements = append(plan.Placements, Placement{
				X:      slot.X + (slotW-destW)/2,
				Y:      slot.Y + (slotH-destH)/2,
				Width:  destW,
				Height: destH,
			})
		}
	}

	return plan, nil
}

// AspectRatio returns width divided by height, or 0 for invalid input.
func AspectRatio(width, height float64) float64 {
	if !validDimension(width) || !validDimension(height) {
		return 0
	}
	return width / height
}
