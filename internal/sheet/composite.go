package sheet

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/kozaktomas/passport-photo/internal/paper"
)

// Compositor renders a layout plan onto a fresh surface.
type Compositor struct {
	newSurface SurfaceFactory
}

// NewCompositor creates a compositor. A nil factory selects NewRGBASurface.
func NewCompositor(factory SurfaceFactory) *Compositor {
	if factory == nil {
		factory = NewRGBASurface
	}
	return &Compositor{newSurface: factory}
}

// Composite fills a PixelWidth x PixelHeight surface with opaque white and
// draws the whole source, scaled, into every placement. The caller owns the
// returned surface and must Release it.
func (c *Compositor) Composite(plan paper.LayoutPlan, src image.Image) (Surface, error) {
	if src == nil {
		return nil, &SourceUnavailableError{Err: errors.New("no source image")}
	}
	if src.Bounds().Empty() {
		return nil, &SourceUnavailableError{Err: errors.New("source image is empty")}
	}
	if plan.PixelWidth < 1 || plan.PixelHeight < 1 {
		return nil, fmt.Errorf("layout plan has no area (%dx%d)", plan.PixelWidth, plan.PixelHeight)
	}

	surface := c.newSurface(plan.PixelWidth, plan.PixelHeight)
	surface.Fill(color.White)
	for _, p := range plan.Placements {
		surface.DrawScaled(src, p.Rect())
	}

	return surface, nil
}
