package sheet

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/draw"

	"github.com/kozaktomas/passport-photo/internal/paper"
)

type recordingSurface struct {
	bounds   image.Rectangle
	fills    []color.Color
	draws    []image.Rectangle
	released bool
}

func (s *recordingSurface) Bounds() image.Rectangle { return s.bounds }
func (s *recordingSurface) Fill(c color.Color)      { s.fills = append(s.fills, c) }
func (s *recordingSurface) DrawScaled(_ image.Image, dst image.Rectangle) {
	s.draws = append(s.draws, dst)
}
func (s *recordingSurface) Image() image.Image {
	return image.NewRGBA(s.bounds)
}
func (s *recordingSurface) Release() { s.released = true }

func recordingFactory(out **recordingSurface) SurfaceFactory {
	return func(w, h int) Surface {
		s := &recordingSurface{bounds: image.Rect(0, 0, w, h)}
		*out = s
		return s
	}
}

func fastSurface(w, h int) Surface {
	return NewRGBASurfaceWithScaler(w, h, draw.ApproxBiLinear)
}

func createTestImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func TestComposite_DrawsEveryPlacement(t *testing.T) {
	var rec *recordingSurface
	c := NewCompositor(recordingFactory(&rec))

	plan, err := paper.ComputeLayoutPlan(paper.LargeA4, 400, 600)
	if err != nil {
		t.Fatalf("ComputeLayoutPlan failed: %v", err)
	}

	surface, err := c.Composite(plan, createTestImage(400, 600, color.Black))
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}
	if surface != rec {
		t.Fatal("expected surface from factory")
	}

	if rec.bounds.Dx() != 3508 || rec.bounds.Dy() != 2480 {
		t.Errorf("expected 3508x2480 surface, got %v", rec.bounds)
	}
	if len(rec.fills) != 1 || rec.fills[0] != color.White {
		t.Errorf("expected a single white fill, got %v", rec.fills)
	}
	if len(rec.draws) != 8 {
		t.Fatalf("expected 8 draws, got %d", len(rec.draws))
	}
	for i, r := range rec.draws {
		if r != plan.Placements[i].Rect() {
			t.Errorf("draw %d: expected %v, got %v", i, plan.Placements[i].Rect(), r)
		}
	}
}

func TestComposite_WhiteBackground(t *testing.T) {
	c := NewCompositor(fastSurface)

	plan, err := paper.ComputeLayoutPlan(paper.Small4x6, 600, 600)
	if err != nil {
		t.Fatalf("ComputeLayoutPlan failed: %v", err)
	}

	surface, err := c.Composite(plan, createTestImage(600, 600, color.RGBA{R: 255, A: 255}))
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}
	defer surface.Release()

	img := surface.Image()
	if b := img.Bounds(); b.Dx() != 1200 || b.Dy() != 1800 {
		t.Fatalf("expected 1200x1800, got %v", b)
	}

	// Inside the 15px margin of the first slot.
	r, g, b, _ := img.At(5, 5).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("expected white margin, got %d,%d,%d", r>>8, g>>8, b>>8)
	}

	// Centre of the first placement.
	r, g, b, _ = img.At(300, 300).RGBA()
	if r>>8 < 250 || g>>8 > 5 || b>>8 > 5 {
		t.Errorf("expected red photo, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestComposite_NilSource(t *testing.T) {
	c := NewCompositor(nil)
	plan, _ := paper.ComputeLayoutPlan(paper.Small4x6, 10, 10)

	_, err := c.Composite(plan, nil)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestRGBASurface_Release(t *testing.T) {
	s := NewRGBASurface(10, 10)
	s.Fill(color.White)
	s.Release()

	if s.Image() != nil {
		t.Error("expected nil image after release")
	}
	if !s.Bounds().Empty() {
		t.Error("expected empty bounds after release")
	}
	// Drawing after release must not panic.
	s.DrawScaled(createTestImage(2, 2, color.Black), image.Rect(0, 0, 5, 5))
}
