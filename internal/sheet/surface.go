package sheet

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Surface is an in-memory raster the compositor draws onto. It is owned by a
// single export call and must be released once encoded.
type Surface interface {
	Bounds() image.Rectangle
	Fill(c color.Color)
	DrawScaled(src image.Image, dst image.Rectangle)
	Image() image.Image
	Release()
}

// SurfaceFactory allocates a surface of the given pixel size.
type SurfaceFactory func(width, height int) Surface

// RGBASurface is a software-rendered Surface backed by image.RGBA.
type RGBASurface struct {
	img    *image.RGBA
	scaler draw.Scaler
}

// NewRGBASurface allocates a surface resampling with Catmull-Rom.
func NewRGBASurface(width, height int) Surface {
	return NewRGBASurfaceWithScaler(width, height, draw.CatmullRom)
}

// NewRGBASurfaceWithScaler allocates a surface using the given resampler.
func NewRGBASurfaceWithScaler(width, height int, scaler draw.Scaler) *RGBASurface {
	return &RGBASurface{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		scaler: scaler,
	}
}

func (s *RGBASurface) Bounds() image.Rectangle {
	if s.img == nil {
		return image.Rectangle{}
	}
	return s.img.Bounds()
}

func (s *RGBASurface) Fill(c color.Color) {
	if s.img == nil {
		return
	}
	draw.Draw(s.img, s.img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// DrawScaled scales the whole of src into dst, compositing over the current content.
func (s *RGBASurface) DrawScaled(src image.Image, dst image.Rectangle) {
	if s.img == nil || dst.Empty() {
		return
	}
	s.scaler.Scale(s.img, dst, src, src.Bounds(), draw.Over, nil)
}

func (s *RGBASurface) Image() image.Image {
	if s.img == nil {
		return nil
	}
	return s.img
}

// Release drops the pixel buffer so it can be reclaimed.
func (s *RGBASurface) Release() {
	s.img = nil
}
