// Package sheet renders passport photos into printable sheets and web-sized
// copies.
package sheet

import (
	"errors"
	"image"

	"github.com/kozaktomas/passport-photo/internal/paper"
)

// Pipeline runs layout, compositing and export for one sheet at a time.
// It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	compositor *Compositor
	exporter   *Exporter
}

// NewPipeline wires a pipeline with the default software surface.
func NewPipeline(doc DocumentEncoder) (*Pipeline, error) {
	return NewPipelineWithSurfaces(doc, nil)
}

// NewPipelineWithSurfaces wires a pipeline drawing on surfaces from factory.
func NewPipelineWithSurfaces(doc DocumentEncoder, factory SurfaceFactory) (*Pipeline, error) {
	exporter, err := NewExporter(doc)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		compositor: NewCompositor(factory),
		exporter:   exporter,
	}, nil
}

// CreatePrintableSheet tiles src onto the profile's paper and encodes it.
func (p *Pipeline) CreatePrintableSheet(src image.Image, profile paper.Profile, format Format) (Artifact, error) {
	if src == nil {
		return Artifact{}, &SourceUnavailableError{Err: errors.New("no source image")}
	}

	b := src.Bounds()
	plan, err := paper.ComputeLayoutPlan(profile, float64(b.Dx()), float64(b.Dy()))
	if err != nil {
		return Artifact{}, err
	}

	surface, err := p.compositor.Composite(plan, src)
	if err != nil {
		return Artifact{}, err
	}
	defer surface.Release()

	return p.exporter.Encode(surface, plan, format)
}
