package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/kozaktomas/passport-photo/internal/constants"
	"github.com/kozaktomas/passport-photo/internal/paper"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported export formats.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export encoding for a print sheet.
type Format string

// Supported export formats.
const (
	FormatJPEG Format = "jpeg"
	FormatPDF  Format = "pdf"
)

// Formats returns the supported formats in display order.
func Formats() []Format {
	return []Format{FormatJPEG, FormatPDF}
}

// ParseFormat resolves a format name. "jpg" is accepted as an alias of jpeg.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// MIMEType returns the content type of the encoded artifact.
func (f Format) MIMEType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "image/jpeg"
}

// Artifact is an encoded output ready to be offered as a download.
type Artifact struct {
	Data     []byte
	MIMEType string
	Filename string
	// Pixel size of the rendered raster; zero for passthrough artifacts.
	Width  int
	Height int
}

// Exporter serializes a composited surface into a downloadable artifact.
type Exporter struct {
	doc DocumentEncoder
}

// NewExporter binds the document encoder used for PDF output.
func NewExporter(doc DocumentEncoder) (*Exporter, error) {
	if doc == nil {
		return nil, &DependencyUnavailableError{Name: "document encoder"}
	}
	return &Exporter{doc: doc}, nil
}

// Encode renders the surface as a quality-95 JPEG, or as a single page
// document sized to the plan's paper with that JPEG placed full-bleed.
func (e *Exporter) Encode(surface Surface, plan paper.LayoutPlan, format Format) (Artifact, error) {
	if surface == nil || surface.Image() == nil {
		return Artifact{}, &EncodingError{Format: format, Err: errors.New("no surface")}
	}

	jpegData, err := encodeJPEG(surface.Image(), constants.SheetJPEGQuality)
	if err != nil {
		return Artifact{}, &EncodingError{Format: format, Err: err}
	}

	b := surface.Bounds()
	artifact := Artifact{
		MIMEType: format.MIMEType(),
		Filename: fmt.Sprintf("%s.%s", constants.SheetFilenameBase, format),
		Width:    b.Dx(),
		Height:   b.Dy(),
	}

	switch format {
	case FormatJPEG:
		artifact.Data = jpegData
	case FormatPDF:
		var buf bytes.Buffer
		if err := e.doc.EncodePage(&buf, PageSpecFor(plan.Profile), jpegData); err != nil {
			return Artifact{}, &EncodingError{Format: format, Err: err}
		}
		artifact.Data = buf.Bytes()
	default:
		return Artifact{}, &EncodingError{Format: format, Err: ErrUnknownFormat}
	}

	return artifact, nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
