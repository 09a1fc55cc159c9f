package sheet

import (
	"bytes"
	"errors"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/kozaktomas/passport-photo/internal/paper"
)

// PageSpec is the physical page a sheet is placed on. Width and height are
// given in the native portrait orientation, in inches.
type PageSpec struct {
	WidthIn      float64
	HeightIn     float64
	Orientation  paper.Orientation
	StandardSize string
}

// PageSpecFor derives the document page for a paper profile.
func PageSpecFor(p paper.Profile) PageSpec {
	return PageSpec{
		WidthIn:      p.WidthIn,
		HeightIn:     p.HeightIn,
		Orientation:  p.Orientation,
		StandardSize: p.PageSize,
	}
}

// DocumentEncoder writes a single-page document holding a full-bleed JPEG.
type DocumentEncoder interface {
	EncodePage(w io.Writer, page PageSpec, jpegData []byte) error
}

// PDFEncoder renders pages with gofpdf.
type PDFEncoder struct{}

// NewPDFEncoder creates the default document encoder.
func NewPDFEncoder() *PDFEncoder {
	return &PDFEncoder{}
}

func (e *PDFEncoder) EncodePage(w io.Writer, page PageSpec, jpegData []byte) error {
	if len(jpegData) == 0 {
		return errors.New("no page image")
	}

	orientation := "P"
	if page.Orientation == paper.Landscape {
		orientation = "L"
	}

	cfg := &gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "in",
	}
	if page.StandardSize != "" {
		cfg.SizeStr = page.StandardSize
	} else {
		cfg.Size = gofpdf.SizeType{Wd: page.WidthIn, Ht: page.HeightIn}
	}

	pdf := gofpdf.NewCustom(cfg)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader("sheet", opts, bytes.NewReader(jpegData))

	pageW, pageH := pdf.GetPageSize()
	pdf.ImageOptions("sheet", 0, 0, pageW, pageH, false, opts, 0, "")

	return pdf.Output(w)
}
