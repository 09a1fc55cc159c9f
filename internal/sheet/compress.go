package sheet

import (
	"errors"
	"image"
	"image/color"
	"mime"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/kozaktomas/passport-photo/internal/constants"
)

// Compress re-encodes a photo as a quality-70 JPEG for web upload forms,
// keeping its pixel dimensions. Transparent pixels are flattened onto white.
func Compress(src image.Image) (Artifact, error) {
	if src == nil || src.Bounds().Empty() {
		return Artifact{}, &SourceUnavailableError{Err: errors.New("no source image")}
	}

	b := src.Bounds()
	flat := imaging.New(b.Dx(), b.Dy(), color.White)
	flat = imaging.Overlay(flat, src, image.Point{}, 1.0)

	data, err := encodeJPEG(flat, constants.WebJPEGQuality)
	if err != nil {
		return Artifact{}, &EncodingError{Format: FormatJPEG, Err: err}
	}

	return Artifact{
		Data:     data,
		MIMEType: "image/jpeg",
		Filename: constants.WebPhotoFilename,
		Width:    b.Dx(),
		Height:   b.Dy(),
	}, nil
}

// SinglePhoto wraps the generated photo bytes unmodified for download.
func SinglePhoto(data []byte, mimeType string) Artifact {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return Artifact{
		Data:     data,
		MIMEType: mimeType,
		Filename: singlePhotoFilename(mimeType),
	}
}

func singlePhotoFilename(mimeType string) string {
	if mimeType == "image/png" {
		return constants.SinglePhotoFilename
	}

	base := strings.TrimSuffix(constants.SinglePhotoFilename, ".png")
	switch mimeType {
	case "image/jpeg":
		return base + ".jpg"
	case "image/webp":
		return base + ".webp"
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return base + exts[0]
	}
	return constants.SinglePhotoFilename
}
