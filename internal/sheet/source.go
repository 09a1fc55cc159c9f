package sheet

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// LoadSource decodes an image and returns it with its format name
// ("jpeg", "png", "gif", "webp", "bmp"). EXIF orientation is applied.
func LoadSource(r io.Reader) (image.Image, string, error) {
	if r == nil {
		return nil, "", &SourceUnavailableError{Err: errors.New("no reader")}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", &SourceUnavailableError{Err: err}
	}
	if len(data) == 0 {
		return nil, "", &SourceUnavailableError{Err: errors.New("empty image data")}
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", &SourceUnavailableError{Err: err}
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", &SourceUnavailableError{Err: err}
	}

	return img, format, nil
}

// ParseDataURL splits a base64 data URL into its payload and MIME type.
func ParseDataURL(s string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "data:")
	if !ok {
		return nil, "", &SourceUnavailableError{Err: errors.New("not a data URL")}
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", &SourceUnavailableError{Err: errors.New("data URL has no payload")}
	}

	mimeType, enc, _ := strings.Cut(meta, ";")
	if enc != "base64" {
		return nil, "", &SourceUnavailableError{Err: fmt.Errorf("unsupported data URL encoding %q", enc)}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", &SourceUnavailableError{Err: fmt.Errorf("decoding data URL: %w", err)}
	}

	return data, mimeType, nil
}

// LoadDataURL decodes an image carried in a data:<mime>;base64,... string.
func LoadDataURL(s string) (image.Image, string, error) {
	data, _, err := ParseDataURL(s)
	if err != nil {
		return nil, "", err
	}
	return LoadSource(bytes.NewReader(data))
}

// DataURL encodes bytes as a base64 data URL.
func DataURL(data []byte, mimeType string) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
