// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Print layout constants
const (
	// PrintDPI is the rasterization density used for every paper profile
	PrintDPI = 300

	// SlotFillRatio is the share of a slot the photo may occupy in its limiting dimension
	SlotFillRatio = 0.95
)

// Encoding constants
const (
	// SheetJPEGQuality is the JPEG quality for print sheets and the PDF page raster
	SheetJPEGQuality = 95

	// WebJPEGQuality is the JPEG quality for the compressed web copy
	WebJPEGQuality = 70
)

// Download filename constants
const (
	// SheetFilenameBase is the filename (without extension) of a print sheet
	SheetFilenameBase = "passport-photos-sheet"

	// SinglePhotoFilename is the filename of the unmodified generated photo
	SinglePhotoFilename = "passport-photo.png"

	// WebPhotoFilename is the filename of the compressed web copy
	WebPhotoFilename = "passport-photo-web.jpg"
)

// AI constants
const (
	// AnalysisMaxImageSize is the maximum dimension sent to the AI for compliance analysis
	AnalysisMaxImageSize = 1024

	// DefaultAITimeoutSeconds bounds a single generation or analysis call
	DefaultAITimeoutSeconds = 180
)
