// Package constants provides shared constants used across the codebase.
package constants

// File upload constants
const (
	// MaxUploadSize is the maximum file upload size in bytes (25MB)
	MaxUploadSize = 25 << 20
)

// Photo store constants
const (
	// DefaultPhotoTTLMinutes is how long a generated photo stays available for downloads
	DefaultPhotoTTLMinutes = 30

	// DefaultPhotoStoreMax is the maximum number of generated photos kept in memory
	DefaultPhotoStoreMax = 16
)
