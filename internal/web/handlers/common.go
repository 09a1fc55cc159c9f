package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/kozaktomas/passport-photo/internal/ai"
	"github.com/kozaktomas/passport-photo/internal/constants"
	"github.com/kozaktomas/passport-photo/internal/sheet"
)

// Error messages shared by handlers.
const (
	errProcessingFailed = "processing failed, please try again"
	errNoImageReturned  = "The AI service did not return an image. Please try again."
	errPhotoNotFound    = "photo not found or expired"
	errMissingImage     = "image is required"
)

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondAIError maps an AI failure to 502 with a user-facing message.
// Failures that happened before the service was reached are local (500).
func respondAIError(w http.ResponseWriter, op string, err error) {
	log.Printf("AI %s failed: %s", op, sanitizeForLog(err.Error()))

	var svcErr *ai.ServiceError
	switch {
	case errors.Is(err, ai.ErrNoImage):
		respondError(w, http.StatusBadGateway, errNoImageReturned)
	case errors.As(err, &svcErr):
		respondError(w, http.StatusBadGateway, svcErr.UserMessage())
	default:
		respondError(w, http.StatusInternalServerError, errProcessingFailed)
	}
}

// respondArtifact sends an encoded artifact as a file download.
func respondArtifact(w http.ResponseWriter, artifact sheet.Artifact) {
	w.Header().Set("Content-Type", artifact.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(artifact.Data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(artifact.Data)
}

// upload is an image submitted by the browser.
type upload struct {
	Data     []byte
	MIMEType string
}

// readUpload reads the "image" multipart file, or an "image_data_url" form
// field carrying a base64 data URL. Only image content types are accepted.
func readUpload(w http.ResponseWriter, r *http.Request) (*upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxUploadSize)
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}

	var data []byte
	if file, _, err := r.FormFile("image"); err == nil {
		defer file.Close()
		if data, err = io.ReadAll(file); err != nil {
			return nil, fmt.Errorf("failed to read image: %w", err)
		}
	} else if dataURL := r.FormValue("image_data_url"); dataURL != "" {
		if data, _, err = sheet.ParseDataURL(dataURL); err != nil {
			return nil, err
		}
	}

	if len(data) == 0 {
		return nil, errors.New(errMissingImage)
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("unsupported file type %s", mimeType)
	}

	return &upload{Data: data, MIMEType: mimeType}, nil
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
