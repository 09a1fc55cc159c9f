package handlers

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/passport-photo/internal/ai"
	"github.com/kozaktomas/passport-photo/internal/paper"
	"github.com/kozaktomas/passport-photo/internal/passport"
	"github.com/kozaktomas/passport-photo/internal/sheet"
)

// analysisWarning is shown when compliance analysis could not run. The
// photo is then treated as acceptable so the user can still continue.
const analysisWarning = "Photo analysis is unavailable right now, continuing without it."

// PhotoHandler handles analysis, generation and downloads of passport photos.
type PhotoHandler struct {
	provider ai.Provider
	pipeline *sheet.Pipeline
	catalog  *passport.Catalog
	store    *PhotoStore
	timeout  time.Duration
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(provider ai.Provider, pipeline *sheet.Pipeline, catalog *passport.Catalog, store *PhotoStore, timeout time.Duration) *PhotoHandler {
	return &PhotoHandler{
		provider: provider,
		pipeline: pipeline,
		catalog:  catalog,
		store:    store,
		timeout:  timeout,
	}
}

type issueResponse struct {
	IssueType      string `json:"issue_type"`
	Recommendation string `json:"recommendation"`
}

type analyzeResponse struct {
	IsAcceptable bool            `json:"is_acceptable"`
	Issues       []issueResponse `json:"issues"`
	Warning      string          `json:"warning,omitempty"`
}

type generateResponse struct {
	ID        string    `json:"id"`
	MIMEType  string    `json:"mime_type"`
	DataURL   string    `json:"data_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *PhotoHandler) aiContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.timeout)
}

// Analyze checks an uploaded photo for passport compliance problems.
func (h *PhotoHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	up, err := readUpload(w, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := h.aiContext(r)
	defer cancel()

	analysis, err := h.provider.AnalyzePhoto(ctx, up.Data, up.MIMEType)
	if err != nil {
		log.Printf("Photo analysis failed, continuing without it: %s", sanitizeForLog(err.Error()))
		respondJSON(w, http.StatusOK, analyzeResponse{
			IsAcceptable: true,
			Issues:       []issueResponse{},
			Warning:      analysisWarning,
		})
		return
	}

	resp := analyzeResponse{
		IsAcceptable: analysis.IsAcceptable,
		Issues:       make([]issueResponse, 0, len(analysis.Issues)),
	}
	for _, issue := range analysis.Issues {
		resp.Issues = append(resp.Issues, issueResponse{
			IssueType:      issue.IssueType,
			Recommendation: issue.Recommendation,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

// Generate turns an uploaded photo into a passport photo and keeps it in the store.
func (h *PhotoHandler) Generate(w http.ResponseWriter, r *http.Request) {
	up, err := readUpload(w, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts, err := h.catalog.ParseOptions(r.FormValue("country"), r.FormValue("background"), r.FormValue("clothing"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := h.aiContext(r)
	defer cancel()

	generated, err := h.provider.GeneratePassportPhoto(ctx, up.Data, up.MIMEType, opts)
	if err != nil {
		respondAIError(w, "generation", err)
		return
	}

	photo := h.store.Add(generated.Data, generated.MIMEType, opts)
	log.Printf("Generated passport photo %s (%s, %s)", photo.ID, opts.Country.Key, opts.Background.Key)

	respondJSON(w, http.StatusCreated, generateResponse{
		ID:        photo.ID,
		MIMEType:  photo.MIMEType,
		DataURL:   sheet.DataURL(photo.Data, photo.MIMEType),
		ExpiresAt: photo.ExpiresAt,
	})
}

func (h *PhotoHandler) lookup(w http.ResponseWriter, r *http.Request) (*StoredPhoto, bool) {
	photo, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, errPhotoNotFound)
		return nil, false
	}
	return photo, true
}

// Download returns the generated photo unmodified.
func (h *PhotoHandler) Download(w http.ResponseWriter, r *http.Request) {
	photo, ok := h.lookup(w, r)
	if !ok {
		return
	}
	respondArtifact(w, sheet.SinglePhoto(photo.Data, photo.MIMEType))
}

// Sheet renders the generated photo tiled onto a print sheet.
// Query parameters "paper" and "format" default to 4x6 and jpeg.
func (h *PhotoHandler) Sheet(w http.ResponseWriter, r *http.Request) {
	profile := paper.Default()
	if name := r.URL.Query().Get("paper"); name != "" {
		p, err := paper.Lookup(name)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		profile = p
	}

	format := sheet.FormatJPEG
	if f := r.URL.Query().Get("format"); f != "" {
		parsed, err := sheet.ParseFormat(f)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		format = parsed
	}

	photo, ok := h.lookup(w, r)
	if !ok {
		return
	}

	src, _, err := sheet.LoadSource(bytes.NewReader(photo.Data))
	if err != nil {
		log.Printf("Failed to decode photo %s: %v", photo.ID, err)
		respondError(w, http.StatusInternalServerError, errProcessingFailed)
		return
	}

	artifact, err := h.pipeline.CreatePrintableSheet(src, profile, format)
	if err != nil {
		log.Printf("Failed to create %s sheet for photo %s: %v", profile.Name, photo.ID, err)
		respondError(w, http.StatusInternalServerError, errProcessingFailed)
		return
	}
	respondArtifact(w, artifact)
}

// Web returns a compressed JPEG copy of the generated photo for online forms.
func (h *PhotoHandler) Web(w http.ResponseWriter, r *http.Request) {
	photo, ok := h.lookup(w, r)
	if !ok {
		return
	}

	src, _, err := sheet.LoadSource(bytes.NewReader(photo.Data))
	if err == nil {
		var artifact sheet.Artifact
		if artifact, err = sheet.Compress(src); err == nil {
			respondArtifact(w, artifact)
			return
		}
	}

	log.Printf("Failed to compress photo %s: %v", photo.ID, err)
	respondError(w, http.StatusInternalServerError, errProcessingFailed)
}

// Delete discards a generated photo before it expires.
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.store.Delete(chi.URLParam(r, "id")) {
		respondError(w, http.StatusNotFound, errPhotoNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
