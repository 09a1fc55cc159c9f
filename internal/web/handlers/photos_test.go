package handlers

import (
	"bytes"
	"errors"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kozaktomas/passport-photo/internal/ai"
	"github.com/kozaktomas/passport-photo/internal/passport"
)

func TestPhotoHandler_Analyze(t *testing.T) {
	provider := &fakeProvider{analysis: &ai.Analysis{
		IsAcceptable: false,
		Issues:       []ai.Issue{{IssueType: "Lighting", Recommendation: "Face a window."}},
	}}
	h, _ := newTestPhotoHandler(t, provider)

	recorder := httptest.NewRecorder()
	h.Analyze(recorder, multipartRequest(t, "/api/v1/photos/analyze", createTestPNG(t, 10, 10, color.White), nil))

	assertStatusCode(t, recorder, http.StatusOK)
	var result analyzeResponse
	parseJSONResponse(t, recorder, &result)
	if result.IsAcceptable {
		t.Error("expected photo to be rejected")
	}
	if len(result.Issues) != 1 || result.Issues[0].IssueType != "Lighting" || result.Issues[0].Recommendation != "Face a window." {
		t.Errorf("unexpected issues %+v", result.Issues)
	}
	if result.Warning != "" {
		t.Errorf("expected no warning, got %q", result.Warning)
	}
	if provider.gotMIMEType != "image/png" {
		t.Errorf("expected detected MIME type image/png, got %s", provider.gotMIMEType)
	}
}

func TestPhotoHandler_AnalyzeFailureIsNonBlocking(t *testing.T) {
	provider := &fakeProvider{analyzeErr: &ai.ServiceError{Provider: "fake", Op: "analyze", Err: errors.New("boom")}}
	h, _ := newTestPhotoHandler(t, provider)

	recorder := httptest.NewRecorder()
	h.Analyze(recorder, multipartRequest(t, "/api/v1/photos/analyze", createTestPNG(t, 10, 10, color.White), nil))

	assertStatusCode(t, recorder, http.StatusOK)
	var raw map[string]any
	parseJSONResponse(t, recorder, &raw)
	if raw["is_acceptable"] != true {
		t.Errorf("expected photo to be treated as acceptable, got %v", raw["is_acceptable"])
	}
	if issues, ok := raw["issues"].([]any); !ok || len(issues) != 0 {
		t.Errorf("expected an empty issues list, got %v", raw["issues"])
	}
	if raw["warning"] != analysisWarning {
		t.Errorf("expected warning, got %v", raw["warning"])
	}
}

func TestPhotoHandler_AnalyzeBadUpload(t *testing.T) {
	provider := &fakeProvider{}
	h, _ := newTestPhotoHandler(t, provider)

	recorder := httptest.NewRecorder()
	h.Analyze(recorder, multipartRequest(t, "/api/v1/photos/analyze", nil, nil))

	assertStatusCode(t, recorder, http.StatusBadRequest)
	assertJSONError(t, recorder, errMissingImage)
	if provider.calls != 0 {
		t.Error("provider must not be called without an image")
	}
}

func TestPhotoHandler_Generate(t *testing.T) {
	generated := createTestPNG(t, 60, 80, color.RGBA{R: 200, G: 180, B: 160, A: 255})
	provider := &fakeProvider{generated: &ai.GeneratedImage{Data: generated, MIMEType: "image/png"}}
	h, store := newTestPhotoHandler(t, provider)

	recorder := httptest.NewRecorder()
	h.Generate(recorder, multipartRequest(t, "/api/v1/photos/generate", createTestPNG(t, 10, 10, color.White), map[string]string{
		"country":    "canada",
		"background": "Light Blue",
		"clothing":   "suit",
	}))

	assertStatusCode(t, recorder, http.StatusCreated)
	var result generateResponse
	parseJSONResponse(t, recorder, &result)

	if result.ID == "" || result.MIMEType != "image/png" {
		t.Errorf("unexpected response %+v", result)
	}
	if !strings.HasPrefix(result.DataURL, "data:image/png;base64,") {
		t.Errorf("expected a PNG data URL, got %.40s", result.DataURL)
	}
	if provider.gotOptions.Country.Key != "Canada" || provider.gotOptions.Background.Key != "LightBlue" || provider.gotOptions.Clothing.Key != "suit" {
		t.Errorf("unexpected options %+v", provider.gotOptions)
	}

	stored, ok := store.Get(result.ID)
	if !ok || !bytes.Equal(stored.Data, generated) {
		t.Error("expected generated photo to be stored")
	}
}

func TestPhotoHandler_GenerateDefaults(t *testing.T) {
	provider := &fakeProvider{generated: &ai.GeneratedImage{Data: createTestPNG(t, 4, 4, color.White), MIMEType: "image/png"}}
	h, _ := newTestPhotoHandler(t, provider)

	recorder := httptest.NewRecorder()
	h.Generate(recorder, multipartRequest(t, "/api/v1/photos/generate", createTestPNG(t, 4, 4, color.White), nil))

	assertStatusCode(t, recorder, http.StatusCreated)
	want := passport.DefaultOptions()
	if provider.gotOptions.Country.Key != want.Country.Key || provider.gotOptions.Background.Key != want.Background.Key {
		t.Errorf("expected default options, got %+v", provider.gotOptions)
	}
}

func TestPhotoHandler_GenerateErrors(t *testing.T) {
	tests := []struct {
		name       string
		provider   *fakeProvider
		fields     map[string]string
		wantStatus int
		wantError  string
	}{
		{
			name:       "unknown country",
			provider:   &fakeProvider{},
			fields:     map[string]string{"country": "Atlantis"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no image returned",
			provider:   &fakeProvider{generateErr: ai.ErrNoImage},
			wantStatus: http.StatusBadGateway,
			wantError:  errNoImageReturned,
		},
		{
			name:       "service failure",
			provider:   &fakeProvider{generateErr: &ai.ServiceError{Provider: "fake", Op: "generate", Err: errors.New("503")}},
			wantStatus: http.StatusBadGateway,
			wantError:  ai.UserMessage,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, store := newTestPhotoHandler(t, tc.provider)

			recorder := httptest.NewRecorder()
			h.Generate(recorder, multipartRequest(t, "/api/v1/photos/generate", createTestPNG(t, 4, 4, color.White), tc.fields))

			assertStatusCode(t, recorder, tc.wantStatus)
			if tc.wantError != "" {
				assertJSONError(t, recorder, tc.wantError)
			}
			if store.Len() != 0 {
				t.Error("nothing should be stored on failure")
			}
		})
	}
}

func storeTestPhoto(t *testing.T, store *PhotoStore) *StoredPhoto {
	t.Helper()
	return store.Add(createTestPNG(t, 30, 40, color.RGBA{R: 10, G: 120, B: 220, A: 255}), "image/png", passport.DefaultOptions())
}

func TestPhotoHandler_Download(t *testing.T) {
	h, store := newTestPhotoHandler(t, &fakeProvider{})
	photo := storeTestPhoto(t, store)

	recorder := httptest.NewRecorder()
	req := requestWithChiParams(httptest.NewRequest(http.MethodGet, "/api/v1/photos/"+photo.ID, nil), map[string]string{"id": photo.ID})
	h.Download(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)
	assertContentType(t, recorder, "image/png")
	if !strings.Contains(recorder.Header().Get("Content-Disposition"), "passport-photo.png") {
		t.Errorf("unexpected Content-Disposition %q", recorder.Header().Get("Content-Disposition"))
	}
	if !bytes.Equal(recorder.Body.Bytes(), photo.Data) {
		t.Error("expected the photo bytes unmodified")
	}
}

func TestPhotoHandler_SheetJPEG(t *testing.T) {
	h, store := newTestPhotoHandler(t, &fakeProvider{})
	photo := storeTestPhoto(t, store)

	recorder := httptest.NewRecorder()
	req := requestWithChiParams(httptest.NewRequest(http.MethodGet, "/api/v1/photos/"+photo.ID+"/sheet", nil), map[string]string{"id": photo.ID})
	h.Sheet(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)
	assertContentType(t, recorder, "image/jpeg")
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(recorder.Body.Bytes()))
	if err != nil {
		t.Fatalf("expected a JPEG sheet: %v", err)
	}
	if cfg.Width != 1200 || cfg.Height != 1800 {
		t.Errorf("expected the default 4x6 sheet at 1200x1800, got %dx%d", cfg.Width, cfg.Height)
	}
	if !strings.Contains(recorder.Header().Get("Content-Disposition"), "passport-photos-sheet.jpeg") {
		t.Errorf("unexpected Content-Disposition %q", recorder.Header().Get("Content-Disposition"))
	}
}

func TestPhotoHandler_SheetPDF(t *testing.T) {
	h, store := newTestPhotoHandler(t, &fakeProvider{})
	photo := storeTestPhoto(t, store)

	recorder := httptest.NewRecorder()
	req := requestWithChiParams(httptest.NewRequest(http.MethodGet, "/api/v1/photos/"+photo.ID+"/sheet?paper=4x6&format=pdf", nil), map[string]string{"id": photo.ID})
	h.Sheet(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)
	assertContentType(t, recorder, "application/pdf")
	if !bytes.HasPrefix(recorder.Body.Bytes(), []byte("%PDF-")) {
		t.Error("expected a PDF document")
	}
}

func TestPhotoHandler_SheetErrors(t *testing.T) {
	h, store := newTestPhotoHandler(t, &fakeProvider{})
	photo := storeTestPhoto(t, store)

	tests := []struct {
		name       string
		id         string
		query      string
		wantStatus int
	}{
		{"unknown paper", photo.ID, "?paper=letter", http.StatusBadRequest},
		{"unknown format", photo.ID, "?format=tiff", http.StatusBadRequest},
		{"unknown photo", "missing", "", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			req := requestWithChiParams(httptest.NewRequest(http.MethodGet, "/api/v1/photos/"+tc.id+"/sheet"+tc.query, nil), map[string]string{"id": tc.id})
			h.Sheet(recorder, req)

			assertStatusCode(t, recorder, tc.wantStatus)
		})
	}
}

func TestPhotoHandler_SheetUndecodablePhoto(t *testing.T) {
	h, store := newTestPhotoHandler(t, &fakeProvider{})
	photo := store.Add([]byte("not an image"), "image/png", passport.DefaultOptions())

	recorder := httptest.NewRecorder()
	req := requestWithChiParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": photo.ID})
	h.Sheet(recorder, req)

	assertStatusCode(t, recorder, http.StatusInternalServerError)
	assertJSONError(t, recorder, errProcessingFailed)
}

func TestPhotoHandler_Web(t *testing.T) {
	h, store := newTestPhotoHandler(t, &fakeProvider{})
	photo := storeTestPhoto(t, store)

	recorder := httptest.NewRecorder()
	req := requestWithChiParams(httptest.NewRequest(http.MethodGet, "/api/v1/photos/"+photo.ID+"/web", nil), map[string]string{"id": photo.ID})
	h.Web(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)
	assertContentType(t, recorder, "image/jpeg")
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(recorder.Body.Bytes()))
	if err != nil {
		t.Fatalf("expected a JPEG: %v", err)
	}
	if cfg.Width != 30 || cfg.Height != 40 {
		t.Errorf("expected original 30x40 dimensions, got %dx%d", cfg.Width, cfg.Height)
	}
	if !strings.Contains(recorder.Header().Get("Content-Disposition"), "passport-photo-web.jpg") {
		t.Errorf("unexpected Content-Disposition %q", recorder.Header().Get("Content-Disposition"))
	}
}

func TestPhotoHandler_Delete(t *testing.T) {
	h, store := newTestPhotoHandler(t, &fakeProvider{})
	photo := storeTestPhoto(t, store)

	recorder := httptest.NewRecorder()
	h.Delete(recorder, requestWithChiParams(httptest.NewRequest(http.MethodDelete, "/", nil), map[string]string{"id": photo.ID}))
	assertStatusCode(t, recorder, http.StatusNoContent)

	recorder = httptest.NewRecorder()
	h.Delete(recorder, requestWithChiParams(httptest.NewRequest(http.MethodDelete, "/", nil), map[string]string{"id": photo.ID}))
	assertStatusCode(t, recorder, http.StatusNotFound)
	assertJSONError(t, recorder, errPhotoNotFound)
}
