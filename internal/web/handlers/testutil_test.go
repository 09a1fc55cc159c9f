package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/passport-photo/internal/ai"
	"github.com/kozaktomas/passport-photo/internal/passport"
	"github.com/kozaktomas/passport-photo/internal/sheet"
)

// fakeProvider is an ai.Provider with canned answers.
type fakeProvider struct {
	mu          sync.Mutex
	analysis    *ai.Analysis
	analyzeErr  error
	generated   *ai.GeneratedImage
	generateErr error
	gotOptions  passport.Options
	gotMIMEType string
	calls       int
}

func (f *fakeProvider) AnalyzePhoto(ctx context.Context, imageData []byte, mimeType string) (*ai.Analysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotMIMEType = mimeType
	return f.analysis, f.analyzeErr
}

func (f *fakeProvider) GeneratePassportPhoto(ctx context.Context, imageData []byte, mimeType string, opts passport.Options) (*ai.GeneratedImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotMIMEType = mimeType
	f.gotOptions = opts
	return f.generated, f.generateErr
}

func (f *fakeProvider) Name() string      { return "fake" }
func (f *fakeProvider) GetUsage() ai.Usage { return ai.Usage{} }
func (f *fakeProvider) ResetUsage()        {}

// createTestPNG encodes a solid-color PNG
func createTestPNG(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

// newTestPhotoHandler wires a photo handler with a real sheet pipeline
func newTestPhotoHandler(t *testing.T, provider ai.Provider) (*PhotoHandler, *PhotoStore) {
	t.Helper()
	pipeline, err := sheet.NewPipeline(sheet.NewPDFEncoder())
	if err != nil {
		t.Fatalf("failed to create pipeline: %v", err)
	}
	store := NewPhotoStore(time.Hour, 4)
	t.Cleanup(store.Stop)
	return NewPhotoHandler(provider, pipeline, passport.Default(), store, time.Minute), store
}

// multipartRequest builds a POST with an optional "image" file and form fields
func multipartRequest(t *testing.T, path string, file []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if file != nil {
		part, err := mw.CreateFormFile("image", "photo.png")
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		part.Write(file)
	}
	for key, value := range fields {
		mw.WriteField(key, value)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertContentType checks if the response has the expected content type
func assertContentType(t *testing.T, recorder *httptest.ResponseRecorder, expected string) {
	t.Helper()
	if ct := recorder.Header().Get("Content-Type"); ct != expected {
		t.Errorf("expected Content-Type '%s', got '%s'", expected, ct)
	}
}

// assertJSONError checks if the response is a JSON error with the expected message
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var result map[string]string
	parseJSONResponse(t, recorder, &result)
	if result["error"] != expectedMessage {
		t.Errorf("expected error '%s', got '%s'", expectedMessage, result["error"])
	}
}
