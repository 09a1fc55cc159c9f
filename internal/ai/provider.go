package ai

import (
	"context"
	"sync"

	"github.com/kozaktomas/passport-photo/internal/passport"
)

// Issue is a single compliance problem found in an uploaded photo.
type Issue struct {
	IssueType      string `json:"issueType"`
	Recommendation string `json:"recommendation"`
}

// Analysis is the AI's verdict on whether a photo can become a passport photo.
type Analysis struct {
	IsAcceptable bool    `json:"isAcceptable"`
	Issues       []Issue `json:"issues"`
}

// GeneratedImage is the passport photo returned by the generation model.
type GeneratedImage struct {
	Data     []byte
	MIMEType string
}

// Analyzer checks a photo for passport compliance problems.
type Analyzer interface {
	AnalyzePhoto(ctx context.Context, imageData []byte, mimeType string) (*Analysis, error)
}

// Generator turns a photo into a passport photo following the chosen options.
// It returns ErrNoImage when the service answered with neither image nor text.
type Generator interface {
	GeneratePassportPhoto(ctx context.Context, imageData []byte, mimeType string, opts passport.Options) (*GeneratedImage, error)
}

// Provider defines the interface for AI backends.
type Provider interface {
	Analyzer
	Generator
	Name() string

	// Usage tracking.
	GetUsage() Usage
	ResetUsage()
}

// Usage tracks token usage and calculates cost.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalCost    float64 // in USD
}

// RequestPricing holds input/output prices per 1M tokens
type RequestPricing struct {
	Input  float64
	Output float64
}

// usageTracker accumulates usage across concurrent requests.
type usageTracker struct {
	mu    sync.Mutex
	usage Usage
}

func (t *usageTracker) track(inputTokens, outputTokens int64, pricing RequestPricing) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.usage.InputTokens += int(inputTokens)
	t.usage.OutputTokens += int(outputTokens)
	t.usage.TotalCost += float64(inputTokens) / 1_000_000 * pricing.Input
	t.usage.TotalCost += float64(outputTokens) / 1_000_000 * pricing.Output
}

func (t *usageTracker) get() Usage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.usage
}

func (t *usageTracker) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.usage = Usage{}
}
