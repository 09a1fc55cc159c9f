package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/kozaktomas/passport-photo/internal/constants"
	"github.com/kozaktomas/passport-photo/internal/passport"
)

const (
	geminiImageModel    = "gemini-2.5-flash-image"
	geminiAnalysisModel = "gemini-2.5-flash"
)

// GeminiOptions configures a GeminiProvider. Empty models select the defaults.
type GeminiOptions struct {
	APIKey          string
	ImageModel      string
	AnalysisModel   string
	ImagePricing    RequestPricing
	AnalysisPricing RequestPricing
	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string
}

type GeminiProvider struct {
	client          *genai.Client
	imageModel      string
	analysisModel   string
	imagePricing    RequestPricing
	analysisPricing RequestPricing
	usage           usageTracker
}

func NewGeminiProvider(ctx context.Context, opts GeminiOptions) (*GeminiProvider, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("gemini: %w (set GEMINI_API_KEY)", ErrMissingAPIKey)
	}

	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	p := &GeminiProvider{
		client:          client,
		imageModel:      opts.ImageModel,
		analysisModel:   opts.AnalysisModel,
		imagePricing:    opts.ImagePricing,
		analysisPricing: opts.AnalysisPricing,
	}
	if p.imageModel == "" {
		p.imageModel = geminiImageModel
	}
	if p.analysisModel == "" {
		p.analysisModel = geminiAnalysisModel
	}
	return p, nil
}

func (p *GeminiProvider) Name() string {
	return "gemini"
}

func (p *GeminiProvider) GetUsage() Usage {
	return p.usage.get()
}

func (p *GeminiProvider) ResetUsage() {
	p.usage.reset()
}

func (p *GeminiProvider) trackUsage(result *genai.GenerateContentResponse, pricing RequestPricing) {
	if result.UsageMetadata != nil {
		p.usage.track(int64(result.UsageMetadata.PromptTokenCount), int64(result.UsageMetadata.CandidatesTokenCount), pricing)
	}
}

func (p *GeminiProvider) serviceError(op string, err error) error {
	return &ServiceError{Provider: p.Name(), Op: op, Err: err}
}

// GeneratePassportPhoto sends the original photo with the generation prompt
// and returns the first inline image of the reply.
func (p *GeminiProvider) GeneratePassportPhoto(ctx context.Context, imageData []byte, mimeType string, opts passport.Options) (*GeneratedImage, error) {
	prompt, err := buildGenerationPrompt(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build generation prompt: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{Data: imageData, MIMEType: mimeType}},
				{Text: prompt},
			},
		},
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}

	result, err := p.client.Models.GenerateContent(ctx, p.imageModel, contents, config)
	if err != nil {
		return nil, p.serviceError("generate", fmt.Errorf("gemini API error: %w", err))
	}
	p.trackUsage(result, p.imagePricing)

	img, err := extractGeneratedImage(result)
	if err != nil {
		if errors.Is(err, ErrNoImage) {
			return nil, err
		}
		return nil, p.serviceError("generate", err)
	}
	return img, nil
}

// extractGeneratedImage returns the first inline image of the first candidate.
// A reply with text only is a TextResponseError.
func extractGeneratedImage(result *genai.GenerateContentResponse) (*GeneratedImage, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, ErrNoImage
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			return &GeneratedImage{Data: part.InlineData.Data, MIMEType: mimeType}, nil
		}
		text.WriteString(part.Text)
	}

	if s := strings.TrimSpace(text.String()); s != "" {
		return nil, &TextResponseError{Text: s}
	}
	return nil, ErrNoImage
}

func analysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"isAcceptable": {Type: genai.TypeBoolean},
			"issues": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"issueType":      {Type: genai.TypeString, Description: "e.g., Lighting, Expression, Background"},
						"recommendation": {Type: genai.TypeString, Description: "A brief, user-friendly tip to fix the issue."},
					},
				},
			},
		},
		Required: []string{"isAcceptable", "issues"},
	}
}

// AnalyzePhoto checks a downscaled copy of the photo against the compliance prompt.
func (p *GeminiProvider) AnalyzePhoto(ctx context.Context, imageData []byte, mimeType string) (*Analysis, error) {
	const maxRetries = 3

	resizedData, err := ResizeImage(imageData, constants.AnalysisMaxImageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to resize image: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{Data: resizedData, MIMEType: "image/jpeg"}},
				{Text: photoCompliancePrompt},
			},
		},
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   analysisSchema(),
	}

	var lastError error
	var lastResponse string

	for range maxRetries {
		result, err := p.client.Models.GenerateContent(ctx, p.analysisModel, contents, config)
		if err != nil {
			return nil, p.serviceError("analyze", fmt.Errorf("gemini API error: %w", err))
		}
		p.trackUsage(result, p.analysisPricing)

		content := result.Text()
		if content == "" {
			return nil, p.serviceError("analyze", errors.New("no response from Gemini"))
		}
		lastResponse = content

		analysis, err := parseAnalysis(content)
		if err != nil {
			lastError = err

			// Add model response and error feedback to contents for retry
			contents = append(contents,
				&genai.Content{
					Role:  "model",
					Parts: []*genai.Part{{Text: content}},
				},
				&genai.Content{
					Role:  "user",
					Parts: []*genai.Part{{Text: fmt.Sprintf("JSON parse error: %v. Please fix the JSON and try again.", err)}},
				},
			)
			continue
		}

		return analysis, nil
	}

	return nil, p.serviceError("analyze", fmt.Errorf("failed to parse analysis JSON after %d attempts: %w (last response: %s)", maxRetries, lastError, lastResponse))
}
