package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/kozaktomas/passport-photo/internal/constants"
	"github.com/kozaktomas/passport-photo/internal/passport"
)

const openAIChatModel = openai.ChatModelGPT4_1Mini

// OpenAIProvider analyzes photos with a vision chat model. It cannot
// generate images.
type OpenAIProvider struct {
	client  *openai.Client
	model   string
	pricing RequestPricing
	usage   usageTracker
}

func NewOpenAIProvider(apiKey, model string, pricing RequestPricing, opts ...option.RequestOption) (*OpenAIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openai: %w (set OPENAI_TOKEN)", ErrMissingAPIKey)
	}
	if model == "" {
		model = string(openAIChatModel)
	}

	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &OpenAIProvider{
		client:  &client,
		model:   model,
		pricing: pricing,
	}, nil
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

func (p *OpenAIProvider) GetUsage() Usage {
	return p.usage.get()
}

func (p *OpenAIProvider) ResetUsage() {
	p.usage.reset()
}

// GeneratePassportPhoto always fails: chat completions cannot return images.
func (p *OpenAIProvider) GeneratePassportPhoto(context.Context, []byte, string, passport.Options) (*GeneratedImage, error) {
	return nil, &ServiceError{Provider: p.Name(), Op: "generate", Err: ErrGenerationUnsupported}
}

func (p *OpenAIProvider) AnalyzePhoto(ctx context.Context, imageData []byte, mimeType string) (*Analysis, error) {
	const maxRetries = 3

	resizedData, err := ResizeImage(imageData, constants.AnalysisMaxImageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to resize image: %w", err)
	}
	imageURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(resizedData)

	messages := []openai.ChatCompletionMessageParamUnion{
		{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(photoCompliancePrompt),
				},
			},
		},
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
						openai.TextContentPart("Analyze this photo."),
						openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
							URL:    imageURL,
							Detail: "high",
						}),
					},
				},
			},
		},
	}

	var lastError error
	var lastResponse string

	for range maxRetries {
		resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:    openai.ChatModel(p.model),
			Messages: messages,
			ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
			},
			MaxTokens: openai.Int(500),
		})
		if err != nil {
			return nil, &ServiceError{Provider: p.Name(), Op: "analyze", Err: fmt.Errorf("OpenAI API error: %w", err)}
		}

		if len(resp.Choices) == 0 {
			return nil, &ServiceError{Provider: p.Name(), Op: "analyze", Err: errors.New("no response from OpenAI")}
		}

		if resp.Usage.PromptTokens > 0 || resp.Usage.CompletionTokens > 0 {
			p.usage.track(resp.Usage.PromptTokens, resp.Usage.CompletionTokens, p.pricing)
		}

		content := resp.Choices[0].Message.Content
		lastResponse = content

		analysis, err := parseAnalysis(content)
		if err != nil {
			lastError = err

			// Add assistant response and error feedback to messages for retry
			messages = append(messages,
				openai.ChatCompletionMessageParamUnion{
					OfAssistant: &openai.ChatCompletionAssistantMessageParam{
						Content: openai.ChatCompletionAssistantMessageParamContentUnion{
							OfString: openai.String(content),
						},
					},
				},
				openai.ChatCompletionMessageParamUnion{
					OfUser: &openai.ChatCompletionUserMessageParam{
						Content: openai.ChatCompletionUserMessageParamContentUnion{
							OfString: openai.String(fmt.Sprintf("JSON parse error: %v. Please fix the JSON and try again.", err)),
						},
					},
				},
			)
			continue
		}

		return analysis, nil
	}

	return nil, &ServiceError{
		Provider: p.Name(),
		Op:       "analyze",
		Err:      fmt.Errorf("failed to parse analysis JSON after %d attempts: %w (last response: %s)", maxRetries, lastError, lastResponse),
	}
}
