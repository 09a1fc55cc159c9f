package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrNoImage means the service answered without an image or any text.
	ErrNoImage = errors.New("AI service returned no image")
	// ErrMissingAPIKey is returned when a provider is built without credentials.
	ErrMissingAPIKey = errors.New("missing API key")
	// ErrGenerationUnsupported is returned by providers that can only analyze.
	ErrGenerationUnsupported = errors.New("provider cannot generate images")
	// ErrUnknownProvider is returned by NewProvider for unsupported names.
	ErrUnknownProvider = errors.New("unknown AI provider")
)

// UserMessage is shown to users whenever the AI service fails.
const UserMessage = "The AI service could not process the photo. Please try again."

// ServiceError wraps any failure talking to the external AI service.
type ServiceError struct {
	Provider string
	Op       string // "analyze" or "generate"
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// UserMessage returns the message safe to show to end users.
func (e *ServiceError) UserMessage() string { return UserMessage }

// Retryable reports whether the user may retry the same request.
func (e *ServiceError) Retryable() bool { return true }

// TextResponseError is returned when the image model answered with text only.
type TextResponseError struct {
	Text string
}

func (e *TextResponseError) Error() string {
	return "model returned a text response instead of an image: " + e.Text
}
