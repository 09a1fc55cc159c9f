package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/kozaktomas/passport-photo/internal/ai"
	"github.com/kozaktomas/passport-photo/internal/constants"
	"github.com/kozaktomas/passport-photo/internal/sheet"
)

// outputJSON writes data as indented JSON to w.
func outputJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

// readImageFile reads an image from disk and sniffs its content type.
func readImageFile(path string) ([]byte, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	if info.Size() > constants.MaxUploadSize {
		return nil, "", fmt.Errorf("%s is too large (%d bytes, max %d)", path, info.Size(), constants.MaxUploadSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, "", fmt.Errorf("%s is not an image (%s)", path, mimeType)
	}
	return data, mimeType, nil
}

// outputPath resolves where an artifact is written. An empty target means the
// artifact's own filename in the working directory; a directory target keeps
// the filename inside it.
func outputPath(target, filename string) string {
	if target == "" {
		return filename
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return filepath.Join(target, filename)
	}
	return target
}

// outputDir returns the directory companion artifacts are written to,
// next to the main output.
func outputDir(target string) string {
	if target == "" {
		return ""
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return target
	}
	return filepath.Dir(target)
}

// writeArtifact saves an artifact and returns the path written.
func writeArtifact(target string, artifact sheet.Artifact) (string, error) {
	path := outputPath(target, artifact.Filename)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// printUsage prints token usage and cost when the provider reported any.
func printUsage(w io.Writer, provider ai.Provider) {
	usage := provider.GetUsage()
	if usage.InputTokens == 0 && usage.OutputTokens == 0 {
		return
	}
	fmt.Fprintf(w, "\nAPI Usage:\n")
	fmt.Fprintf(w, "  Input tokens: %d\n", usage.InputTokens)
	fmt.Fprintf(w, "  Output tokens: %d\n", usage.OutputTokens)
	fmt.Fprintf(w, "  Total cost: $%.4f\n", usage.TotalCost)
}

// startSpinner shows an indeterminate progress spinner until the returned
// stop function is called.
func startSpinner(w io.Writer, description string) func() {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				bar.Add(1)
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		bar.Finish()
	}
}
