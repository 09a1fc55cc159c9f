package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/passport-photo/internal/ai"
	"github.com/kozaktomas/passport-photo/internal/config"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <photo>",
	Short: "Check a photo for passport compliance problems",
	Long: `Ask the AI whether a photo is suitable for a passport photo. Problems
are reported per category (lighting, pose, expression, obstructions,
background) together with a recommendation how to fix them.`,
	Example: `  passport-photo analyze selfie.jpg
  passport-photo analyze selfie.jpg --provider openai --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("provider", "", "AI provider to use: gemini or openai (default from AI_PROVIDER)")
	analyzeCmd.Flags().Bool("json", false, "Output as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	data, mimeType, err := readImageFile(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.AI.Timeout())
	defer cancel()

	provider, err := ai.NewProvider(ctx, cfg, mustGetString(cmd, "provider"))
	if err != nil {
		return fmt.Errorf("creating AI provider: %w", err)
	}

	stop := startSpinner(cmd.ErrOrStderr(), "Analyzing photo")
	analysis, err := provider.AnalyzePhoto(ctx, data, mimeType)
	stop()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if mustGetBool(cmd, "json") {
		return outputJSON(out, analysis)
	}

	printAnalysis(cmd, analysis)
	printUsage(out, provider)
	return nil
}

func printAnalysis(cmd *cobra.Command, analysis *ai.Analysis) {
	out := cmd.OutOrStdout()
	if analysis.IsAcceptable {
		fmt.Fprintln(out, "Photo is suitable for a passport photo.")
		return
	}

	fmt.Fprintf(out, "Photo has %d issue(s):\n", len(analysis.Issues))
	for _, issue := range analysis.Issues {
		fmt.Fprintf(out, "  - %s: %s\n", issue.IssueType, issue.Recommendation)
	}
}
