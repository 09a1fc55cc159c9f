package cmd

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/passport-photo/internal/ai"
	"github.com/kozaktomas/passport-photo/internal/config"
	"github.com/kozaktomas/passport-photo/internal/paper"
	"github.com/kozaktomas/passport-photo/internal/passport"
	"github.com/kozaktomas/passport-photo/internal/sheet"
)

var generateCmd = &cobra.Command{
	Use:   "generate <photo>",
	Short: "Generate a passport photo from a portrait",
	Long: `Generate a passport photo from a portrait using the AI image model.

The photo is first checked for compliance problems (skip with
--skip-analysis). Problems are reported but do not stop generation.
The generated photo is written unmodified; --sheet additionally writes a
print sheet and --web a compressed copy for online forms.`,
	Example: `  passport-photo generate selfie.jpg
  passport-photo generate selfie.jpg --country UK --background LightGray --clothing suit -o out/
  passport-photo generate selfie.jpg --sheet --paper A4 --format pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	addOptionFlags(generateCmd)
	addSheetFlags(generateCmd)
	generateCmd.Flags().String("provider", "", "AI provider to use (default from AI_PROVIDER)")
	generateCmd.Flags().Bool("skip-analysis", false, "Skip the compliance check before generating")
	generateCmd.Flags().Bool("sheet", false, "Also write a print sheet")
	generateCmd.Flags().Bool("web", false, "Also write a compressed copy for web forms")
	generateCmd.Flags().StringP("output", "o", "", "Output file or directory for the photo (default: current directory)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	out := cmd.OutOrStdout()

	opts, err := passport.ParseOptions(mustGetString(cmd, "country"), mustGetString(cmd, "background"), mustGetString(cmd, "clothing"))
	if err != nil {
		return err
	}

	// Validate sheet flags before spending an AI call.
	writeSheet := mustGetBool(cmd, "sheet")
	profile, err := paper.Lookup(mustGetString(cmd, "paper"))
	if err != nil {
		return err
	}
	format, err := sheet.ParseFormat(mustGetString(cmd, "format"))
	if err != nil {
		return err
	}

	data, mimeType, err := readImageFile(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	provider, err := ai.NewProvider(ctx, cfg, mustGetString(cmd, "provider"))
	if err != nil {
		return fmt.Errorf("creating AI provider: %w", err)
	}

	if !mustGetBool(cmd, "skip-analysis") {
		analyzeBeforeGenerate(cmd, cfg, provider, data, mimeType)
	}

	fmt.Fprintf(out, "Generating %s photo (%s background, clothing: %s)\n",
		opts.Country.Name, opts.Background.Name, opts.Clothing.Name)

	genCtx, cancel := context.WithTimeout(ctx, cfg.AI.Timeout())
	defer cancel()

	stop := startSpinner(cmd.ErrOrStderr(), "Generating")
	generated, err := provider.GeneratePassportPhoto(genCtx, data, mimeType, opts)
	stop()
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	target := mustGetString(cmd, "output")
	path, err := writeArtifact(target, sheet.SinglePhoto(generated.Data, generated.MIMEType))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved passport photo to %s\n", path)

	if writeSheet || mustGetBool(cmd, "web") {
		src, _, err := sheet.LoadSource(bytes.NewReader(generated.Data))
		if err != nil {
			return err
		}
		dir := outputDir(target)

		if writeSheet {
			pipeline, err := sheet.NewPipeline(sheet.NewPDFEncoder())
			if err != nil {
				return err
			}
			artifact, err := pipeline.CreatePrintableSheet(src, profile, format)
			if err != nil {
				return fmt.Errorf("creating print sheet: %w", err)
			}
			if path, err = writeArtifact(dir, artifact); err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved %s print sheet (%d copies) to %s\n", profile.Name, profile.Copies(), path)
		}

		if mustGetBool(cmd, "web") {
			artifact, err := sheet.Compress(src)
			if err != nil {
				return fmt.Errorf("compressing photo: %w", err)
			}
			if path, err = writeArtifact(dir, artifact); err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved web copy to %s\n", path)
		}
	}

	printUsage(out, provider)
	return nil
}

// analyzeBeforeGenerate reports compliance issues. Failures only warn.
func analyzeBeforeGenerate(cmd *cobra.Command, cfg *config.Config, provider ai.Provider, data []byte, mimeType string) {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.AI.Timeout())
	defer cancel()

	stop := startSpinner(cmd.ErrOrStderr(), "Analyzing photo")
	analysis, err := provider.AnalyzePhoto(ctx, data, mimeType)
	stop()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: photo analysis unavailable, continuing: %v\n", err)
		return
	}
	printAnalysis(cmd, analysis)
	if !analysis.IsAcceptable {
		fmt.Fprintln(cmd.OutOrStdout(), "Continuing anyway; the result may not be accepted.")
	}
}
