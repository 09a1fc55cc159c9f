package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/passport-photo/internal/paper"
	"github.com/kozaktomas/passport-photo/internal/sheet"
)

var sheetCmd = &cobra.Command{
	Use:   "sheet <passport-photo>",
	Short: "Lay out copies of a passport photo on a print sheet",
	Long: `Tile copies of an existing passport photo onto a 4x6 inch print
(6 copies) or an A4 sheet (8 copies) and export it as JPEG or PDF.
No AI call is made.`,
	Example: `  passport-photo sheet passport-photo.png
  passport-photo sheet passport-photo.png --paper A4 --format pdf -o print.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runSheet,
}

func init() {
	rootCmd.AddCommand(sheetCmd)

	addSheetFlags(sheetCmd)
	sheetCmd.Flags().StringP("output", "o", "", "Output file or directory (default: current directory)")
}

func runSheet(cmd *cobra.Command, args []string) error {
	profile, err := paper.Lookup(mustGetString(cmd, "paper"))
	if err != nil {
		return err
	}
	format, err := sheet.ParseFormat(mustGetString(cmd, "format"))
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening photo: %w", err)
	}
	defer f.Close()

	src, _, err := sheet.LoadSource(f)
	if err != nil {
		return err
	}

	pipeline, err := sheet.NewPipeline(sheet.NewPDFEncoder())
	if err != nil {
		return err
	}
	artifact, err := pipeline.CreatePrintableSheet(src, profile, format)
	if err != nil {
		return fmt.Errorf("creating print sheet: %w", err)
	}

	path, err := writeArtifact(mustGetString(cmd, "output"), artifact)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s print sheet (%d copies, %dx%d px) to %s\n",
		profile.Name, profile.Copies(), artifact.Width, artifact.Height, path)
	return nil
}
