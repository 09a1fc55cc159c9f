package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/passport-photo/internal/sheet"
)

var compressCmd = &cobra.Command{
	Use:   "compress <passport-photo>",
	Short: "Write a compressed JPEG copy for online forms",
	Long: `Re-encode a passport photo as a smaller JPEG with the same pixel
dimensions, suitable for upload size limits of online application forms.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompress,
}

func init() {
	rootCmd.AddCommand(compressCmd)

	compressCmd.Flags().StringP("output", "o", "", "Output file or directory (default: current directory)")
}

func runCompress(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening photo: %w", err)
	}
	defer f.Close()

	src, _, err := sheet.LoadSource(f)
	if err != nil {
		return err
	}

	artifact, err := sheet.Compress(src)
	if err != nil {
		return err
	}

	path, err := writeArtifact(mustGetString(cmd, "output"), artifact)
	if err != nil {
		return err
	}

	before := "?"
	if info, err := f.Stat(); err == nil {
		before = fmt.Sprintf("%d", info.Size())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %dx%d web copy to %s (%s -> %d bytes)\n",
		artifact.Width, artifact.Height, path, before, len(artifact.Data))
	return nil
}
