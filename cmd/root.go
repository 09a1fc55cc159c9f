package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "passport-photo",
	Short: "Turn a selfie into a printable passport photo using AI",
	Long: `Passport Photo checks a portrait for passport compliance problems,
asks an AI image model (Gemini) to produce a passport-style photo with the
requested crop, background and clothing, and lays copies of it out on a
printable 4x6 or A4 sheet as JPEG or PDF.

Photos are only kept in memory and never stored on disk by the server.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
