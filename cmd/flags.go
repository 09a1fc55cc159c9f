package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// mustGetBool gets a bool flag value or panics if the flag doesn't exist.
// This is appropriate for flags defined in init() - errors indicate programming bugs.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// mustGetInt gets an int flag value or panics if the flag doesn't exist.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// mustGetString gets a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

// addOptionFlags registers the passport option flags shared by generating commands.
func addOptionFlags(cmd *cobra.Command) {
	cmd.Flags().String("country", "", "Passport photo standard (e.g. USA, Schengen, UK); default USA")
	cmd.Flags().String("background", "", "Background color (OffWhite, LightBlue, LightGray); default OffWhite")
	cmd.Flags().String("clothing", "", "Clothing replacement (none, suit, shirt); default none")
}

// addSheetFlags registers the print sheet flags.
func addSheetFlags(cmd *cobra.Command) {
	cmd.Flags().String("paper", "4x6", "Paper profile: 4x6 or A4")
	cmd.Flags().String("format", "jpeg", "Sheet format: jpeg or pdf")
}
