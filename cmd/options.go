package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/passport-photo/internal/paper"
	"github.com/kozaktomas/passport-photo/internal/passport"
	"github.com/kozaktomas/passport-photo/internal/sheet"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List countries, backgrounds, clothing and paper sizes",
	Long: `List every passport photo option accepted by generate and serve,
together with the available print paper profiles and capture tips.`,
	Args: cobra.NoArgs,
	RunE: runOptions,
}

func init() {
	rootCmd.AddCommand(optionsCmd)

	optionsCmd.Flags().Bool("json", false, "Output as JSON")
}

type optionsOutput struct {
	Countries   []passport.Country    `json:"countries"`
	Backgrounds []passport.Background `json:"backgrounds"`
	Clothing    []passport.Clothing   `json:"clothing"`
	Papers      []paper.Profile       `json:"papers"`
	Formats     []sheet.Format        `json:"formats"`
	Tips        []string              `json:"tips"`
}

func runOptions(cmd *cobra.Command, args []string) error {
	catalog := passport.Default()
	out := cmd.OutOrStdout()

	if mustGetBool(cmd, "json") {
		return outputJSON(out, optionsOutput{
			Countries:   catalog.Countries,
			Backgrounds: catalog.Backgrounds,
			Clothing:    catalog.Clothing,
			Papers:      paper.Profiles(),
			Formats:     sheet.Formats(),
			Tips:        catalog.Tips,
		})
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "COUNTRY\tNAME\tSIZE")
	for _, c := range catalog.Countries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Key, c.Name, c.Size())
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "BACKGROUND\tNAME\tCOLOR")
	for _, b := range catalog.Backgrounds {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Key, b.Name, b.Hex)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "CLOTHING\tNAME")
	for _, c := range catalog.Clothing {
		fmt.Fprintf(tw, "%s\t%s\n", c.Key, c.Name)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "PAPER\tCOPIES\tORIENTATION")
	for _, p := range paper.Profiles() {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", p.Name, p.Copies(), p.Orientation)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nTips:")
	for _, tip := range catalog.Tips {
		fmt.Fprintf(out, "  - %s\n", tip)
	}
	return nil
}
