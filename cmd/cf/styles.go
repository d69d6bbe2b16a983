package main

import (
	"fmt"

	"citefetch/internal/styles"

	"github.com/spf13/cobra"
)

var stylesCmd = &cobra.Command{
	Use:   "styles [search]",
	Short: "List citation styles available for --style",
	Long: `List citation styles available for style-rendered export.

An optional search term filters by style ID or display name.

Examples:
  cf styles
  cf styles chicago --human`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStyles,
}

func init() {
	rootCmd.AddCommand(stylesCmd)
}

func runStyles(cmd *cobra.Command, args []string) error {
	term := ""
	if len(args) == 1 {
		term = args[0]
	}

	matches := styles.Filter(term)
	if humanOutput {
		for _, s := range matches {
			fmt.Printf("%-32s %s\n", s.ID, s.Name)
		}
		return nil
	}
	return outputJSON(matches)
}
