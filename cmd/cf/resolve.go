package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"citefetch/internal/config"
	"citefetch/internal/doi"
	"citefetch/internal/opencitations"
	"citefetch/internal/pdf"
	"citefetch/internal/reference"
	"citefetch/internal/resolver"

	"github.com/spf13/cobra"
)

var resolvePDF bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <doi>",
	Short: "Resolve the reference list of a paper",
	Long: `Resolve the reference list of a paper from its DOI.

Fetches the citation graph for the DOI, extracts every cited DOI, and
resolves bibliographic metadata for each one. References whose metadata
lookup fails are still listed with their DOI alone.

Examples:
  cf resolve 10.1073/pnas.1118373109
  cf resolve doi:10.1037/0003-066x.48.6.621 --human
  cf resolve --pdf paper.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolVar(&resolvePDF, "pdf", false, "Treat the argument as a local PDF and extract its DOI")
}

// ResolveResult is the JSON output of the resolve command.
type ResolveResult struct {
	DOI        string               `json:"doi"`
	Title      string               `json:"title,omitempty"`
	Total      int                  `json:"total"`
	Resolved   int                  `json:"resolved"`
	References []reference.Resolved `json:"references"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	target := args[0]

	if resolvePDF {
		extracted, err := pdf.ExtractDOI(target)
		if err != nil {
			exitWithError(ExitError, "reading PDF: %v", err)
		}
		if extracted == "" {
			exitWithError(ExitNotFound, "no DOI found in %s", target)
		}
		target = extracted
	}

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	var progress resolver.ProgressReporter
	if humanOutput {
		progress = resolver.ProgressFunc(func(pct int) {
			fmt.Fprintf(os.Stderr, "\rresolving... %3d%%", pct)
		})
	}

	r, _, cleanup := newClients(cfg, progress)
	defer cleanup()

	session, err := r.Resolve(cmd.Context(), target)
	if humanOutput {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		code := ExitAPIError
		if errors.Is(err, opencitations.ErrNoReferences) || errors.Is(err, resolver.ErrNoDOIs) {
			code = ExitNotFound
		}
		exitWithError(code, "%v", err)
	}

	result := ResolveResult{
		DOI:        doi.Normalize(target),
		Title:      session.RootTitle,
		Total:      len(session.References),
		References: session.References,
	}
	for _, ref := range session.References {
		if ref.CSL != nil {
			result.Resolved++
		}
	}

	if humanOutput {
		printResolveHuman(result)
		return nil
	}
	return outputJSON(result)
}

func printResolveHuman(result ResolveResult) {
	if result.Title != "" {
		fmt.Printf("References of %s\n\n", truncateString(result.Title, 70))
	} else {
		fmt.Printf("References of doi:%s\n\n", result.DOI)
	}

	for i, ref := range result.References {
		title := ref.Title
		if title == "" {
			title = "(no metadata)"
		}
		fmt.Printf("%3d. %s\n", i+1, truncateString(title, 70))
		if len(ref.Authors) > 0 {
			fmt.Printf("     %s", strings.Join(firstN(ref.Authors, 3), "; "))
			if ref.Year != "" {
				fmt.Printf(" (%s)", ref.Year)
			}
			fmt.Println()
		}
		fmt.Printf("     doi:%s\n", ref.DOI)
	}

	fmt.Printf("\nTotal: %d references (%d with metadata)\n", result.Total, result.Resolved)
}
