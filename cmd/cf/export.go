package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"citefetch/internal/bundle"
	"citefetch/internal/config"
	"citefetch/internal/doiorg"
	"citefetch/internal/export"
	"citefetch/internal/opencitations"
	"citefetch/internal/pool"
	"citefetch/internal/reference"
	"citefetch/internal/resolver"

	"github.com/spf13/cobra"
)

var (
	exportFormat  string
	exportStyle   string
	exportArchive bool
	exportOut     string
)

var exportCmd = &cobra.Command{
	Use:   "export <doi>",
	Short: "Export formatted citations for a paper's references",
	Long: `Export every reference of a paper as formatted citations.

BibTeX and RIS are rendered locally from fetched CSL metadata; any
other format, or a named citation style, is rendered remotely via
doi.org content negotiation.

Examples:
  cf export 10.1073/pnas.1118373109
  cf export 10.1073/pnas.1118373109 --format ris --archive
  cf export 10.1073/pnas.1118373109 --style apa -o refs.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "bibtex", "Output format: bibtex, ris, or a MIME type")
	exportCmd.Flags().StringVarP(&exportStyle, "style", "s", "", "Render through a named citation style instead of a format")
	exportCmd.Flags().BoolVar(&exportArchive, "archive", false, "Write a zip archive with one file per reference")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output path (default: derived from the paper title)")
}

// ExportResult is the JSON output of the export command.
type ExportResult struct {
	Status  string `json:"status"`
	Path    string `json:"path"`
	Total   int    `json:"total"`
	Written int    `json:"written"`
	Skipped int    `json:"skipped"`
}

func runExport(cmd *cobra.Command, args []string) error {
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

	r, meta, cleanup := newClients(cfg, progress)
	defer cleanup()

	session, err := r.Resolve(cmd.Context(), args[0])
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

	format := strings.ToLower(exportFormat)
	formatKey := format
	if exportStyle != "" {
		// Style-rendered output is plain text.
		formatKey = exportStyle
	}

	convert := func(ref reference.Resolved) (string, error) {
		return convertOne(cmd.Context(), meta, ref, format, exportStyle)
	}

	var data []byte
	var path string
	written := 0
	skipped := 0

	if exportArchive {
		data, written, err = bundle.Archive(session.References, formatKey, convert)
		if err != nil {
			exitWithError(ExitError, "building archive: %v", err)
		}
		path = bundle.FileName(session.RootTitle, args[0], ".zip")
		skipped = len(session.References) - written
	} else {
		citations := convertAll(cmd.Context(), meta, session.References, format, exportStyle, &skipped)
		written = len(citations)
		path, data = bundle.SingleFile(session.RootTitle, args[0], formatKey, citations)
	}

	if exportOut != "" {
		path = exportOut
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", path, err)
	}

	result := ExportResult{
		Status:  "written",
		Path:    path,
		Total:   len(session.References),
		Written: written,
		Skipped: skipped,
	}
	if humanOutput {
		fmt.Printf("Wrote %d of %d citations to %s\n", result.Written, result.Total, result.Path)
		return nil
	}
	return outputJSON(result)
}

// convertAll renders every reference, skipping failures. Remote
// conversions run through the pool with a single worker to stay gentle
// on the upstream rate limits; the local BibTeX/RIS path never touches
// the network.
func convertAll(ctx context.Context, meta *doiorg.Client, refs []reference.Resolved, format, style string, skipped *int) []string {
	type converted struct {
		text string
		err  error
	}

	results := pool.Map(refs, 1, func(_ int, ref reference.Resolved) converted {
		text, err := convertOne(ctx, meta, ref, format, style)
		return converted{text: text, err: err}
	}, nil)

	citations := make([]string, 0, len(results))
	for i, res := range results {
		if res.err != nil {
			log.Printf("skipping %s: %v", refs[i].DOI, res.err)
			*skipped++
			continue
		}
		citations = append(citations, res.text)
	}
	return citations
}

// convertOne renders one reference in the requested format or style.
// BibTeX and RIS with cached metadata are pure local transforms;
// everything else falls back to remote content negotiation.
func convertOne(ctx context.Context, meta *doiorg.Client, ref reference.Resolved, format, style string) (string, error) {
	if style == "" && ref.CSL != nil {
		switch format {
		case "bibtex":
			return export.ToBibTeX(ref.DOI, ref.CSL), nil
		case "ris":
			return export.ToRIS(ref.CSL), nil
		}
	}
	if style != "" {
		return meta.FetchBibliography(ctx, ref.DOI, style)
	}
	return meta.FetchFormat(ctx, ref.DOI, mimeFor(format))
}

// mimeFor maps a format name onto its content-negotiation MIME type.
// Unknown names are assumed to already be MIME types.
func mimeFor(format string) string {
	switch format {
	case "bibtex":
		return doiorg.MIMEBibTeX
	case "ris":
		return doiorg.MIMERIS
	default:
		return format
	}
}
