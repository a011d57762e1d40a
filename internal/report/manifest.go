package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lox/crimereport/internal/analysis"
)

// WriteManifest writes report.md: the dataset accounting, the optional
// narrative summary, and the figures in order with captions.
func WriteManifest(outDir string, res *analysis.Result, figs []Figure, narrative string) error {
	var b strings.Builder

	b.WriteString("# Incident Report\n\n")
	fmt.Fprintf(&b, "- Rows analyzed: %d\n", res.TotalRows)
	fmt.Fprintf(&b, "- Rows with a valid timestamp: %d\n", res.WithTimestamp)
	if res.HasGeo {
		fmt.Fprintf(&b, "- Geocoded rows: %d (sampled %d)\n", res.Geocoded, len(res.Sample))
	} else {
		b.WriteString("- No coordinate columns detected; spatial figures omitted\n")
	}
	b.WriteString("\n")

	if narrative != "" {
		b.WriteString("## Summary\n\n")
		b.WriteString(narrative)
		b.WriteString("\n\n")
	}

	b.WriteString("## Figures\n\n")
	for i, f := range figs {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, f.Title)
		fmt.Fprintf(&b, "![%s](%s)\n\n", f.Title, f.Filename)
		fmt.Fprintf(&b, "%s\n\n", f.Caption)
	}

	path := filepath.Join(outDir, "report.md")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
