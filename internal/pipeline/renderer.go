package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"quotecheck/internal/model"
)

// Renderer writes verification reports as JSON, Markdown, and a terminal
// summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes the report as a human-readable Markdown document
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Quote Verification: %s\n\n", report.Subject)
	fmt.Fprintf(&b, "- **Draft**: %s\n", report.DraftPath)
	fmt.Fprintf(&b, "- **Transcript**: %s\n", report.TranscriptPath)
	fmt.Fprintf(&b, "- **Generated**: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	if report.NoQuotesFound {
		b.WriteString("**No quotes were detected in this draft.** Nothing to verify.\n")
	} else {
		fmt.Fprintf(&b, "**Verified %d of %d quotes** — verification index %d/100 (%s confidence)\n\n",
			report.Summary.Verified, report.Summary.Total, report.Score.Index, report.Score.Confidence)

		b.WriteString("## Quotes\n\n")
		for i, rec := range report.Records {
			status := "✗ unverified"
			if rec.Verified {
				status = "✓ verified"
			}
			fmt.Fprintf(&b, "### %d. %s (%s, %.0f%%)\n\n", i+1, status, rec.Kind, rec.Confidence*100)
			fmt.Fprintf(&b, "> %q\n>\n> — %s\n\n", rec.QuotedText, rec.Attribution)
			if rec.Snippet != "" {
				fmt.Fprintf(&b, "Transcript match")
				if rec.StartOffset != nil && rec.EndOffset != nil {
					fmt.Fprintf(&b, " (chars %d–%d)", *rec.StartOffset, *rec.EndOffset)
				}
				fmt.Fprintf(&b, ":\n\n```\n%s\n```\n\n", rec.Snippet)
			}
		}

		b.WriteString("## Signals\n\n")
		for _, sig := range report.Score.Signals {
			fmt.Fprintf(&b, "- **%s** [%s]: %s\n", sig.Type, sig.Severity, sig.Description)
		}
		b.WriteString("\n")
	}

	if report.LLM != nil && report.LLM.SummaryMD != "" {
		b.WriteString("## Summary (LLM-generated, advisory only)\n\n")
		b.WriteString(report.LLM.SummaryMD)
		b.WriteString("\n\n")
		for _, w := range report.LLM.Warnings {
			fmt.Fprintf(&b, "> ⚠ %s\n", w)
		}
		if len(report.LLM.Warnings) > 0 {
			b.WriteString("\n")
		}
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by quotecheck. Verification verdicts measure textual overlap with the transcript, not editorial accuracy.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderSummary prints the per-quote verdicts to stdout. A table is used on
// a terminal; plain lines otherwise so output stays pipe-friendly.
func (r *Renderer) RenderSummary(report *model.Report) {
	if report.NoQuotesFound {
		fmt.Println("No quotes detected in the draft — nothing to verify.")
		return
	}

	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Println(r.summaryTable(report))
	} else {
		for i, rec := range report.Records {
			status := "UNVERIFIED"
			if rec.Verified {
				status = "VERIFIED"
			}
			fmt.Printf("%d\t%s\t%s\t%.0f%%\t%q\t%s\n",
				i+1, status, rec.Kind, rec.Confidence*100, truncate(rec.QuotedText, 60), rec.Attribution)
		}
	}

	fmt.Printf("\nVerified %d/%d quotes — index %d/100 (%s confidence)\n",
		report.Summary.Verified, report.Summary.Total, report.Score.Index, report.Score.Confidence)
}

func (r *Renderer) summaryTable(report *model.Report) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Status", "Match", "Conf", "Quote", "Attribution"})

	for i, rec := range report.Records {
		status := "✗"
		if rec.Verified {
			status = "✓"
		}
		tw.AppendRow(table.Row{
			i + 1,
			status,
			string(rec.Kind),
			fmt.Sprintf("%.0f%%", rec.Confidence*100),
			truncate(rec.QuotedText, 50),
			rec.Attribution,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	return tw.Render()
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}
