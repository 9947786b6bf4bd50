package llm

import (
	"fmt"
	"regexp"
	"strings"

	"quotecheck/internal/model"
)

const systemPrompt = "You are an assistant that summarizes quote-verification reports for editors. " +
	"You describe which quotations were verified against the transcript and which need review. " +
	"You never invent quotations: the only text you may place inside quotation marks is text given to you verbatim."

// BuildPrompt renders the default summarization prompt for a report
func BuildPrompt(report model.Report, allowedQuotes []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Summarize the quote verification results for the draft %q.\n\n", report.Subject)
	fmt.Fprintf(&b, "Overall: %d of %d quotes verified, verification index %d/100 (%s confidence).\n\n",
		report.Summary.Verified, report.Summary.Total, report.Score.Index, report.Score.Confidence)

	b.WriteString("Per-quote results:\n")
	for i, rec := range report.Records {
		status := "unverified"
		if rec.Verified {
			status = "verified"
		}
		fmt.Fprintf(&b, "%d. [%s, %s, %.0f%%] %q — %s\n",
			i+1, status, rec.Kind, rec.Confidence*100, rec.QuotedText, rec.Attribution)
	}

	b.WriteString("\nDiagnostic signals:\n")
	for _, sig := range report.Score.Signals {
		fmt.Fprintf(&b, "- %s (%s): %s\n", sig.Type, sig.Severity, sig.Description)
	}

	b.WriteString("\nWrite a short Markdown summary (3-6 sentences) telling the editor which quotes need attention and why. ")
	b.WriteString("Only repeat quotations from the list above, verbatim. Do not invent or alter any quotation.\n")

	return b.String()
}

// quotedPattern matches quoted spans long enough to plausibly be quotations
// rather than scare quotes
var quotedPattern = regexp.MustCompile(`"([^"]{12,})"`)

// quotedStrings extracts the quotations the model repeated in its summary
func quotedStrings(text string) []string {
	matches := quotedPattern.FindAllStringSubmatch(text, -1)

	seen := make(map[string]bool)
	var out []string
	for _, m := range matches {
		q := strings.TrimSpace(m[1])
		if !seen[q] {
			seen[q] = true
			out = append(out, q)
		}
	}
	return out
}

// checkQuoteLeak returns the first quoted string that does not appear inside
// any allowed quote or snippet, or "" when the summary is clean
func checkQuoteLeak(quoted, allowed []string) string {
	for _, q := range quoted {
		found := false
		for _, a := range allowed {
			if strings.Contains(normalizeForLeakCheck(a), normalizeForLeakCheck(q)) {
				found = true
				break
			}
		}
		if !found {
			return q
		}
	}
	return ""
}

// normalizeForLeakCheck lowers case and collapses whitespace so cosmetic
// reformatting by the model does not trip the fabrication check
func normalizeForLeakCheck(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// RenderSeparateMarkdown renders the LLM summary as a standalone Markdown
// document, clearly marked as advisory
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	var b strings.Builder

	b.WriteString("# Verification Summary (LLM-generated)\n\n")
	fmt.Fprintf(&b, "Generated by %s/%s. Advisory only: the per-quote verdicts in the report are authoritative.\n\n",
		summary.Provider, summary.Model)
	b.WriteString(summary.SummaryMD)
	b.WriteString("\n")

	if len(summary.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range summary.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return b.String()
}
