package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/randalmurphal/reviewflow"
)

// Output formats.
const (
	formatJSON   = "json"
	formatText   = "text"
	formatPretty = "pretty"
)

func validFormat(format string) error {
	switch format {
	case formatJSON, formatText, formatPretty:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want json, text, or pretty)", format)
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	approvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	rejectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	metaStyle = lipgloss.NewStyle().
			Faint(true)

	titleCaser = cases.Title(language.English)
)

// renderResult formats a run result for the requested output format.
func renderResult(result *reviewflow.Result, format string) (string, error) {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode result: %w", err)
		}
		return string(data), nil
	case formatText:
		return renderText(result), nil
	default:
		return renderPretty(result), nil
	}
}

func renderText(result *reviewflow.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run ID: %s\n", result.RunID)
	fmt.Fprintf(&sb, "Decision: %s\n", valueOr(string(result.Decision), "N/A"))
	fmt.Fprintf(&sb, "Generated Code:\n%s\n", valueOr(result.GeneratedCode, "N/A"))
	fmt.Fprintf(&sb, "Review Feedback:\n%s\n", valueOr(result.ReviewFeedback, "N/A"))
	fmt.Fprintf(&sb, "Documented Code:\n%s\n", valueOr(result.DocumentedCode, "N/A"))
	fmt.Fprintf(&sb, "Approval Status: %s\n", valueOr(string(result.ApprovalStatus), "N/A"))
	return sb.String()
}

func renderPretty(result *reviewflow.Result) string {
	var sections []string

	sections = append(sections, panel("Orchestrator",
		fmt.Sprintf("Decision: %s", valueOr(string(result.Decision), "N/A"))))

	if result.GeneratedCode != "" {
		sections = append(sections, panel("Generated Code", result.GeneratedCode))
	}
	if result.ReviewFeedback != "" {
		sections = append(sections, panel("Review Feedback", result.ReviewFeedback))
	}
	if result.DocumentedCode != "" && result.DocumentedCode != result.GeneratedCode {
		sections = append(sections, panel("Documented Code", result.DocumentedCode))
	}

	if result.ApprovalStatus != "" {
		style := approvedStyle
		if result.ApprovalStatus == reviewflow.ApprovalRejected {
			style = rejectedStyle
		}
		sections = append(sections, panel("Final Status",
			style.Render(titleCaser.String(string(result.ApprovalStatus)))))
	}

	sections = append(sections, metaStyle.Render(fmt.Sprintf(
		"run %s  retries %d  tokens %d in / %d out  %s",
		result.RunID, result.Retries, result.TokensIn, result.TokensOut,
		result.Duration.Round(10*time.Millisecond))))

	return strings.Join(sections, "\n")
}

func panel(title, body string) string {
	return titleStyle.Render(title) + "\n" + panelStyle.Render(body)
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
