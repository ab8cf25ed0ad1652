package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/exclint/internal/core/domain"
)

// Output formats of the analyze command.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// reportView is the serialised form of a report.
type reportView struct {
	RunID     string        `json:"run_id" yaml:"run_id"`
	HasErrors bool          `json:"has_errors" yaml:"has_errors"`
	Messages  []string      `json:"messages" yaml:"messages"`
	Warnings  []string      `json:"warnings" yaml:"warnings"`
	Findings  []findingView `json:"findings" yaml:"findings"`
}

type findingView struct {
	Kind             domain.FindingKind `json:"kind" yaml:"kind"`
	Dependency       string             `json:"dependency" yaml:"dependency"`
	Exclusion        string             `json:"exclusion" yaml:"exclusion"`
	Reason           string             `json:"reason,omitempty" yaml:"reason,omitempty"`
	ClosureVersion   string             `json:"closure_version,omitempty" yaml:"closure_version,omitempty"`
	ClashingVersions []string           `json:"clashing_versions,omitempty" yaml:"clashing_versions,omitempty"`
}

// reportStyles colours the text report. Disabled styles leave text untouched.
type reportStyles struct {
	enabled bool

	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
}

func newReportStyles(colour bool) reportStyles {
	return reportStyles{
		enabled: colour,
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
	}
}

func (s reportStyles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

// validFormat reports whether format is supported.
func validFormat(format string) bool {
	switch format {
	case formatText, formatJSON, formatYAML:
		return true
	default:
		return false
	}
}

// renderReport writes the report to w in the given format.
func renderReport(w io.Writer, report *domain.Report, format string) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(newReportView(report), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newReportView(report)); err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		return enc.Close()
	case formatText:
		return renderText(w, report, newReportStyles(isTerminal(w)))
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// renderText prints one warning line per warning and one error line per
// message, followed by a summary.
func renderText(w io.Writer, report *domain.Report, styles reportStyles) error {
	messages, hasErrors := report.Finalize()

	for _, warning := range report.Warnings() {
		if _, err := fmt.Fprintln(w, styles.render(styles.Warning, "[WARN] "+warning)); err != nil {
			return err
		}
	}
	for _, msg := range messages {
		if _, err := fmt.Fprintln(w, styles.render(styles.Error, "[ERROR] "+msg)); err != nil {
			return err
		}
	}

	summary := styles.render(styles.Success, "No redundant dependency exclusions found.")
	if hasErrors {
		summary = styles.render(styles.Error, fmt.Sprintf("%d redundant dependency exclusions.", len(messages)))
	}
	_, err := fmt.Fprintf(w, "%s %s\n", summary, styles.render(styles.Muted, "(run "+report.RunID+")"))
	return err
}

func newReportView(report *domain.Report) reportView {
	messages, hasErrors := report.Finalize()
	findings := report.Findings()

	view := reportView{
		RunID:     report.RunID,
		HasErrors: hasErrors,
		Messages:  messages,
		Warnings:  report.Warnings(),
		Findings:  make([]findingView, len(findings)),
	}
	for i, f := range findings {
		view.Findings[i] = findingView{
			Kind:             f.Kind,
			Dependency:       f.Dependency.String(),
			Exclusion:        f.Exclusion.String(),
			Reason:           f.Reason,
			ClosureVersion:   f.ClosureVersion,
			ClashingVersions: f.ClashingVersions,
		}
	}
	return view
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
