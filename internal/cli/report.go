// Package cli — report.go renders batch summaries as styled text or JSON.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/shinji-kodama/gcode-ejector/internal/gcode"
	"github.com/shinji-kodama/gcode-ejector/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true)
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

// printSummary writes the summary in text or JSON format, depending on the
// global --json flag.
func printSummary(w io.Writer, summary model.BatchSummary, axis string) error {
	if IsJSONOutput() {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	if summary.Total == 0 {
		_, err := fmt.Fprintln(w, "No print files found.")
		return err
	}

	var err error
	write := func(s string) {
		if err == nil {
			_, err = fmt.Fprintln(w, s)
		}
	}

	write(headerStyle.Render(FormatSummaryHeader(summary)))
	for _, r := range summary.Files {
		write("  " + FormatReportLine(r, axis))
	}
	return err
}

// FormatSummaryHeader returns the one-line headline of a summary.
func FormatSummaryHeader(s model.BatchSummary) string {
	return fmt.Sprintf("Processed %d file(s): %d ok, %d failed", s.Total, s.Succeeded, s.Failed)
}

// FormatReportLine renders one file report. Successful files show the
// sampled range, the print width and the mean coordinate used for the push.
func FormatReportLine(r model.FileReport, axis string) string {
	name := filepath.Base(r.Input)
	if r.Failed() {
		return fmt.Sprintf("%s %s: %s", failedStyle.Render(fmt.Sprintf("%-6s", r.Status)), name, r.Error)
	}

	line := fmt.Sprintf("%s %s -> %s  %s range [%s - %s], width ~%smm, mean ~%smm",
		okStyle.Render(fmt.Sprintf("%-6s", r.Status)),
		name, r.Output, axis,
		gcode.FormatCoordinate(r.Min), gcode.FormatCoordinate(r.Max),
		gcode.FormatCoordinate(r.Width), gcode.FormatCoordinate(r.Mean))

	switch {
	case r.DryRun:
		line += mutedStyle.Render(" (dry run)")
	case r.Injections == 0:
		line += mutedStyle.Render(" (no end marker, nothing injected)")
	}
	return line
}
