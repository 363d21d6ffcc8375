// Package render turns snapshots into terminal output: the colorized live
// table, the one-line digest, and the pretty JSON form.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/luki/gputemp/internal/sensor"
)

const (
	labelWidth = 35
	tempWidth  = 8
	lineWidth  = labelWidth + 3*tempWidth + 5
	// Width of the rule under the no-data notices.
	emptyRuleWidth = 55
)

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitle  = lipgloss.Color("51")
	colorHeader = lipgloss.Color("33")
	colorDim    = lipgloss.Color("240")
	colorOk     = lipgloss.Color("78")
	colorWarn   = lipgloss.Color("220")
	colorCrit   = lipgloss.Color("196")
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(colorTitle)
	headerStyle = lipgloss.NewStyle().Foreground(colorHeader)
	warnStyle   = lipgloss.NewStyle().Foreground(colorWarn)
	dimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// TempColor picks the display color for a current temperature. The bands
// are fixed rather than per-device: below 60 is fine, 80 and up is trouble.
func TempColor(current float64) lipgloss.Color {
	switch {
	case current >= 80:
		return colorCrit
	case current >= 60:
		return colorWarn
	default:
		return colorOk
	}
}

// Frame renders the full live-mode screen for one snapshot. Snapshots
// without readings render their diagnostic instead of a table, so a failed
// poll shows up as a notice and the loop keeps going.
func Frame(snap sensor.Snapshot) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("--- GPU Temperature Monitor ---"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Last update: " + snap.Timestamp.Format("2006-01-02 15:04:05")))
	b.WriteString("\n")

	if len(snap.Readings) == 0 {
		if snap.Diagnostic != "" {
			b.WriteString(warnStyle.Render(snap.Diagnostic))
			b.WriteString("\n")
			if len(snap.SensorKeys) > 0 {
				b.WriteString("Available sensor keys: " + strings.Join(snap.SensorKeys, ", "))
				b.WriteString("\n")
			}
		} else {
			b.WriteString(warnStyle.Render("No GPU temperature data available."))
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat("-", emptyRuleWidth))
		b.WriteString("\n")
		return b.String()
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s",
		labelWidth, "GPU", tempWidth, "Current", tempWidth, "High", tempWidth, "Critical")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", lineWidth))
	b.WriteString("\n")

	for _, r := range snap.Readings {
		label := fmt.Sprintf("%-*s", labelWidth, truncate(r.Label, labelWidth))
		current := lipgloss.NewStyle().
			Foreground(TempColor(r.Current)).
			Render(fmt.Sprintf("%-*s", tempWidth, formatTemp(r.Current)))
		high := dimStyle.Render(fmt.Sprintf("%-*s", tempWidth, formatTemp(r.High)))
		crit := dimStyle.Render(fmt.Sprintf("%-*s", tempWidth, formatTemp(r.Critical)))

		b.WriteString(label + " " + current + " " + high + " " + crit)
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("-", lineWidth))
	b.WriteString("\n")

	return b.String()
}

func formatTemp(v float64) string {
	return fmt.Sprintf("%.1f°C", v)
}

func truncate(s string, w int) string {
	if len(s) <= w {
		return s
	}
	if w <= 3 {
		return s[:w]
	}
	return s[:w-1] + "…"
}
