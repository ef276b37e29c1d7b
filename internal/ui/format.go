package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// visibleWidth measures rendered width, ignoring ANSI sequences.
func visibleWidth(s string) int {
	return lipgloss.Width(s)
}

// FormatDuration renders a duration as D-HH:MM:SS or HH:MM:SS, the way
// squeue prints elapsed time.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Seconds())
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if days > 0 {
		return fmt.Sprintf("%d-%02d:%02d:%02d", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatMemoryMB renders megabytes with a unit, switching to GB and TB
// where it reads better.
func FormatMemoryMB(mb int64) string {
	switch {
	case mb >= 1024*1024:
		return fmt.Sprintf("%.1fT", float64(mb)/(1024*1024))
	case mb >= 1024:
		return fmt.Sprintf("%.0fG", float64(mb)/1024)
	default:
		return fmt.Sprintf("%dM", mb)
	}
}

// FormatAge renders how long ago a timestamp was, compactly.
func FormatAge(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
}

// truncateTo shortens a cell to the column width with an ellipsis.
func truncateTo(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

// padTo truncates then right-pads to exactly width cells.
func padTo(s string, width int) string {
	s = truncateTo(s, width)
	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
