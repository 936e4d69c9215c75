// ABOUTME: Terminal UI formatting utilities
// ABOUTME: Provides human-readable output for sightings and pages

package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/ufo/internal/models"
)

// commentWidth caps comments in single-line listings.
const commentWidth = 60

// FormatSighting formats a sighting as one listing line prefixed by its index in the window.
func FormatSighting(index int, s *models.Sighting) string {
	if s == nil {
		return color.New(color.Faint).Sprint("(no sighting)")
	}
	return fmt.Sprintf("%s %s  %s %s %s",
		color.New(color.Faint).Sprintf("%2d.", index),
		s.OccurredAt,
		color.CyanString(FormatLocation(s)),
		color.GreenString(orDash(s.Shape)),
		color.New(color.Faint).Sprint(FormatDuration(s.DurationSeconds)))
}

// FormatDetail formats every field of a sighting over several lines.
func FormatDetail(s *models.Sighting) string {
	if s == nil {
		return color.New(color.Faint).Sprint("(no sighting)")
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "  %s %s\n", color.New(color.Faint).Sprint("occurred:"), s.OccurredAt)
	fmt.Fprintf(&sb, "  %s %s\n", color.New(color.Faint).Sprint("location:"), color.CyanString(FormatLocation(s)))
	fmt.Fprintf(&sb, "  %s (%.4f, %.4f)\n", color.New(color.Faint).Sprint("coords:  "), s.Latitude, s.Longitude)
	fmt.Fprintf(&sb, "  %s %s for %s\n", color.New(color.Faint).Sprint("shape:   "), orDash(s.Shape), FormatDuration(s.DurationSeconds))
	fmt.Fprintf(&sb, "  %s %s\n", color.New(color.Faint).Sprint("reported:"), s.ReportedAt)
	if s.Comment != "" {
		fmt.Fprintf(&sb, "  %s\n", Ellipsize(s.Comment, commentWidth))
	}
	return sb.String()
}

// FormatLocation joins city, state, and country, skipping empty parts.
func FormatLocation(s *models.Sighting) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.City, strings.ToUpper(s.State), strings.ToUpper(s.Country)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "unknown location"
	}
	return strings.Join(parts, ", ")
}

// FormatDuration renders seconds compactly, e.g. 45s, 5m, 1h30m.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		return color.YellowString("%ds", seconds)
	}
	h, rem := seconds/3600, seconds%3600
	m, sec := rem/60, rem%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && sec > 0:
		return fmt.Sprintf("%dm%ds", m, sec)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", sec)
}

// FormatPageHeader summarises the visible window: which records are shown
// out of how many, and the active filter if any.
func FormatPageHeader(offset, shown, total int, filter string) string {
	if shown == 0 {
		if filter != "" {
			return color.New(color.Faint).Sprintf("No sightings match %s", filter)
		}
		return color.New(color.Faint).Sprint("No sightings loaded.")
	}
	span := fmt.Sprintf("%d-%d", offset+1, offset+shown)
	if filter != "" {
		return fmt.Sprintf("Matches %s for %s", span, color.YellowString(filter))
	}
	return fmt.Sprintf("Sightings %s of %d", span, total)
}

// Ellipsize shortens s to at most n runes, marking the cut with "...".
func Ellipsize(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
