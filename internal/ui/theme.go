package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Priorities theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconNow      = "🎯"
	IconSparkle  = "✨"
	IconDone     = "✅"
	IconBolt     = "⚡"
	IconBrain    = "🧠"
	IconMuscle   = "💪"
	IconMoon     = "🌙"
	IconClock    = "🕐"
	IconSnooze   = "💤"
	IconPause    = "⏸️"
	IconError    = "🧨"
	IconArchive  = "📦"
	IconCalendar = "📅"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// EnergyDots renders a cost on the 0-3 scale as filled/empty dots.
func EnergyDots(cost int) string {
	const max = 3
	if cost < 0 {
		cost = 0
	}
	if cost > max {
		cost = max
	}
	return strings.Repeat("●", cost) + strings.Repeat("○", max-cost)
}

// FormatTimeSince renders how long ago something happened, nil meaning never.
func FormatTimeSince(since *time.Duration) string {
	if since == nil {
		return "Never done"
	}
	hours := since.Hours()
	if hours < 1 {
		return "Just now"
	}
	if hours < 24 {
		return fmt.Sprintf("%dh ago", int(hours))
	}
	days := int(hours / 24)
	if days == 1 {
		return "Yesterday"
	}
	return fmt.Sprintf("%dd ago", days)
}

// FormatTimeRemaining renders a countdown, rounding up.
func FormatTimeRemaining(d time.Duration) string {
	hours := d.Hours()
	if hours < 1 {
		return fmt.Sprintf("%dm", int(math.Ceil(d.Minutes())))
	}
	if hours < 24 {
		return fmt.Sprintf("%dh", int(math.Ceil(hours)))
	}
	return fmt.Sprintf("%dd", int(math.Ceil(hours/24)))
}

// FormatDuration renders a logged session length.
func FormatDuration(d time.Duration) string {
	totalMinutes := int(math.Round(d.Minutes()))
	if totalMinutes < 60 {
		return fmt.Sprintf("%dm", totalMinutes)
	}
	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	if minutes > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dh", hours)
}

// SectionTitle maps a scoring section to its display heading.
func SectionTitle(section string) string {
	switch section {
	case "available":
		return "What to do now"
	case "cooldown":
		return "On cooldown"
	case "wrong_time":
		return "Not right now"
	case "too_tired":
		return "Too tired for"
	default:
		return section
	}
}
