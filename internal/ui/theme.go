package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LanguageForge theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconGoal     = "🎯"
	IconRadar    = "📈"
	IconStreak   = "🔥"
	IconDone     = "✅"
	IconTodo     = "▢"
	IconCalendar = "📅"
	IconProfile  = "👤"
	IconInfo     = "ℹ️"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconNote     = "📝"

	IconReading   = "📖"
	IconListening = "🎧"
	IconSpeaking  = "🗣️"
	IconWriting   = "✍️"

	IconBook    = "📘"
	IconPodcast = "🎧"
	IconVideo   = "🎬"
	IconApp     = "📱"
	IconWebsite = "🌐"
	IconPin     = "📌"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeArchived = lipgloss.NewStyle().Bold(true).Foreground(cMuted).Render("ARCHIVED")
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

// SkillIcon maps a skill name to its emoji.
func SkillIcon(skill string) string {
	switch strings.ToLower(strings.TrimSpace(skill)) {
	case "reading":
		return IconReading
	case "listening":
		return IconListening
	case "speaking":
		return IconSpeaking
	case "writing":
		return IconWriting
	default:
		return IconPin
	}
}

// ResourceIcon maps a resource type to its emoji. Unknown types get the
// pin.
func ResourceIcon(resourceType string) string {
	switch resourceType {
	case "Book":
		return IconBook
	case "Podcast":
		return IconPodcast
	case "Video":
		return IconVideo
	case "App":
		return IconApp
	case "Website":
		return IconWebsite
	default:
		return IconPin
	}
}

// TrendMark renders an up/down/same trend as a colored arrow.
func TrendMark(trend string) string {
	switch trend {
	case "up":
		return Good.Render("↑")
	case "down":
		return Bad.Render("↓")
	default:
		return Muted.Render("→")
	}
}

// Check renders a completion checkbox.
func Check(done bool) string {
	if done {
		return IconDone
	}
	return IconTodo
}

// PercentText colors a 0-100 percentage by how encouraging it is.
func PercentText(p int) string {
	text := fmt.Sprintf("%d%%", p)
	switch {
	case p >= 70:
		return Good.Render(text)
	case p >= 40:
		return Warn.Render(text)
	default:
		return Bad.Render(text)
	}
}
