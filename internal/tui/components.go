package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader returns a consistently styled header with an optional muted subtitle.
func renderHeader(title, subtitle string, width int) string {
	title = truncateEnd(title, width-2)
	if subtitle == "" {
		return HeaderStyle.Render(title)
	}
	subtitle = truncateMiddle(subtitle, width-lipgloss.Width(title)-5)
	return HeaderStyle.Render(title) + "  " + renderMuted(subtitle)
}

// renderTopicBar draws the topic controls; active is -1 when no topic is selected.
func renderTopicBar(topics []string, active, width int) string {
	tabs := make([]string, 0, len(topics)+1)
	if active < 0 {
		tabs = append(tabs, ActiveTopicStyle.Render("Todas"))
	} else {
		tabs = append(tabs, TopicStyle.Render("Todas"))
	}
	for i, t := range topics {
		if i == active {
			tabs = append(tabs, ActiveTopicStyle.Render(t))
		} else {
			tabs = append(tabs, TopicStyle.Render(t))
		}
	}
	bar := strings.Join(tabs, " ")
	if lipgloss.Width(bar) > width && width > 0 {
		return lipgloss.NewStyle().MaxWidth(width).Render(bar)
	}
	return bar
}

// renderInputFrame draws a rounded bordered container around a rendered input view.
func renderInputFrame(inputView string, focused bool, contentWidth int) string {
	borderColor := MutedColor
	if focused {
		borderColor = AccentColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(contentWidth + 4).
		Render(inputView)
}

// renderCentered centers the provided content within the given width/height box.
func renderCentered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func renderMuted(text string) string {
	return lipgloss.NewStyle().Foreground(MutedColor).Render(text)
}

func renderHelp(text string) string {
	return HelpStyle.Render(text)
}
