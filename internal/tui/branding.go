package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/relampago/internal/config"
)

const AppName = "relampago"

// LogoLines is the block-letter logo shown in the banner and the empty state.
var LogoLines = []string{
	"█▀█ █▀▀ █   ▄▀█ █▀▄▀█ █▀█ ▄▀█ █▀▀ █▀█",
	"█▀▄ ██▄ █▄▄ █▀█ █ ▀ █ █▀▀ █▀█ █▄█ █▄█",
}

const CompactLogo = "⚡ relâmpago"

// BannerColors run from storm grey to lightning yellow.
var BannerColors = []lipgloss.Color{
	lipgloss.Color("#94A3B8"),
	lipgloss.Color("#FFD400"),
	lipgloss.Color("#FFE66D"),
	lipgloss.Color("#4ECDC4"),
}

var (
	PrimaryColor   = lipgloss.Color("#FFD400")
	SecondaryColor = lipgloss.Color("#4ECDC4")
	AccentColor    = lipgloss.Color("#FF6B6B")

	BackgroundColor = lipgloss.Color("#1A1A2E")
	TextColor       = lipgloss.Color("#EAEAEA")
	MutedColor      = lipgloss.Color("#94A3B8")

	ErrorColor   = lipgloss.Color("#F87171")
	SuccessColor = lipgloss.Color("#10B981")
	WarnColor    = lipgloss.Color("#FFE66D")
)

var (
	LogoStyle          lipgloss.Style
	HeaderStyle        lipgloss.Style
	BadgeStyle         lipgloss.Style
	TopicStyle         lipgloss.Style
	ActiveTopicStyle   lipgloss.Style
	HelpStyle          lipgloss.Style
	TimeStyle          lipgloss.Style
	ErrorMessageStyle  lipgloss.Style
	SeparatorStyle     lipgloss.Style
	StatusInfoStyle    lipgloss.Style
	StatusSuccessStyle lipgloss.Style
	StatusWarnStyle    lipgloss.Style
	StatusErrorStyle   lipgloss.Style
)

func init() {
	buildStyles()
}

// ApplyColors replaces the palette with the configured one. Empty entries keep
// the built-in color.
func ApplyColors(c config.UIColors) {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&PrimaryColor, c.Primary)
	set(&SecondaryColor, c.Secondary)
	set(&AccentColor, c.Accent)
	set(&TextColor, c.Text)
	set(&MutedColor, c.Muted)
	set(&ErrorColor, c.Error)
	buildStyles()
}

func buildStyles() {
	LogoStyle = lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true)
	HeaderStyle = lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true)
	BadgeStyle = lipgloss.NewStyle().
		Foreground(BackgroundColor).
		Background(SecondaryColor).
		Bold(true).
		Padding(0, 1)
	TopicStyle = lipgloss.NewStyle().Foreground(MutedColor).Padding(0, 1)
	ActiveTopicStyle = lipgloss.NewStyle().
		Foreground(BackgroundColor).
		Background(PrimaryColor).
		Bold(true).
		Padding(0, 1)
	HelpStyle = lipgloss.NewStyle().Foreground(MutedColor).Italic(true)
	TimeStyle = lipgloss.NewStyle().Foreground(MutedColor).Faint(true)
	ErrorMessageStyle = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	SeparatorStyle = lipgloss.NewStyle().Foreground(MutedColor)
	StatusInfoStyle = lipgloss.NewStyle().Foreground(MutedColor)
	StatusSuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	StatusWarnStyle = lipgloss.NewStyle().Foreground(WarnColor)
	StatusErrorStyle = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
}

func GetCompactBanner(message string) string {
	coloredLines := make([]string, 0, len(LogoLines))
	for _, line := range LogoLines {
		coloredLines = append(coloredLines, LogoStyle.Render(line))
	}

	logo := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		logo,
		"",
		HelpStyle.Render(message),
	)
}

// Banner renders the startup banner with an optional version tag.
func Banner(version string) string {
	lines := make([]string, len(LogoLines)+1)
	copy(lines, LogoLines)

	tagline := "    Notícia Relâmpago no terminal"
	if version != "" && version != "dev" {
		if version[0] != 'v' && version[0] != 'V' {
			version = "v" + version
		}
		tagline += " " + version
	}
	lines = append(lines, tagline)

	coloredLines := make([]string, 0, len(lines))
	for i, line := range lines {
		if line == "" {
			coloredLines = append(coloredLines, line)
			continue
		}
		style := lipgloss.NewStyle().
			Foreground(BannerColors[i%len(BannerColors)]).
			Bold(i < len(LogoLines))
		coloredLines = append(coloredLines, style.Render(line))
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(PrimaryColor).
		Padding(1, 3).
		MarginTop(1)

	banner := border.Render(lipgloss.JoinVertical(lipgloss.Center, coloredLines...))
	separator := lipgloss.NewStyle().Foreground(PrimaryColor).Render("⚡ ⚡ ⚡")

	center := lipgloss.NewStyle().Width(70).Align(lipgloss.Center)
	return center.Render(banner) + "\n" + center.MarginBottom(1).Render(separator)
}

func ShowBanner(version string) {
	fmt.Println(Banner(version))
}
