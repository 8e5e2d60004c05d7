package render

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"
)

// Markdown converts a sanitized body fragment for terminal display. When
// conversion fails the tags are stripped instead.
func Markdown(bodyHTML string) string {
	md, err := htmltomarkdown.ConvertString(bodyHTML)
	if err != nil {
		return strings.TrimSpace(bluemonday.StrictPolicy().Sanitize(bodyHTML))
	}
	return strings.TrimSpace(md)
}

// NewTermRenderer builds a glamour renderer. style "" or "auto" picks the
// style from the terminal.
func NewTermRenderer(style string, width int) (*glamour.TermRenderer, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	return glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
}
