package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/relampago/internal/render"
)

type View int

const (
	ViewFeed View = iota
	ViewArticle
)

// cardItem adapts a rendered card to the bubbles list.
type cardItem struct {
	card render.Card
}

func (i cardItem) Title() string { return i.card.Title }

func (i cardItem) Description() string {
	meta := i.card.Author
	if i.card.Date != "" {
		meta += " · " + i.card.Date
	}
	desc := TimeStyle.Render(meta)
	if i.card.Category != "" {
		desc = BadgeStyle.Render(i.card.Category) + " " + desc
	}
	if i.card.Excerpt != "" {
		desc = truncateEnd(i.card.Excerpt, 72) + "  " + desc
	}
	return lipgloss.NewStyle().Foreground(MutedColor).Render(desc)
}

func (i cardItem) FilterValue() string { return i.card.Title }
