package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TextPresenter renders views for a terminal.
type TextPresenter struct {
	Width int
	// GlamourStyle names a glamour standard style; empty means auto-detect.
	GlamourStyle string

	title   lipgloss.Style
	badge   lipgloss.Style
	meta    lipgloss.Style
	excerpt lipgloss.Style
	muted   lipgloss.Style
	errText lipgloss.Style
}

func NewTextPresenter(width int) *TextPresenter {
	if width <= 0 {
		width = 80
	}
	return &TextPresenter{
		Width:   width,
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EAEAEA")),
		badge:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1A1A2E")).Background(lipgloss.Color("#FFD400")).Padding(0, 1),
		meta:    lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")),
		excerpt: lipgloss.NewStyle().Foreground(lipgloss.Color("#EAEAEA")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")).Faint(true),
		errText: lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).Bold(true),
	}
}

func (p *TextPresenter) Feed(w io.Writer, v FeedView) error {
	if v.Placeholder != nil {
		_, err := fmt.Fprintln(w, p.Placeholder(*v.Placeholder))
		return err
	}
	blocks := make([]string, len(v.Cards))
	for i, c := range v.Cards {
		blocks[i] = p.Card(c)
	}
	_, err := fmt.Fprintln(w, strings.Join(blocks, "\n\n"))
	return err
}

// Card renders one card as a few lines of styled text.
func (p *TextPresenter) Card(c Card) string {
	lines := []string{p.title.Width(p.Width).Render(c.Title)}
	if c.Excerpt != "" {
		lines = append(lines, p.excerpt.Width(p.Width).Render(c.Excerpt))
	}
	lines = append(lines, p.metaLine(c.Category, c.Author, c.Date))
	lines = append(lines, p.muted.Render(c.Href+"  "+c.Image.Src))
	return strings.Join(lines, "\n")
}

func (p *TextPresenter) metaLine(category, author, date string) string {
	parts := []string{}
	if category != "" {
		parts = append(parts, p.badge.Render(category))
	}
	info := author
	if date != "" {
		info += " · " + date
	}
	parts = append(parts, p.meta.Render(info))
	return strings.Join(parts, " ")
}

func (p *TextPresenter) Placeholder(ph Placeholder) string {
	style := p.meta
	if ph.Kind != PlaceholderEmpty {
		style = p.errText
	}
	out := style.Render(ph.Message)
	if ph.Detail != "" {
		out += "\n" + p.muted.Render(ph.Detail)
	}
	return out
}

func (p *TextPresenter) Article(w io.Writer, v ArticleView) error {
	if v.Placeholder != nil {
		_, err := fmt.Fprintln(w, p.Placeholder(*v.Placeholder))
		return err
	}
	_, err := fmt.Fprint(w, p.ArticleText(v))
	return err
}

// ArticleText renders the article header and body. Body conversion problems
// degrade to the unstyled markdown.
func (p *TextPresenter) ArticleText(v ArticleView) string {
	var b strings.Builder
	b.WriteString(p.title.Width(p.Width).Render(v.Title))
	b.WriteString("\n")
	b.WriteString(p.metaLine(v.Category, v.Author, v.Date))
	b.WriteString("\n")
	if v.Cover != nil {
		b.WriteString(p.muted.Render("[imagem] " + v.Cover.Src))
		b.WriteString("\n")
	}
	if v.Caption != "" {
		b.WriteString(p.muted.Render(v.Caption))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	md := Markdown(v.Body)
	r, err := NewTermRenderer(p.GlamourStyle, p.Width)
	if err == nil {
		if out, rerr := r.Render(md); rerr == nil {
			md = out
		}
	}
	b.WriteString(md)
	if !strings.HasSuffix(md, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}
