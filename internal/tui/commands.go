package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/pders01/relampago/internal/media"
	"github.com/pders01/relampago/internal/render"
	"github.com/pders01/relampago/internal/storage"
)

type manifestLoadedMsg struct {
	seq      int
	articles []storage.Article
	err      error
}

type articleLoadedMsg struct {
	seq     int
	slug    string
	article storage.Article
	err     error
}

type openedMsg struct {
	target string
	err    error
}

type statusMsg struct {
	text string
	kind StatusKind
}

// beginManifestLoad starts the feed view's single asynchronous load.
// It is a no-op while a load is already in flight.
func (a *App) beginManifestLoad() tea.Cmd {
	if a.loadingFeed {
		return nil
	}
	a.loadingFeed = true
	a.manifestSeq++
	return tea.Batch(a.spinner.Tick, a.loadManifest(a.manifestSeq))
}

func (a *App) loadManifest(seq int) tea.Cmd {
	loader := a.loader
	return func() tea.Msg {
		articles, err := loader.LoadManifest(context.Background())
		return manifestLoadedMsg{seq: seq, articles: articles, err: err}
	}
}

// openArticle switches to the article view and issues one load for slug.
// Results carrying an older sequence number are dropped on arrival.
func (a *App) openArticle(slug string) tea.Cmd {
	a.view = ViewArticle
	a.articleSeq++
	a.articleSlug = slug
	a.loadingArticle = true
	a.article = render.ArticleView{}
	a.clearStatus()

	seq := a.articleSeq
	loader := a.loader
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		article, err := loader.LoadOne(context.Background(), slug)
		return articleLoadedMsg{seq: seq, slug: slug, article: article, err: err}
	})
}

// closeArticle returns to the feed; an in-flight article load becomes stale.
func (a *App) closeArticle() {
	a.view = ViewFeed
	a.articleSeq++
	a.loadingArticle = false
	a.clearStatus()
}

func (a *App) openExternal(target string) tea.Cmd {
	launcher := a.launcher
	return func() tea.Msg {
		err := launcher.Open(target)
		return openedMsg{target: target, err: wrapErr("abrir", err)}
	}
}

// openImage resolves a rendered image against the source and opens it.
func (a *App) openImage(img render.Image) tea.Cmd {
	if img.Src == "" || img.Src == img.Fallback {
		return func() tea.Msg { return statusMsg{text: MsgNoImage, kind: StatusWarn} }
	}
	return a.openExternal(media.Resolve(a.config.Source.Location, img.Src))
}

// openPage opens the article's web page, which only exists for remote sources.
func (a *App) openPage(slug string) tea.Cmd {
	loc := a.config.Source.Location
	if !strings.HasPrefix(loc, "http://") && !strings.HasPrefix(loc, "https://") {
		return func() tea.Msg { return statusMsg{text: MsgRemoteOnly, kind: StatusWarn} }
	}
	return a.openExternal(media.Resolve(loc, a.renderer.Href(slug)))
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	minWidth := a.config.UI.Article.WordWrapMinWidth
	maxWidth := a.config.UI.Article.WordWrapMaxWidth
	if minWidth <= 0 {
		minWidth = 40
	}
	if maxWidth <= 0 {
		maxWidth = 120
	}

	wordWrapWidth := (a.width * 9) / 10
	if wordWrapWidth > maxWidth {
		wordWrapWidth = maxWidth
	}
	if wordWrapWidth < minWidth {
		wordWrapWidth = minWidth
	}
	if a.width > 0 && a.width < 50 {
		wordWrapWidth = max(a.width-4, 20)
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrapWidth) > 10 {
		r, err := render.NewTermRenderer("", wordWrapWidth)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}
	return a.glamourRenderer, nil
}

// renderArticle lays out an article view for the viewport.
func (a *App) renderArticle(v render.ArticleView) string {
	if v.Placeholder != nil {
		return renderCentered(a.width, a.height-3, a.renderPlaceholder(*v.Placeholder))
	}

	var b strings.Builder
	if v.Category != "" {
		b.WriteString(BadgeStyle.Render(v.Category))
		b.WriteString("\n\n")
	}
	b.WriteString(HeaderStyle.Render(v.Title))
	b.WriteString("\n")
	meta := v.Author
	if v.Date != "" {
		meta += " · " + v.Date
	}
	b.WriteString(TimeStyle.Render(meta))
	b.WriteString("\n")
	if v.Cover != nil {
		b.WriteString(renderMuted("🖼  " + v.Cover.Src))
		b.WriteString("\n")
	}
	if v.Caption != "" {
		b.WriteString(renderHelp(v.Caption))
		b.WriteString("\n")
	}

	md := render.Markdown(v.Body)
	r, err := a.getRenderer()
	if err == nil {
		if out, rerr := r.Render(md); rerr == nil {
			md = out
		}
	}
	b.WriteString(md)
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// wrapErr prefixes err with the action that failed.
func wrapErr(action string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", action, err)
}
