package render

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/pders01/relampago/internal/feed"
	"github.com/pders01/relampago/internal/storage"
)

const (
	DefaultAuthor = "Redação"
	DefaultTitle  = "Sem título"
	EmptyBody     = "<p>(sem conteúdo)</p>"
	SiteName      = "Notícia Relâmpago"

	msgEmptyFeed       = "Nenhuma matéria encontrada."
	msgArticleNotFound = "Matéria não encontrada."
)

// Options configures a Renderer. Zero values fall back to sensible defaults.
type Options struct {
	Images       ImageRules
	Location     *time.Location
	Now          func() time.Time
	ManifestPath string
	PostPage     string
}

// Renderer turns articles and load failures into presentation-independent
// views. It never fails: every missing field has a default.
type Renderer struct {
	images       ImageRules
	dates        *DateFormatter
	policy       *bluemonday.Policy
	manifestPath string
	postPage     string
}

func New(opts Options) *Renderer {
	if opts.Images.Placeholder == "" {
		opts.Images.Placeholder = "public/placeholder.jpg"
	}
	if opts.ManifestPath == "" {
		opts.ManifestPath = "posts/index.json"
	}
	if opts.PostPage == "" {
		opts.PostPage = "post.html"
	}
	return &Renderer{
		images:       opts.Images,
		dates:        NewDateFormatter(opts.Location, opts.Now),
		policy:       bluemonday.UGCPolicy(),
		manifestPath: opts.ManifestPath,
		postPage:     opts.PostPage,
	}
}

// Feed builds one card per article in input order, or the empty placeholder.
func (r *Renderer) Feed(articles []storage.Article) FeedView {
	if len(articles) == 0 {
		return FeedView{Placeholder: &Placeholder{Kind: PlaceholderEmpty, Message: msgEmptyFeed}}
	}
	cards := make([]Card, len(articles))
	for i, a := range articles {
		cards[i] = r.Card(a)
	}
	return FeedView{Cards: cards}
}

func (r *Renderer) Card(a storage.Article) Card {
	date := r.dates.Short(a.Date)
	return Card{
		Slug:     a.Slug,
		Href:     r.Href(a.Slug),
		Title:    a.Title,
		Excerpt:  strings.TrimSpace(a.Excerpt),
		Category: strings.TrimSpace(a.Category),
		Author:   authorOrDefault(a.Author),
		Date:     date,
		DateTime: dateTime(a.Date, date),
		Image:    r.images.image(a.Image, a.Title),
	}
}

// Href is the addressable link of an article page.
func (r *Renderer) Href(slug string) string {
	return r.postPage + "?" + url.Values{"slug": {slug}}.Encode()
}

func (r *Renderer) Article(a storage.Article) ArticleView {
	title := strings.TrimSpace(a.Title)
	docTitle := title
	if title == "" {
		title = DefaultTitle
		docTitle = "Matéria"
	}

	body := EmptyBody
	if strings.TrimSpace(a.Content) != "" {
		body = r.policy.Sanitize(a.Content)
	}

	cover := r.images.image(a.Image, strings.TrimSpace(a.Title))
	long := r.dates.Long(a.Date)
	return ArticleView{
		Slug:          a.Slug,
		DocumentTitle: docTitle + " • " + SiteName,
		Title:         title,
		Category:      strings.TrimSpace(a.Category),
		Author:        authorOrDefault(a.Author),
		Date:          long,
		DateTime:      dateTime(a.Date, long),
		Cover:         &cover,
		Caption:       strings.TrimSpace(a.Caption),
		Body:          body,
	}
}

// LoadFailure is the feed view shown when the manifest could not be loaded.
func (r *Renderer) LoadFailure(err error) FeedView {
	return FeedView{Placeholder: &Placeholder{
		Kind:    PlaceholderLoadError,
		Message: fmt.Sprintf("Não consegui carregar %s.", r.manifestPath),
		Detail:  failureDetail(err),
	}}
}

// ArticleFailure is the article view shown when an article could not be loaded.
func (r *Renderer) ArticleFailure(err error) ArticleView {
	ph := &Placeholder{Kind: PlaceholderNotFound, Message: msgArticleNotFound}
	if feed.IsMissingSlug(err) {
		ph.Message = "Matéria não encontrada (slug ausente)."
	} else {
		ph.Detail = failureDetail(err)
	}
	return ArticleView{DocumentTitle: "Matéria • " + SiteName, Placeholder: ph}
}

func failureDetail(err error) string {
	if err == nil {
		return ""
	}
	le, ok := feed.AsLoadError(err)
	if !ok {
		return err.Error()
	}
	switch {
	case le.Status != 0:
		return fmt.Sprintf("HTTP %d", le.Status)
	case le.Err != nil && le.Message != "":
		return le.Message + ": " + le.Err.Error()
	case le.Err != nil:
		return le.Err.Error()
	default:
		return le.Message
	}
}

func authorOrDefault(author string) string {
	if a := strings.TrimSpace(author); a != "" {
		return a
	}
	return DefaultAuthor
}

// dateTime keeps the raw date only when it could be formatted.
func dateTime(raw, formatted string) string {
	if formatted == "" {
		return ""
	}
	return strings.TrimSpace(raw)
}
