package feed

import (
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/pders01/relampago/internal/config"
	"github.com/pders01/relampago/internal/debuglog"
	"github.com/pders01/relampago/internal/storage"
	"github.com/pders01/relampago/internal/validation"
)

// Loader fetches the manifest and single articles from a Source.
// Each call is a single attempt; failures come back as *LoadError.
type Loader struct {
	source     Source
	manifest   string
	articleDir string
}

func NewLoader(source Source, cfg config.SourceConfig) *Loader {
	return &Loader{
		source:     source,
		manifest:   strings.TrimPrefix(cfg.Manifest, "/"),
		articleDir: strings.Trim(cfg.ArticleDir, "/"),
	}
}

// ManifestPath is the resource LoadManifest reads, as shown to users on failure.
func (l *Loader) ManifestPath() string { return l.manifest }

func (l *Loader) Source() Source { return l.source }

// LoadManifest returns the articles listed in the feed manifest, in file order.
func (l *Loader) LoadManifest(ctx context.Context) ([]storage.Article, error) {
	log := debuglog.WithFields(map[string]interface{}{"source": l.source.String(), "path": l.manifest})

	body, err := l.source.Open(ctx, l.manifest)
	if err != nil {
		log.Warnf("manifest load failed: %v", err)
		return nil, err
	}

	articles, err := ParseManifest(body)
	if err != nil {
		log.Warnf("manifest parse failed: %v", err)
		return nil, &LoadError{Kind: KindParse, Path: l.manifest, Message: "invalid manifest", Err: err}
	}

	log.Infof("loaded %d articles", len(articles))
	return articles, nil
}

// ArticlePath is the resource path for slug. The slug must already be valid.
func (l *Loader) ArticlePath(slug string) string {
	return path.Join(l.articleDir, slug+".json")
}

// LoadOne returns the article stored under slug. Slugs come from page
// parameters and are validated as a single path segment before use.
func (l *Loader) LoadOne(ctx context.Context, slug string) (storage.Article, error) {
	if strings.TrimSpace(slug) == "" {
		return storage.Article{}, &LoadError{Kind: KindNotFound, Message: MsgMissingSlug}
	}
	clean, err := validation.ValidateSlug(slug)
	if err != nil {
		debuglog.Warnf("rejected slug %q: %v", slug, err)
		return storage.Article{}, &LoadError{Kind: KindNotFound, Message: "invalid slug", Err: err}
	}

	p := l.ArticlePath(clean)
	body, err := l.source.Open(ctx, p)
	if err != nil {
		debuglog.WithFields(map[string]interface{}{"slug": clean}).Warnf("article load failed: %v", err)
		return storage.Article{}, err
	}

	article, err := ParseArticle(body)
	if err != nil {
		return storage.Article{}, &LoadError{Kind: KindParse, Path: p, Message: "invalid article", Err: err}
	}
	if article.Slug == "" {
		article.Slug = clean
	}
	return article, nil
}

// LoadFromLocation is LoadOne for a page address ("post.html?slug=...").
func (l *Loader) LoadFromLocation(ctx context.Context, location string) (storage.Article, error) {
	slug, err := SlugFromLocation(location)
	if err != nil {
		return storage.Article{}, err
	}
	return l.LoadOne(ctx, slug)
}

// SlugFromParams returns the "slug" parameter or a KindNotFound error.
func SlugFromParams(params url.Values) (string, error) {
	slug := strings.TrimSpace(params.Get("slug"))
	if slug == "" {
		return "", &LoadError{Kind: KindNotFound, Message: MsgMissingSlug}
	}
	return slug, nil
}

// SlugFromLocation accepts a page address such as "post.html?slug=abc",
// a bare query "?slug=abc" or "slug=abc", or a bare slug. An address
// without a slug parameter fails with MsgMissingSlug.
func SlugFromLocation(location string) (string, error) {
	location = strings.TrimSpace(location)
	if i := strings.Index(location, "#"); i >= 0 {
		location = location[:i]
	}
	if location == "" {
		return "", &LoadError{Kind: KindNotFound, Message: MsgMissingSlug}
	}

	var query string
	switch {
	case strings.Contains(location, "?"):
		query = location[strings.Index(location, "?")+1:]
	case strings.Contains(location, "="):
		query = location
	case isPageAddress(location):
		return "", &LoadError{Kind: KindNotFound, Message: MsgMissingSlug}
	default:
		return location, nil
	}

	params, err := url.ParseQuery(query)
	if err != nil {
		return "", &LoadError{Kind: KindNotFound, Message: "invalid page parameters", Err: err}
	}
	return SlugFromParams(params)
}

func isPageAddress(location string) bool {
	if strings.Contains(location, "/") || strings.HasSuffix(strings.ToLower(location), ".html") {
		return true
	}
	_, err := validation.ValidateSlug(location)
	return err != nil
}
