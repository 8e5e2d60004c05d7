package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/pders01/relampago/internal/storage"
)

// articleRecord is the on-disk article shape. Older files name the image
// field "cover"; it is folded into Image.
type articleRecord struct {
	storage.Article
	Cover string `json:"cover,omitempty"`
}

func (r articleRecord) toArticle() storage.Article {
	a := r.Article
	if a.Image == "" {
		a.Image = r.Cover
	}
	return a
}

type manifestRecord struct {
	Posts []articleRecord `json:"posts"`
}

// ParseManifest decodes a feed manifest. JSON is the native format; an XML
// body is read as RSS/Atom so a syndicated copy of the feed works too.
// A JSON document without "posts" is an empty feed, not an error.
func ParseManifest(body []byte) ([]storage.Article, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '<' {
		return parseSyndication(trimmed)
	}

	var m manifestRecord
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}

	articles := make([]storage.Article, 0, len(m.Posts))
	for _, r := range m.Posts {
		articles = append(articles, r.toArticle())
	}
	return articles, nil
}

// ParseArticle decodes a single article resource.
func ParseArticle(body []byte) (storage.Article, error) {
	var r articleRecord
	if err := json.Unmarshal(bytes.TrimSpace(body), &r); err != nil {
		return storage.Article{}, fmt.Errorf("decoding article: %w", err)
	}
	return r.toArticle(), nil
}

func parseSyndication(body []byte) ([]storage.Article, error) {
	f, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	articles := make([]storage.Article, 0, len(f.Items))
	for _, item := range f.Items {
		a := storage.Article{
			Slug:    slugForItem(item),
			Title:   item.Title,
			Excerpt: item.Description,
			Content: item.Content,
			Image:   imageForItem(item),
		}
		if len(item.Categories) > 0 {
			a.Category = item.Categories[0]
		}
		if len(item.Authors) > 0 && item.Authors[0] != nil {
			a.Author = item.Authors[0].Name
		}
		switch {
		case item.PublishedParsed != nil:
			a.Date = item.PublishedParsed.Format(time.RFC3339)
		case item.UpdatedParsed != nil:
			a.Date = item.UpdatedParsed.Format(time.RFC3339)
		}
		articles = append(articles, a)
	}
	return articles, nil
}

func imageForItem(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// slugForItem derives a stable slug for a feed item: the "slug" parameter of
// a post.html link if present, else the last path segment of the link or
// GUID, reduced to the characters article slugs may contain.
func slugForItem(item *gofeed.Item) string {
	src := item.Link
	if src == "" {
		src = item.GUID
	}
	if u, err := url.Parse(src); err == nil {
		if slug := u.Query().Get("slug"); slug != "" {
			src = slug
		}
	}
	if q := strings.IndexAny(src, "?#"); q >= 0 {
		src = src[:q]
	}
	src = strings.TrimRight(src, "/")
	if i := strings.LastIndex(src, "/"); i >= 0 {
		src = src[i+1:]
	}
	src = strings.TrimSuffix(src, ".html")
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(src), "-"), "-")
}
