package storage

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/pders01/relampago/internal/debuglog"
)

// Ingest returns a copy of articles ordered newest-first by publication date.
// Records without a parseable date go last, ties keep their input order and
// duplicate slugs keep only the first occurrence. The input is not modified.
func Ingest(articles []Article, loc *time.Location) []Article {
	seen := make(map[string]bool, len(articles))
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.Slug != "" {
			if seen[a.Slug] {
				debuglog.WithFields(map[string]interface{}{"slug": a.Slug}).Warnf("dropping duplicate article")
				continue
			}
			seen[a.Slug] = true
		}
		out = append(out, a)
	}

	keyed := make([]datedArticle, len(out))
	for i, a := range out {
		t, ok := ParseDate(a.Date, loc)
		keyed[i] = datedArticle{article: a, at: t, dated: ok}
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		if keyed[i].dated != keyed[j].dated {
			return keyed[i].dated
		}
		return keyed[i].at.After(keyed[j].at)
	})

	return lo.Map(keyed, func(k datedArticle, _ int) Article { return k.article })
}

type datedArticle struct {
	article Article
	at      time.Time
	dated   bool
}

// Store holds the ingested collection for the page currently on screen.
// It is replaced wholesale on every load and never mutated in place.
type Store struct {
	posts  []Article
	bySlug map[string]int
}

func NewStore(articles []Article, loc *time.Location) *Store {
	posts := Ingest(articles, loc)
	bySlug := make(map[string]int, len(posts))
	for i, p := range posts {
		if p.Slug != "" {
			bySlug[p.Slug] = i
		}
	}
	return &Store{posts: posts, bySlug: bySlug}
}

// Posts returns the ordered collection. Callers must treat it as read-only.
func (s *Store) Posts() []Article {
	if s == nil {
		return nil
	}
	return s.posts
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.posts)
}

func (s *Store) Lookup(slug string) (Article, bool) {
	if s == nil {
		return Article{}, false
	}
	i, ok := s.bySlug[slug]
	if !ok {
		return Article{}, false
	}
	return s.posts[i], true
}

// Categories lists the distinct non-empty categories, upper-cased, in the
// order they first appear in the collection.
func (s *Store) Categories() []string {
	if s == nil {
		return nil
	}
	cats := lo.FilterMap(s.posts, func(a Article, _ int) (string, bool) {
		c := CanonicalCategory(a.Category)
		return c, c != ""
	})
	return lo.Uniq(cats)
}
