package search

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/pders01/relampago/internal/storage"
)

// Index is an in-memory full-text index over a loaded collection. Unlike
// Apply it ranks by relevance and also looks into article bodies.
type Index struct {
	idx   bleve.Index
	posts map[string]storage.Article
}

// Hit is one ranked match.
type Hit struct {
	Article storage.Article
	Score   float64
}

func NewIndex(articles []storage.Article) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating index: %w", err)
	}

	ix := &Index{idx: idx, posts: make(map[string]storage.Article, len(articles))}
	batch := idx.NewBatch()
	for _, a := range articles {
		if a.Slug == "" {
			continue
		}
		ix.posts[a.Slug] = a
		if err := batch.Index(a.Slug, map[string]any{
			"title":    a.Title,
			"excerpt":  a.Excerpt,
			"author":   a.Author,
			"category": a.Category,
			"body":     PlainText(a.Content),
		}); err != nil {
			return nil, fmt.Errorf("indexing %s: %w", a.Slug, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		return nil, fmt.Errorf("indexing batch: %w", err)
	}
	return ix, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()
	for _, field := range []string{"title", "excerpt", "author", "category", "body"} {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = standard.Name
		fm.Store = false
		dm.AddFieldMappingsAt(field, fm)
	}
	im.DefaultMapping = dm
	return im
}

var fieldBoosts = []struct {
	field string
	boost float64
}{
	{"title", 4.0},
	{"excerpt", 2.0},
	{"category", 1.5},
	{"author", 1.5},
	{"body", 1.0},
}

// Ranked returns up to limit articles matching query, best first.
func (ix *Index) Ranked(query string, limit int) ([]Hit, error) {
	tokens := strings.Fields(NormalizeQuery(query))
	if len(tokens) == 0 {
		return []Hit{}, nil
	}
	if limit <= 0 {
		limit = len(ix.posts)
	}

	var qs []bleveQuery.Query
	for _, tok := range tokens {
		for _, fb := range fieldBoosts {
			m := bleve.NewMatchQuery(tok)
			m.SetField(fb.field)
			m.SetBoost(fb.boost)
			qs = append(qs, m)

			p := bleve.NewPrefixQuery(tok)
			p.SetField(fb.field)
			p.SetBoost(fb.boost * 0.8)
			qs = append(qs, p)
		}
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(qs...), limit, 0, false)
	res, err := ix.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		if a, ok := ix.posts[h.ID]; ok {
			hits = append(hits, Hit{Article: a, Score: h.Score})
		}
	}
	return hits, nil
}

// DocCount reports how many articles are indexed.
func (ix *Index) DocCount() (int, error) {
	n, err := ix.idx.DocCount()
	return int(n), err
}

func (ix *Index) Close() error {
	return ix.idx.Close()
}

// PlainText strips markup from an HTML fragment.
func PlainText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
