package render

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/relampago/internal/feed"
	"github.com/pders01/relampago/internal/storage"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return New(Options{
		Images: ImageRules{
			Placeholder:     "public/placeholder.jpg",
			LegacyPrefix:    "public/img/",
			CanonicalPrefix: "public/",
		},
		Location: loc,
		Now:      func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, loc) },
	})
}

func TestFeed_EmptyYieldsPlaceholder(t *testing.T) {
	r := testRenderer(t)

	for _, in := range [][]storage.Article{nil, {}} {
		v := r.Feed(in)
		require.NotNil(t, v.Placeholder)
		assert.Empty(t, v.Cards)
		assert.Equal(t, PlaceholderEmpty, v.Placeholder.Kind)
		assert.Equal(t, "Nenhuma matéria encontrada.", v.Placeholder.Message)
	}
}

func TestFeed_CardsInInputOrder(t *testing.T) {
	r := testRenderer(t)
	v := r.Feed([]storage.Article{
		{Slug: "b", Title: "Z", Date: "2024-06-01", Category: "SPORTS"},
		{Slug: "a", Title: "X & Y", Date: "2024-01-01", Category: "TECH"},
	})

	require.Nil(t, v.Placeholder)
	require.Len(t, v.Cards, 2)
	assert.Equal(t, "b", v.Cards[0].Slug)
	assert.Equal(t, "a", v.Cards[1].Slug)
	assert.Equal(t, "X & Y", v.Cards[1].Title)
}

func TestCard_Defaults(t *testing.T) {
	r := testRenderer(t)
	c := r.Card(storage.Article{Slug: "a b", Title: "T", Date: "2024-01-02"})

	assert.Equal(t, "post.html?slug=a+b", c.Href)
	assert.Equal(t, DefaultAuthor, c.Author)
	assert.Empty(t, c.Category)
	assert.Empty(t, c.Excerpt)
	assert.Equal(t, "public/placeholder.jpg", c.Image.Src, "missing image uses the placeholder, never an empty src")
	assert.Equal(t, "public/placeholder.jpg", c.Image.Fallback)
	assert.Equal(t, "02 de jan", c.Date)
	assert.Equal(t, "2024-01-02", c.DateTime)
}

func TestCard_Fields(t *testing.T) {
	r := testRenderer(t)
	c := r.Card(storage.Article{
		Slug:     "x",
		Title:    "Título",
		Date:     "2023-12-05T10:00:00-03:00",
		Category: " TECH ",
		Excerpt:  "Resumo",
		Author:   "Ana",
		Image:    `public\img\foto.jpg`,
	})

	assert.Equal(t, "TECH", c.Category)
	assert.Equal(t, "Resumo", c.Excerpt)
	assert.Equal(t, "Ana", c.Author)
	assert.Equal(t, "public/foto.jpg", c.Image.Src)
	assert.Equal(t, "Título", c.Image.Alt)
	assert.Equal(t, "05 de dez de 2023", c.Date)
}

func TestCard_UnparseableDate(t *testing.T) {
	r := testRenderer(t)
	c := r.Card(storage.Article{Slug: "x", Date: "ontem"})
	assert.Empty(t, c.Date)
	assert.Empty(t, c.DateTime)
}

func TestArticle(t *testing.T) {
	r := testRenderer(t)
	v := r.Article(storage.Article{
		Slug:     "a",
		Title:    "Manchete",
		Date:     "2024-01-01",
		Category: "TECH",
		Image:    "public/img/capa.jpg",
		Caption:  "Legenda",
		Content:  `<p>Texto <a href="https://exemplo.com">link</a></p><script>alert(1)</script>`,
	})

	assert.Nil(t, v.Placeholder)
	assert.Equal(t, "Manchete • Notícia Relâmpago", v.DocumentTitle)
	assert.Equal(t, "01 de janeiro de 2024", v.Date)
	assert.Equal(t, DefaultAuthor, v.Author)
	require.NotNil(t, v.Cover)
	assert.Equal(t, "public/capa.jpg", v.Cover.Src)
	assert.Equal(t, "Legenda", v.Caption)
	assert.Contains(t, v.Body, "<p>Texto")
	assert.Contains(t, v.Body, "https://exemplo.com")
	assert.NotContains(t, v.Body, "<script")
}

func TestArticle_Defaults(t *testing.T) {
	r := testRenderer(t)
	v := r.Article(storage.Article{Slug: "a"})

	assert.Equal(t, DefaultTitle, v.Title)
	assert.Equal(t, "Matéria • Notícia Relâmpago", v.DocumentTitle)
	assert.Equal(t, EmptyBody, v.Body)
	assert.Empty(t, v.Date)
	require.NotNil(t, v.Cover)
	assert.Equal(t, "public/placeholder.jpg", v.Cover.Src)
}

func TestLoadFailure(t *testing.T) {
	r := testRenderer(t)

	v := r.LoadFailure(&feed.LoadError{Kind: feed.KindNetwork, Path: "posts/index.json", Status: 404})
	assert.Empty(t, v.Cards)
	require.NotNil(t, v.Placeholder)
	assert.Equal(t, PlaceholderLoadError, v.Placeholder.Kind)
	assert.Contains(t, v.Placeholder.Message, "posts/index.json")
	assert.Equal(t, "HTTP 404", v.Placeholder.Detail)

	v = r.LoadFailure(errors.New("connection refused"))
	assert.Equal(t, "connection refused", v.Placeholder.Detail)

	v = r.LoadFailure(&feed.LoadError{Kind: feed.KindParse, Message: "invalid manifest", Err: errors.New("unexpected EOF")})
	assert.Equal(t, "invalid manifest: unexpected EOF", v.Placeholder.Detail)
}

func TestArticleFailure(t *testing.T) {
	r := testRenderer(t)

	_, err := feed.SlugFromParams(nil)
	v := r.ArticleFailure(err)
	require.NotNil(t, v.Placeholder)
	assert.Equal(t, PlaceholderNotFound, v.Placeholder.Kind)
	assert.Equal(t, "Matéria não encontrada (slug ausente).", v.Placeholder.Message)

	v = r.ArticleFailure(&feed.LoadError{Kind: feed.KindNetwork, Path: "posts/x.json", Status: 404})
	assert.Equal(t, "Matéria não encontrada.", v.Placeholder.Message)
	assert.Equal(t, "HTTP 404", v.Placeholder.Detail)
}

func TestNormalizeImagePath(t *testing.T) {
	rules := ImageRules{Placeholder: "public/placeholder.jpg", LegacyPrefix: "public/img/", CanonicalPrefix: "public/"}
	tests := []struct{ in, want string }{
		{"", "public/placeholder.jpg"},
		{"   ", "public/placeholder.jpg"},
		{`public\img\a.jpg`, "public/a.jpg"},
		{"public/img/a.jpg", "public/a.jpg"},
		{"public/a.jpg", "public/a.jpg"},
		{"https://cdn.example.com/img/a.jpg", "https://cdn.example.com/img/a.jpg"},
		{"assets/public/img/a.jpg", "assets/public/img/a.jpg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeImagePath(tt.in, rules), tt.in)
	}
}

func TestDateFormatter(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	f := NewDateFormatter(loc, func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, loc) })

	assert.Equal(t, "01 de jan", f.Short("2024-01-01"))
	assert.Equal(t, "15 de mai de 2023", f.Short("2023-05-15"))
	assert.Equal(t, "01 de janeiro de 2024", f.Long("2024-01-01"))
	assert.Equal(t, "31 de dezembro de 2023", f.Long("2024-01-01T01:00:00Z"), "instants display in the configured zone")
	assert.Empty(t, f.Short(""))
	assert.Empty(t, f.Long("not a date"))

	for _, s := range []string{f.Short("2024-02-10"), f.Short("2024-09-10")} {
		assert.False(t, strings.Contains(s, "."), s)
	}
}
