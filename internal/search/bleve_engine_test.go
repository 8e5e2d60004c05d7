package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/relampago/internal/storage"
)

func TestIndex_Ranked(t *testing.T) {
	ix, err := NewIndex([]storage.Article{
		{Slug: "body-only", Title: "Boletim", Content: "<p>O <b>satélite</b> foi lançado</p>"},
		{Slug: "title", Title: "Satélite brasileiro em órbita", Excerpt: "Missão concluída"},
		{Slug: "other", Title: "Futebol", Category: "ESPORTES"},
		{Title: "no slug is skipped", Content: "satélite"},
	})
	require.NoError(t, err)
	defer ix.Close()

	n, err := ix.DocCount()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	hits, err := ix.Ranked("satélite", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "title", hits[0].Article.Slug, "title matches outrank body matches")
	assert.Equal(t, "body-only", hits[1].Article.Slug)
	assert.Greater(t, hits[0].Score, hits[1].Score)

	hits, err = ix.Ranked("esport", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "other", hits[0].Article.Slug)

	hits, err = ix.Ranked("   ", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Olá mundo cruel", PlainText("<p>Olá <em>mundo</em></p>\n<p>cruel</p>"))
	assert.Equal(t, "", PlainText("  "))
}
