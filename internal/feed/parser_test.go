package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantErr   bool
		wantSlugs []string
	}{
		{
			name:      "posts list",
			body:      `{"posts":[{"slug":"a","title":"X & Y","date":"2024-01-01","category":"TECH"},{"slug":"b","title":"Z","date":"2024-06-01","category":"SPORTS"}]}`,
			wantSlugs: []string{"a", "b"},
		},
		{
			name:      "missing posts field is an empty feed",
			body:      `{"title":"Notícia Relâmpago"}`,
			wantSlugs: []string{},
		},
		{
			name:      "null posts",
			body:      `{"posts":null}`,
			wantSlugs: []string{},
		},
		{
			name:    "not json",
			body:    `Erro 500`,
			wantErr: true,
		},
		{
			name:    "wrong shape",
			body:    `{"posts":{"slug":"a"}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseManifest([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			slugs := make([]string, 0, len(got))
			for _, a := range got {
				slugs = append(slugs, a.Slug)
			}
			assert.Equal(t, tt.wantSlugs, slugs)
		})
	}
}

func TestParseManifest_CoverAlias(t *testing.T) {
	got, err := ParseManifest([]byte(`{"posts":[
		{"slug":"old","cover":"public/img/a.jpg"},
		{"slug":"new","image":"public/b.jpg","cover":"ignored.jpg"}
	]}`))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "public/img/a.jpg", got[0].Image)
	assert.Equal(t, "public/b.jpg", got[1].Image)
}

func TestParseManifest_RSS(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
	<channel>
		<title>Notícia Relâmpago</title>
		<item>
			<title>Chuva forte em SP</title>
			<link>https://noticias.example.org/post.html?slug=chuva-forte-em-sp</link>
			<description>Alerta da Defesa Civil</description>
			<category>Brasil</category>
			<author>maria@example.org (Maria)</author>
			<pubDate>Wed, 01 Jan 2025 12:00:00 GMT</pubDate>
			<enclosure url="https://noticias.example.org/public/chuva.jpg" type="image/jpeg"/>
			<content:encoded><![CDATA[<p>Texto completo</p>]]></content:encoded>
		</item>
		<item>
			<title>Sem link</title>
			<guid>https://noticias.example.org/posts/Sem_Link/</guid>
		</item>
	</channel>
</rss>`

	got, err := ParseManifest([]byte(body))
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "chuva-forte-em-sp", first.Slug)
	assert.Equal(t, "Chuva forte em SP", first.Title)
	assert.Equal(t, "Alerta da Defesa Civil", first.Excerpt)
	assert.Equal(t, "Brasil", first.Category)
	assert.Equal(t, "https://noticias.example.org/public/chuva.jpg", first.Image)
	assert.Equal(t, "<p>Texto completo</p>", first.Content)
	assert.Equal(t, "2025-01-01T12:00:00Z", first.Date)

	assert.Equal(t, "sem-link", got[1].Slug)
	assert.Empty(t, got[1].Date)
}

func TestParseArticle(t *testing.T) {
	a, err := ParseArticle([]byte(`{"slug":"x","title":"T","content":"<p>c</p>","caption":"foto","cover":"c.jpg"}`))
	require.NoError(t, err)
	assert.Equal(t, "x", a.Slug)
	assert.Equal(t, "<p>c</p>", a.Content)
	assert.Equal(t, "foto", a.Caption)
	assert.Equal(t, "c.jpg", a.Image)

	_, err = ParseArticle([]byte(`[1,2]`))
	assert.Error(t, err)
}
