package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/relampago/internal/config"
	"github.com/pders01/relampago/internal/debuglog"
	"github.com/pders01/relampago/internal/search"
)

func TestVersionCommand(t *testing.T) {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	versionCmd.Run(nil, nil)

	w.Close()
	os.Stdout = old
	out := <-outC

	assert.Contains(t, out, "relampago dev")
	assert.Contains(t, out, "github.com/pders01/relampago")
}

func TestGenerateConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	var out bytes.Buffer
	generateConfigCmd.SetOut(&out)
	require.NoError(t, generateConfigCmd.RunE(generateConfigCmd, []string{path}))

	assert.Contains(t, out.String(), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "posts/index.json")

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loaded.Locale.Timezone)
}

func writeSite(t *testing.T) *config.Config {
	t.Helper()
	return writeSiteFiles(t, map[string]string{
		"posts/index.json": `{"posts":[
			{"slug":"a","title":"X & Y","date":"2024-01-01","category":"TECH"},
			{"slug":"b","title":"Z","date":"2024-06-01","category":"SPORTS","content":"<p>Partida decidida nos pênaltis</p>"}
		]}`,
		"posts/a.json": `{"slug":"a","title":"X & Y","date":"2024-01-01","category":"TECH","content":"<p>Corpo <script>x()</script></p>"}`,
	})
}

func writeSiteFiles(t *testing.T, files map[string]string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}

	c := config.TestConfig()
	c.Source.Location = dir
	return c
}

func withFormat(t *testing.T, f string) {
	t.Helper()
	old := format
	format = f
	t.Cleanup(func() { format = old })
}

func TestRenderFeed(t *testing.T) {
	c := writeSite(t)
	withFormat(t, "html")

	var out bytes.Buffer
	require.NoError(t, renderFeed(context.Background(), &out, c, search.Filter{}))
	html := out.String()
	assert.Less(t, strings.Index(html, "slug=b"), strings.Index(html, "slug=a"), "newest first")
	assert.Contains(t, html, "X &amp; Y")

	out.Reset()
	require.NoError(t, renderFeed(context.Background(), &out, c, search.Filter{Category: "tech"}))
	assert.Contains(t, out.String(), "slug=a")
	assert.NotContains(t, out.String(), "slug=b")
}

func TestRenderFeed_LoadFailure(t *testing.T) {
	c := config.TestConfig()
	c.Source.Location = t.TempDir()
	withFormat(t, "text")

	var out bytes.Buffer
	err := renderFeed(context.Background(), &out, c, search.Filter{})
	assert.ErrorIs(t, err, errShown)
	assert.Contains(t, out.String(), "posts/index.json")
	assert.Contains(t, out.String(), "HTTP 404")
}

func TestRenderPost(t *testing.T) {
	c := writeSite(t)
	withFormat(t, "html")

	var out bytes.Buffer
	require.NoError(t, renderPost(context.Background(), &out, c, "post.html?slug=a"))
	assert.Contains(t, out.String(), "<h1 class=\"nr-article-title\">X &amp; Y</h1>")
	assert.NotContains(t, out.String(), "<script>")

	out.Reset()
	err := renderPost(context.Background(), &out, c, "post.html?")
	assert.ErrorIs(t, err, errShown)
	assert.Contains(t, out.String(), "slug ausente")

	out.Reset()
	err = renderPost(context.Background(), &out, c, "post.html")
	assert.ErrorIs(t, err, errShown)
	assert.Contains(t, out.String(), "slug ausente", "a page address is never read as a slug")

	out.Reset()
	err = renderPost(context.Background(), &out, c, "b")
	assert.ErrorIs(t, err, errShown)
	assert.Contains(t, out.String(), "Matéria não encontrada.")
}

func TestRenderRanked(t *testing.T) {
	c := writeSite(t)
	withFormat(t, "json")

	var out bytes.Buffer
	require.NoError(t, renderRanked(context.Background(), &out, c, search.Filter{Query: "pênaltis"}, 10))
	assert.Contains(t, out.String(), `"slug": "b"`)
	assert.NotContains(t, out.String(), `"slug": "a"`)
}

func TestRenderRanked_CategoryBeforeLimit(t *testing.T) {
	c := writeSiteFiles(t, map[string]string{
		"posts/index.json": `{"posts":[
			{"slug":"g1","title":"Gol gol gol","date":"2024-06-01","category":"SPORTS"},
			{"slug":"g2","title":"Placar","excerpt":"um gol de robô","date":"2024-05-01","category":"TECH"}
		]}`,
	})
	withFormat(t, "json")

	var out bytes.Buffer
	require.NoError(t, renderRanked(context.Background(), &out, c, search.Filter{Category: "tech", Query: "gol"}, 1))
	assert.Contains(t, out.String(), `"slug": "g2"`)
	assert.NotContains(t, out.String(), `"slug": "g1"`)
}

func TestRootCommandLoadsConfigAndLogging(t *testing.T) {
	c := writeSite(t)
	c.Log.Level = "debug"
	c.Log.File = filepath.Join(t.TempDir(), "relampago.log")
	cfgFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, config.Save(c, cfgFile))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"search", "--config", cfgFile, "--ranked", "--category", "sports", "--format", "json", "pênaltis"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		configPath, format, category, ranked = "", "text", "", false
		cfg = nil
		_ = debuglog.Close()
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), `"slug": "b"`)
	require.NotNil(t, cfg)
	assert.Equal(t, c.Source.Location, cfg.Source.Location)

	logged, err := os.ReadFile(c.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(logged), "ranked search over 1 articles")
}

func TestUnknownFormat(t *testing.T) {
	c := writeSite(t)
	withFormat(t, "pdf")

	err := renderFeed(context.Background(), io.Discard, c, search.Filter{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errShown)
}
