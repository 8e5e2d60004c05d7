package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "chuva-em-sp", want: "chuva-em-sp"},
		{name: "trimmed", input: "  a_b.2024 ", want: "a_b.2024"},
		{name: "empty", input: "", wantErr: true},
		{name: "traversal", input: "../secrets", wantErr: true},
		{name: "embedded traversal", input: "a..b", wantErr: true},
		{name: "slash", input: "posts/x", wantErr: true},
		{name: "backslash", input: `posts\x`, wantErr: true},
		{name: "leading dot", input: ".hidden", wantErr: true},
		{name: "query chars", input: "a?b=c", wantErr: true},
		{name: "encoded", input: "a%2Fb", wantErr: true},
		{name: "unicode", input: "notícia", wantErr: true},
		{name: "too long", input: string(make([]byte, MaxSlugLength+1)), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateSlug(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSourceURLValidator(t *testing.T) {
	v := NewSourceURLValidator()

	u, err := v.ValidateAndNormalize("https://noticias.example.org/site?x=1#top")
	require.NoError(t, err)
	assert.Equal(t, "https://noticias.example.org/site/", u.String())

	u, err = v.ValidateAndNormalize("http://localhost:8080")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/", u.String())

	for _, bad := range []string{"", "ftp://host/", "https://", "http://192.168.0.10/", "https://host/a/../b", "https://host/<x>"} {
		_, err := v.ValidateAndNormalize(bad)
		assert.Error(t, err, bad)
	}

	strict := &SourceURLValidator{MaxLength: 2048}
	_, err = strict.ValidateAndNormalize("http://127.0.0.1/")
	assert.Error(t, err)
}

func TestValidateSourceDir(t *testing.T) {
	dir := t.TempDir()

	got, err := ValidateSourceDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	file := filepath.Join(dir, "posts.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))
	_, err = ValidateSourceDir(file)
	assert.Error(t, err)

	_, err = ValidateSourceDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)

	_, err = ValidateSourceDir("")
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "site"), ExpandHome("~/site"))
	assert.Equal(t, "/abs", ExpandHome("/abs"))
}
