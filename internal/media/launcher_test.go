package media

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/relampago/internal/config"
)

func testLauncher(t *testing.T) (*Launcher, *[]*exec.Cmd) {
	t.Helper()
	cfg := config.TestConfig()
	cfg.Media.Darwin = []string{"definitely-not-installed-viewer"}
	cfg.Media.Linux = []string{"definitely-not-installed-viewer"}
	cfg.Media.Windows = []string{"definitely-not-installed-viewer"}
	cfg.Media.DefaultOpener = "opener"

	l := NewLauncher(cfg)
	var started []*exec.Cmd
	l.start = func(cmd *exec.Cmd) error {
		started = append(started, cmd)
		return nil
	}
	return l, &started
}

func TestLauncher_FallsBackToDefaultOpener(t *testing.T) {
	l, started := testLauncher(t)
	assert.Equal(t, "opener", l.imageViewer)

	require.NoError(t, l.Open("https://example.com/public/capa.jpg"))
	require.Len(t, *started, 1)
	assert.Equal(t, []string{"opener", "https://example.com/public/capa.jpg"}, (*started)[0].Args)
}

func TestLauncher_UsesRegistryArgs(t *testing.T) {
	l, started := testLauncher(t)
	l.imageViewer = "feh"
	l.registry.goos = "linux"

	require.NoError(t, l.Open("public/capa.png"))
	require.NoError(t, l.Open("https://example.com/post.html?slug=a"))

	require.Len(t, *started, 2)
	assert.Equal(t, []string{"feh", "--scale-down", "--auto-zoom", "public/capa.png"}, (*started)[0].Args)
	assert.Equal(t, []string{"opener", "https://example.com/post.html?slug=a"}, (*started)[1].Args)
}

func TestLauncher_Errors(t *testing.T) {
	l, _ := testLauncher(t)
	assert.Error(t, l.Open("  "))

	l.start = func(*exec.Cmd) error { return errors.New("boom") }
	err := l.Open("x.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRegistry(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	assert.True(t, r.IsImage("public/a.JPG"))
	assert.True(t, r.IsImage("https://cdn.example.com/a.webp?w=300#x"))
	assert.False(t, r.IsImage("post.html?slug=a.jpg"))
	assert.False(t, r.IsImage("noext"))

	r.goos = "windows"
	cmd, err := r.Command("start", "a.jpg")
	require.NoError(t, err)
	assert.Equal(t, []string{"cmd", "/c", "start", "", "a.jpg"}, cmd.Args)

	_, err = r.Command("feh", "a.jpg")
	assert.Error(t, err)

	cmd, err = r.Command("custom-viewer", "a.jpg")
	require.NoError(t, err)
	assert.Equal(t, []string{"custom-viewer", "a.jpg"}, cmd.Args)
}

func TestRegistry_Merge(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)
	r.goos = "linux"

	path := filepath.Join(t.TempDir(), "viewers.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
image_extensions = ["heic"]

[viewers.feh]
platforms = ["linux"]
args = ["-F"]
`), 0o600))
	require.NoError(t, r.Merge(path))

	assert.True(t, r.IsImage("a.heic"))
	cmd, err := r.Command("feh", "a.heic")
	require.NoError(t, err)
	assert.Equal(t, []string{"feh", "-F", "a.heic"}, cmd.Args)

	assert.Error(t, r.Merge(filepath.Join(t.TempDir(), "missing.toml")))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		location, asset, want string
	}{
		{"https://example.com/site", "public/a.jpg", "https://example.com/site/public/a.jpg"},
		{"https://example.com/site/", "/public/a.jpg", "https://example.com/site/public/a.jpg"},
		{"https://example.com", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"/srv/site", "public/a.jpg", filepath.Join("/srv/site", "public", "a.jpg")},
		{"/srv/site", "../../etc/passwd", filepath.Join("/srv/site", "etc", "passwd")},
		{"/srv/site", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Resolve(tt.location, tt.asset), tt.asset)
	}
}
