package media

import (
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"
)

//go:embed viewers.toml
var viewersTOML []byte

// Viewer describes how to invoke an external program on a target.
type Viewer struct {
	Description string   `toml:"description"`
	Platforms   []string `toml:"platforms"`
	// Command overrides the executable when it differs from the viewer name.
	Command string   `toml:"command,omitempty"`
	Args    []string `toml:"args,omitempty"`
}

type viewersFile struct {
	ImageExtensions []string          `toml:"image_extensions"`
	Viewers         map[string]Viewer `toml:"viewers"`
}

// Registry knows the built-in viewers plus any user overrides.
type Registry struct {
	viewers   map[string]Viewer
	imageExts map[string]struct{}
	goos      string
}

func NewRegistry() (*Registry, error) {
	var f viewersFile
	if err := toml.Unmarshal(viewersTOML, &f); err != nil {
		return nil, fmt.Errorf("parsing viewers.toml: %w", err)
	}
	r := &Registry{
		viewers:   f.Viewers,
		imageExts: lo.Associate(f.ImageExtensions, func(e string) (string, struct{}) { return e, struct{}{} }),
		goos:      runtime.GOOS,
	}
	if home, err := os.UserHomeDir(); err == nil {
		_ = r.Merge(filepath.Join(home, ".config", "relampago", "viewers.toml"))
	}
	return r, nil
}

// Merge overlays viewer definitions from a TOML file.
func (r *Registry) Merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var f viewersFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	for name, v := range f.Viewers {
		r.viewers[name] = v
	}
	for _, e := range f.ImageExtensions {
		r.imageExts[strings.ToLower(e)] = struct{}{}
	}
	return nil
}

// IsImage reports whether target looks like an image by its extension.
func (r *Registry) IsImage(target string) bool {
	p := target
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(p)), ".")
	_, ok := r.imageExts[ext]
	return ok
}

// Command builds the invocation of name on target. Unknown names run with the
// target as their only argument.
func (r *Registry) Command(name, target string) (*exec.Cmd, error) {
	v, ok := r.viewers[name]
	if !ok {
		return exec.Command(name, target), nil
	}
	if len(v.Platforms) > 0 && !lo.Contains(v.Platforms, r.goos) {
		return nil, fmt.Errorf("%s not supported on %s", name, r.goos)
	}
	bin := name
	if v.Command != "" {
		bin = v.Command
	}
	args := append(append([]string{}, v.Args...), target)
	return exec.Command(bin, args...), nil
}
