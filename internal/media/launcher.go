package media

import (
	"fmt"
	"net/url"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pders01/relampago/internal/config"
	"github.com/pders01/relampago/internal/debuglog"
	"github.com/pders01/relampago/internal/validation"
)

// Launcher opens cover images and article pages in external programs.
type Launcher struct {
	imageViewer   string
	defaultOpener string
	registry      *Registry
	start         func(*exec.Cmd) error
}

func NewLauncher(cfg *config.Config) *Launcher {
	registry, err := NewRegistry()
	if err != nil {
		debuglog.Warnf("viewer definitions unavailable: %v", err)
		registry = &Registry{viewers: map[string]Viewer{}, imageExts: map[string]struct{}{}, goos: runtime.GOOS}
	}

	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = cfg.Media.Darwin
	case "windows":
		candidates = cfg.Media.Windows
	default:
		candidates = cfg.Media.Linux
	}

	l := &Launcher{
		imageViewer:   findCommand(candidates...),
		defaultOpener: cfg.Media.DefaultOpener,
		registry:      registry,
		start:         startDetached,
	}
	if l.defaultOpener == "" {
		l.defaultOpener = "xdg-open"
	}
	if l.imageViewer == "" {
		l.imageViewer = l.defaultOpener
	}
	return l
}

// Open hands target to the image viewer when it is an image and to the
// desktop default handler otherwise.
func (l *Launcher) Open(target string) error {
	if strings.TrimSpace(target) == "" {
		return fmt.Errorf("nothing to open")
	}
	program := l.defaultOpener
	if l.registry.IsImage(target) {
		program = l.imageViewer
	}
	if program == "" {
		return fmt.Errorf("no application found to open %s", target)
	}

	cmd, err := l.registry.Command(program, target)
	if err != nil {
		debuglog.Debugf("falling back to plain invocation: %v", err)
		cmd = exec.Command(program, target)
	}
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", program, err)
	}
	debuglog.Infof("opened %s with %s", target, program)
	return nil
}

// Resolve turns a site-relative asset path into something a viewer can open:
// a URL under an http(s) location or a file under a directory location.
// Absolute URLs pass through.
func Resolve(location, asset string) string {
	if asset == "" {
		return ""
	}
	if u, err := url.Parse(asset); err == nil && u.Scheme != "" && u.Host != "" {
		return asset
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		base, err := url.Parse(location)
		if err != nil {
			return asset
		}
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		ref, err := url.Parse(strings.TrimPrefix(asset, "/"))
		if err != nil {
			return asset
		}
		return base.ResolveReference(ref).String()
	}
	if location == "" {
		location = "."
	}
	location = validation.ExpandHome(location)
	return filepath.Join(location, filepath.FromSlash(path.Clean("/" + asset)))
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func findCommand(commands ...string) string {
	for _, cmd := range commands {
		if _, err := exec.LookPath(cmd); err == nil {
			return cmd
		}
	}
	return ""
}
