package render

import (
	"strings"

	"github.com/pders01/relampago/internal/config"
)

// ImageRules describes how stored image paths map to servable ones.
type ImageRules struct {
	Placeholder     string
	LegacyPrefix    string
	CanonicalPrefix string
}

func ImageRulesFromConfig(cfg config.ImageConfig) ImageRules {
	return ImageRules{
		Placeholder:     cfg.Placeholder,
		LegacyPrefix:    cfg.LegacyPrefix,
		CanonicalPrefix: cfg.CanonicalPrefix,
	}
}

// NormalizeImagePath converts backslashes, rewrites the legacy prefix and
// falls back to the placeholder for an empty path.
func NormalizeImagePath(p string, rules ImageRules) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return rules.Placeholder
	}
	p = strings.ReplaceAll(p, `\`, "/")
	if rules.LegacyPrefix != "" && strings.HasPrefix(p, rules.LegacyPrefix) {
		p = rules.CanonicalPrefix + strings.TrimPrefix(p, rules.LegacyPrefix)
	}
	return p
}

func (r ImageRules) image(src, alt string) Image {
	return Image{
		Src:      NormalizeImagePath(src, r),
		Fallback: r.Placeholder,
		Alt:      alt,
	}
}
