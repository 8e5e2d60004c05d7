package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/pders01/relampago/internal/config"
)

func TestBanner(t *testing.T) {
	out := Banner("1.0.0-test")

	assert.Contains(t, out, "Notícia Relâmpago no terminal")
	assert.Contains(t, out, "v1.0.0-test")
	assert.Contains(t, out, "╔")
	assert.Contains(t, out, "╝")
	assert.Contains(t, out, "⚡")

	assert.NotContains(t, Banner("dev"), "dev")
	assert.Contains(t, Banner("v2.0.0"), "v2.0.0")
	assert.NotContains(t, Banner("v2.0.0"), "vv2.0.0")
}

func TestGetCompactBanner(t *testing.T) {
	out := GetCompactBanner("Nada por aqui")
	assert.Contains(t, out, "Nada por aqui")
	for _, line := range LogoLines {
		assert.Contains(t, out, strings.TrimSpace(line))
	}
}

func TestApplyColors(t *testing.T) {
	defer ApplyColors(config.UIColors{Primary: "#FFD400", Error: "#F87171"})

	ApplyColors(config.UIColors{Primary: "#123456"})
	assert.Equal(t, lipgloss.Color("#123456"), PrimaryColor)
	assert.Equal(t, lipgloss.Color("#F87171"), ErrorColor, "empty entries keep the current color")
}
