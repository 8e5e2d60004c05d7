package tui

import (
	"fmt"
	"strings"
)

// Canonical short status messages used across the app.
const (
	MsgLoadingFeed    = "Carregando matérias…"
	MsgLoadingArticle = "Carregando matéria…"
	MsgReloading      = "Recarregando…"
	MsgRemoteOnly     = "Disponível apenas para fontes http(s)"
	MsgNoImage        = "Matéria sem imagem"
)

func MsgResultsCount(n int) string {
	if n == 1 {
		return "1 matéria"
	}
	return fmt.Sprintf("%d matérias", n)
}

// MsgFilterSummary describes the active filter next to the result count.
func MsgFilterSummary(category, query string, n int) string {
	parts := []string{MsgResultsCount(n)}
	if category != "" {
		parts = append(parts, "tópico: "+category)
	}
	if query != "" {
		parts = append(parts, fmt.Sprintf("busca: %q", query))
	}
	return strings.Join(parts, " • ")
}

func MsgOpened(target string) string {
	return "Abrindo " + truncateMiddle(target, 48)
}

// StatusKind picks the status bar color.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarn
	StatusError
)
