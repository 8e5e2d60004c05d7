package storage

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CanonicalCategory is the form categories are compared and grouped by:
// trimmed and upper-cased with Portuguese casing rules ("economia" -> "ECONOMIA",
// "ciência" -> "CIÊNCIA").
func CanonicalCategory(label string) string {
	// Casers carry state, so one is built per call.
	return cases.Upper(language.BrazilianPortuguese).String(strings.TrimSpace(label))
}
