package search

import (
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pders01/relampago/internal/storage"
)

// Filter is the current category/text selection. Zero values mean "no filter".
type Filter struct {
	Category string
	Query    string
}

// NormalizeQuery trims and lower-cases free text the way Apply compares it.
func NormalizeQuery(q string) string {
	return cases.Lower(language.BrazilianPortuguese).String(strings.TrimSpace(q))
}

// Active reports whether f would remove anything.
func (f Filter) Active() bool {
	return storage.CanonicalCategory(f.Category) != "" || NormalizeQuery(f.Query) != ""
}

// Apply returns the articles matching both the category and the query, in
// their original order. With no active filter the input slice itself is
// returned. The input is never modified.
func Apply(all []storage.Article, f Filter) []storage.Article {
	category := storage.CanonicalCategory(f.Category)
	query := NormalizeQuery(f.Query)
	if category == "" && query == "" {
		return all
	}

	return lo.Filter(all, func(a storage.Article, _ int) bool {
		return MatchesCategory(a, category) && MatchesQuery(a, query)
	})
}

// MatchesCategory compares canonical forms; an empty category matches all.
func MatchesCategory(a storage.Article, category string) bool {
	category = storage.CanonicalCategory(category)
	if category == "" {
		return true
	}
	return storage.CanonicalCategory(a.Category) == category
}

// MatchesQuery reports whether query occurs in the title, excerpt, author or
// category. Fields are checked one by one so a match never spans two fields.
func MatchesQuery(a storage.Article, query string) bool {
	query = NormalizeQuery(query)
	if query == "" {
		return true
	}
	lower := cases.Lower(language.BrazilianPortuguese)
	return lo.SomeBy([]string{a.Title, a.Excerpt, a.Author, a.Category}, func(field string) bool {
		return strings.Contains(lower.String(field), query)
	})
}
