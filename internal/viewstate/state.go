// Package viewstate holds the feed view's filter state and the pure update
// function that every user action goes through.
package viewstate

import (
	"strings"

	"github.com/samber/lo"

	"github.com/pders01/relampago/internal/search"
	"github.com/pders01/relampago/internal/storage"
)

// State is the active filter. The zero value shows everything.
type State struct {
	Category string
	Query    string
}

// Msg is a user action on the feed view.
type Msg interface {
	isMsg()
}

type SelectCategory struct{ Label string }

// ClearCategory returns to the unfiltered topic.
type ClearCategory struct{}

// ChangeQuery fires on every edit of the search box.
type ChangeQuery struct{ Text string }

// SubmitQuery fires when the search form is submitted.
type SubmitQuery struct{ Text string }

func (SelectCategory) isMsg() {}
func (ClearCategory) isMsg()  {}
func (ChangeQuery) isMsg()    {}
func (SubmitQuery) isMsg()    {}

// Reduce returns the state after msg. Category and query are independent.
func Reduce(s State, msg Msg) State {
	switch m := msg.(type) {
	case SelectCategory:
		s.Category = strings.TrimSpace(m.Label)
	case ClearCategory:
		s.Category = ""
	case ChangeQuery:
		s.Query = search.NormalizeQuery(m.Text)
	case SubmitQuery:
		s.Query = search.NormalizeQuery(m.Text)
	}
	return s
}

// Filter converts the state into the filter it stands for.
func (s State) Filter() search.Filter {
	return search.Filter{Category: s.Category, Query: s.Query}
}

// Derive is the visible subset for s, always computed from the full collection.
func Derive(all []storage.Article, s State) []storage.Article {
	return search.Apply(all, s.Filter())
}

// ActiveTopic returns the index of the topic matching the selected category,
// or -1 when no category is selected or none matches.
func ActiveTopic(topics []string, s State) int {
	if strings.TrimSpace(s.Category) == "" {
		return -1
	}
	want := storage.CanonicalCategory(s.Category)
	_, idx, ok := lo.FindIndexOf(topics, func(t string) bool {
		return storage.CanonicalCategory(t) == want
	})
	if !ok {
		return -1
	}
	return idx
}
