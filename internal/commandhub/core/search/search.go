package search

import (
	"strings"

	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
)

// Filter returns the actions matching query, in their original order.
// A match is a case-insensitive substring hit on the title, description,
// any keyword or the category. An empty or blank query matches everything.
func Filter(actions []model.CommandAction, query string) []model.CommandAction {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.CommandAction, 0, len(actions))
	for _, a := range actions {
		if q == "" || matches(a, q) {
			out = append(out, a)
		}
	}
	return out
}

func matches(a model.CommandAction, q string) bool {
	if strings.Contains(strings.ToLower(a.Title), q) ||
		strings.Contains(strings.ToLower(a.Description), q) ||
		strings.Contains(strings.ToLower(string(a.Category)), q) {
		return true
	}
	for _, k := range a.Keywords {
		if strings.Contains(strings.ToLower(k), q) {
			return true
		}
	}
	return false
}

// Group is the actions of one category.
type Group struct {
	Category model.Category        `json:"category"`
	Actions  []model.CommandAction `json:"actions"`
}

// Groups is ordered by the first appearance of each category.
type Groups []Group

// GroupByCategory partitions actions by category, keeping their relative order.
func GroupByCategory(actions []model.CommandAction) Groups {
	groups := Groups{}
	index := make(map[model.Category]int)
	for _, a := range actions {
		i, ok := index[a.Category]
		if !ok {
			i = len(groups)
			index[a.Category] = i
			groups = append(groups, Group{Category: a.Category})
		}
		groups[i].Actions = append(groups[i].Actions, a)
	}
	return groups
}

// Map returns the grouping keyed by category.
func (g Groups) Map() map[model.Category][]model.CommandAction {
	m := make(map[model.Category][]model.CommandAction, len(g))
	for _, grp := range g {
		m[grp.Category] = grp.Actions
	}
	return m
}
