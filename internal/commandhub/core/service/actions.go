package service

import (
	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/search"
)

// ListActions returns the actions matching query in registry order.
func (s *Service) ListActions(query string) []model.CommandAction {
	return search.Filter(s.registry.ListActions(), query)
}

// GroupActions returns the actions matching query grouped by category.
func (s *Service) GroupActions(query string) search.Groups {
	return search.GroupByCategory(s.ListActions(query))
}

// GetAction returns a single action by id.
func (s *Service) GetAction(id string) (model.CommandAction, error) {
	a, _, ok := s.registry.Lookup(id)
	if !ok {
		return model.CommandAction{}, ErrUnknownAction
	}
	return a, nil
}
