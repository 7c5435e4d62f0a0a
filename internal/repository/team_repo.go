package repository

import (
	"issue-tracker/internal/model"
	"issue-tracker/internal/store"
	pkgErrors "issue-tracker/pkg/errors"
)

// TeamRepository 团队数据访问
type TeamRepository interface {
	Create(team *model.Team) error
	FindByID(id string) (*model.Team, error)
	Update(team *model.Team) error
	List() []*model.Team
}

type teamRepository struct {
	store *store.Store
}

func NewTeamRepository(s *store.Store) TeamRepository {
	return &teamRepository{store: s}
}

func (r *teamRepository) Create(team *model.Team) error {
	r.store.Lock()
	defer r.store.Unlock()

	clone := *team
	r.store.Teams[team.ID] = &clone
	r.store.TeamOrder = append(r.store.TeamOrder, team.ID)
	return nil
}

func (r *teamRepository) FindByID(id string) (*model.Team, error) {
	r.store.RLock()
	defer r.store.RUnlock()

	team, ok := r.store.Teams[id]
	if !ok {
		return nil, pkgErrors.ErrRecordNotFound
	}
	clone := *team
	return &clone, nil
}

func (r *teamRepository) Update(team *model.Team) error {
	r.store.Lock()
	defer r.store.Unlock()

	if _, ok := r.store.Teams[team.ID]; !ok {
		return pkgErrors.ErrRecordNotFound
	}
	clone := *team
	r.store.Teams[team.ID] = &clone
	return nil
}

func (r *teamRepository) List() []*model.Team {
	r.store.RLock()
	defer r.store.RUnlock()

	teams := make([]*model.Team, 0, len(r.store.TeamOrder))
	for _, id := range r.store.TeamOrder {
		clone := *r.store.Teams[id]
		teams = append(teams, &clone)
	}
	return teams
}
