package service

import (
	"errors"

	"github.com/samber/lo"

	"issue-tracker/internal/dto"
	"issue-tracker/internal/model"
	"issue-tracker/internal/repository"
	"issue-tracker/internal/store"
	"issue-tracker/pkg/constants"
	pkgErrors "issue-tracker/pkg/errors"
)

type TeamService interface {
	List(actor *dto.AuthUser) ([]*dto.TeamResponse, error)
	Create(req *dto.TeamCreateRequest) (*dto.TeamResponse, error)
	Update(id string, req *dto.TeamUpdateRequest) (*dto.TeamResponse, error)
	Members(actor *dto.AuthUser, id string) (*dto.TeamMembersResponse, error)
}

type teamService struct {
	teamRepo    repository.TeamRepository
	userRepo    repository.UserRepository
	consistency ConsistencyService
}

func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository, consistency ConsistencyService) TeamService {
	return &teamService{
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		consistency: consistency,
	}
}

// List 团队列表
// ADMIN 可见全部团队, 其他角色仅可见活跃团队 (成员接口保持同样的可见性规则)
func (s *teamService) List(actor *dto.AuthUser) ([]*dto.TeamResponse, error) {
	teams := s.teamRepo.List()

	if actor.Role != constants.RoleAdmin {
		teams = lo.Filter(teams, func(t *model.Team, _ int) bool { return t.IsActive })
	}

	return lo.Map(teams, func(t *model.Team, _ int) *dto.TeamResponse { return toTeamResponse(t) }), nil
}

func (s *teamService) Create(req *dto.TeamCreateRequest) (*dto.TeamResponse, error) {
	lead, err := s.findActiveUser(req.TeamLeadID)
	if err != nil {
		return nil, pkgErrors.ErrValidation.WithMessage("Invalid team_lead_id")
	}

	now := store.Now()
	team := &model.Team{
		ID:           store.NewID(constants.IDPrefixTeam),
		Name:         req.Name,
		Description:  req.Description,
		TeamLeadID:   lead.ID,
		TeamLeadName: lead.Name,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.teamRepo.Create(team); err != nil {
		return nil, err
	}

	// 负责人归入新团队
	lead.TeamID = team.ID
	lead.TeamName = team.Name
	lead.UpdatedAt = now
	if err := s.userRepo.Update(lead); err != nil {
		return nil, err
	}

	if err := s.consistency.Reconcile(team.ID); err != nil {
		return nil, err
	}

	team, err = s.teamRepo.FindByID(team.ID)
	if err != nil {
		return nil, err
	}
	return toTeamResponse(team), nil
}

func (s *teamService) Update(id string, req *dto.TeamUpdateRequest) (*dto.TeamResponse, error) {
	team, err := s.teamRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, pkgErrors.ErrNotFound.WithMessage("Team not found")
		}
		return nil, err
	}

	oldTeamLeadID := team.TeamLeadID

	var newLead *model.User
	if req.TeamLeadID != nil && *req.TeamLeadID != oldTeamLeadID {
		newLead, err = s.findActiveUser(*req.TeamLeadID)
		if err != nil {
			return nil, pkgErrors.ErrValidation.WithMessage("Invalid team_lead_id")
		}
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	if newLead != nil {
		team.TeamLeadID = newLead.ID
		team.TeamLeadName = newLead.Name
	}
	if req.IsActive != nil {
		team.IsActive = *req.IsActive
	}
	team.UpdatedAt = store.Now()

	if err := s.teamRepo.Update(team); err != nil {
		return nil, err
	}

	// 新负责人归入本团队, 其原团队的成员数随之重算
	if newLead != nil {
		leadOldTeamID := newLead.TeamID
		newLead.TeamID = team.ID
		newLead.TeamName = team.Name
		newLead.UpdatedAt = store.Now()
		if err := s.userRepo.Update(newLead); err != nil {
			return nil, err
		}
		if leadOldTeamID != "" && leadOldTeamID != team.ID {
			if err := s.consistency.Reconcile(leadOldTeamID); err != nil {
				return nil, err
			}
		}
	}

	// 重算本团队: 成员数 + 名称传播 + 负责人名称
	if err := s.consistency.Reconcile(team.ID); err != nil {
		return nil, err
	}

	team, err = s.teamRepo.FindByID(team.ID)
	if err != nil {
		return nil, err
	}
	return toTeamResponse(team), nil
}

func (s *teamService) Members(actor *dto.AuthUser, id string) (*dto.TeamMembersResponse, error) {
	team, err := s.teamRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, pkgErrors.ErrNotFound.WithMessage("Team not found")
		}
		return nil, err
	}

	// 与列表接口一致: 非管理员看不到非活跃团队
	if !team.IsActive && actor.Role != constants.RoleAdmin {
		return nil, pkgErrors.ErrNotFound.WithMessage("Team not found")
	}

	members := lo.FilterMap(s.userRepo.List(), func(u *model.User, _ int) (dto.TeamMemberInfo, bool) {
		if u.TeamID != id || !u.IsActive {
			return dto.TeamMemberInfo{}, false
		}
		return dto.TeamMemberInfo{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Role:  u.Role,
		}, true
	})

	return &dto.TeamMembersResponse{
		Team: dto.TeamSummary{
			ID:           team.ID,
			Name:         team.Name,
			Description:  team.Description,
			TeamLeadID:   team.TeamLeadID,
			TeamLeadName: team.TeamLeadName,
		},
		Members: members,
	}, nil
}

func (s *teamService) findActiveUser(id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, pkgErrors.ErrRecordNotFound
	}
	return user, nil
}

func toTeamResponse(team *model.Team) *dto.TeamResponse {
	return &dto.TeamResponse{
		ID:           team.ID,
		Name:         team.Name,
		Description:  team.Description,
		TeamLeadID:   team.TeamLeadID,
		TeamLeadName: team.TeamLeadName,
		MemberCount:  team.MemberCount,
		IsActive:     team.IsActive,
		CreatedAt:    team.CreatedAt,
	}
}
