package service

import (
	"errors"
	"strings"

	"github.com/samber/lo"

	"issue-tracker/internal/dto"
	"issue-tracker/internal/model"
	"issue-tracker/internal/pkg/crypto"
	"issue-tracker/internal/repository"
	"issue-tracker/internal/store"
	"issue-tracker/pkg/constants"
	pkgErrors "issue-tracker/pkg/errors"
)

type UserService interface {
	List(actor *dto.AuthUser, query *dto.UserListQuery) ([]*dto.PublicUser, int, error)
	Create(req *dto.UserCreateRequest) (*dto.PublicUser, error)
	Update(id string, req *dto.UserUpdateRequest) (*dto.PublicUser, error)
}

type userService struct {
	userRepo    repository.UserRepository
	teamRepo    repository.TeamRepository
	consistency ConsistencyService
}

func NewUserService(userRepo repository.UserRepository, teamRepo repository.TeamRepository, consistency ConsistencyService) UserService {
	return &userService{
		userRepo:    userRepo,
		teamRepo:    teamRepo,
		consistency: consistency,
	}
}

func (s *userService) List(actor *dto.AuthUser, query *dto.UserListQuery) ([]*dto.PublicUser, int, error) {
	users := s.userRepo.List()

	// 非管理员只能看到活跃用户
	if actor.Role != constants.RoleAdmin {
		users = lo.Filter(users, func(u *model.User, _ int) bool { return u.IsActive })
	}

	if query.Search != "" {
		term := strings.ToLower(query.Search)
		users = lo.Filter(users, func(u *model.User, _ int) bool {
			return strings.Contains(strings.ToLower(u.Name), term) ||
				strings.Contains(strings.ToLower(u.Email), term)
		})
	}

	if query.TeamID != "" {
		users = lo.Filter(users, func(u *model.User, _ int) bool { return u.TeamID == query.TeamID })
	}

	if query.Role != "" {
		users = lo.Filter(users, func(u *model.User, _ int) bool { return u.Role == query.Role })
	}

	total := len(users)

	// 分页
	start := query.GetOffset()
	if start > total {
		start = total
	}
	end := start + query.GetLimit()
	if end > total {
		end = total
	}
	page := users[start:end]

	return lo.Map(page, func(u *model.User, _ int) *dto.PublicUser { return toPublicUser(u) }), total, nil
}

func (s *userService) Create(req *dto.UserCreateRequest) (*dto.PublicUser, error) {
	// 邮箱唯一性检查先于任何写入
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, pkgErrors.ErrDuplicateEmail
	} else if !errors.Is(err, pkgErrors.ErrRecordNotFound) {
		return nil, err
	}

	var teamName string
	if req.TeamID != "" {
		team, err := s.teamRepo.FindByID(req.TeamID)
		if err != nil {
			if errors.Is(err, pkgErrors.ErrRecordNotFound) {
				return nil, pkgErrors.ErrValidation.WithMessage("Invalid team_id")
			}
			return nil, err
		}
		teamName = team.Name
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, pkgErrors.Wrap(500, pkgErrors.CodeInternalError, "Something went wrong", err)
	}

	now := store.Now()
	user := &model.User{
		ID:           store.NewID(constants.IDPrefixUser),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         req.Role,
		TeamID:       req.TeamID,
		TeamName:     teamName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if user.TeamID != "" {
		if err := s.consistency.Reconcile(user.TeamID); err != nil {
			return nil, err
		}
	}

	return toPublicUser(user), nil
}

func (s *userService) Update(id string, req *dto.UserUpdateRequest) (*dto.PublicUser, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, pkgErrors.ErrNotFound.WithMessage("User not found")
		}
		return nil, err
	}

	oldTeamID := user.TeamID

	// 邮箱唯一性检查排除自身
	if req.Email != nil && *req.Email != user.Email {
		if other, err := s.userRepo.FindByEmail(*req.Email); err == nil && other.ID != user.ID {
			return nil, pkgErrors.ErrDuplicateEmail
		} else if err != nil && !errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, err
		}
	}

	if req.TeamID != nil && *req.TeamID != "" {
		if _, err := s.teamRepo.FindByID(*req.TeamID); err != nil {
			if errors.Is(err, pkgErrors.ErrRecordNotFound) {
				return nil, pkgErrors.ErrValidation.WithMessage("Invalid team_id")
			}
			return nil, err
		}
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := crypto.HashPassword(*req.Password)
		if err != nil {
			return nil, pkgErrors.Wrap(500, pkgErrors.CodeInternalError, "Something went wrong", err)
		}
		user.PasswordHash = hash
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.TeamID != nil {
		user.TeamID = *req.TeamID
		user.TeamName = ""
		if *req.TeamID != "" {
			if team, err := s.teamRepo.FindByID(*req.TeamID); err == nil {
				user.TeamName = team.Name
			}
		}
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedAt = store.Now()

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	// 团队或活跃状态变化后重算受影响团队的成员数
	if oldTeamID != user.TeamID {
		if err := s.consistency.Reconcile(oldTeamID); err != nil {
			return nil, err
		}
		if err := s.consistency.Reconcile(user.TeamID); err != nil {
			return nil, err
		}
	} else if req.IsActive != nil {
		if err := s.consistency.Reconcile(user.TeamID); err != nil {
			return nil, err
		}
	}

	// 名称/邮箱变化传播到任务与团队负责人冗余字段
	if req.Name != nil || req.Email != nil {
		if err := s.consistency.ReconcileUser(user.ID); err != nil {
			return nil, err
		}
	}

	return toPublicUser(user), nil
}

func toPublicUser(user *model.User) *dto.PublicUser {
	return &dto.PublicUser{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		Role:           user.Role,
		TeamID:         user.TeamID,
		TeamName:       user.TeamName,
		IsActive:       user.IsActive,
		ProfilePicture: user.ProfilePicture,
	}
}
