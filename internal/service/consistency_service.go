package service

import (
	"errors"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"issue-tracker/internal/model"
	"issue-tracker/internal/repository"
	"issue-tracker/internal/store"
	pkgErrors "issue-tracker/pkg/errors"
)

// ConsistencyService 一致性维护
// 负责在关联关系变化后重算 Team.MemberCount, 并把冗余的名称字段
// (User.TeamName / Task.TeamName / Team.TeamLeadName / Task.AssigneeName 等)
// 同步到当前值。所有方法都是全量重算, 幂等, 只依赖存储当前内容,
// 不依赖调用历史。
type ConsistencyService interface {
	// Reconcile 重算指定团队的成员数并传播团队名称
	Reconcile(teamID string) error
	// ReconcileUser 将用户当前的名称/邮箱同步到其出现的任务冗余字段
	ReconcileUser(userID string) error
	// ReconcileAll 重算所有团队
	ReconcileAll() error
}

type consistencyService struct {
	logger   *zap.Logger
	userRepo repository.UserRepository
	teamRepo repository.TeamRepository
	taskRepo repository.TaskRepository
}

func NewConsistencyService(
	logger *zap.Logger,
	userRepo repository.UserRepository,
	teamRepo repository.TeamRepository,
	taskRepo repository.TaskRepository,
) ConsistencyService {
	return &consistencyService{
		logger:   logger,
		userRepo: userRepo,
		teamRepo: teamRepo,
		taskRepo: taskRepo,
	}
}

func (s *consistencyService) Reconcile(teamID string) error {
	if teamID == "" {
		return nil
	}

	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		// 引用的团队不存在时无事可做 (软引用允许悬空)
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	users := s.userRepo.List()

	// member_count == 指向该团队的活跃用户数
	team.MemberCount = lo.CountBy(users, func(u *model.User) bool {
		return u.TeamID == teamID && u.IsActive
	})

	if lead, err := s.userRepo.FindByID(team.TeamLeadID); err == nil {
		team.TeamLeadName = lead.Name
	}

	if err := s.teamRepo.Update(team); err != nil {
		return err
	}

	// 团队名称传播到所有指向它的用户
	for _, u := range users {
		if u.TeamID == teamID && u.TeamName != team.Name {
			u.TeamName = team.Name
			u.UpdatedAt = store.Now()
			if err := s.userRepo.Update(u); err != nil {
				return err
			}
		}
	}

	// 以及所有指向它的任务
	for _, t := range s.taskRepo.List() {
		if t.TeamID == teamID && t.TeamName != team.Name {
			t.TeamName = team.Name
			if err := s.taskRepo.Update(t); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *consistencyService) ReconcileUser(userID string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	for _, t := range s.taskRepo.List() {
		changed := false
		if t.AssigneeID == userID && (t.AssigneeName != user.Name || t.AssigneeEmail != user.Email) {
			t.AssigneeName = user.Name
			t.AssigneeEmail = user.Email
			changed = true
		}
		if t.ReporterID == userID && t.ReporterName != user.Name {
			t.ReporterName = user.Name
			changed = true
		}
		if changed {
			if err := s.taskRepo.Update(t); err != nil {
				return err
			}
		}
	}

	// 该用户可能是某些团队的负责人
	for _, team := range s.teamRepo.List() {
		if team.TeamLeadID == userID && team.TeamLeadName != user.Name {
			team.TeamLeadName = user.Name
			if err := s.teamRepo.Update(team); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *consistencyService) ReconcileAll() error {
	for _, team := range s.teamRepo.List() {
		if err := s.Reconcile(team.ID); err != nil {
			s.logger.Warn("重算团队一致性失败", zap.String("team_id", team.ID), zap.Error(err))
			return err
		}
	}
	return nil
}
