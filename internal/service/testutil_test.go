package service

import (
	"go.uber.org/zap"

	"issue-tracker/internal/dto"
	"issue-tracker/internal/model"
	"issue-tracker/internal/pkg/config"
	"issue-tracker/internal/pkg/crypto"
	"issue-tracker/internal/repository"
	"issue-tracker/internal/store"
	"issue-tracker/pkg/constants"
)

// testEnv 测试环境: 空内存存储 + 全套 repository/service
type testEnv struct {
	store       *store.Store
	userRepo    repository.UserRepository
	teamRepo    repository.TeamRepository
	taskRepo    repository.TaskRepository
	commentRepo repository.CommentRepository
	historyRepo repository.HistoryRepository

	consistency ConsistencyService
	authSvc     AuthService
	userSvc     UserService
	teamSvc     TeamService
	taskSvc     TaskService
	commentSvc  CommentService
	dashSvc     DashboardService
}

func newTestEnv() *testEnv {
	// jwt 包读取全局配置
	if config.GlobalConfig == nil {
		config.GlobalConfig = &config.Config{
			Auth: config.AuthConfig{
				JWT: config.JWTConfig{
					Secret:             "test-secret",
					AccessTokenExpire:  3600,
					RefreshTokenExpire: 7200,
				},
			},
		}
	}

	st := store.New()
	env := &testEnv{
		store:       st,
		userRepo:    repository.NewUserRepository(st),
		teamRepo:    repository.NewTeamRepository(st),
		taskRepo:    repository.NewTaskRepository(st),
		commentRepo: repository.NewCommentRepository(st),
		historyRepo: repository.NewHistoryRepository(st),
	}
	env.consistency = NewConsistencyService(zap.NewNop(), env.userRepo, env.teamRepo, env.taskRepo)
	env.authSvc = NewAuthService(&config.GlobalConfig.Auth, env.userRepo)
	env.userSvc = NewUserService(env.userRepo, env.teamRepo, env.consistency)
	env.teamSvc = NewTeamService(env.teamRepo, env.userRepo, env.consistency)
	env.taskSvc = NewTaskService(env.taskRepo, env.userRepo, env.teamRepo, env.commentRepo, env.historyRepo)
	env.commentSvc = NewCommentService(env.commentRepo, env.taskRepo, env.userRepo)
	env.dashSvc = NewDashboardService(env.taskRepo, env.commentRepo, env.historyRepo)
	return env
}

func (e *testEnv) addUser(name, email, role, teamID string) *model.User {
	hash, _ := crypto.HashPassword("password123")
	now := store.Now()
	user := &model.User{
		ID:           store.NewID(constants.IDPrefixUser),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		TeamID:       teamID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_ = e.userRepo.Create(user)
	return user
}

func (e *testEnv) addTeam(name, leadID string) *model.Team {
	now := store.Now()
	team := &model.Team{
		ID:         store.NewID(constants.IDPrefixTeam),
		Name:       name,
		TeamLeadID: leadID,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	_ = e.teamRepo.Create(team)
	return team
}

func (e *testEnv) addTask(title, status, assigneeID, reporterID, teamID string) *model.Task {
	now := store.Now()
	task := &model.Task{
		ID:         store.NewID(constants.IDPrefixTask),
		Title:      title,
		Status:     status,
		Priority:   constants.TaskPriorityMedium,
		AssigneeID: assigneeID,
		ReporterID: reporterID,
		TeamID:     teamID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	_ = e.taskRepo.Create(task)
	return task
}

func asActor(user *model.User) *dto.AuthUser {
	return &dto.AuthUser{
		ID:     user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
		TeamID: user.TeamID,
	}
}
