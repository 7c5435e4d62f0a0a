package service

import (
	"errors"

	"issue-tracker/internal/dto"
	"issue-tracker/internal/model"
	"issue-tracker/internal/pkg/config"
	"issue-tracker/internal/pkg/crypto"
	"issue-tracker/internal/pkg/jwt"
	"issue-tracker/internal/repository"
	"issue-tracker/pkg/constants"
	pkgErrors "issue-tracker/pkg/errors"
)

type AuthService interface {
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(refreshToken string) (*dto.LoginResponse, error)
	Me(userID string) (*dto.AuthUser, error)
}

type authService struct {
	cfg      *config.AuthConfig
	userRepo repository.UserRepository
}

func NewAuthService(cfg *config.AuthConfig, userRepo repository.UserRepository) AuthService {
	return &authService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, pkgErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	// 禁用账号与密码错误返回同样的错误, 不暴露账号状态
	if !user.IsActive {
		return nil, pkgErrors.ErrInvalidCredentials
	}

	if !crypto.CheckPassword(req.Password, user.PasswordHash) {
		return nil, pkgErrors.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *authService) RefreshToken(refreshToken string) (*dto.LoginResponse, error) {
	claims, err := jwt.ParseToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if claims.Type != constants.JWTTypeRefresh {
		return nil, pkgErrors.ErrInvalidToken
	}

	// 重新读取用户, 续签时携带最新的角色/团队
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, pkgErrors.ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, pkgErrors.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *authService) Me(userID string) (*dto.AuthUser, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrRecordNotFound) {
			return nil, pkgErrors.ErrUnauthorized
		}
		return nil, err
	}
	return toAuthUser(user), nil
}

func (s *authService) issueTokens(user *model.User) (*dto.LoginResponse, error) {
	accessToken, err := jwt.GenerateAccessToken(user.ID, user.Email, user.Name, user.Role, user.TeamID)
	if err != nil {
		return nil, pkgErrors.Wrap(500, pkgErrors.CodeInternalError, "Something went wrong", err)
	}

	refreshToken, err := jwt.GenerateRefreshToken(user.ID, user.Email, user.Name, user.Role, user.TeamID)
	if err != nil {
		return nil, pkgErrors.Wrap(500, pkgErrors.CodeInternalError, "Something went wrong", err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.cfg.JWT.AccessTokenExpire,
		User:         toAuthUser(user),
	}, nil
}

func toAuthUser(user *model.User) *dto.AuthUser {
	return &dto.AuthUser{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role,
		TeamID:   user.TeamID,
		TeamName: user.TeamName,
	}
}
