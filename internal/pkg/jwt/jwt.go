package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"issue-tracker/internal/pkg/config"
	"issue-tracker/pkg/constants"
	pkgErrors "issue-tracker/pkg/errors"
)

// UserClaims 用户Claims
type UserClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	TeamID string `json:"team_id,omitempty"`
	Type   string `json:"type"` // access or refresh
	jwt.RegisteredClaims
}

// GenerateAccessToken 生成访问Token
func GenerateAccessToken(userID, email, name, role, teamID string) (string, error) {
	cfg := config.GlobalConfig.Auth.JWT
	return generate(userID, email, name, role, teamID, constants.JWTTypeAccess, cfg.AccessTokenExpire)
}

// GenerateRefreshToken 生成刷新Token
func GenerateRefreshToken(userID, email, name, role, teamID string) (string, error) {
	cfg := config.GlobalConfig.Auth.JWT
	return generate(userID, email, name, role, teamID, constants.JWTTypeRefresh, cfg.RefreshTokenExpire)
}

func generate(userID, email, name, role, teamID, tokenType string, expireSeconds int) (string, error) {
	claims := UserClaims{
		UserID: userID,
		Email:  email,
		Name:   name,
		Role:   role,
		TeamID: teamID,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expireSeconds) * time.Second)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.GlobalConfig.Auth.JWT.Secret))
}

// ParseToken 解析Token
func ParseToken(tokenString string) (*UserClaims, error) {
	cfg := config.GlobalConfig.Auth.JWT

	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	})

	if err != nil {
		// 过期与其它解析失败区分开, 客户端据此决定是否走续签
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, pkgErrors.ErrTokenExpired
		}
		return nil, pkgErrors.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, pkgErrors.ErrInvalidToken
}

// ValidateToken 验证Token有效性
func ValidateToken(tokenString string) (*UserClaims, error) {
	return ParseToken(tokenString)
}
