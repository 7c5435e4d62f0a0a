package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"issue-tracker/internal/dto"
	"issue-tracker/internal/pkg/jwt"
	"issue-tracker/pkg/constants"
	pkgErrors "issue-tracker/pkg/errors"
	"issue-tracker/pkg/utils"
)

const contextUserKey = "user"

// AuthMiddleware JWT认证中间件
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.Error(c, pkgErrors.ErrUnauthorized.WithMessage("Missing Authorization header"))
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, constants.HeaderBearerPrefix) {
			utils.Error(c, pkgErrors.ErrUnauthorized.WithMessage("Invalid Authorization header format"))
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, constants.HeaderBearerPrefix)

		claims, err := jwt.ValidateToken(token)
		if err != nil {
			utils.Error(c, err)
			c.Abort()
			return
		}

		// 只接受 AccessToken
		if claims.Type != constants.JWTTypeAccess {
			utils.Error(c, pkgErrors.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(contextUserKey, &dto.AuthUser{
			ID:     claims.UserID,
			Email:  claims.Email,
			Name:   claims.Name,
			Role:   claims.Role,
			TeamID: claims.TeamID,
		})

		c.Next()
	}
}

// RequireRoles 角色校验中间件, 需在 AuthMiddleware 之后使用
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentUser(c)
		if !ok {
			utils.Error(c, pkgErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		utils.Error(c, pkgErrors.ErrForbidden)
		c.Abort()
	}
}

// CurrentUser 从请求上下文取调用者身份
func CurrentUser(c *gin.Context) (*dto.AuthUser, bool) {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*dto.AuthUser)
	return user, ok
}
