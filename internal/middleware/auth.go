package middleware

import (
	"aivra_backend/internal/config"
	"aivra_backend/internal/model"
	"aivra_backend/internal/repository"
	"aivra_backend/internal/util"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware 校验 Bearer 凭证并装载调用方身份。
// 凭证缺失/格式错误返回 401，解析失败返回 403。
// 角色每次请求都从 users 表重新读取，角色提升立即生效；
// 档案尚未创建时按 student 处理。
func AuthMiddleware(cfg *config.Config, userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			util.Unauthorized(c, "Unauthorized: No token provided")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Forbidden(c, "Forbidden: Invalid token")
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err == nil {
			claims.Role = user.Role
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			claims.Role = model.Student
		} else {
			util.LogInternalError(c, err)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// RoleMiddleware 两级能力检查：角色须等于要求的角色，
// 或按偏序关系隐含之（admin ⊇ professor）。
func RoleMiddleware(required model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c, "Unauthorized: No token provided")
			c.Abort()
			return
		}

		if !model.RoleAllows(claims.Role, required) {
			util.Forbidden(c, "Forbidden: Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
