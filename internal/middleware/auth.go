package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/config"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/repository"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
)

// AuthMiddleware rejects requests without a valid bearer token and puts the
// claims on the context for downstream handlers.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			util.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			util.Unauthorized(c, "Invalid authorization format")
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(parts[1], cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)
		c.Set("schoolID", claims.SchoolID)
		c.Set("userEmail", claims.Email)

		c.Next()
	}
}

// RoleMiddleware allows only the listed roles through. Platform admins pass
// every role check.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	allowed := make(map[model.UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get("userRole")
		if !exists {
			util.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		role := roleVal.(model.UserRole)
		if role != model.Admin && !allowed[role] {
			util.Forbidden(c, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// ActivityMiddleware stamps last_seen for authenticated users, at most once
// per minute to keep write volume down.
func ActivityMiddleware(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		userIDVal, exists := c.Get("userID")
		if !exists {
			return
		}

		userID := userIDVal.(uint)
		go func() {
			_ = userRepo.TouchLastSeen(userID, time.Now())
		}()
	}
}
