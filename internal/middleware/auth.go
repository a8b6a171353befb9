package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/eduexamine/eduexamine/internal/dto"
	"github.com/eduexamine/eduexamine/internal/service"
)

// Keys under which verified claims are stored on the gin context.
const (
	ContextUserID = "auth_user_id"
	ContextEmail  = "auth_email"
	ContextRole   = "auth_role"
)

// RequireAuth verifies the Bearer token and, when roles are given,
// rejects callers whose role is not among them.
func RequireAuth(tokens service.TokenService, roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or malformed authorization header"})
			return
		}
		claims, err := tokens.VerifyAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		if len(roles) > 0 {
			allowed := false
			for _, role := range roles {
				if claims.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				log.Warn().Uint("userID", claims.UserID).Str("role", claims.Role).
					Str("path", ctx.FullPath()).Msg("Role not permitted for route")
				ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Insufficient permissions"})
				return
			}
		}

		ctx.Set(ContextUserID, claims.UserID)
		ctx.Set(ContextEmail, claims.Email)
		ctx.Set(ContextRole, claims.Role)
		ctx.Next()
	}
}
