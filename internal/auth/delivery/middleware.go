package delivery

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vidtube-backend/internal/auth/domain"
	"vidtube-backend/internal/auth/usecase"
	"vidtube-backend/pkg/response"
)

const (
	// ContextUserKey is where the middleware stores the sanitized user.
	ContextUserKey = "user"

	accessCookieName  = "accessToken"
	refreshCookieName = "refreshToken"
)

// AuthMiddleware gates protected routes. The access token is read from the
// accessToken cookie first, then from "Authorization: Bearer <token>"; the
// cookie wins when both are present. The middleware never touches refresh
// tokens.
func AuthMiddleware(authUsecase usecase.AuthUsecase, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractAccessToken(c)
		if tokenString == "" {
			response.AbortWithError(c, response.NewApiError(http.StatusUnauthorized, "unauthorized request"))
			return
		}

		user, err := authUsecase.CurrentUser(c.Request.Context(), tokenString)
		if err != nil {
			logger.Warn("auth middleware: rejected request", zap.String("path", c.FullPath()), zap.Error(err))
			response.AbortWithError(c, err)
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

func extractAccessToken(c *gin.Context) string {
	if cookie, err := c.Cookie(accessCookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// UserFrom returns the authenticated user set by AuthMiddleware.
func UserFrom(c *gin.Context) (*domain.PublicUser, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.PublicUser)
	return user, ok
}
