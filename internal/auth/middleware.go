package auth

import (
	"log/slog"
	"strings"

	"jobboard-service/internal/apperr"
	"jobboard-service/internal/httpx"
	"jobboard-service/internal/user"

	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// Required rejects requests without a valid token and threads the resolved
// principal into the request context.
func Required(tokens *TokenProvider, users user.Repository, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httpx.Error(c, apperr.NoToken())
			c.Abort()
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			logger.Warn("invalid token", "path", c.Request.URL.Path, "error", err)
			httpx.Error(c, apperr.InvalidToken())
			c.Abort()
			return
		}

		u, err := users.GetByID(c.Request.Context(), claims.Subject)
		if err != nil {
			if apperr.Is(err, apperr.CodeUserNotFound) {
				httpx.Error(c, apperr.UserNotFound())
			} else {
				logger.Error("failed to resolve token user", "error", err)
				httpx.Error(c, err)
			}
			c.Abort()
			return
		}

		c.Set(httpx.PrincipalKey, u.Principal())
		c.Next()
	}
}

// Optional resolves a principal when a valid token is present and lets the
// request through anonymously otherwise. A malformed token on an optional
// route is treated as anonymous rather than rejected.
func Optional(tokens *TokenProvider, users user.Repository, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			logger.Debug("ignoring invalid token on optional route", "path", c.Request.URL.Path)
			c.Next()
			return
		}

		if u, err := users.GetByID(c.Request.Context(), claims.Subject); err == nil {
			c.Set(httpx.PrincipalKey, u.Principal())
		}
		c.Next()
	}
}
