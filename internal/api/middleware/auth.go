package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-revshare-engine/internal/api/shared/errors"
	"github.com/feral-file/ff-revshare-engine/internal/domain"
	"github.com/feral-file/ff-revshare-engine/internal/logger"
)

// Authenticate checks a "Bearer <secret>" Authorization header against the configured secret.
// An empty configured secret rejects every request.
func Authenticate(authHeader string, secret string) error {
	if secret == "" {
		return errors.New("cron secret not configured")
	}
	if authHeader == "" {
		return errors.New("missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return errors.New("invalid Authorization header format")
	}

	if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(secret)) != 1 {
		return domain.ErrUnauthorized
	}

	return nil
}

// CronAuth returns a gin middleware guarding scheduled trigger endpoints
func CronAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := Authenticate(c.GetHeader("Authorization"), secret); err != nil {
			logger.WarnCtx(c.Request.Context(), "Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierrors.NewUnauthorizedError("Unauthorized"))
			return
		}

		c.Next()
	}
}
