package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/P3chys/scholarshub-api/internal/apperrors"
	"github.com/P3chys/scholarshub-api/internal/models"
	"github.com/P3chys/scholarshub-api/internal/services"
	"github.com/P3chys/scholarshub-api/internal/session"
)

const sessionKey = "session"

// AuthRequired resolves the bearer token into a session and aborts when the
// caller is anonymous.
func AuthRequired(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if tokenString == "" {
			abortWithError(c, apperrors.Clone(apperrors.ErrUnauthorized, "Authorization header required"))
			return
		}

		if err := attach(c, sessions, tokenString); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches a session when a valid token is present and lets
// anonymous requests through untouched.
func OptionalAuth(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c)
		if err == nil && tokenString != "" {
			_ = attach(c, sessions, tokenString)
		}
		c.Next()
	}
}

func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != models.RoleAdmin {
			abortWithError(c, apperrors.Clone(apperrors.ErrForbidden, "Admin access required"))
			return
		}
		c.Next()
	}
}

// SessionFrom returns the caller's session, or an anonymous one when no
// authentication middleware ran.
func SessionFrom(c *gin.Context) *session.Context {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*session.Context); ok {
			return sess
		}
	}
	return session.New()
}

func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", nil
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return "", apperrors.Clone(apperrors.ErrUnauthorized, "Invalid authorization format")
	}
	return tokenString, nil
}

func attach(c *gin.Context, sessions *services.SessionService, tokenString string) error {
	sess, claims, err := sessions.Resolve(c.Request.Context(), tokenString)
	if err != nil {
		return err
	}

	c.Set(sessionKey, sess)
	c.Set("user_id", claims.UserID)
	c.Set("role", claims.Role)
	c.Set("session_id", claims.SessionID)
	return nil
}

func abortWithError(c *gin.Context, err error) {
	appErr := apperrors.FromError(err)
	c.AbortWithStatusJSON(appErr.Status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
