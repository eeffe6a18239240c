package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/P3chys/scholarshub-api/internal/services"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register creates a student account and logs it in.
func Register(accounts *services.AccountService, sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		if _, err := accounts.Register(c.Request.Context(), req); err != nil {
			respondError(c, err)
			return
		}

		result, err := sessions.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		respond(c, http.StatusCreated, result)
	}
}

func Login(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		result, err := sessions.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		respond(c, http.StatusOK, result)
	}
}

func Refresh(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		tokens, err := sessions.Refresh(c.Request.Context(), req.RefreshToken)
		if err != nil {
			respondError(c, err)
			return
		}

		respond(c, http.StatusOK, tokens)
	}
}

func GetCurrentUser(accounts *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, err := accounts.Get(c.Request.Context(), c.GetString("user_id"))
		if err != nil {
			respondError(c, err)
			return
		}

		respond(c, http.StatusOK, account.User())
	}
}

// Logout deletes the server-side session, revoking every token issued for it.
func Logout(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := sessions.Logout(c.Request.Context(), c.GetString("session_id")); err != nil {
			respondError(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
