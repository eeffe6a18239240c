package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/P3chys/scholarshub-api/internal/apperrors"
)

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondError renders err in the error envelope. Unknown errors become
// INTERNAL_ERROR without leaking their message.
func respondError(c *gin.Context, err error) {
	appErr := apperrors.FromError(err)
	if appErr.Status >= 500 {
		_ = c.Error(err)
	}
	c.JSON(appErr.Status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

func bindError(c *gin.Context, err error) {
	respondError(c, apperrors.Wrap(apperrors.ErrValidation, err, err.Error()))
}
