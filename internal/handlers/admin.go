package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/P3chys/scholarshub-api/internal/middleware"
	"github.com/P3chys/scholarshub-api/internal/services"
)

func ListPendingResources(moderation *services.ModerationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resources, err := moderation.ListPending(c.Request.Context(), middleware.SessionFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}

		respond(c, http.StatusOK, resources)
	}
}

func ListModerationHistory(moderation *services.ModerationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resources, err := moderation.ListHistory(c.Request.Context(), middleware.SessionFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}

		respond(c, http.StatusOK, resources)
	}
}

func GetModerationSummary(moderation *services.ModerationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := moderation.Summary(c.Request.Context(), middleware.SessionFrom(c))
		if err != nil {
			respondError(c, err)
			return
		}

		respond(c, http.StatusOK, summary)
	}
}

func ApproveResource(moderation *services.ModerationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resource, err := moderation.Approve(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		respond(c, http.StatusOK, resource)
	}
}

func RejectResource(moderation *services.ModerationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resource, err := moderation.Reject(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		respond(c, http.StatusOK, resource)
	}
}
