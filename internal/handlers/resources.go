package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/P3chys/scholarshub-api/internal/middleware"
	"github.com/P3chys/scholarshub-api/internal/models"
	"github.com/P3chys/scholarshub-api/internal/services"
)

const (
	defaultRecentLimit = 10
	maxRecentLimit     = 50
)

// ListSubjectResources returns the approved resources of one subject tab.
// The tab defaults to Notes.
func ListSubjectResources(browse *services.BrowseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resourceType := models.ResourceType(c.DefaultQuery("type", string(models.ResourceNotes)))

		resources, err := browse.SubjectResources(c.Request.Context(), c.Param("id"), resourceType)
		if err != nil {
			respondError(c, err)
			return
		}

		respond(c, http.StatusOK, resources)
	}
}

func ListRecentResources(browse *services.BrowseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultRecentLimit)))
		if err != nil || limit < 0 {
			limit = defaultRecentLimit
		}
		if limit > maxRecentLimit {
			limit = maxRecentLimit
		}

		resources, err := browse.Recent(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err)
			return
		}

		respond(c, http.StatusOK, resources)
	}
}

func GetResource(browse *services.BrowseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resource, err := browse.Resource(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		respond(c, http.StatusOK, resource)
	}
}

// DownloadResource counts the download and hands back the file location.
func DownloadResource(browse *services.BrowseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resource, err := browse.Download(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		respond(c, http.StatusOK, gin.H{
			"file_url":       resource.FileURL,
			"download_count": resource.DownloadCount,
		})
	}
}

// SubmitResource queues an upload for moderation.
func SubmitResource(resources *services.ResourceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.SubmitResourceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		resource, err := resources.Submit(c.Request.Context(), middleware.SessionFrom(c), req)
		if err != nil {
			respondError(c, err)
			return
		}

		respond(c, http.StatusCreated, resource)
	}
}
