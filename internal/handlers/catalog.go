package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/P3chys/scholarshub-api/internal/apperrors"
	"github.com/P3chys/scholarshub-api/internal/services"
)

func ListDepartments(browse *services.BrowseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, http.StatusOK, browse.Departments())
	}
}

// ListSemestersForYear returns the two semesters of a year. Years outside the
// programme give an empty list.
func ListSemestersForYear() gin.HandlerFunc {
	return func(c *gin.Context) {
		year, ok := intParam(c, "year")
		if !ok {
			return
		}

		respond(c, http.StatusOK, services.SemestersForYear(year))
	}
}

func ListDepartmentsForYear(browse *services.BrowseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		year, ok := intParam(c, "year")
		if !ok {
			return
		}

		respond(c, http.StatusOK, browse.DepartmentsForYear(year))
	}
}

func ListSubjectsForYear(browse *services.BrowseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		year, ok := intParam(c, "year")
		if !ok {
			return
		}

		respond(c, http.StatusOK, browse.SubjectsForYear(year, c.Param("dept")))
	}
}

func ListSubjectsForSemester(browse *services.BrowseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		semester, ok := intParam(c, "sem")
		if !ok {
			return
		}

		respond(c, http.StatusOK, browse.Subjects(c.Param("dept"), semester))
	}
}

func GetSubject(browse *services.BrowseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := browse.Subject(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		respond(c, http.StatusOK, subject)
	}
}

func intParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		respondError(c, apperrors.Clone(apperrors.ErrValidation, "invalid "+name))
		return 0, false
	}
	return n, true
}
