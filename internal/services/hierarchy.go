package services

import (
	"github.com/P3chys/scholarshub-api/internal/catalog"
	"github.com/P3chys/scholarshub-api/internal/models"
)

// SemestersForYear returns {2y-1, 2y} for years 1..4 and nothing otherwise.
func SemestersForYear(year int) []int {
	if year < catalog.MinYear || year > catalog.MaxYear {
		return []int{}
	}
	return []int{2*year - 1, 2 * year}
}

// DepartmentsForYear returns every department for a valid year. All
// departments run all four years.
func DepartmentsForYear(c *catalog.Catalog, year int) []models.Department {
	if year < catalog.MinYear || year > catalog.MaxYear {
		return []models.Department{}
	}
	return c.Departments()
}

// SubjectsFor lists subjects offered by a department in exactly one semester.
func SubjectsFor(c *catalog.Catalog, department string, semester int) []models.Subject {
	subjects := []models.Subject{}
	for _, s := range c.Subjects() {
		if s.Department == department && s.Semester == semester {
			subjects = append(subjects, s)
		}
	}
	return subjects
}

// SubjectsForYear lists a department's subjects across both semesters of a year.
func SubjectsForYear(c *catalog.Catalog, year int, department string) []models.Subject {
	subjects := []models.Subject{}
	for _, sem := range SemestersForYear(year) {
		subjects = append(subjects, SubjectsFor(c, department, sem)...)
	}
	return subjects
}

// ResourcesFor returns the approved resources of one subject and type, in
// repository order.
func ResourcesFor(snapshot []models.Resource, subjectID string, t models.ResourceType) []models.Resource {
	resources := []models.Resource{}
	for _, r := range snapshot {
		if r.SubjectID == subjectID && r.Type == t && r.Status == models.StatusApproved {
			resources = append(resources, r)
		}
	}
	return resources
}

// RecentApproved returns at most limit approved resources from the head of
// the snapshot.
func RecentApproved(snapshot []models.Resource, limit int) []models.Resource {
	resources := []models.Resource{}
	for _, r := range snapshot {
		if len(resources) >= limit {
			break
		}
		if r.Status == models.StatusApproved {
			resources = append(resources, r)
		}
	}
	return resources
}

// PartitionByStatus splits a snapshot into pending and everything else,
// preserving order in both.
func PartitionByStatus(snapshot []models.Resource) (pending, history []models.Resource) {
	pending = []models.Resource{}
	history = []models.Resource{}
	for _, r := range snapshot {
		if r.Status == models.StatusPending {
			pending = append(pending, r)
		} else {
			history = append(history, r)
		}
	}
	return pending, history
}
