// Package catalog holds the read-only reference data: departments and the
// subjects offered per department and semester.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/P3chys/scholarshub-api/internal/models"
)

const (
	MinYear     = 1
	MaxYear     = 4
	MinSemester = 1
	MaxSemester = 8
)

type Catalog struct {
	departments []models.Department
	subjects    []models.Subject

	deptIndex    map[string]int
	subjectIndex map[string]int
}

// File is the on-disk YAML layout of a catalog.
type File struct {
	Departments []models.Department `yaml:"departments"`
	Subjects    []models.Subject    `yaml:"subjects"`
}

// New validates the tables and builds a catalog. The slices are copied.
func New(departments []models.Department, subjects []models.Subject) (*Catalog, error) {
	c := &Catalog{
		departments:  append([]models.Department(nil), departments...),
		subjects:     append([]models.Subject(nil), subjects...),
		deptIndex:    make(map[string]int, len(departments)),
		subjectIndex: make(map[string]int, len(subjects)),
	}

	for i, d := range c.departments {
		if d.ID == "" {
			return nil, fmt.Errorf("department %d: empty id", i)
		}
		if _, dup := c.deptIndex[d.ID]; dup {
			return nil, fmt.Errorf("department %q: duplicate id", d.ID)
		}
		c.deptIndex[d.ID] = i
	}

	for i, s := range c.subjects {
		if s.ID == "" || s.Name == "" {
			return nil, fmt.Errorf("subject %d: id and name are required", i)
		}
		if _, dup := c.subjectIndex[s.ID]; dup {
			return nil, fmt.Errorf("subject %q: duplicate id", s.ID)
		}
		if s.Semester < MinSemester || s.Semester > MaxSemester {
			return nil, fmt.Errorf("subject %q: semester %d out of range", s.ID, s.Semester)
		}
		if _, ok := c.deptIndex[s.Department]; !ok {
			return nil, fmt.Errorf("subject %q: unknown department %q", s.ID, s.Department)
		}
		c.subjectIndex[s.ID] = i
	}

	return c, nil
}

// Load reads a YAML catalog file.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return New(f.Departments, f.Subjects)
}

// Departments returns a copy of the department table in catalog order.
func (c *Catalog) Departments() []models.Department {
	return append([]models.Department(nil), c.departments...)
}

// Subjects returns a copy of the subject table in catalog order.
func (c *Catalog) Subjects() []models.Subject {
	return append([]models.Subject(nil), c.subjects...)
}

func (c *Catalog) Department(id string) (models.Department, bool) {
	i, ok := c.deptIndex[id]
	if !ok {
		return models.Department{}, false
	}
	return c.departments[i], true
}

func (c *Catalog) Subject(id string) (models.Subject, bool) {
	i, ok := c.subjectIndex[id]
	if !ok {
		return models.Subject{}, false
	}
	return c.subjects[i], true
}
