package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/P3chys/scholarshub-api/internal/models"
)

// resourceRecord is one entry of a resource import file. Derived fields
// (year, semester, department, subject name) may be omitted.
type resourceRecord struct {
	ID            string `yaml:"id"`
	Title         string `yaml:"title"`
	Type          string `yaml:"type"`
	SubjectID     string `yaml:"subject_id"`
	Department    string `yaml:"department"`
	Semester      int    `yaml:"semester"`
	Year          int    `yaml:"year"`
	Author        string `yaml:"author"`
	UploadDate    string `yaml:"upload_date"`
	DownloadCount int64  `yaml:"download_count"`
	FileURL       string `yaml:"file_url"`
	Status        string `yaml:"status"`
}

type resourceFile struct {
	Resources []resourceRecord `yaml:"resources"`
}

// ParseResources decodes a resource import document. Records are returned in
// file order; nothing is validated against a catalog here.
func ParseResources(raw []byte) ([]models.Resource, error) {
	var f resourceFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse resource file: %w", err)
	}

	resources := make([]models.Resource, 0, len(f.Resources))
	for _, rec := range f.Resources {
		resources = append(resources, models.Resource{
			ID:            rec.ID,
			Title:         rec.Title,
			Type:          models.ResourceType(rec.Type),
			Year:          rec.Year,
			Department:    rec.Department,
			Semester:      rec.Semester,
			SubjectID:     rec.SubjectID,
			Author:        rec.Author,
			UploadDate:    rec.UploadDate,
			DownloadCount: rec.DownloadCount,
			FileURL:       rec.FileURL,
			Status:        models.ResourceStatus(rec.Status),
		})
	}
	return resources, nil
}

func LoadResources(path string) ([]models.Resource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource file: %w", err)
	}
	return ParseResources(raw)
}
