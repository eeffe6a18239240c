package catalog

import "github.com/P3chys/scholarshub-api/internal/models"

var defaultDepartments = []models.Department{
	{ID: "cse", Name: "CSE", FullName: "Computer Science & Engineering", Icon: "Monitor"},
	{ID: "ece", Name: "ECE", FullName: "Electronics & Communication", Icon: "Cpu"},
	{ID: "eee", Name: "EEE", FullName: "Electrical & Electronics", Icon: "Zap"},
	{ID: "mech", Name: "MECH", FullName: "Mechanical Engineering", Icon: "Settings"},
	{ID: "civil", Name: "CIVIL", FullName: "Civil Engineering", Icon: "Building2"},
	{ID: "it", Name: "IT", FullName: "Information Technology", Icon: "BookOpen"},
	{ID: "aids", Name: "AI & DS", FullName: "Artificial Intelligence & Data Science", Icon: "BrainCircuit"},
}

var defaultSubjects = []models.Subject{
	{ID: "ds1", Name: "Data Structures", Code: "CS301", Semester: 3, Department: "cse"},
	{ID: "os1", Name: "Operating Systems", Code: "CS401", Semester: 4, Department: "cse"},
	{ID: "dbms1", Name: "Database Management", Code: "CS501", Semester: 5, Department: "cse"},
	{ID: "edc1", Name: "Electronic Devices", Code: "EC301", Semester: 3, Department: "ece"},
	{ID: "na1", Name: "Network Analysis", Code: "EE301", Semester: 3, Department: "eee"},
	{ID: "tm1", Name: "Thermodynamics", Code: "ME301", Semester: 3, Department: "mech"},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultDepartments, defaultSubjects)
	if err != nil {
		panic(err)
	}
	return c
}

// SampleResources is the starter collection in reverse display order:
// inserting them in sequence leaves res1 at the head.
func SampleResources() []models.Resource {
	return []models.Resource{
		{
			ID:            "res3",
			Title:         "OS Lab Manual (Batch 2024)",
			Type:          models.ResourceLabManual,
			Year:          2,
			Department:    "cse",
			Semester:      4,
			SubjectID:     "os1",
			Subject:       "Operating Systems",
			Author:        "Lab Coordinator",
			UploadDate:    "2024-01-20",
			DownloadCount: 320,
			FileURL:       "#",
			Status:        models.StatusPending,
		},
		{
			ID:            "res2",
			Title:         "DS Previous Year Papers (2020-2022)",
			Type:          models.ResourcePYQ,
			Year:          2,
			Department:    "cse",
			Semester:      3,
			SubjectID:     "ds1",
			Subject:       "Data Structures",
			Author:        "Student Admin",
			UploadDate:    "2023-11-02",
			DownloadCount: 890,
			FileURL:       "#",
			Status:        models.StatusApproved,
		},
		{
			ID:            "res1",
			Title:         "Unit 1: Linked Lists and Arrays",
			Type:          models.ResourceNotes,
			Year:          2,
			Department:    "cse",
			Semester:      3,
			SubjectID:     "ds1",
			Subject:       "Data Structures",
			Author:        "Prof. Sharma",
			UploadDate:    "2023-10-15",
			DownloadCount: 145,
			FileURL:       "#",
			Status:        models.StatusApproved,
		},
	}
}
