package models

import (
	"time"
)

// DateLayout is the calendar-date format used for upload dates.
const DateLayout = "2006-01-02"

type ResourceType string

const (
	ResourceNotes        ResourceType = "Notes"
	ResourceQuestionBank ResourceType = "Question Bank"
	ResourcePYQ          ResourceType = "PYQ"
	ResourceLabManual    ResourceType = "Lab Manual"
	ResourceReference    ResourceType = "Reference"
)

// ResourceTypes lists every type in tab order.
var ResourceTypes = []ResourceType{
	ResourceNotes,
	ResourceQuestionBank,
	ResourcePYQ,
	ResourceLabManual,
	ResourceReference,
}

func (t ResourceType) Valid() bool {
	for _, v := range ResourceTypes {
		if v == t {
			return true
		}
	}
	return false
}

type ResourceStatus string

const (
	StatusPending  ResourceStatus = "pending"
	StatusApproved ResourceStatus = "approved"
	StatusRejected ResourceStatus = "rejected"
)

// Terminal reports whether no further transition is allowed out of s.
func (s ResourceStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Resource struct {
	ID            string         `gorm:"size:64;primaryKey" json:"id"`
	Title         string         `gorm:"size:255;not null" json:"title"`
	Type          ResourceType   `gorm:"type:varchar(20);not null;index" json:"type"`
	Year          int            `gorm:"not null" json:"year"`
	Department    string         `gorm:"size:20;not null;index" json:"department"`
	Semester      int            `gorm:"not null" json:"semester"`
	SubjectID     string         `gorm:"size:64;not null;index" json:"subject_id"`
	Subject       string         `gorm:"size:200;not null" json:"subject"`
	Author        string         `gorm:"size:100" json:"author"`
	UploadedBy    string         `gorm:"size:64;index" json:"uploaded_by,omitempty"`
	UploadDate    string         `gorm:"size:10;not null" json:"upload_date"`
	DownloadCount int64          `gorm:"not null;default:0" json:"download_count"`
	FileURL       string         `gorm:"size:500" json:"file_url"`
	Status        ResourceStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt     time.Time      `json:"-"`

	// Seq orders the collection most-recent-first.
	Seq int64 `gorm:"not null;uniqueIndex" json:"-"`
}

func (Resource) TableName() string {
	return "resources"
}

// YearForSemester maps a semester in 1..8 to its academic year.
func YearForSemester(semester int) int {
	return (semester + 1) / 2
}
