package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Case statuses offered for new and edited records.
const (
	StatusActive     = "Active"
	StatusInProgress = "In Progress"
	StatusPending    = "Pending"
	StatusClosed     = "Closed"
	StatusInCourt    = "In Court"
	StatusSettled    = "Settled"

	// StatusDismissed is a legacy value. Stored cases may still carry it
	// until MigrateDismissed rewrites them to StatusInCourt.
	StatusDismissed = "Dismissed"
)

const DefaultPriority = "Medium"

// MaxAdditionalImages is the soft cap on images attached in one edit.
const MaxAdditionalImages = 10

var CaseStatuses = []string{
	StatusActive,
	StatusInProgress,
	StatusPending,
	StatusClosed,
	StatusInCourt,
	StatusSettled,
}

func IsValidStatus(status string) bool {
	for _, s := range CaseStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CaseImage is one entry of a case's additional images.
type CaseImage struct {
	URL        string `json:"url"`
	Filename   string `json:"filename"`
	UploadedAt string `json:"uploadedAt"`
}

// Location places a case on the map. A stored location always has both
// coordinates.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
}

// CourtCase is one litigation matter, optionally tied to a temple site.
type CourtCase struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CaseNumber  string    `gorm:"size:50;index" json:"caseNumber"`
	CaseTitle   string    `gorm:"size:500;not null" json:"caseTitle"`
	Description string    `gorm:"type:text" json:"description"`
	DateFiled   string    `gorm:"size:32;not null" json:"dateFiled"`
	Status      string    `gorm:"size:32;not null;index" json:"status"`
	CourtName   string    `gorm:"size:255" json:"courtName,omitempty"`
	JudgeName   string    `gorm:"size:255" json:"judgeName,omitempty"`
	Plaintiff   string    `gorm:"size:255" json:"plaintiff,omitempty"`
	Defendant   string    `gorm:"size:255" json:"defendant,omitempty"`
	CaseType    string    `gorm:"size:255" json:"caseType,omitempty"`
	Priority    string    `gorm:"size:20" json:"priority"`

	PDFFileURL  string `gorm:"type:text" json:"pdfFileUrl,omitempty"`
	PDFFileName string `gorm:"size:255" json:"pdfFileName,omitempty"`

	ImageURL  string                         `gorm:"type:text" json:"imageUrl,omitempty"`
	ImageName string                         `gorm:"size:255" json:"imageName,omitempty"`
	Images    datatypes.JSONSlice[CaseImage] `json:"images,omitempty"`

	TempleLocation datatypes.JSON `json:"templeLocation,omitempty"`

	IsDeleted bool       `gorm:"not null;index" json:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	CreatedAt time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (CourtCase) TableName() string { return "cases" }

// Location decodes the stored temple location, or returns nil when the
// case has none.
func (c *CourtCase) Location() *Location {
	if len(c.TempleLocation) == 0 || string(c.TempleLocation) == "null" {
		return nil
	}
	var loc Location
	if err := json.Unmarshal(c.TempleLocation, &loc); err != nil {
		return nil
	}
	return &loc
}

// EncodeLocation serialises a location for the TempleLocation column.
func EncodeLocation(loc Location) datatypes.JSON {
	b, _ := json.Marshal(loc)
	return datatypes.JSON(b)
}
