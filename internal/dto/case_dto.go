package dto

import "github.com/ahmetcoskunkizilkaya/court-cases/internal/models"

// StatusAll is the list filter sentinel meaning "no status filter".
const StatusAll = "all"

// CaseFilters drives List. Zero values fall back to page 1, limit 10,
// createdAt descending.
type CaseFilters struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	Status    string `query:"status"`
	Search    string `query:"search"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

// LocationInput is the possibly incomplete location sent with a form.
type LocationInput struct {
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
}

// CaseForm carries the editable fields of a case.
type CaseForm struct {
	CaseTitle      string         `json:"caseTitle"`
	Description    string         `json:"description"`
	DateFiled      string         `json:"dateFiled"`
	Status         string         `json:"status"`
	CourtName      string         `json:"courtName"`
	JudgeName      string         `json:"judgeName"`
	Plaintiff      string         `json:"plaintiff"`
	Defendant      string         `json:"defendant"`
	CaseType       string         `json:"caseType"`
	Priority       string         `json:"priority"`
	TempleLocation *LocationInput `json:"templeLocation"`
}

// ImageFile is an image attached to a create or update request.
type ImageFile struct {
	Name        string
	ContentType string
	Content     []byte
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type CaseListResponse struct {
	Cases      []models.CourtCase `json:"cases"`
	Pagination Pagination         `json:"pagination"`
}

type CaseCreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type StatusMigrationResponse struct {
	Message string `json:"message"`
	Updated int64  `json:"updated"`
}
