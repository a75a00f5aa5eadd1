package services

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/dto"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/models"
)

const (
	defaultPage      = 1
	defaultLimit     = 10
	maxLimit         = 100
	defaultSortBy    = "createdAt"
	defaultSortOrder = "desc"
)

// CaseQuerier answers listing queries. ScanQuerier is the only
// implementation; an indexed one can replace it without touching callers.
type CaseQuerier interface {
	// Query returns one page of active cases and the filtered total.
	Query(f dto.CaseFilters) ([]models.CourtCase, int, error)
	// Trashed returns every soft-deleted case, newest first.
	Trashed() ([]models.CourtCase, error)
}

// ScanQuerier fetches the entire collection and filters it in memory, so
// the store needs no composite indexes. Each query is O(collection size).
type ScanQuerier struct {
	store CaseStore
}

func NewScanQuerier(store CaseStore) *ScanQuerier {
	return &ScanQuerier{store: store}
}

func (q *ScanQuerier) Query(f dto.CaseFilters) ([]models.CourtCase, int, error) {
	all, err := q.store.FindAll(f.SortBy, f.SortOrder)
	if err != nil {
		return nil, 0, err
	}
	matched := FilterCases(all, f.Status, f.Search)
	return Paginate(matched, f.Page, f.Limit), len(matched), nil
}

func (q *ScanQuerier) Trashed() ([]models.CourtCase, error) {
	all, err := q.store.FindAll(defaultSortBy, defaultSortOrder)
	if err != nil {
		return nil, err
	}
	trashed := make([]models.CourtCase, 0)
	for _, c := range all {
		if c.IsDeleted {
			trashed = append(trashed, c)
		}
	}
	return trashed, nil
}

// NormalizeFilters applies list defaults and rejects unknown sort options.
func NormalizeFilters(f dto.CaseFilters) (dto.CaseFilters, error) {
	if f.Page < 1 {
		f.Page = defaultPage
	}
	if f.Limit < 1 {
		f.Limit = defaultLimit
	}
	// Larger pages are served as maxLimit; pagination reports the clamped value.
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.SortBy == "" {
		f.SortBy = defaultSortBy
	}
	if _, ok := sortColumns[f.SortBy]; !ok {
		return f, invalid("sortBy", "unsupported sort field "+f.SortBy)
	}
	f.SortOrder = strings.ToLower(f.SortOrder)
	if f.SortOrder == "" {
		f.SortOrder = defaultSortOrder
	}
	if f.SortOrder != "asc" && f.SortOrder != "desc" {
		return f, invalid("sortOrder", "must be asc or desc")
	}
	f.Search = strings.TrimSpace(f.Search)
	return f, nil
}

// FilterCases drops soft-deleted cases, then keeps exact status matches
// (unless status is empty or "all") whose title, case number or
// description contains search, ignoring case.
func FilterCases(cases []models.CourtCase, status, search string) []models.CourtCase {
	term := strings.ToLower(search)
	out := make([]models.CourtCase, 0, len(cases))
	for _, c := range cases {
		if c.IsDeleted {
			continue
		}
		if status != "" && status != dto.StatusAll && c.Status != status {
			continue
		}
		if term != "" && !matchesSearch(c, term) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesSearch(c models.CourtCase, term string) bool {
	return strings.Contains(strings.ToLower(c.CaseTitle), term) ||
		strings.Contains(strings.ToLower(c.CaseNumber), term) ||
		strings.Contains(strings.ToLower(c.Description), term)
}

// Paginate returns cases[(page-1)*limit : (page-1)*limit+limit], clamped.
// Pages past the last one are empty.
func Paginate(cases []models.CourtCase, page, limit int) []models.CourtCase {
	if limit < 1 || page < 1 || page > totalPages(len(cases), limit) {
		return []models.CourtCase{}
	}
	start := (page - 1) * limit
	end := start + limit
	if end > len(cases) {
		end = len(cases)
	}
	return cases[start:end]
}

func totalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
