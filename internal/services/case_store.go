package services

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CaseStore is the record store behind the case repository.
type CaseStore interface {
	// FindAll returns the whole collection, soft-deleted records included,
	// sorted by the store.
	FindAll(sortBy, sortOrder string) ([]models.CourtCase, error)
	FindByID(id uuid.UUID) (*models.CourtCase, error)
	Create(c *models.CourtCase) error
	Update(id uuid.UUID, fields map[string]interface{}) error
	Delete(id uuid.UUID) error
	ReplaceStatus(from, to string) (int64, error)
	Count() (int64, error)
}

// Sortable fields and their columns.
var sortColumns = map[string]string{
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
	"dateFiled":  "date_filed",
	"caseTitle":  "case_title",
	"caseNumber": "case_number",
	"status":     "status",
	"priority":   "priority",
}

type GormCaseStore struct {
	db *gorm.DB
}

func NewGormCaseStore(db *gorm.DB) *GormCaseStore {
	return &GormCaseStore{db: db}
}

func (s *GormCaseStore) FindAll(sortBy, sortOrder string) ([]models.CourtCase, error) {
	column, ok := sortColumns[sortBy]
	if !ok {
		return nil, invalid("sortBy", "unsupported sort field "+sortBy)
	}

	var cases []models.CourtCase
	err := s.db.
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: sortOrder == "desc"}).
		Find(&cases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cases: %w", err)
	}
	return cases, nil
}

func (s *GormCaseStore) FindByID(id uuid.UUID) (*models.CourtCase, error) {
	var c models.CourtCase
	if err := s.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to fetch case: %w", err)
	}
	return &c, nil
}

func (s *GormCaseStore) Create(c *models.CourtCase) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if err := s.db.Create(c).Error; err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}
	return nil
}

func (s *GormCaseStore) Update(id uuid.UUID, fields map[string]interface{}) error {
	result := s.db.Model(&models.CourtCase{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update case: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCaseNotFound
	}
	return nil
}

func (s *GormCaseStore) Delete(id uuid.UUID) error {
	result := s.db.Where("id = ?", id).Delete(&models.CourtCase{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete case: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCaseNotFound
	}
	return nil
}

func (s *GormCaseStore) ReplaceStatus(from, to string) (int64, error) {
	result := s.db.Model(&models.CourtCase{}).Where("status = ?", from).Update("status", to)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to rewrite status: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *GormCaseStore) Count() (int64, error) {
	var n int64
	if err := s.db.Model(&models.CourtCase{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count cases: %w", err)
	}
	return n, nil
}
