package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/dto"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ImageUploader stores case images and returns their public links.
type ImageUploader interface {
	UploadPhoto(file dto.ImageFile) (*dto.UploadedImage, error)
	UploadPhotos(files []dto.ImageFile) ([]dto.UploadedImage, error)
}

type CaseService struct {
	store    CaseStore
	query    CaseQuerier
	uploader ImageUploader
	now      func() time.Time
}

func NewCaseService(store CaseStore, uploader ImageUploader) *CaseService {
	return NewCaseServiceWithQuerier(store, NewScanQuerier(store), uploader)
}

func NewCaseServiceWithQuerier(store CaseStore, query CaseQuerier, uploader ImageUploader) *CaseService {
	return &CaseService{store: store, query: query, uploader: uploader, now: time.Now}
}

func (s *CaseService) List(filters dto.CaseFilters) (*dto.CaseListResponse, error) {
	f, err := NormalizeFilters(filters)
	if err != nil {
		return nil, err
	}

	cases, total, err := s.query.Query(f)
	if err != nil {
		return nil, err
	}

	return &dto.CaseListResponse{
		Cases: cases,
		Pagination: dto.Pagination{
			Page:       f.Page,
			Limit:      f.Limit,
			Total:      total,
			TotalPages: totalPages(total, f.Limit),
		},
	}, nil
}

// Get returns the case whether or not it is in the trash.
func (s *CaseService) Get(id uuid.UUID) (*models.CourtCase, error) {
	return s.store.FindByID(id)
}

// Create uploads the images first; nothing is written when an upload fails.
func (s *CaseService) Create(form dto.CaseForm, primary *dto.ImageFile, additional []dto.ImageFile) (*models.CourtCase, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}
	loc, err := resolveLocation(form.TempleLocation)
	if err != nil {
		return nil, err
	}
	if len(additional) > models.MaxAdditionalImages {
		return nil, invalid("photos", fmt.Sprintf("at most %d additional images per request", models.MaxAdditionalImages))
	}

	mainImage, err := s.uploadPrimary(primary)
	if err != nil {
		return nil, err
	}
	images, err := s.uploadAdditional(additional)
	if err != nil {
		return nil, err
	}

	priority := strings.TrimSpace(form.Priority)
	if priority == "" {
		priority = models.DefaultPriority
	}

	c := &models.CourtCase{
		ID:          uuid.New(),
		CaseNumber:  fmt.Sprintf("CASE-%d", s.now().UnixMilli()),
		CaseTitle:   strings.TrimSpace(form.CaseTitle),
		Description: form.Description,
		DateFiled:   form.DateFiled,
		Status:      form.Status,
		CourtName:   form.CourtName,
		JudgeName:   form.JudgeName,
		Plaintiff:   form.Plaintiff,
		Defendant:   form.Defendant,
		CaseType:    form.CaseType,
		Priority:    priority,
	}
	if mainImage != nil {
		c.ImageURL = mainImage.URL
		c.ImageName = mainImage.Filename
	}
	if len(images) > 0 {
		c.Images = datatypes.JSONSlice[models.CaseImage](images)
	}
	if loc != nil {
		c.TempleLocation = models.EncodeLocation(*loc)
	}

	if err := s.store.Create(c); err != nil {
		return nil, err
	}
	slog.Info("court case created", "id", c.ID, "case_number", c.CaseNumber, "images", len(images))
	return c, nil
}

// Update edits an active case. Optional descriptive fields left blank keep
// their stored value; new additional images are appended.
func (s *CaseService) Update(id uuid.UUID, form dto.CaseForm, primary *dto.ImageFile, additional []dto.ImageFile) (*models.CourtCase, error) {
	existing, err := s.store.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing.IsDeleted {
		return nil, ErrCaseTrashed
	}
	if err := validateForm(form); err != nil {
		return nil, err
	}
	loc, err := resolveLocation(form.TempleLocation)
	if err != nil {
		return nil, err
	}
	if len(additional) > models.MaxAdditionalImages {
		return nil, invalid("photos", fmt.Sprintf("at most %d additional images per request", models.MaxAdditionalImages))
	}

	mainImage, err := s.uploadPrimary(primary)
	if err != nil {
		return nil, err
	}
	images, err := s.uploadAdditional(additional)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"case_title":  strings.TrimSpace(form.CaseTitle),
		"description": form.Description,
		"date_filed":  form.DateFiled,
		"status":      form.Status,
	}
	optional := map[string]string{
		"court_name": form.CourtName,
		"judge_name": form.JudgeName,
		"plaintiff":  form.Plaintiff,
		"defendant":  form.Defendant,
		"case_type":  form.CaseType,
		"priority":   strings.TrimSpace(form.Priority),
	}
	for column, value := range optional {
		if value != "" {
			fields[column] = value
		}
	}
	if mainImage != nil {
		fields["image_url"] = mainImage.URL
		fields["image_name"] = mainImage.Filename
	}
	if len(images) > 0 {
		merged := make([]models.CaseImage, 0, len(existing.Images)+len(images))
		merged = append(merged, existing.Images...)
		merged = append(merged, images...)
		fields["images"] = datatypes.JSONSlice[models.CaseImage](merged)
	}
	if loc != nil {
		fields["temple_location"] = models.EncodeLocation(*loc)
	}

	if err := s.store.Update(id, fields); err != nil {
		return nil, err
	}
	slog.Info("court case updated", "id", id, "new_images", len(images))
	return s.store.FindByID(id)
}

// SoftDelete moves a case to the trash.
func (s *CaseService) SoftDelete(id uuid.UUID) error {
	now := s.now()
	if err := s.store.Update(id, map[string]interface{}{
		"is_deleted": true,
		"deleted_at": &now,
	}); err != nil {
		return err
	}
	slog.Info("court case trashed", "id", id)
	return nil
}

// Delete is the legacy name of SoftDelete.
func (s *CaseService) Delete(id uuid.UUID) error {
	return s.SoftDelete(id)
}

func (s *CaseService) Restore(id uuid.UUID) error {
	if err := s.store.Update(id, map[string]interface{}{
		"is_deleted": false,
		"deleted_at": nil,
	}); err != nil {
		return err
	}
	slog.Info("court case restored", "id", id)
	return nil
}

// HardDelete removes the record permanently. Uploaded images are not
// removed from photo storage.
func (s *CaseService) HardDelete(id uuid.UUID) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	slog.Info("court case purged", "id", id)
	return nil
}

func (s *CaseService) ListTrashed() (*dto.CaseListResponse, error) {
	cases, err := s.query.Trashed()
	if err != nil {
		return nil, err
	}
	return &dto.CaseListResponse{
		Cases: cases,
		Pagination: dto.Pagination{
			Page:       1,
			Limit:      len(cases),
			Total:      len(cases),
			TotalPages: 1,
		},
	}, nil
}

// MigrateDismissed rewrites the legacy Dismissed status to In Court.
func (s *CaseService) MigrateDismissed() (int64, error) {
	n, err := s.store.ReplaceStatus(models.StatusDismissed, models.StatusInCourt)
	if err != nil {
		return 0, err
	}
	slog.Info("dismissed statuses migrated", "updated", n)
	return n, nil
}

// SeedDemoCases inserts the demo set into an empty collection and reports
// how many records were written.
func (s *CaseService) SeedDemoCases() (int, error) {
	n, err := s.store.Count()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	seed := demoCases()
	for i := range seed {
		if err := s.store.Create(&seed[i]); err != nil {
			return i, err
		}
	}
	slog.Info("demo cases seeded", "count", len(seed))
	return len(seed), nil
}

func (s *CaseService) uploadPrimary(file *dto.ImageFile) (*dto.UploadedImage, error) {
	if file == nil || len(file.Content) == 0 {
		return nil, nil
	}
	img, err := s.uploader.UploadPhoto(*file)
	if err != nil {
		return nil, uploadFailure("photo", "upload photo", err)
	}
	return img, nil
}

func (s *CaseService) uploadAdditional(files []dto.ImageFile) ([]models.CaseImage, error) {
	if len(files) == 0 {
		return nil, nil
	}
	uploaded, err := s.uploader.UploadPhotos(files)
	if err != nil {
		return nil, uploadFailure("photos", "upload photos", err)
	}

	stamp := s.now().UTC().Format(time.RFC3339)
	images := make([]models.CaseImage, 0, len(uploaded))
	for _, u := range uploaded {
		uploadedAt := u.UploadedAt
		if uploadedAt == "" {
			uploadedAt = stamp
		}
		images = append(images, models.CaseImage{URL: u.URL, Filename: u.Filename, UploadedAt: uploadedAt})
	}
	return images, nil
}

// uploadFailure turns a rejection by the upload service into a validation
// error and anything else into an upstream error.
func uploadFailure(field, op string, err error) error {
	var rejected *UploadRejectedError
	if errors.As(err, &rejected) {
		return invalid(field, rejected.Message)
	}
	return &UpstreamError{Service: "upload service", Op: op, Err: err}
}

func validateForm(form dto.CaseForm) error {
	if strings.TrimSpace(form.CaseTitle) == "" {
		return invalid("caseTitle", "case title is required")
	}
	if strings.TrimSpace(form.DateFiled) == "" {
		return invalid("dateFiled", "date filed is required")
	}
	if form.Status == "" {
		return invalid("status", "status is required")
	}
	if !models.IsValidStatus(form.Status) {
		return invalid("status", "unknown status "+form.Status)
	}
	return nil
}

// resolveLocation returns nil for an absent or partial location. Zero
// coordinates count as absent.
func resolveLocation(in *dto.LocationInput) (*models.Location, error) {
	if in == nil || in.Lat == nil || in.Lng == nil || *in.Lat == 0 || *in.Lng == 0 {
		return nil, nil
	}
	if *in.Lat < -90 || *in.Lat > 90 {
		return nil, invalid("templeLocation.lat", "latitude must be between -90 and 90")
	}
	if *in.Lng < -180 || *in.Lng > 180 {
		return nil, invalid("templeLocation.lng", "longitude must be between -180 and 180")
	}
	return &models.Location{
		Lat:     *in.Lat,
		Lng:     *in.Lng,
		Name:    strings.TrimSpace(in.Name),
		Address: strings.TrimSpace(in.Address),
	}, nil
}
