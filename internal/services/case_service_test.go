package services

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/database/dbtest"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/dto"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	err     error
	single  int
	batches int
}

func (f *fakeUploader) UploadPhoto(file dto.ImageFile) (*dto.UploadedImage, error) {
	f.single++
	if f.err != nil {
		return nil, f.err
	}
	return &dto.UploadedImage{
		Filename: "1700000000000-" + file.Name,
		URL:      "http://photos.test/photos/1700000000000-" + file.Name,
	}, nil
}

func (f *fakeUploader) UploadPhotos(files []dto.ImageFile) ([]dto.UploadedImage, error) {
	f.batches++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]dto.UploadedImage, 0, len(files))
	for _, file := range files {
		out = append(out, dto.UploadedImage{
			Filename:   "1700000000000-" + file.Name,
			URL:        "http://photos.test/photos/1700000000000-" + file.Name,
			UploadedAt: "2024-05-01T10:00:00Z",
		})
	}
	return out, nil
}

func newCaseService(t *testing.T) (*CaseService, *GormCaseStore, *fakeUploader) {
	t.Helper()
	store := NewGormCaseStore(dbtest.Open(t))
	up := &fakeUploader{}
	return NewCaseService(store, up), store, up
}

func baseForm() dto.CaseForm {
	return dto.CaseForm{CaseTitle: "T", DateFiled: "2024-01-01", Status: models.StatusActive}
}

func image(name string) dto.ImageFile {
	return dto.ImageFile{Name: name, ContentType: "image/png", Content: []byte("png")}
}

func ptr(f float64) *float64 { return &f }

func TestCreateAppliesDefaults(t *testing.T) {
	svc, _, _ := newCaseService(t)

	c, err := svc.Create(baseForm(), nil, nil)
	require.NoError(t, err)

	got, err := svc.Get(c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPriority, got.Priority)
	assert.Regexp(t, `^CASE-\d+$`, got.CaseNumber)
	assert.False(t, got.IsDeleted)
	assert.Nil(t, got.DeletedAt)
	assert.Nil(t, got.Location())
	assert.Empty(t, got.Images)

	list, err := svc.List(dto.CaseFilters{})
	require.NoError(t, err)
	require.Len(t, list.Cases, 1)
	assert.Equal(t, c.ID, list.Cases[0].ID)
}

func TestCreateValidation(t *testing.T) {
	svc, store, _ := newCaseService(t)

	tests := []struct {
		name string
		edit func(f *dto.CaseForm)
	}{
		{"missing title", func(f *dto.CaseForm) { f.CaseTitle = "  " }},
		{"missing date", func(f *dto.CaseForm) { f.DateFiled = "" }},
		{"missing status", func(f *dto.CaseForm) { f.Status = "" }},
		{"legacy status", func(f *dto.CaseForm) { f.Status = models.StatusDismissed }},
		{"latitude out of range", func(f *dto.CaseForm) {
			f.TempleLocation = &dto.LocationInput{Lat: ptr(95), Lng: ptr(77)}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := baseForm()
			tt.edit(&form)
			_, err := svc.Create(form, nil, nil)
			assert.True(t, IsValidation(err), "got %v", err)
		})
	}

	n, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateLocation(t *testing.T) {
	svc, _, _ := newCaseService(t)

	full := baseForm()
	full.TempleLocation = &dto.LocationInput{Lat: ptr(28.61), Lng: ptr(77.2), Name: "Old Temple", Address: "Delhi"}
	c, err := svc.Create(full, nil, nil)
	require.NoError(t, err)
	loc := c.Location()
	require.NotNil(t, loc)
	assert.Equal(t, 28.61, loc.Lat)
	assert.Equal(t, "Old Temple", loc.Name)

	partial := baseForm()
	partial.TempleLocation = &dto.LocationInput{Lat: ptr(28.61), Name: "No longitude"}
	c, err = svc.Create(partial, nil, nil)
	require.NoError(t, err)
	got, err := svc.Get(c.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Location())
	assert.Empty(t, got.TempleLocation)
}

func TestCreateUploadFailureWritesNothing(t *testing.T) {
	svc, store, up := newCaseService(t)
	up.err = errors.New("connection refused")

	primary := image("front.png")
	_, err := svc.Create(baseForm(), &primary, nil)
	assert.True(t, IsUpstream(err), "got %v", err)

	_, err = svc.Create(baseForm(), nil, []dto.ImageFile{image("a.png")})
	assert.True(t, IsUpstream(err), "got %v", err)

	n, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateUploadRejectedIsValidation(t *testing.T) {
	svc, _, up := newCaseService(t)
	up.err = &UploadRejectedError{Status: 400, Message: "File too large. Maximum size is 5MB."}

	primary := image("huge.png")
	_, err := svc.Create(baseForm(), &primary, nil)
	var v *ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "photo", v.Field)
	assert.Contains(t, v.Message, "5MB")
}

func TestCreateWithImages(t *testing.T) {
	svc, _, _ := newCaseService(t)

	primary := image("front.png")
	c, err := svc.Create(baseForm(), &primary, []dto.ImageFile{image("a.png"), image("b.png")})
	require.NoError(t, err)

	got, err := svc.Get(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "http://photos.test/photos/1700000000000-front.png", got.ImageURL)
	assert.Equal(t, "1700000000000-front.png", got.ImageName)
	require.Len(t, got.Images, 2)
	assert.Equal(t, "1700000000000-a.png", got.Images[0].Filename)
	assert.Equal(t, "2024-05-01T10:00:00Z", got.Images[0].UploadedAt)
}

func TestCreateTooManyImages(t *testing.T) {
	svc, _, up := newCaseService(t)

	files := make([]dto.ImageFile, models.MaxAdditionalImages+1)
	for i := range files {
		files[i] = image(fmt.Sprintf("%d.png", i))
	}
	_, err := svc.Create(baseForm(), nil, files)
	assert.True(t, IsValidation(err))
	assert.Zero(t, up.batches)
}

func seedNumbered(t *testing.T, store *GormCaseStore, n int) {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		status := models.StatusActive
		if i%3 == 0 {
			status = models.StatusClosed
		}
		require.NoError(t, store.Create(&models.CourtCase{
			CaseNumber:  fmt.Sprintf("C-%02d", i),
			CaseTitle:   fmt.Sprintf("Case %d", i),
			Description: "temple land matter",
			DateFiled:   "2024-01-01",
			Status:      status,
			Priority:    models.DefaultPriority,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}
}

func caseNumbers(cases []models.CourtCase) []string {
	out := make([]string, 0, len(cases))
	for _, c := range cases {
		out = append(out, c.CaseNumber)
	}
	return out
}

func TestListPaginates(t *testing.T) {
	svc, store, _ := newCaseService(t)
	seedNumbered(t, store, 12)

	page, err := svc.List(dto.CaseFilters{Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"C-07", "C-06", "C-05", "C-04", "C-03"}, caseNumbers(page.Cases))
	assert.Equal(t, dto.Pagination{Page: 2, Limit: 5, Total: 12, TotalPages: 3}, page.Pagination)

	last, err := svc.List(dto.CaseFilters{Page: 3, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"C-02", "C-01"}, caseNumbers(last.Cases))

	beyond, err := svc.List(dto.CaseFilters{Page: 9, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, beyond.Cases)
	assert.Equal(t, 12, beyond.Pagination.Total)

	asc, err := svc.List(dto.CaseFilters{Limit: 2, SortBy: "caseNumber", SortOrder: "ASC"})
	require.NoError(t, err)
	assert.Equal(t, []string{"C-01", "C-02"}, caseNumbers(asc.Cases))
}

func TestListFilters(t *testing.T) {
	svc, store, _ := newCaseService(t)
	seedNumbered(t, store, 12)

	closed, err := svc.List(dto.CaseFilters{Status: models.StatusClosed, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, []string{"C-12", "C-09", "C-06", "C-03"}, caseNumbers(closed.Cases))

	all, err := svc.List(dto.CaseFilters{Status: dto.StatusAll, Limit: 50})
	require.NoError(t, err)
	assert.Len(t, all.Cases, 12)

	search, err := svc.List(dto.CaseFilters{Search: "case 1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"C-12", "C-11", "C-10", "C-01"}, caseNumbers(search.Cases))

	byDescription, err := svc.List(dto.CaseFilters{Search: "TEMPLE", Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, 12, byDescription.Pagination.Total)

	empty, err := svc.List(dto.CaseFilters{Search: "nothing matches"})
	require.NoError(t, err)
	assert.Empty(t, empty.Cases)
	assert.Zero(t, empty.Pagination.TotalPages)
}

func TestListRejectsUnknownSort(t *testing.T) {
	svc, _, _ := newCaseService(t)

	_, err := svc.List(dto.CaseFilters{SortBy: "password"})
	assert.True(t, IsValidation(err))

	_, err = svc.List(dto.CaseFilters{SortOrder: "sideways"})
	assert.True(t, IsValidation(err))
}

func TestUpdateStatus(t *testing.T) {
	svc, _, _ := newCaseService(t)

	c, err := svc.Create(baseForm(), nil, nil)
	require.NoError(t, err)

	form := baseForm()
	form.Status = models.StatusClosed
	_, err = svc.Update(c.ID, form, nil, nil)
	require.NoError(t, err)

	got, err := svc.Get(c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClosed, got.Status)

	closed, err := svc.List(dto.CaseFilters{Status: models.StatusClosed})
	require.NoError(t, err)
	assert.Len(t, closed.Cases, 1)

	active, err := svc.List(dto.CaseFilters{Status: models.StatusActive})
	require.NoError(t, err)
	assert.Empty(t, active.Cases)
}

func TestUpdateKeepsUnsetFields(t *testing.T) {
	svc, _, _ := newCaseService(t)

	form := baseForm()
	form.Priority = "High"
	form.CourtName = "District Court"
	form.TempleLocation = &dto.LocationInput{Lat: ptr(12.9), Lng: ptr(77.5)}
	c, err := svc.Create(form, nil, nil)
	require.NoError(t, err)

	edit := baseForm()
	edit.CaseTitle = "Renamed"
	edit.TempleLocation = &dto.LocationInput{Lat: ptr(13.0)}
	got, err := svc.Update(c.ID, edit, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Renamed", got.CaseTitle)
	assert.Equal(t, "High", got.Priority)
	assert.Equal(t, "District Court", got.CourtName)
	require.NotNil(t, got.Location())
	assert.Equal(t, 12.9, got.Location().Lat)
	assert.Equal(t, c.CaseNumber, got.CaseNumber)
}

func TestUpdateAppendsImages(t *testing.T) {
	svc, _, _ := newCaseService(t)

	c, err := svc.Create(baseForm(), nil, []dto.ImageFile{image("first.png")})
	require.NoError(t, err)

	got, err := svc.Update(c.ID, baseForm(), nil, []dto.ImageFile{image("second.png"), image("third.png")})
	require.NoError(t, err)
	require.Len(t, got.Images, 3)
	assert.Equal(t, "1700000000000-first.png", got.Images[0].Filename)
	assert.Equal(t, "1700000000000-third.png", got.Images[2].Filename)
}

func TestUpdateMissingAndTrashed(t *testing.T) {
	svc, _, _ := newCaseService(t)

	_, err := svc.Update(uuid.New(), baseForm(), nil, nil)
	assert.ErrorIs(t, err, ErrCaseNotFound)

	c, err := svc.Create(baseForm(), nil, nil)
	require.NoError(t, err)
	require.NoError(t, svc.SoftDelete(c.ID))

	_, err = svc.Update(c.ID, baseForm(), nil, nil)
	assert.ErrorIs(t, err, ErrCaseTrashed)
}

func TestSoftDeleteAndRestore(t *testing.T) {
	svc, _, _ := newCaseService(t)

	c, err := svc.Create(baseForm(), nil, nil)
	require.NoError(t, err)

	for round := 0; round < 3; round++ {
		require.NoError(t, svc.SoftDelete(c.ID))
		require.NoError(t, svc.SoftDelete(c.ID))

		list, err := svc.List(dto.CaseFilters{})
		require.NoError(t, err)
		assert.Empty(t, list.Cases, "round %d", round)

		trash, err := svc.ListTrashed()
		require.NoError(t, err)
		require.Len(t, trash.Cases, 1, "round %d", round)
		assert.NotNil(t, trash.Cases[0].DeletedAt)

		got, err := svc.Get(c.ID)
		require.NoError(t, err)
		assert.True(t, got.IsDeleted)

		require.NoError(t, svc.Restore(c.ID))
		require.NoError(t, svc.Restore(c.ID))

		got, err = svc.Get(c.ID)
		require.NoError(t, err)
		assert.False(t, got.IsDeleted)
		assert.Nil(t, got.DeletedAt)

		list, err = svc.List(dto.CaseFilters{})
		require.NoError(t, err)
		require.Len(t, list.Cases, 1, "round %d", round)
		assert.Equal(t, c.ID, list.Cases[0].ID)

		trash, err = svc.ListTrashed()
		require.NoError(t, err)
		assert.Empty(t, trash.Cases, "round %d", round)
	}

	assert.ErrorIs(t, svc.Delete(uuid.New()), ErrCaseNotFound)
	assert.ErrorIs(t, svc.Restore(uuid.New()), ErrCaseNotFound)
}

func TestHardDelete(t *testing.T) {
	svc, _, _ := newCaseService(t)

	assert.ErrorIs(t, svc.HardDelete(uuid.New()), ErrCaseNotFound)

	kept, err := svc.Create(baseForm(), nil, nil)
	require.NoError(t, err)
	c, err := svc.Create(baseForm(), nil, nil)
	require.NoError(t, err)
	require.NoError(t, svc.SoftDelete(c.ID))
	require.NoError(t, svc.HardDelete(c.ID))

	_, err = svc.Get(c.ID)
	assert.ErrorIs(t, err, ErrCaseNotFound)

	list, err := svc.List(dto.CaseFilters{})
	require.NoError(t, err)
	require.Len(t, list.Cases, 1)
	assert.Equal(t, kept.ID, list.Cases[0].ID)

	trash, err := svc.ListTrashed()
	require.NoError(t, err)
	assert.Empty(t, trash.Cases)

	assert.ErrorIs(t, svc.SoftDelete(c.ID), ErrCaseNotFound)
	assert.ErrorIs(t, svc.Restore(c.ID), ErrCaseNotFound)
	assert.ErrorIs(t, svc.HardDelete(c.ID), ErrCaseNotFound)
	_, err = svc.Update(c.ID, baseForm(), nil, nil)
	assert.ErrorIs(t, err, ErrCaseNotFound)
}

func TestListPageBeyondRange(t *testing.T) {
	svc, _, _ := newCaseService(t)
	for i := 0; i < 3; i++ {
		_, err := svc.Create(baseForm(), nil, nil)
		require.NoError(t, err)
	}

	for _, page := range []int{2, math.MaxInt / 10, math.MaxInt} {
		list, err := svc.List(dto.CaseFilters{Page: page, Limit: 10})
		require.NoError(t, err, "page %d", page)
		assert.Empty(t, list.Cases, "page %d", page)
		assert.Equal(t, 3, list.Pagination.Total)
		assert.Equal(t, 1, list.Pagination.TotalPages)
	}

	list, err := svc.List(dto.CaseFilters{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 100, list.Pagination.Limit)
	assert.Len(t, list.Cases, 3)
}

func TestMigrateDismissed(t *testing.T) {
	svc, store, _ := newCaseService(t)
	for i := 0; i < 2; i++ {
		require.NoError(t, store.Create(&models.CourtCase{
			CaseTitle: "old", DateFiled: "2023-01-01", Status: models.StatusDismissed,
		}))
	}
	_, err := svc.Create(baseForm(), nil, nil)
	require.NoError(t, err)

	n, err := svc.MigrateDismissed()
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	inCourt, err := svc.List(dto.CaseFilters{Status: models.StatusInCourt})
	require.NoError(t, err)
	assert.Len(t, inCourt.Cases, 2)

	n, err = svc.MigrateDismissed()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeedDemoCasesOnlyWhenEmpty(t *testing.T) {
	svc, store, _ := newCaseService(t)

	n, err := svc.SeedDemoCases()
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = svc.SeedDemoCases()
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err := store.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 6, count)

	list, err := svc.List(dto.CaseFilters{})
	require.NoError(t, err)
	assert.Equal(t, "WP-2024-006", list.Cases[0].CaseNumber)
}
