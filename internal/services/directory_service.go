package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/identity"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountRemover deletes an auth account by uid.
type AccountRemover interface {
	DeleteAccount(uid string) error
}

// DeleteOutcome reports each step of a user deletion. The account step may
// fail while the record step still succeeds.
type DeleteOutcome struct {
	UserID         uuid.UUID
	UID            string
	AccountRemoved bool
	AccountError   string
	RecordRemoved  bool
}

type DirectoryService struct {
	db       *gorm.DB
	provider *identity.Provider
	remover  AccountRemover
	now      func() time.Time
}

func NewDirectoryService(db *gorm.DB, provider *identity.Provider, remover AccountRemover) *DirectoryService {
	return &DirectoryService{db: db, provider: provider, remover: remover, now: time.Now}
}

// CreateUser provisions an auth account and its directory record. The
// account is created through a throwaway session so the caller's own
// session is never switched to the new account.
func (s *DirectoryService) CreateUser(name, email, password string) (*models.DirectoryUser, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "name is required")
	}

	secondary := s.provider.NewSession(fmt.Sprintf("secondary-%d", s.now().UnixMilli()))
	defer secondary.Close()

	account, err := secondary.CreateAccount(email, password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrInvalidEmail):
			return nil, invalid("email", err.Error())
		case errors.Is(err, identity.ErrWeakPassword):
			return nil, invalid("password", err.Error())
		case errors.Is(err, identity.ErrEmailTaken):
			return nil, err
		}
		return nil, &UpstreamError{Service: "auth provider", Op: "create account", Err: err}
	}

	user := &models.DirectoryUser{
		ID:        uuid.New(),
		UID:       account.UID,
		Name:      name,
		Email:     account.Email,
		IsEnabled: true,
		IsAdmin:   false,
	}
	if err := s.db.Create(user).Error; err != nil {
		// The auth account already exists at this point and is left in place.
		slog.Error("directory record create failed", "uid", account.UID, "error", err)
		return nil, fmt.Errorf("failed to create user record: %w", err)
	}

	slog.Info("directory user created", "id", user.ID, "uid", user.UID)
	return user, nil
}

// List returns every directory record, newest first.
func (s *DirectoryService) List() ([]models.DirectoryUser, error) {
	var users []models.DirectoryUser
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *DirectoryService) GetByID(id uuid.UUID) (*models.DirectoryUser, error) {
	var user models.DirectoryUser
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// GetByEmail returns the oldest record with the email, or nil when none
// exists. Emails are not unique in the directory.
func (s *DirectoryService) GetByEmail(email string) (*models.DirectoryUser, error) {
	var users []models.DirectoryUser
	err := s.db.
		Where("email = ?", identity.NormalizeEmail(email)).
		Order("created_at ASC").
		Limit(1).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (s *DirectoryService) ToggleEnabled(id uuid.UUID, enabled bool) error {
	result := s.db.Model(&models.DirectoryUser{}).Where("id = ?", id).Update("is_enabled", enabled)
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	slog.Info("directory user toggled", "id", id, "enabled", enabled)
	return nil
}

// IsEnabled reports whether the email may act as an enabled user. An email
// without a directory record counts as enabled.
func (s *DirectoryService) IsEnabled(email string) (bool, error) {
	user, err := s.GetByEmail(email)
	if err != nil {
		return false, err
	}
	if user == nil {
		return true, nil
	}
	return user.IsEnabled, nil
}

// Delete removes the auth account and then the directory record. A failed
// account step is logged and reported in the outcome; the record is removed
// regardless.
func (s *DirectoryService) Delete(id uuid.UUID) (*DeleteOutcome, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	outcome := &DeleteOutcome{UserID: user.ID, UID: user.UID}
	if user.UID != "" && s.remover != nil {
		if err := s.remover.DeleteAccount(user.UID); err != nil {
			slog.Warn("auth account delete failed", "uid", user.UID, "error", err)
			outcome.AccountError = err.Error()
		} else {
			outcome.AccountRemoved = true
		}
	}

	result := s.db.Where("id = ?", id).Delete(&models.DirectoryUser{})
	if result.Error != nil {
		return outcome, fmt.Errorf("failed to delete user record: %w", result.Error)
	}
	outcome.RecordRemoved = result.RowsAffected > 0

	slog.Info("directory user deleted", "id", id, "account_removed", outcome.AccountRemoved)
	return outcome, nil
}
