// Package identity is the authentication provider: credential accounts,
// signed session tokens and client-side sessions over them.
package identity

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidEmail       = errors.New("a valid email address is required")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrInvalidToken       = errors.New("invalid session token")
)

// Identity is an authenticated account as seen by the rest of the system.
type Identity struct {
	UID   string
	Email string
}

type Provider struct {
	db           *gorm.DB
	secret       []byte
	accessExpiry time.Duration
}

func NewProvider(db *gorm.DB, secret string, accessExpiry time.Duration) *Provider {
	return &Provider{db: db, secret: []byte(secret), accessExpiry: accessExpiry}
}

// NormalizeEmail is applied to every email before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *Provider) CreateAccount(email, password string) (*Identity, error) {
	email = NormalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	var existing models.AuthAccount
	if err := p.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := models.AuthAccount{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := p.db.Create(&account).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &Identity{UID: account.UID, Email: account.Email}, nil
}

func (p *Provider) Authenticate(email, password string) (*Identity, error) {
	var account models.AuthAccount
	if err := p.db.Where("email = ?", NormalizeEmail(email)).First(&account).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &Identity{UID: account.UID, Email: account.Email}, nil
}

func (p *Provider) Lookup(uid string) (*Identity, error) {
	var account models.AuthAccount
	if err := p.db.First(&account, "uid = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	return &Identity{UID: account.UID, Email: account.Email}, nil
}

func (p *Provider) DeleteAccount(uid string) error {
	result := p.db.Where("uid = ?", uid).Delete(&models.AuthAccount{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// IssueToken signs an access token carrying the identity's uid and email.
func (p *Provider) IssueToken(id *Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   id.UID,
		"email": id.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(p.accessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// FromToken extracts the identity from a token already verified by the
// JWT middleware.
func FromToken(token *jwt.Token) (*Identity, error) {
	if token == nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	return &Identity{UID: sub, Email: email}, nil
}

// NewSession opens a client session against this provider. Sessions are
// independent: signing one in or out never affects another.
func (p *Provider) NewSession(name string) *Session {
	return &Session{
		name:      name,
		provider:  p,
		listeners: make(map[int]Listener),
	}
}
