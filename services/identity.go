package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Jamuna1221/WattLab/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// IdentityProvider verifies credentials and creates accounts. The default
// implementation keeps credentials in our own database; swapping in a hosted
// provider only requires implementing this interface.
type IdentityProvider interface {
	// VerifyCredentials checks email/password and returns the subject id
	VerifyCredentials(email, password string) (string, error)
	// CreateAccount registers new credentials and returns the subject id
	CreateAccount(email, password string) (string, error)
}

// LocalIdentity is the bcrypt-backed IdentityProvider over auth_credentials
type LocalIdentity struct {
	db *gorm.DB
}

// NewLocalIdentity creates a LocalIdentity on top of db
func NewLocalIdentity(db *gorm.DB) *LocalIdentity {
	return &LocalIdentity{db: db}
}

// VerifyCredentials checks the password against the stored bcrypt hash
func (p *LocalIdentity) VerifyCredentials(email, password string) (string, error) {
	var cred models.Credential
	err := p.db.Where("email = ?", normalizeEmail(email)).First(&cred).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return cred.SubjectID, nil
}

// CreateAccount stores new credentials under a fresh subject id
func (p *LocalIdentity) CreateAccount(email, password string) (string, error) {
	if len(password) < 6 {
		return "", NewValidationError("password", "must be at least 6 characters")
	}

	email = normalizeEmail(email)

	var count int64
	if err := p.db.Model(&models.Credential{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	if count > 0 {
		return "", ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	cred := models.Credential{
		SubjectID:    uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := p.db.Create(&cred).Error; err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	return cred.SubjectID, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
