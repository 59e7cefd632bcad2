package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Jamuna1221/WattLab/models"
	"gorm.io/gorm"
)

// Destinations the client is routed to after login. Role-based routing is a
// UX policy, not a security boundary: the admin API group is still gated by
// the role claim on every request.
const (
	DestinationAdmin     = "/admin"
	DestinationDashboard = "/dashboard"
)

// AuthService handles login and registration on top of an identity provider
type AuthService struct {
	db       *gorm.DB
	provider IdentityProvider
}

// NewAuthService creates an AuthService
func NewAuthService(db *gorm.DB, provider IdentityProvider) *AuthService {
	return &AuthService{db: db, provider: provider}
}

// Authenticate verifies credentials with the provider and resolves the user
// profile for the issued subject id. Returns the profile and the post-login
// destination for its role.
func (s *AuthService) Authenticate(email, password string) (*models.User, string, error) {
	subjectID, err := s.provider.VerifyCredentials(email, password)
	if err != nil {
		return nil, "", err
	}

	var user models.User
	if err := s.db.Where("subject_id = ?", subjectID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Account exists at the provider but the profile row is missing
			return nil, "", ErrProfileNotFound
		}
		return nil, "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	return &user, DestinationFor(user.Role), nil
}

// Register creates a provider account and provisions the profile row.
// New registrations always get the standard role; admins are created by an
// existing admin or the seed tool.
func (s *AuthService) Register(name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "must not be empty")
	}
	email = normalizeEmail(email)
	if !strings.Contains(email, "@") {
		return nil, NewValidationError("email", "must be a valid email address")
	}

	subjectID, err := s.provider.CreateAccount(email, password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) || IsValidation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	user := models.User{
		SubjectID: subjectID,
		Name:      name,
		Email:     email,
		Role:      models.RoleUser,
		Status:    models.StatusActive,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// The provider account was already created; surface the partial
		// failure instead of pretending registration succeeded
		return nil, fmt.Errorf("%w: profile provisioning after account creation: %v", ErrRegistrationFailed, err)
	}

	return &user, nil
}

// DestinationFor maps a stored role to its post-login surface
func DestinationFor(role models.UserRole) string {
	if role == models.RoleAdmin {
		return DestinationAdmin
	}
	return DestinationDashboard
}
