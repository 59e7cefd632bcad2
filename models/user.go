package models

import (
	"time"
)

// UserRole enum
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// UserStatus enum
type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusInactive UserStatus = "inactive"
)

// Credential is the identity-provider side of an account: the record that
// verifies a password and issues a subject id. Kept separate from the User
// profile so a profile can be provisioned (or go missing) independently.
type Credential struct {
	SubjectID    string    `gorm:"primaryKey;column:subject_id" json:"subjectId"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Credential) TableName() string {
	return "auth_credentials"
}

// User profile row, resolved by the subject id the provider issues
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	SubjectID string     `gorm:"uniqueIndex;not null;column:subject_id" json:"-"`
	Name      string     `gorm:"not null" json:"name"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Role      UserRole   `gorm:"default:user" json:"role"`
	Status    UserStatus `gorm:"default:active" json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	Appliances []Appliance `gorm:"foreignKey:UserID" json:"appliances,omitempty"`
	Alerts     []Alert     `gorm:"foreignKey:UserID" json:"alerts,omitempty"`
}

func (User) TableName() string {
	return "users"
}
