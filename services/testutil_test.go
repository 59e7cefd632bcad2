package services_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Jamuna1221/WattLab/database"
	"github.com/Jamuna1221/WattLab/models"
	"github.com/Jamuna1221/WattLab/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database, migrated and namespaced by
// test name so parallel tests never share state
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// newTestUser registers a user through the auth service
func newTestUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()

	auth := services.NewAuthService(db, services.NewLocalIdentity(db))
	user, err := auth.Register(name, email, "test-password")
	if err != nil {
		t.Fatalf("failed to register test user %s: %v", email, err)
	}
	return user
}

// promoteToAdmin flips a user's stored role
func promoteToAdmin(t *testing.T, db *gorm.DB, user *models.User) {
	t.Helper()

	if err := db.Model(user).Update("role", models.RoleAdmin).Error; err != nil {
		t.Fatalf("failed to promote user: %v", err)
	}
	user.Role = models.RoleAdmin
}
