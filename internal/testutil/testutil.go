// Package testutil provides shared database fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/askboard/backend/internal/database"
	"github.com/askboard/backend/internal/models"
)

// OpenDB returns a migrated gorm handle over an in-memory sqlite database
// private to the calling test. The shared-cache DSN keeps every pooled
// connection on the same database; a plain :memory: DSN would give each
// connection its own.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CreateUser inserts a user with a unique username derived from name.
func CreateUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	suffix := uuid.NewString()[:8]
	user := models.User{
		Username: fmt.Sprintf("%s-%s", name, suffix),
		Email:    fmt.Sprintf("%s-%s@example.com", name, suffix),
		Password: "not-a-real-hash",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return &user
}

// CreateQuestion inserts a question owned by owner.
func CreateQuestion(t *testing.T, db *gorm.DB, owner *models.User, title string) *models.Question {
	t.Helper()

	q := models.Question{
		Title:   title,
		Content: "content of " + title,
		OwnerID: &owner.ID,
	}
	if err := db.Create(&q).Error; err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}
	return &q
}

// CreateAnswer inserts an answer with explicit creation time and score
// counters, so ordering tests control both sort keys.
func CreateAnswer(t *testing.T, db *gorm.DB, q *models.Question, owner *models.User, content string, createdAt time.Time, upvotes, downvotes int) *models.Answer {
	t.Helper()

	a := models.Answer{
		Content:      content,
		OwnerID:      &owner.ID,
		QuestionID:   q.ID,
		CreationDate: createdAt,
		Upvotes:      upvotes,
		Downvotes:    downvotes,
	}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("Failed to create test answer: %v", err)
	}
	return &a
}
