package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/askboard/backend/internal/models"
	"github.com/askboard/backend/internal/store"
	"github.com/askboard/backend/internal/votes"
)

// Handler combines all handler types
type Handler struct {
	Auth     *AuthHandler
	Question *QuestionHandler
	Vote     *VoteHandler
	Index    *IndexHandler
	User     *UserHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB) *Handler {
	posts := store.New(db)

	return &Handler{
		Auth:     NewAuthHandler(db),
		Question: NewQuestionHandler(db, posts),
		Vote:     NewVoteHandler(votes.NewLedger(posts)),
		Index:    NewIndexHandler(posts),
		User:     NewUserHandler(db),
	}
}

func extractUserID(c *gin.Context) (int, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case uint:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// currentUser loads the authenticated viewer, or nil for anonymous requests.
func currentUser(c *gin.Context, db *gorm.DB) *models.User {
	userID, ok := extractUserID(c)
	if !ok {
		return nil
	}
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil
	}
	return &user
}
