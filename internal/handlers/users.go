package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/askboard/backend/internal/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// GetUserProfile returns a user's profile and recent post activity
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	userID := c.Param("id")
	var user models.User

	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var questions []models.Question
	h.db.Where("owner_id = ?", user.ID).Order("creation_date desc").Find(&questions)

	var answers []models.Answer
	h.db.Where("owner_id = ?", user.ID).Order("creation_date desc").Find(&answers)

	var comments []models.Comment
	h.db.Where("owner_id = ?", user.ID).Order("creation_date desc").Find(&comments)

	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"questions": questions,
		"answers":   answers,
		"comments":  comments,
	})
}

// UpdateUserProfile edits profile fields (own profile only)
func (h *UserHandler) UpdateUserProfile(c *gin.Context) {
	userID := c.Param("id")

	authUserID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Check if user is updating their own profile
	if fmt.Sprintf("%v", authUserID) != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own profile"})
		return
	}

	var input struct {
		Age        *int       `json:"age"`
		Birthday   *time.Time `json:"birthday"`
		Motherland string     `json:"motherland"`
		School     string     `json:"school"`
		Major      string     `json:"major"`
		City       string     `json:"city"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if input.Age != nil {
		user.Age = input.Age
	}
	if input.Birthday != nil {
		user.Birthday = input.Birthday
	}
	if input.Motherland != "" {
		user.Motherland = input.Motherland
	}
	if input.School != "" {
		user.School = input.School
	}
	if input.Major != "" {
		user.Major = input.Major
	}
	if input.City != "" {
		user.City = input.City
	}

	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}
