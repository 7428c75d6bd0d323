package models

import "time"

// Question starts a thread. Deleting a question cascades to its answers,
// comments and votes.
type Question struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:300" json:"title"`
	Content      string    `json:"content"`
	OwnerID      *int      `json:"owner_id,omitempty"`
	Owner        *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL" json:"owner,omitempty"`
	CreationDate time.Time `gorm:"autoCreateTime" json:"creation_date"`
	Upvotes      int       `gorm:"default:0" json:"upvotes"`
	Downvotes    int       `gorm:"default:0" json:"downvotes"`
	Visits       int       `gorm:"default:0" json:"visits"`
	Tags         []Tag     `gorm:"many2many:question_tags" json:"tags,omitempty"`
}

// Score is the derived vote total, never stored.
func (q *Question) Score() int { return q.Upvotes - q.Downvotes }

type CreateQuestionRequest struct {
	Title   string `form:"title" json:"title" binding:"required"`
	Content string `form:"content" json:"content" binding:"required"`
	// Semicolon-separated labels, blanks ignored
	Tags string `form:"tag" json:"tag"`
}

type EditQuestionRequest struct {
	Title   string `form:"title" json:"title" binding:"required"`
	Content string `form:"content" json:"content" binding:"required"`
}
