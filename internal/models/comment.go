package models

import "time"

// Comment attaches to either a question or an answer, never both. Both FKs
// are nullable at the storage level; the store refuses to create a comment
// that doesn't have exactly one parent.
type Comment struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	Content      string    `json:"content"`
	OwnerID      *int      `json:"owner_id,omitempty"`
	Owner        *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL" json:"owner,omitempty"`
	QuestionID   *int      `gorm:"index" json:"question_id,omitempty"`
	Question     *Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	AnswerID     *int      `gorm:"index" json:"answer_id,omitempty"`
	Answer       *Answer   `gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE" json:"-"`
	CreationDate time.Time `gorm:"autoCreateTime" json:"creation_date"`
	Upvotes      int       `gorm:"default:0" json:"upvotes"`
	Downvotes    int       `gorm:"default:0" json:"downvotes"`
}

func (c *Comment) Score() int { return c.Upvotes - c.Downvotes }
