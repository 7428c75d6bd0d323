package models

import "time"

// Answer is a direct response to a question. CorrectAnswer marks it as the
// accepted one; the thread package manages the flag and resolves a double
// flag to the newest row.
type Answer struct {
	ID            int       `gorm:"primaryKey" json:"id"`
	Content       string    `json:"content"`
	OwnerID       *int      `json:"owner_id,omitempty"`
	Owner         *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL" json:"owner,omitempty"`
	QuestionID    int       `gorm:"not null;index" json:"question_id"`
	Question      *Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	CorrectAnswer bool      `gorm:"default:false" json:"correct_answer"`
	CreationDate  time.Time `gorm:"autoCreateTime" json:"creation_date"`
	Upvotes       int       `gorm:"default:0" json:"upvotes"`
	Downvotes     int       `gorm:"default:0" json:"downvotes"`
}

func (a *Answer) Score() int { return a.Upvotes - a.Downvotes }
