package models

import "time"

// Vote ties one user to exactly one post (question, answer or comment).
// The composite unique indexes guarantee at most one vote per (user, target)
// pair even under concurrent first-votes; sqlite and postgres both treat the
// NULL target columns as distinct, so the three indexes don't collide.
type Vote struct {
	ID         int  `gorm:"primaryKey" json:"id"`
	UserID     int  `gorm:"not null;uniqueIndex:idx_votes_user_question;uniqueIndex:idx_votes_user_answer;uniqueIndex:idx_votes_user_comment" json:"user_id"`
	QuestionID *int `gorm:"uniqueIndex:idx_votes_user_question" json:"question_id,omitempty"`
	AnswerID   *int `gorm:"uniqueIndex:idx_votes_user_answer" json:"answer_id,omitempty"`
	CommentID  *int `gorm:"uniqueIndex:idx_votes_user_comment" json:"comment_id,omitempty"`
	// Positive is an upvote, otherwise a downvote
	Positive  bool      `json:"positive"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
