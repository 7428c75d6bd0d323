package store

import (
	"github.com/askboard/backend/internal/models"
)

// CreateComment persists a comment after checking it has exactly one parent.
func (s *Store) CreateComment(c *models.Comment) error {
	if (c.QuestionID == nil) == (c.AnswerID == nil) {
		return ErrCommentParent
	}
	return s.db.Create(c).Error
}

// QuestionComments returns the comments attached directly to a question.
func (s *Store) QuestionComments(questionID int) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("Owner").
		Where("question_id = ?", questionID).
		Order("creation_date asc").
		Find(&comments).Error
	return comments, err
}

// AnswerComments returns the comments attached to any answer of the question.
func (s *Store) AnswerComments(questionID int) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("Owner").
		Joins("JOIN answers ON answers.id = comments.answer_id").
		Where("answers.question_id = ?", questionID).
		Order("comments.creation_date asc").
		Find(&comments).Error
	return comments, err
}
