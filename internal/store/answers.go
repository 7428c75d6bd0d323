package store

import (
	"github.com/askboard/backend/internal/models"
)

func (s *Store) GetAnswer(id int) (*models.Answer, error) {
	var a models.Answer
	if err := s.db.Preload("Owner").First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) CreateAnswer(a *models.Answer) error {
	return s.db.Create(a).Error
}

func (s *Store) SaveAnswer(a *models.Answer) error {
	return s.db.Save(a).Error
}

// OrdinaryAnswers returns a question's answers that are not flagged as the
// best answer, in the given SQL order.
func (s *Store) OrdinaryAnswers(questionID int, order string) ([]models.Answer, error) {
	var answers []models.Answer
	err := s.db.Preload("Owner").
		Where("question_id = ? AND correct_answer = ?", questionID, false).
		Order(order).
		Find(&answers).Error
	return answers, err
}

// BestAnswer returns the question's flagged answer, or nil when none is
// flagged. Should more than one row carry the flag, the most recently
// created wins.
func (s *Store) BestAnswer(questionID int) (*models.Answer, error) {
	var answers []models.Answer
	err := s.db.Preload("Owner").
		Where("question_id = ? AND correct_answer = ?", questionID, true).
		Order("id desc").Limit(1).
		Find(&answers).Error
	if err != nil || len(answers) == 0 {
		return nil, err
	}
	return &answers[0], nil
}
