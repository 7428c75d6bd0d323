package store

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/askboard/backend/internal/models"
)

func tableFor(kind models.PostKind) string {
	switch kind {
	case models.KindQuestion:
		return "questions"
	case models.KindAnswer:
		return "answers"
	default:
		return "comments"
	}
}

func targetColumn(kind models.PostKind) string {
	switch kind {
	case models.KindQuestion:
		return "question_id"
	case models.KindAnswer:
		return "answer_id"
	default:
		return "comment_id"
	}
}

// Counters reads the referenced post's vote counters. Returns
// gorm.ErrRecordNotFound when the post doesn't exist.
func (s *Store) Counters(ref models.PostRef) (upvotes, downvotes int, err error) {
	var row struct {
		Upvotes   int
		Downvotes int
	}
	err = s.db.Table(tableFor(ref.Kind)).
		Select("upvotes", "downvotes").
		Where("id = ?", ref.ID).
		Take(&row).Error
	return row.Upvotes, row.Downvotes, err
}

// AdjustCounters applies the given deltas to the referenced post's counters
// as a single atomic SQL update.
func (s *Store) AdjustCounters(ref models.PostRef, dUp, dDown int) error {
	return s.db.Table(tableFor(ref.Kind)).
		Where("id = ?", ref.ID).
		UpdateColumns(map[string]interface{}{
			"upvotes":   gorm.Expr("upvotes + ?", dUp),
			"downvotes": gorm.Expr("downvotes + ?", dDown),
		}).Error
}

// NewVote builds a vote row pointing at the referenced post.
func NewVote(userID int, ref models.PostRef, positive bool) *models.Vote {
	v := &models.Vote{UserID: userID, Positive: positive}
	id := ref.ID
	switch ref.Kind {
	case models.KindQuestion:
		v.QuestionID = &id
	case models.KindAnswer:
		v.AnswerID = &id
	case models.KindComment:
		v.CommentID = &id
	}
	return v
}

// FindVote returns the user's vote on the referenced post, or
// gorm.ErrRecordNotFound when they haven't voted on it.
func (s *Store) FindVote(userID int, ref models.PostRef) (*models.Vote, error) {
	var v models.Vote
	cond := fmt.Sprintf("user_id = ? AND %s = ?", targetColumn(ref.Kind))
	if err := s.db.Where(cond, userID, ref.ID).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Store) CreateVote(v *models.Vote) error {
	return s.db.Create(v).Error
}

// DeleteVote removes the vote row and reports whether it was still there.
// A false return means another transaction got to it first; the caller must
// not touch the counters then.
func (s *Store) DeleteVote(v *models.Vote) (bool, error) {
	res := s.db.Delete(v)
	return res.RowsAffected == 1, res.Error
}

// FlipVote sets the row's direction only if it still holds the opposite one,
// reporting whether the compare-and-swap took.
func (s *Store) FlipVote(v *models.Vote, positive bool) (bool, error) {
	res := s.db.Model(&models.Vote{}).
		Where("id = ? AND positive = ?", v.ID, !positive).
		Update("positive", positive)
	if res.Error == nil && res.RowsAffected == 1 {
		v.Positive = positive
	}
	return res.RowsAffected == 1, res.Error
}

// VoteOnQuestion returns the user's vote on a question, nil when absent.
func (s *Store) VoteOnQuestion(userID, questionID int) (*models.Vote, error) {
	var votes []models.Vote
	err := s.db.Where("user_id = ? AND question_id = ?", userID, questionID).
		Limit(1).Find(&votes).Error
	if err != nil || len(votes) == 0 {
		return nil, err
	}
	return &votes[0], nil
}

// VotesOnAnswers returns the user's votes across the given answers.
func (s *Store) VotesOnAnswers(userID int, answerIDs []int) ([]models.Vote, error) {
	if len(answerIDs) == 0 {
		return nil, nil
	}
	var votes []models.Vote
	err := s.db.Where("user_id = ? AND answer_id IN ?", userID, answerIDs).
		Find(&votes).Error
	return votes, err
}

// VotesOnComments returns the user's votes across the given comments.
func (s *Store) VotesOnComments(userID int, commentIDs []int) ([]models.Vote, error) {
	if len(commentIDs) == 0 {
		return nil, nil
	}
	var votes []models.Vote
	err := s.db.Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Find(&votes).Error
	return votes, err
}
