package store

import (
	"strings"

	"gorm.io/gorm"

	"github.com/askboard/backend/internal/models"
)

// IndexEntry is one row of the question index, a question plus the counts
// shown next to it.
type IndexEntry struct {
	Question    models.Question `json:"question"`
	NumAnswers  int64           `json:"num_answers"`
	NumComments int64           `json:"num_comments"`
	NumTags     int64           `json:"num_tags"`
}

// IndexPage is a single page of the question index.
type IndexPage struct {
	Entries        []IndexEntry `json:"entries"`
	Page           int          `json:"page"`
	TotalPages     int          `json:"total_pages"`
	TotalQuestions int64        `json:"total_questions"`
	TotalAnswers   int64        `json:"total_answers"`
}

func (s *Store) GetQuestion(id int) (*models.Question, error) {
	var q models.Question
	if err := s.db.Preload("Owner").Preload("Tags").First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *Store) CreateQuestion(q *models.Question) error {
	return s.db.Create(q).Error
}

func (s *Store) SaveQuestion(q *models.Question) error {
	return s.db.Save(q).Error
}

// IncrementVisits bumps the visit counter without a read-modify-write, so
// concurrent views never lose an increment.
func (s *Store) IncrementVisits(id int) error {
	return s.db.Model(&models.Question{}).Where("id = ?", id).
		UpdateColumn("visits", gorm.Expr("visits + 1")).Error
}

// DeleteQuestion removes a question and everything hanging off it: answers,
// comments on the question or its answers, votes on any of those, and the
// tag associations. Done explicitly in one transaction rather than trusting
// FK cascades, which the sqlite test driver doesn't enforce by default.
func (s *Store) DeleteQuestion(id int) error {
	return s.Transaction(func(tx *Store) error {
		var answerIDs []int
		if err := tx.db.Model(&models.Answer{}).Where("question_id = ?", id).
			Pluck("id", &answerIDs).Error; err != nil {
			return err
		}

		var commentIDs []int
		commentFilter := tx.db.Model(&models.Comment{}).Where("question_id = ?", id)
		if len(answerIDs) > 0 {
			commentFilter = commentFilter.Or("answer_id IN ?", answerIDs)
		}
		if err := commentFilter.Pluck("id", &commentIDs).Error; err != nil {
			return err
		}

		if err := tx.db.Where("question_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if len(answerIDs) > 0 {
			if err := tx.db.Where("answer_id IN ?", answerIDs).Delete(&models.Vote{}).Error; err != nil {
				return err
			}
		}
		if len(commentIDs) > 0 {
			if err := tx.db.Where("comment_id IN ?", commentIDs).Delete(&models.Vote{}).Error; err != nil {
				return err
			}
			if err := tx.db.Delete(&models.Comment{}, commentIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.db.Where("question_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.db.Exec("DELETE FROM question_tags WHERE question_id = ?", id).Error; err != nil {
			return err
		}
		return tx.db.Delete(&models.Question{}, id).Error
	})
}

func (s *Store) CountQuestions() (int64, error) {
	var n int64
	err := s.db.Model(&models.Question{}).Count(&n).Error
	return n, err
}

func (s *Store) CountAnswers() (int64, error) {
	var n int64
	err := s.db.Model(&models.Answer{}).Count(&n).Error
	return n, err
}

// QuestionIndex returns one page of questions, newest first. Any page outside
// the valid range, below as well as past the end, resolves to the last page;
// only a non-numeric page parameter gets the first page, at the handler.
func (s *Store) QuestionIndex(page int) (*IndexPage, error) {
	totalQuestions, err := s.CountQuestions()
	if err != nil {
		return nil, err
	}
	totalAnswers, err := s.CountAnswers()
	if err != nil {
		return nil, err
	}

	totalPages := int((totalQuestions + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 || page > totalPages {
		page = totalPages
	}

	var questions []models.Question
	if err := s.db.Preload("Owner").Preload("Tags").
		Order("creation_date desc").
		Offset((page - 1) * PageSize).Limit(PageSize).
		Find(&questions).Error; err != nil {
		return nil, err
	}

	entries, err := s.annotate(questions)
	if err != nil {
		return nil, err
	}

	return &IndexPage{
		Entries:        entries,
		Page:           page,
		TotalPages:     totalPages,
		TotalQuestions: totalQuestions,
		TotalAnswers:   totalAnswers,
	}, nil
}

// QuestionsByTag returns every question carrying the given tag label, newest
// first and unpaginated.
func (s *Store) QuestionsByTag(label string) ([]IndexEntry, error) {
	var questions []models.Question
	err := s.db.Preload("Owner").Preload("Tags").
		Joins("JOIN question_tags ON question_tags.question_id = questions.id").
		Joins("JOIN tags ON tags.id = question_tags.tag_id").
		Where("tags.label = ?", label).
		Order("creation_date desc").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return s.annotate(questions)
}

func (s *Store) annotate(questions []models.Question) ([]IndexEntry, error) {
	entries := make([]IndexEntry, 0, len(questions))
	for _, q := range questions {
		var numAnswers, numComments int64
		if err := s.db.Model(&models.Answer{}).Where("question_id = ?", q.ID).
			Count(&numAnswers).Error; err != nil {
			return nil, err
		}
		if err := s.db.Model(&models.Comment{}).Where("question_id = ?", q.ID).
			Count(&numComments).Error; err != nil {
			return nil, err
		}
		entries = append(entries, IndexEntry{
			Question:    q,
			NumAnswers:  numAnswers,
			NumComments: numComments,
			NumTags:     int64(len(q.Tags)),
		})
	}
	return entries, nil
}

// AddTags attaches labels to a question, creating tags as needed. Blank
// labels are skipped so a tagless submission stays tagless.
func (s *Store) AddTags(q *models.Question, labels []string) error {
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		var tag models.Tag
		if err := s.db.Where(models.Tag{Label: label}).FirstOrCreate(&tag).Error; err != nil {
			return err
		}
		if err := s.db.Model(q).Association("Tags").Append(&tag); err != nil {
			return err
		}
	}
	return nil
}

// TagsInUse lists every tag attached to at least one question, most recently
// created first.
func (s *Store) TagsInUse() ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.Distinct("tags.*").
		Joins("JOIN question_tags ON question_tags.tag_id = tags.id").
		Order("tags.id desc").
		Find(&tags).Error
	return tags, err
}
