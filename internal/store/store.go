// Package store is the data access layer over question, answer, comment and
// vote rows. Handlers and the thread/vote packages never touch gorm query
// building outside of it.
package store

import (
	"errors"

	"gorm.io/gorm"
)

// PageSize is the number of questions per index page.
const PageSize = 10

// ErrCommentParent is returned when a comment is created with zero or two
// parents instead of exactly one.
var ErrCommentParent = errors.New("comment must reference exactly one of question or answer")

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn against a transaction-scoped store. Either every write
// inside fn commits or none do.
func (s *Store) Transaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
