// Package votes owns the vote-toggle state machine and is the only writer of
// the upvote/downvote counters on posts.
package votes

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/askboard/backend/internal/models"
	"github.com/askboard/backend/internal/store"
)

// Direction of a vote request.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Result is what the voting client needs to refresh the score in place.
type Result struct {
	NewScore  int    `json:"new_score"`
	ElementID string `json:"id"`
}

type Ledger struct {
	store *store.Store
}

func NewLedger(s *store.Store) *Ledger {
	return &Ledger{store: s}
}

// Apply runs one vote action by userID against the referenced post and
// returns the post's score afterwards.
//
// The state machine over the user's existing vote on the target:
//   - no vote yet: create one, bump the matching counter
//   - same direction again: cancel, delete the vote and undo the counter
//   - opposite direction: flip the vote, move both counters (score shifts
//     by two)
//
// Everything happens inside a single transaction, with counters mutated by
// atomic SQL increments. Cancel and flip write the vote row guarded by a
// rows-affected check, so two transactions racing over the same row adjust
// the counters exactly once between them; the unique vote index does the
// same for racing first votes. A missing target returns
// gorm.ErrRecordNotFound with no writes.
func (l *Ledger) Apply(userID int, ref models.PostRef, dir Direction) (*Result, error) {
	positive := dir == Up
	var result *Result

	err := l.store.Transaction(func(tx *store.Store) error {
		if _, _, err := tx.Counters(ref); err != nil {
			return fmt.Errorf("vote target %s %d: %w", ref.Kind, ref.ID, err)
		}

		existing, err := tx.FindVote(userID, ref)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// First vote on this post
			if err := tx.CreateVote(store.NewVote(userID, ref, positive)); err != nil {
				return err
			}
			if err := adjust(tx, ref, positive, 1); err != nil {
				return err
			}
		case err != nil:
			return err
		case existing.Positive == positive:
			// Same button again cancels the vote. The guarded delete keeps a
			// concurrent duplicate cancel from decrementing the counter twice.
			deleted, err := tx.DeleteVote(existing)
			if err != nil {
				return err
			}
			if deleted {
				if err := adjust(tx, ref, positive, -1); err != nil {
					return err
				}
			}
		default:
			// Direction change, compare-and-swap on the stale direction
			flipped, err := tx.FlipVote(existing, positive)
			if err != nil {
				return err
			}
			if flipped {
				if positive {
					if err := tx.AdjustCounters(ref, 1, -1); err != nil {
						return err
					}
				} else {
					if err := tx.AdjustCounters(ref, -1, 1); err != nil {
						return err
					}
				}
			}
		}

		up, down, err := tx.Counters(ref)
		if err != nil {
			return err
		}
		result = &Result{NewScore: up - down, ElementID: ref.ElementID()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func adjust(tx *store.Store, ref models.PostRef, positive bool, delta int) error {
	if positive {
		return tx.AdjustCounters(ref, delta, 0)
	}
	return tx.AdjustCounters(ref, 0, delta)
}
