package votes

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/askboard/backend/internal/models"
	"github.com/askboard/backend/internal/store"
	"github.com/askboard/backend/internal/testutil"
)

func setup(t *testing.T) (*gorm.DB, *Ledger) {
	db := testutil.OpenDB(t)
	return db, NewLedger(store.New(db))
}

func countVotes(t *testing.T, db *gorm.DB, userID int, ref models.PostRef) int64 {
	t.Helper()
	var n int64
	column := map[models.PostKind]string{
		models.KindQuestion: "question_id",
		models.KindAnswer:   "answer_id",
		models.KindComment:  "comment_id",
	}[ref.Kind]
	require.NoError(t, db.Model(&models.Vote{}).
		Where("user_id = ? AND "+column+" = ?", userID, ref.ID).
		Count(&n).Error)
	return n
}

func questionCounters(t *testing.T, db *gorm.DB, id int) (int, int) {
	t.Helper()
	var q models.Question
	require.NoError(t, db.First(&q, id).Error)
	return q.Upvotes, q.Downvotes
}

func TestApplyFirstVote(t *testing.T) {
	db, ledger := setup(t)
	user := testutil.CreateUser(t, db, "voter")
	q := testutil.CreateQuestion(t, db, user, "first vote")
	ref := models.PostRef{Kind: models.KindQuestion, ID: q.ID}

	result, err := ledger.Apply(user.ID, ref, Up)
	require.NoError(t, err)
	assert.Equal(t, 1, result.NewScore)
	assert.Equal(t, fmt.Sprintf("score_%d_question", q.ID), result.ElementID)

	up, down := questionCounters(t, db, q.ID)
	assert.Equal(t, 1, up)
	assert.Equal(t, 0, down)
	assert.EqualValues(t, 1, countVotes(t, db, user.ID, ref))
}

func TestApplySameDirectionCancels(t *testing.T) {
	db, ledger := setup(t)
	user := testutil.CreateUser(t, db, "voter")
	q := testutil.CreateQuestion(t, db, user, "toggle")
	ref := models.PostRef{Kind: models.KindQuestion, ID: q.ID}

	_, err := ledger.Apply(user.ID, ref, Up)
	require.NoError(t, err)

	result, err := ledger.Apply(user.ID, ref, Up)
	require.NoError(t, err)
	assert.Equal(t, 0, result.NewScore, "upvote then upvote returns to pre-vote score")

	up, down := questionCounters(t, db, q.ID)
	assert.Equal(t, 0, up)
	assert.Equal(t, 0, down)
	assert.EqualValues(t, 0, countVotes(t, db, user.ID, ref), "cancelled vote row is deleted")
}

func TestApplyOppositeDirectionFlips(t *testing.T) {
	db, ledger := setup(t)
	user := testutil.CreateUser(t, db, "voter")
	q := testutil.CreateQuestion(t, db, user, "flip")
	ref := models.PostRef{Kind: models.KindQuestion, ID: q.ID}

	first, err := ledger.Apply(user.ID, ref, Up)
	require.NoError(t, err)
	assert.Equal(t, 1, first.NewScore)

	second, err := ledger.Apply(user.ID, ref, Down)
	require.NoError(t, err)
	assert.Equal(t, -1, second.NewScore, "flip moves the score by two")

	up, down := questionCounters(t, db, q.ID)
	assert.Equal(t, 0, up)
	assert.Equal(t, 1, down)
	assert.EqualValues(t, 1, countVotes(t, db, user.ID, ref), "flip mutates the existing row")
}

func TestAtMostOneVotePerUserAndPost(t *testing.T) {
	db, ledger := setup(t)
	user := testutil.CreateUser(t, db, "voter")
	q := testutil.CreateQuestion(t, db, user, "sequence")
	ref := models.PostRef{Kind: models.KindQuestion, ID: q.ID}

	sequence := []Direction{Up, Down, Down, Up, Up, Down}
	for _, dir := range sequence {
		_, err := ledger.Apply(user.ID, ref, dir)
		require.NoError(t, err)
	}

	n := countVotes(t, db, user.ID, ref)
	assert.LessOrEqual(t, n, int64(1))

	// Score invariant holds after the whole sequence
	var fresh models.Question
	require.NoError(t, db.First(&fresh, q.ID).Error)
	assert.Equal(t, fresh.Upvotes-fresh.Downvotes, fresh.Score())
	assert.GreaterOrEqual(t, fresh.Upvotes, 0)
	assert.GreaterOrEqual(t, fresh.Downvotes, 0)
}

func TestApplyOnAnswerAndComment(t *testing.T) {
	db, ledger := setup(t)
	user := testutil.CreateUser(t, db, "voter")
	q := testutil.CreateQuestion(t, db, user, "targets")
	answer := testutil.CreateAnswer(t, db, q, user, "an answer", q.CreationDate, 0, 0)
	comment := models.Comment{Content: "a comment", OwnerID: &user.ID, QuestionID: &q.ID}
	require.NoError(t, db.Create(&comment).Error)

	answerRef := models.PostRef{Kind: models.KindAnswer, ID: answer.ID}
	result, err := ledger.Apply(user.ID, answerRef, Down)
	require.NoError(t, err)
	assert.Equal(t, -1, result.NewScore)
	assert.Equal(t, fmt.Sprintf("score_%d_answer", answer.ID), result.ElementID)

	commentRef := models.PostRef{Kind: models.KindComment, ID: comment.ID}
	result, err = ledger.Apply(user.ID, commentRef, Up)
	require.NoError(t, err)
	assert.Equal(t, 1, result.NewScore)

	// Votes on different targets don't collide
	assert.EqualValues(t, 1, countVotes(t, db, user.ID, answerRef))
	assert.EqualValues(t, 1, countVotes(t, db, user.ID, commentRef))
}

func TestApplyMissingTarget(t *testing.T) {
	db, ledger := setup(t)
	user := testutil.CreateUser(t, db, "voter")

	_, err := ledger.Apply(user.ID, models.PostRef{Kind: models.KindQuestion, ID: 9999}, Up)
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var n int64
	require.NoError(t, db.Model(&models.Vote{}).Count(&n).Error)
	assert.EqualValues(t, 0, n, "failed vote leaves no rows behind")
}

func TestGuardedWritesSkipStaleRows(t *testing.T) {
	db, ledger := setup(t)
	user := testutil.CreateUser(t, db, "voter")
	q := testutil.CreateQuestion(t, db, user, "stale row")
	ref := models.PostRef{Kind: models.KindQuestion, ID: q.ID}

	_, err := ledger.Apply(user.ID, ref, Up)
	require.NoError(t, err)

	s := store.New(db)
	vote, err := s.FindVote(user.ID, ref)
	require.NoError(t, err)

	// Flipping to the direction the row already holds fails the
	// compare-and-swap
	flipped, err := s.FlipVote(vote, true)
	require.NoError(t, err)
	assert.False(t, flipped)

	// First delete wins, the duplicate reports the row gone
	deleted, err := s.DeleteVote(vote)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteVote(vote)
	require.NoError(t, err)
	assert.False(t, deleted, "second delete of the same row must not succeed")

	flipped, err = s.FlipVote(vote, false)
	require.NoError(t, err)
	assert.False(t, flipped, "flip of a deleted row must not succeed")

	// None of the failed writes touched the counters
	up, down := questionCounters(t, db, q.ID)
	assert.Equal(t, 1, up)
	assert.Equal(t, 0, down)
}

// TestConcurrentVotersSettleCounters runs many voters against one question at
// once and checks the counters land on the exact totals. sqlite allows a
// single writer, so the pool is pinned to one connection; the transactions
// still interleave between Apply calls.
func TestConcurrentVotersSettleCounters(t *testing.T) {
	db, ledger := setup(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	owner := testutil.CreateUser(t, db, "owner")
	q := testutil.CreateQuestion(t, db, owner, "contested")
	ref := models.PostRef{Kind: models.KindQuestion, ID: q.ID}

	const numVoters = 10
	voters := make([]*models.User, numVoters)
	for i := range voters {
		voters[i] = testutil.CreateUser(t, db, fmt.Sprintf("voter%d", i))
	}

	vote := func(dir Direction) {
		var wg sync.WaitGroup
		for _, voter := range voters {
			wg.Add(1)
			go func(userID int) {
				defer wg.Done()
				_, err := ledger.Apply(userID, ref, dir)
				assert.NoError(t, err)
			}(voter.ID)
		}
		wg.Wait()
	}

	vote(Up)

	up, down := questionCounters(t, db, q.ID)
	assert.Equal(t, numVoters, up)
	assert.Equal(t, 0, down)
	var rows int64
	require.NoError(t, db.Model(&models.Vote{}).Count(&rows).Error)
	assert.EqualValues(t, numVoters, rows)

	// Everyone presses the same button again, cancelling in parallel
	vote(Up)

	up, down = questionCounters(t, db, q.ID)
	assert.Equal(t, 0, up)
	assert.Equal(t, 0, down)
	require.NoError(t, db.Model(&models.Vote{}).Count(&rows).Error)
	assert.EqualValues(t, 0, rows)
}

func TestVoteScenarioTwoUsers(t *testing.T) {
	db, ledger := setup(t)
	owner := testutil.CreateUser(t, db, "owner")
	other := testutil.CreateUser(t, db, "other")
	q := testutil.CreateQuestion(t, db, owner, "scenario")
	ref := models.PostRef{Kind: models.KindQuestion, ID: q.ID}

	result, err := ledger.Apply(owner.ID, ref, Up)
	require.NoError(t, err)
	assert.Equal(t, 1, result.NewScore)

	result, err = ledger.Apply(owner.ID, ref, Up)
	require.NoError(t, err)
	assert.Equal(t, 0, result.NewScore)

	result, err = ledger.Apply(other.ID, ref, Down)
	require.NoError(t, err)
	assert.Equal(t, -1, result.NewScore)
}
