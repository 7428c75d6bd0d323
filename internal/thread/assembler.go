// Package thread builds the ordered view-model for a question's thread:
// answers, best answer, comments and the viewer's vote indicators.
package thread

import (
	"strings"

	"github.com/askboard/backend/internal/models"
	"github.com/askboard/backend/internal/store"
)

// Sort modes accepted for the answer list.
const (
	SortHighestScore = "highestScore"
	SortLowestScore  = "lowestScore"
	SortMostRecent   = "mostRecent"
	SortLeastRecent  = "leastRecent"
)

// Actions carries at most one pending mutation for the thread. When several
// fields are set, only the highest-priority one runs: new answer, then
// best-answer deselect, then select, then answer comment, then question
// comment.
type Actions struct {
	AnswerContent     string
	Deselect          bool
	SelectAnswerID    int
	CommentAnswerID   int
	CommentOnQuestion bool
	CommentContent    string
}

// VoteIndicators drives the highlighted up/down buttons for the viewer.
type VoteIndicators struct {
	QuestionUp   bool  `json:"question_up"`
	QuestionDown bool  `json:"question_down"`
	AnswerUp     []int `json:"answer_up"`
	AnswerDown   []int `json:"answer_down"`
	CommentUp    []int `json:"comment_up"`
	CommentDown  []int `json:"comment_down"`
}

// View is the assembled thread.
type View struct {
	Question         *models.Question `json:"question"`
	Answers          []models.Answer  `json:"answers"`
	BestAnswer       *models.Answer   `json:"best_answer,omitempty"`
	QuestionComments []models.Comment `json:"question_comments"`
	AnswerComments   []models.Comment `json:"answer_comments"`
	SortMode         string           `json:"sort_mode"`
	Indicators       VoteIndicators   `json:"indicators"`
}

type Assembler struct {
	store *store.Store
}

func NewAssembler(s *store.Store) *Assembler {
	return &Assembler{store: s}
}

// Assemble applies the pending mutation, then builds the thread view for the
// given viewer (nil for anonymous). Authenticated views bump the question's
// visit counter by exactly one.
func (a *Assembler) Assemble(questionID int, viewer *models.User, sortMode string, actions Actions) (*View, error) {
	q, err := a.store.GetQuestion(questionID)
	if err != nil {
		return nil, err
	}

	if err := a.applyAction(q, viewer, actions); err != nil {
		return nil, err
	}

	answers, err := a.store.OrdinaryAnswers(q.ID, orderClause(sortMode))
	if err != nil {
		return nil, err
	}
	best, err := a.store.BestAnswer(q.ID)
	if err != nil {
		return nil, err
	}
	questionComments, err := a.store.QuestionComments(q.ID)
	if err != nil {
		return nil, err
	}
	answerComments, err := a.store.AnswerComments(q.ID)
	if err != nil {
		return nil, err
	}

	view := &View{
		Question:         q,
		Answers:          answers,
		BestAnswer:       best,
		QuestionComments: questionComments,
		AnswerComments:   answerComments,
		SortMode:         effectiveSortMode(sortMode),
	}

	if viewer != nil {
		if view.Indicators, err = a.indicators(viewer.ID, q.ID, answers, best, questionComments, answerComments); err != nil {
			return nil, err
		}
		if err := a.store.IncrementVisits(q.ID); err != nil {
			return nil, err
		}
		q.Visits++
	}

	return view, nil
}

// applyAction runs the single highest-priority mutation. Best-answer actions
// by anyone but the question's owner fall through silently; a lower-priority
// action in the same submission then gets its turn.
func (a *Assembler) applyAction(q *models.Question, viewer *models.User, actions Actions) error {
	if viewer == nil {
		return nil
	}

	switch {
	case strings.TrimSpace(actions.AnswerContent) != "":
		return a.store.CreateAnswer(&models.Answer{
			Content:    actions.AnswerContent,
			OwnerID:    &viewer.ID,
			QuestionID: q.ID,
		})

	case actions.Deselect && isOwner(q, viewer):
		return a.store.Transaction(func(tx *store.Store) error {
			best, err := tx.BestAnswer(q.ID)
			if err != nil || best == nil {
				return err
			}
			best.CorrectAnswer = false
			return tx.SaveAnswer(best)
		})

	case actions.SelectAnswerID != 0 && isOwner(q, viewer):
		// Deliberately does not clear a previously flagged answer; callers
		// deselect before selecting. BestAnswer resolves a double flag to
		// the newest row.
		return a.store.Transaction(func(tx *store.Store) error {
			answer, err := tx.GetAnswer(actions.SelectAnswerID)
			if err != nil {
				return err
			}
			answer.CorrectAnswer = true
			return tx.SaveAnswer(answer)
		})

	case actions.CommentAnswerID != 0 && strings.TrimSpace(actions.CommentContent) != "":
		answer, err := a.store.GetAnswer(actions.CommentAnswerID)
		if err != nil {
			return err
		}
		return a.store.CreateComment(&models.Comment{
			Content:  actions.CommentContent,
			OwnerID:  &viewer.ID,
			AnswerID: &answer.ID,
		})

	case actions.CommentOnQuestion && strings.TrimSpace(actions.CommentContent) != "":
		return a.store.CreateComment(&models.Comment{
			Content:    actions.CommentContent,
			OwnerID:    &viewer.ID,
			QuestionID: &q.ID,
		})
	}
	return nil
}

func (a *Assembler) indicators(viewerID, questionID int, answers []models.Answer, best *models.Answer, questionComments, answerComments []models.Comment) (VoteIndicators, error) {
	ind := VoteIndicators{
		AnswerUp:    []int{},
		AnswerDown:  []int{},
		CommentUp:   []int{},
		CommentDown: []int{},
	}

	qVote, err := a.store.VoteOnQuestion(viewerID, questionID)
	if err != nil {
		return ind, err
	}
	if qVote != nil {
		ind.QuestionUp = qVote.Positive
		ind.QuestionDown = !qVote.Positive
	}

	answerIDs := make([]int, 0, len(answers)+1)
	for _, ans := range answers {
		answerIDs = append(answerIDs, ans.ID)
	}
	if best != nil {
		answerIDs = append(answerIDs, best.ID)
	}
	answerVotes, err := a.store.VotesOnAnswers(viewerID, answerIDs)
	if err != nil {
		return ind, err
	}
	for _, v := range answerVotes {
		if v.Positive {
			ind.AnswerUp = append(ind.AnswerUp, *v.AnswerID)
		} else {
			ind.AnswerDown = append(ind.AnswerDown, *v.AnswerID)
		}
	}

	commentIDs := make([]int, 0, len(questionComments)+len(answerComments))
	for _, c := range questionComments {
		commentIDs = append(commentIDs, c.ID)
	}
	for _, c := range answerComments {
		commentIDs = append(commentIDs, c.ID)
	}
	commentVotes, err := a.store.VotesOnComments(viewerID, commentIDs)
	if err != nil {
		return ind, err
	}
	for _, v := range commentVotes {
		if v.Positive {
			ind.CommentUp = append(ind.CommentUp, *v.CommentID)
		} else {
			ind.CommentDown = append(ind.CommentDown, *v.CommentID)
		}
	}

	return ind, nil
}

func isOwner(q *models.Question, viewer *models.User) bool {
	return q.OwnerID != nil && viewer != nil && *q.OwnerID == viewer.ID
}

// orderClause maps a sort mode to its SQL order. An absent mode means the
// highest-score default; any other unrecognized value falls through to
// most-recent, not to the default.
func orderClause(sortMode string) string {
	switch sortMode {
	case "", SortHighestScore:
		return "(upvotes - downvotes) desc"
	case SortLowestScore:
		return "(upvotes - downvotes) asc"
	case SortLeastRecent:
		return "creation_date asc"
	default:
		return "creation_date desc"
	}
}

// effectiveSortMode echoes the requested mode back to the client, defaulting
// only the absent case.
func effectiveSortMode(sortMode string) string {
	if sortMode == "" {
		return SortHighestScore
	}
	return sortMode
}
