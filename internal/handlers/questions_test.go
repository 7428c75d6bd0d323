package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askboard/backend/internal/thread"
	"github.com/askboard/backend/internal/testutil"
)

func decodeThread(t *testing.T, w *httptest.ResponseRecorder) thread.View {
	t.Helper()
	var view thread.View
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	return view
}

func TestThreadNotFound(t *testing.T) {
	_, r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/questions/424242", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestThreadAnonymousRead(t *testing.T) {
	db, r := newTestRouter(t)
	owner := testutil.CreateUser(t, db, "owner")
	q := testutil.CreateQuestion(t, db, owner, "readable")

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/questions/%d", q.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	view := decodeThread(t, w)
	assert.Equal(t, q.ID, view.Question.ID)
	assert.Equal(t, thread.SortHighestScore, view.SortMode)
	assert.Equal(t, 0, view.Question.Visits, "anonymous reads don't count as visits")
}

func TestThreadPostFormDrivesMutation(t *testing.T) {
	db, r := newTestRouter(t)
	owner := testutil.CreateUser(t, db, "owner")
	q := testutil.CreateQuestion(t, db, owner, "mutable")

	// Answer the question through the form
	form := url.Values{
		"answer_form": {"1"},
		"content":     {"an answer via form"},
	}
	w := postForm(r, fmt.Sprintf("/api/questions/%d", q.ID), form, bearerToken(t, owner))
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeThread(t, w)
	require.Len(t, view.Answers, 1)
	answerID := view.Answers[0].ID

	// Comment on that answer
	form = url.Values{
		fmt.Sprintf("comment_form_answer_%d", answerID): {"1"},
		"content": {"a comment via form"},
	}
	w = postForm(r, fmt.Sprintf("/api/questions/%d", q.ID), form, bearerToken(t, owner))
	require.Equal(t, http.StatusOK, w.Code)
	view = decodeThread(t, w)
	require.Len(t, view.AnswerComments, 1)
	assert.Equal(t, "a comment via form", view.AnswerComments[0].Content)

	// Select it as best answer
	form = url.Values{fmt.Sprintf("select_%d", answerID): {"1"}}
	w = postForm(r, fmt.Sprintf("/api/questions/%d", q.ID), form, bearerToken(t, owner))
	require.Equal(t, http.StatusOK, w.Code)
	view = decodeThread(t, w)
	require.NotNil(t, view.BestAnswer)
	assert.Equal(t, answerID, view.BestAnswer.ID)
	assert.Empty(t, view.Answers, "selected answer leaves the ordinary list")
}

func TestThreadSortParameter(t *testing.T) {
	db, r := newTestRouter(t)
	owner := testutil.CreateUser(t, db, "owner")
	q := testutil.CreateQuestion(t, db, owner, "sorted")

	form := url.Values{"sort_by_form_select": {thread.SortLeastRecent}}
	w := postForm(r, fmt.Sprintf("/api/questions/%d", q.ID), form, bearerToken(t, owner))
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeThread(t, w)
	assert.Equal(t, thread.SortLeastRecent, view.SortMode)
}

func TestThreadAuthenticatedViewCountsVisit(t *testing.T) {
	db, r := newTestRouter(t)
	owner := testutil.CreateUser(t, db, "owner")
	q := testutil.CreateQuestion(t, db, owner, "counted")

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/questions/%d", q.ID), nil)
	req.Header.Set("Authorization", bearerToken(t, owner))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	view := decodeThread(t, w)
	assert.Equal(t, 1, view.Question.Visits)
}
