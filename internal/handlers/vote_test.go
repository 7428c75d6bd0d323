package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/askboard/backend/internal/middleware"
	"github.com/askboard/backend/internal/models"
	"github.com/askboard/backend/internal/testutil"
)

func newTestRouter(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenDB(t)
	h := NewHandler(db)

	r := gin.New()
	open := r.Group("/api")
	open.Use(middleware.OptionalAuth())
	open.GET("/vote", h.Vote.Vote)
	open.POST("/vote", h.Vote.Vote)
	open.GET("/questions/:id", h.Question.Thread)
	open.POST("/questions/:id", h.Question.Thread)
	return db, r
}

func bearerToken(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := signToken(user)
	require.NoError(t, err)
	return "Bearer " + token
}

func postForm(r *gin.Engine, path string, form url.Values, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVoteUnauthenticatedRedirectsHome(t *testing.T) {
	db, r := newTestRouter(t)
	owner := testutil.CreateUser(t, db, "owner")
	q := testutil.CreateQuestion(t, db, owner, "anonymous vote")

	form := url.Values{"button": {fmt.Sprintf("upvote_%d_question", q.ID)}}
	w := postForm(r, "/api/vote", form, "")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestVoteNonPostRedirectsHome(t *testing.T) {
	db, r := newTestRouter(t)
	user := testutil.CreateUser(t, db, "voter")

	req := httptest.NewRequest(http.MethodGet, "/api/vote", nil)
	req.Header.Set("Authorization", bearerToken(t, user))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestVoteMalformedButton(t *testing.T) {
	db, r := newTestRouter(t)
	user := testutil.CreateUser(t, db, "voter")

	for _, button := range []string{"", "sideways_1_question", "upvote_x_question", "upvote_1_poll"} {
		w := postForm(r, "/api/vote", url.Values{"button": {button}}, bearerToken(t, user))
		assert.Equal(t, http.StatusBadRequest, w.Code, "button %q", button)
	}
}

func TestVoteRoundTrip(t *testing.T) {
	db, r := newTestRouter(t)
	owner := testutil.CreateUser(t, db, "owner")
	voter := testutil.CreateUser(t, db, "voter")
	q := testutil.CreateQuestion(t, db, owner, "votable")

	form := url.Values{"button": {fmt.Sprintf("upvote_%d_question", q.ID)}}
	w := postForm(r, "/api/vote", form, bearerToken(t, voter))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		NewScore  int    `json:"new_score"`
		ElementID string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, 1, body.NewScore)
	assert.Equal(t, fmt.Sprintf("score_%d_question", q.ID), body.ElementID)

	// Same button again cancels
	w = postForm(r, "/api/vote", form, bearerToken(t, voter))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, 0, body.NewScore)
}

func TestVoteMissingTarget(t *testing.T) {
	db, r := newTestRouter(t)
	user := testutil.CreateUser(t, db, "voter")

	w := postForm(r, "/api/vote", url.Values{"button": {"downvote_4242_answer"}}, bearerToken(t, user))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
