package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/askboard/backend/internal/models"
	"github.com/askboard/backend/internal/store"
	"github.com/askboard/backend/internal/thread"
)

type QuestionHandler struct {
	db        *gorm.DB
	store     *store.Store
	assembler *thread.Assembler
}

func NewQuestionHandler(db *gorm.DB, s *store.Store) *QuestionHandler {
	return &QuestionHandler{db: db, store: s, assembler: thread.NewAssembler(s)}
}

// Thread serves a question's thread. A POST may carry one mutation (new
// answer, best-answer select/deselect, new comment) through its form keys,
// and either method may request an answer ordering.
func (h *QuestionHandler) Thread(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	viewer := currentUser(c, h.db)

	var actions thread.Actions
	sortMode := c.Query("sort_by_form_select")

	if c.Request.Method == http.MethodPost {
		if err := c.Request.ParseForm(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed form data"})
			return
		}
		form := c.Request.PostForm
		content := form.Get("content")

		if _, ok := form["answer_form"]; ok {
			actions.AnswerContent = content
		}
		if _, ok := form["deselect"]; ok {
			actions.Deselect = true
		}
		if _, ok := form["comment_form_question"]; ok {
			actions.CommentOnQuestion = true
			actions.CommentContent = content
		}
		for key := range form {
			if rest, found := strings.CutPrefix(key, "select_"); found {
				if id, err := strconv.Atoi(rest); err == nil {
					actions.SelectAnswerID = id
				}
			}
			if rest, found := strings.CutPrefix(key, "comment_form_answer_"); found {
				if id, err := strconv.Atoi(rest); err == nil {
					actions.CommentAnswerID = id
					actions.CommentContent = content
				}
			}
		}
		if v := form.Get("sort_by_form_select"); v != "" {
			sortMode = v
		}
	}

	view, err := h.assembler.Assemble(questionID, viewer, sortMode, actions)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load thread"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// CreateQuestion creates a new question (PROTECTED - requires authentication)
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var input models.CreateQuestionRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	question := models.Question{
		Title:   input.Title,
		Content: input.Content,
		OwnerID: &userID,
	}
	if err := h.store.CreateQuestion(&question); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	// A question may be submitted with no tags at all
	if input.Tags != "" {
		if err := h.store.AddTags(&question, strings.Split(input.Tags, ";")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to tag question"})
			return
		}
	}

	created, err := h.store.GetQuestion(question.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load question"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// EditQuestion updates a question's title and content (owner only)
func (h *QuestionHandler) EditQuestion(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.EditQuestionRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.store.GetQuestion(questionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	if question.OwnerID == nil || *question.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own questions"})
		return
	}

	question.Title = input.Title
	question.Content = input.Content
	if err := h.store.SaveQuestion(question); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update question"})
		return
	}

	c.JSON(http.StatusOK, question)
}

// DeleteQuestion removes a question and all its answers, comments and votes
// (owner only)
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	question, err := h.store.GetQuestion(questionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	if question.OwnerID == nil || *question.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own questions"})
		return
	}

	if err := h.store.DeleteQuestion(question.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}

// EditAnswer updates an answer's content (owner only)
func (h *QuestionHandler) EditAnswer(c *gin.Context) {
	answerID, err := strconv.Atoi(c.Param("answerId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
		return
	}

	userID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Content string `form:"content" json:"content" binding:"required"`
	}
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.store.GetAnswer(answerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
		return
	}

	if answer.OwnerID == nil || *answer.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own answers"})
		return
	}

	answer.Content = input.Content
	if err := h.store.SaveAnswer(answer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update answer"})
		return
	}

	c.JSON(http.StatusOK, answer)
}
