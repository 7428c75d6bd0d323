package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/askboard/backend/internal/models"
	"github.com/askboard/backend/internal/votes"
)

type VoteHandler struct {
	ledger *votes.Ledger
}

func NewVoteHandler(ledger *votes.Ledger) *VoteHandler {
	return &VoteHandler{ledger: ledger}
}

// parseButton decodes the voting widget's button name, e.g.
// "upvote_12_question" or "downvote_7_comment".
func parseButton(button string) (models.PostRef, votes.Direction, bool) {
	parts := strings.SplitN(button, "_", 3)
	if len(parts) != 3 {
		return models.PostRef{}, "", false
	}

	var dir votes.Direction
	switch parts[0] {
	case "upvote":
		dir = votes.Up
	case "downvote":
		dir = votes.Down
	default:
		return models.PostRef{}, "", false
	}

	id, err := strconv.Atoi(parts[1])
	if err != nil {
		return models.PostRef{}, "", false
	}

	kind, ok := models.ParsePostKind(parts[2])
	if !ok {
		return models.PostRef{}, "", false
	}

	return models.PostRef{Kind: kind, ID: id}, dir, true
}

// Vote applies one vote action for the authenticated user and returns the
// target's new score. Unauthenticated or non-POST access redirects home
// instead of erroring, matching the voting widget's contract.
func (h *VoteHandler) Vote(c *gin.Context) {
	userID, ok := extractUserID(c)
	if c.Request.Method != http.MethodPost || !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	ref, dir, ok := parseButton(c.PostForm("button"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed vote button"})
		return
	}

	result, err := h.ledger.Apply(userID, ref, dir)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to vote"})
		return
	}

	c.JSON(http.StatusOK, result)
}
