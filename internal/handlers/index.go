package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/askboard/backend/internal/pagination"
	"github.com/askboard/backend/internal/store"
)

type IndexHandler struct {
	store *store.Store
}

func NewIndexHandler(s *store.Store) *IndexHandler {
	return &IndexHandler{store: s}
}

// QuestionIndex returns one page of questions plus the pagination window.
// A missing or non-integer question_page resolves to page 1; any
// out-of-range number, zero and negatives included, resolves to the last
// page.
func (h *IndexHandler) QuestionIndex(c *gin.Context) {
	page, err := strconv.Atoi(c.Query("question_page"))
	if err != nil {
		page = 1
	}

	idx, err := h.store.QuestionIndex(page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	tags, err := h.store.TagsInUse()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}

	window, paginated := pagination.Compute(idx.TotalPages, idx.Page)

	c.JSON(http.StatusOK, gin.H{
		"questions":          idx.Entries,
		"page":               idx.Page,
		"total_pages":        idx.TotalPages,
		"total_question_num": idx.TotalQuestions,
		"total_answer_num":   idx.TotalAnswers,
		"is_paginated":       paginated,
		"pagination":         window,
		"tags":               tags,
	})
}

// QuestionsByTag returns every question under one tag, unpaginated.
func (h *IndexHandler) QuestionsByTag(c *gin.Context) {
	label := c.Param("tag")

	entries, err := h.store.QuestionsByTag(label)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	totalQuestions, err := h.store.CountQuestions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}
	totalAnswers, err := h.store.CountAnswers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tag":                label,
		"questions":          entries,
		"total_question_num": totalQuestions,
		"total_answer_num":   totalAnswers,
	})
}
