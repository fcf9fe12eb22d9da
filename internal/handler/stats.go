package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vocabmaster/api/internal/middleware"
	"github.com/vocabmaster/api/internal/model"
	"github.com/vocabmaster/api/internal/stats"
)

// ResultSource reads a user's game history.
type ResultSource interface {
	ListGameResults(ctx context.Context, userID string) ([]model.GameResult, error)
}

type StatsHandler struct {
	words   WordStore
	results ResultSource
}

func NewStatsHandler(words WordStore, results ResultSource) *StatsHandler {
	return &StatsHandler{words: words, results: results}
}

// Get returns the learning overview for the authenticated user: word count,
// game statistics and monthly vocabulary growth.
func (h *StatsHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	words, err := h.words.ListWords(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Failed to list words for user %s: %v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load statistics, please retry"})
		return
	}

	results, err := h.results.ListGameResults(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Failed to list game results for user %s: %v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load statistics, please retry"})
		return
	}

	gameStats := stats.Compute(results)
	c.JSON(http.StatusOK, gin.H{
		"total_words":      len(words),
		"total_games":      gameStats.TotalGames,
		"best_score":       gameStats.BestScore,
		"average_score":    gameStats.AverageScore,
		"monthly_progress": stats.MonthlyProgress(words),
	})
}
