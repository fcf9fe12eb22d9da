// Package stats aggregates quiz results and vocabulary growth.
package stats

import (
	"sort"

	"github.com/vocabmaster/api/internal/model"
)

// Stats summarizes a user's quiz history. BestScore and AverageScore are
// percentages; with zero games both are 0 and callers key off TotalGames
// instead of dividing anything themselves.
type Stats struct {
	TotalGames   int     `json:"total_games"`
	BestScore    float64 `json:"best_score"`
	AverageScore float64 `json:"average_score"`
}

// Compute folds game results into summary statistics. Safe on empty input.
func Compute(results []model.GameResult) Stats {
	s := Stats{TotalGames: len(results)}
	if len(results) == 0 {
		return s
	}

	var sum float64
	for _, r := range results {
		if r.Percentage > s.BestScore {
			s.BestScore = r.Percentage
		}
		sum += r.Percentage
	}
	s.AverageScore = sum / float64(len(results))
	return s
}

// MonthCount is the number of words added in one calendar month.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// MonthlyProgress groups words by creation month, ascending. Months with no
// additions are omitted, not zero-filled.
func MonthlyProgress(words []model.WordEntry) []MonthCount {
	counts := make(map[string]int)
	for _, w := range words {
		if w.CreatedAt.IsZero() {
			continue
		}
		counts[w.CreatedAt.Month()]++
	}

	progress := make([]MonthCount, 0, len(counts))
	for month, count := range counts {
		progress = append(progress, MonthCount{Month: month, Count: count})
	}
	sort.Slice(progress, func(i, j int) bool {
		return progress[i].Month < progress[j].Month
	})
	return progress
}
