package model

// GameResult is one finished quiz outcome as stored in the game_results
// collection.
type GameResult struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	PlayedAt       Timestamp `json:"played_at"`
}
