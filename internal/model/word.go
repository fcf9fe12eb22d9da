package model

// WordEntry is a vocabulary item as stored in the remote words collection.
// Field names match the existing store documents exactly.
type WordEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Word        string    `json:"word"`
	Translation string    `json:"translation"`
	Definition  string    `json:"definition"`
	Example1    string    `json:"example1"`
	Example2    string    `json:"example2"`
	CreatedAt   Timestamp `json:"created_at"`
}
