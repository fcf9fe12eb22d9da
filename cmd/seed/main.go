// Seeds a demo vocabulary into the remote word store so a fresh account can
// play the quiz right away. Input is a JSON array of word cards.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/vocabmaster/api/internal/config"
	"github.com/vocabmaster/api/internal/model"
	"github.com/vocabmaster/api/internal/store"
)

type seedCard struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
	Definition  string `json:"definition"`
	Example1    string `json:"example1"`
	Example2    string `json:"example2"`
}

func main() {
	filePath := flag.String("file", "data/seed_words.json", "Path to seed word file")
	userID := flag.String("user", "", "User ID to own the seeded words")
	flag.Parse()

	if *userID == "" {
		log.Fatal("-user is required")
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("FIREBASE_DATABASE_URL is required")
	}

	cards, err := loadCards(*filePath)
	if err != nil {
		log.Fatalf("Failed to load seed file: %v", err)
	}
	log.Printf("Loaded %d words from %s", len(cards), *filePath)

	wordStore := store.NewFirebaseStore(cfg.DatabaseURL)
	ctx := context.Background()

	inserted := 0
	skipped := 0
	for _, card := range cards {
		_, err := wordStore.AddWord(ctx, model.WordEntry{
			UserID:      *userID,
			Word:        card.Word,
			Translation: card.Translation,
			Definition:  card.Definition,
			Example1:    card.Example1,
			Example2:    card.Example2,
		})
		switch err {
		case nil:
			inserted++
		case store.ErrWordExists:
			skipped++
		default:
			log.Fatalf("Failed to seed %q: %v", card.Word, err)
		}
	}

	log.Printf("Seeding complete. Inserted: %d, skipped: %d", inserted, skipped)
}

func loadCards(path string) ([]seedCard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cards []seedCard
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}
