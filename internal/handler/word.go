package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vocabmaster/api/internal/cache"
	"github.com/vocabmaster/api/internal/llm"
	"github.com/vocabmaster/api/internal/middleware"
	"github.com/vocabmaster/api/internal/model"
	"github.com/vocabmaster/api/internal/store"
	"github.com/vocabmaster/api/internal/validator"
)

// WordStore is the slice of the remote store the word endpoints need.
type WordStore interface {
	AddWord(ctx context.Context, entry model.WordEntry) (model.WordEntry, error)
	ListWords(ctx context.Context, userID string) ([]model.WordEntry, error)
}

// CardGenerator produces learning content for a word.
type CardGenerator interface {
	GenerateWordCard(ctx context.Context, word string) (*llm.WordCard, error)
}

type WordHandler struct {
	store WordStore
	llm   CardGenerator
	cache *cache.RedisCache
}

func NewWordHandler(wordStore WordStore, generator CardGenerator, redisCache *cache.RedisCache) *WordHandler {
	return &WordHandler{
		store: wordStore,
		llm:   generator,
		cache: redisCache,
	}
}

type GenerateRequest struct {
	Word string `json:"word" binding:"required"`
}

// Generate asks the language model for a card. Generation failures degrade
// to an offline fallback card rather than an error; the user decides whether
// to keep it.
func (h *WordHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word is required"})
		return
	}

	if err := validator.ValidateWord(req.Word); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	card, err := h.llm.GenerateWordCard(c.Request.Context(), req.Word)
	middleware.RecordLLMCall(err == nil, time.Since(start))
	if err != nil {
		log.Printf("Card generation failed for %q: %v", req.Word, err)
		card = llm.FallbackCard(req.Word)
	}

	c.JSON(http.StatusOK, card)
}

type CreateWordRequest struct {
	Word        string `json:"word" binding:"required"`
	Translation string `json:"translation" binding:"required"`
	Definition  string `json:"definition" binding:"required"`
	Example1    string `json:"example1"`
	Example2    string `json:"example2"`
}

// Create persists a card the user accepted.
func (h *WordHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreateWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word, translation and definition are required"})
		return
	}
	if err := validator.ValidateWord(req.Word); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.store.AddWord(c.Request.Context(), model.WordEntry{
		UserID:      userID,
		Word:        req.Word,
		Translation: req.Translation,
		Definition:  req.Definition,
		Example1:    req.Example1,
		Example2:    req.Example2,
	})
	if err == store.ErrWordExists {
		c.JSON(http.StatusConflict, gin.H{"error": "word already exists in your list"})
		return
	}
	if err != nil {
		log.Printf("Failed to save word for user %s: %v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to save word, please retry"})
		return
	}

	// The quiz pool cache is now stale.
	if h.cache != nil {
		if err := h.cache.Delete(c.Request.Context(), poolCacheKey(userID)); err != nil {
			log.Printf("Warning: failed to invalidate pool cache: %v", err)
		}
	}

	c.JSON(http.StatusCreated, entry)
}

// List returns the user's vocabulary, newest first.
func (h *WordHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	words, err := h.store.ListWords(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Failed to list words for user %s: %v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load words, please retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"words": words,
		"count": len(words),
	})
}
