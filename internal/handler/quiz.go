package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vocabmaster/api/internal/cache"
	"github.com/vocabmaster/api/internal/middleware"
	"github.com/vocabmaster/api/internal/model"
	"github.com/vocabmaster/api/internal/quiz"
)

const poolCacheTTL = time.Minute

func poolCacheKey(userID string) string {
	return "pool:" + userID
}

// ResultSink persists finished game results.
type ResultSink interface {
	SaveGameResult(ctx context.Context, result model.GameResult) (model.GameResult, error)
}

type QuizHandler struct {
	words    WordStore
	results  ResultSink
	sessions *quiz.SessionStore
	cache    *cache.RedisCache
	newRNG   func() *rand.Rand
	now      func() time.Time
}

func NewQuizHandler(words WordStore, results ResultSink, sessions *quiz.SessionStore, redisCache *cache.RedisCache) *QuizHandler {
	return &QuizHandler{
		words:    words,
		results:  results,
		sessions: sessions,
		cache:    redisCache,
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		now: time.Now,
	}
}

type StartQuizRequest struct {
	Mode quiz.Mode `json:"mode" binding:"required"`
}

// Start builds a fresh session for the user, replacing any session in flight.
func (h *QuizHandler) Start(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req StartQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Mode.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be \"translation\" or \"definition\""})
		return
	}

	pool, err := h.loadPool(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Failed to load word pool for user %s: %v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load words, please retry"})
		return
	}

	session, err := quiz.StartSession(h.newRNG(), pool, req.Mode)
	if err != nil {
		var notEnough *quiz.NotEnoughWordsError
		if errors.As(err, &notEnough) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":    notEnough.Error(),
				"required": notEnough.Required,
				"actual":   notEnough.Actual,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start quiz"})
		return
	}

	h.sessions.Put(userID, session)
	middleware.RecordQuizStart(string(req.Mode))

	c.JSON(http.StatusCreated, sessionView(session))
}

// Get returns the state of the user's current session.
func (h *QuizHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	session, ok := h.sessions.Get(userID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": quiz.ErrNoActiveSession.Error()})
		return
	}
	c.JSON(http.StatusOK, sessionView(session))
}

type AnswerRequest struct {
	Choice string `json:"choice" binding:"required"`
}

// Answer applies one choice to the current question. The final answer also
// persists the game result; if that write fails the session is kept so the
// client can retry via SaveResult.
func (h *QuizHandler) Answer(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "choice is required"})
		return
	}

	session, ok := h.sessions.Get(userID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": quiz.ErrNoActiveSession.Error()})
		return
	}

	record, err := session.SubmitAnswer(req.Choice)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	middleware.RecordQuizAnswer(record.IsCorrect)

	resp := gin.H{
		"correct":        record.IsCorrect,
		"correct_answer": record.CorrectAnswer,
		"score":          session.Score,
		"status":         session.Status,
		"current_index":  session.CurrentIndex,
	}

	if session.Status != quiz.StatusCompleted {
		c.JSON(http.StatusOK, resp)
		return
	}

	result := session.GameResult(userID, h.now())
	saved, err := h.results.SaveGameResult(c.Request.Context(), result)
	if err != nil {
		// The session stays in memory; score and answers survive the
		// failed save and SaveResult can retry it.
		log.Printf("Failed to save game result for user %s: %v", userID, err)
		resp["error"] = "failed to save game result, please retry"
		resp["result"] = result
		resp["answers"] = session.Answers
		c.JSON(http.StatusBadGateway, resp)
		return
	}

	h.sessions.Delete(userID)
	resp["result"] = saved
	resp["answers"] = session.Answers
	c.JSON(http.StatusOK, resp)
}

// SaveResult retries persisting a completed session's result.
func (h *QuizHandler) SaveResult(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	session, ok := h.sessions.Get(userID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": quiz.ErrNoActiveSession.Error()})
		return
	}
	if session.Status != quiz.StatusCompleted {
		c.JSON(http.StatusConflict, gin.H{"error": "quiz session still in progress"})
		return
	}

	saved, err := h.results.SaveGameResult(c.Request.Context(), session.GameResult(userID, h.now()))
	if err != nil {
		log.Printf("Failed to save game result for user %s: %v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to save game result, please retry"})
		return
	}

	h.sessions.Delete(userID)
	c.JSON(http.StatusOK, gin.H{
		"result":  saved,
		"answers": session.Answers,
	})
}

// Abandon discards the current session without recording anything.
func (h *QuizHandler) Abandon(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	h.sessions.Delete(userID)
	c.JSON(http.StatusOK, gin.H{"message": "quiz session discarded"})
}

// loadPool fetches the user's full vocabulary, with a short-lived cache so
// repeated quiz starts do not hammer the remote store.
func (h *QuizHandler) loadPool(ctx context.Context, userID string) ([]model.WordEntry, error) {
	key := poolCacheKey(userID)
	if h.cache != nil {
		if data, err := h.cache.Get(ctx, key); err == nil {
			var pool []model.WordEntry
			if err := json.Unmarshal(data, &pool); err == nil {
				return pool, nil
			}
		}
	}

	pool, err := h.words.ListWords(ctx, userID)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if data, err := json.Marshal(pool); err == nil {
			if err := h.cache.Set(ctx, key, data, poolCacheTTL); err != nil {
				log.Printf("Warning: failed to cache word pool: %v", err)
			}
		}
	}
	return pool, nil
}

// sessionView shapes a session for the client, withholding correct answers
// while the quiz is in progress.
func sessionView(s *quiz.Session) gin.H {
	view := gin.H{
		"mode":            s.Mode,
		"status":          s.Status,
		"total_questions": len(s.Questions),
		"current_index":   s.CurrentIndex,
		"score":           s.Score,
	}

	if s.Status == quiz.StatusInProgress {
		q := s.Current()
		view["question"] = gin.H{
			"word":    q.SourceWord,
			"choices": q.Choices,
		}
	} else {
		view["answers"] = s.Answers
	}
	return view
}
