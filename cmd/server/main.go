package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vocabmaster/api/internal/auth"
	"github.com/vocabmaster/api/internal/cache"
	"github.com/vocabmaster/api/internal/config"
	"github.com/vocabmaster/api/internal/handler"
	"github.com/vocabmaster/api/internal/llm"
	"github.com/vocabmaster/api/internal/middleware"
	"github.com/vocabmaster/api/internal/quiz"
	"github.com/vocabmaster/api/internal/store"
	"github.com/vocabmaster/api/internal/tts"
)

func main() {
	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		log.Fatal("FIREBASE_DATABASE_URL is required")
	}

	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Redis cache
	var redisCache *cache.RedisCache
	redisCache, err := cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v", err)
		// Continue without Redis cache (fail-open)
		redisCache = nil
	}

	wordStore := store.NewFirebaseStore(cfg.DatabaseURL)
	llmClient := llm.NewClient(cfg.HuggingFaceToken, cfg.HFModel)
	ttsClient := tts.NewClient(redisCache)
	identity := auth.NewFirebaseAuth(cfg.FirebaseAPIKey)
	googleConfig := auth.NewGoogleConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	sessions := quiz.NewSessionStore()

	authHandler := handler.NewAuthHandler(identity, cfg.JWTSecret, googleConfig, cfg.FrontendURL)
	wordHandler := handler.NewWordHandler(wordStore, llmClient, redisCache)
	quizHandler := handler.NewQuizHandler(wordStore, wordStore, sessions, redisCache)
	statsHandler := handler.NewStatsHandler(wordStore, wordStore)
	ttsHandler := handler.NewTTSHandler(ttsClient)

	r := gin.Default()
	r.Use(middleware.MetricsMiddleware())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "app": cfg.AppName})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Auth
		api.POST("/auth/signup", authHandler.SignUp)
		api.POST("/auth/signin", authHandler.SignIn)
		api.GET("/auth/google", authHandler.GoogleAuth)
		api.GET("/auth/google/callback", authHandler.GoogleCallback)
		api.GET("/auth/me", middleware.AuthMiddleware(cfg.JWTSecret), authHandler.Me)

		// Everything below requires a signed-in user
		authed := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret))

		// Words
		authed.POST("/words/generate", wordHandler.Generate)
		authed.POST("/words", wordHandler.Create)
		authed.GET("/words", wordHandler.List)

		// Quiz
		authed.POST("/quiz/start", quizHandler.Start)
		authed.GET("/quiz", quizHandler.Get)
		authed.POST("/quiz/answer", quizHandler.Answer)
		authed.POST("/quiz/result", quizHandler.SaveResult)
		authed.DELETE("/quiz", quizHandler.Abandon)

		// Stats
		authed.GET("/stats", statsHandler.Get)

		// Audio
		authed.GET("/tts", ttsHandler.Get)
	}

	log.Printf("%s API server starting on port %s", cfg.AppName, cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
