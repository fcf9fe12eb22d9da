package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SpeechSynthesizer turns text into MP3 audio.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

type TTSHandler struct {
	tts SpeechSynthesizer
}

func NewTTSHandler(synthesizer SpeechSynthesizer) *TTSHandler {
	return &TTSHandler{tts: synthesizer}
}

// Get streams pronunciation audio for a word or example sentence.
func (h *TTSHandler) Get(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text parameter required"})
		return
	}
	lang := c.DefaultQuery("lang", "en")

	data, err := h.tts.Synthesize(c.Request.Context(), text, lang)
	if err != nil {
		log.Printf("TTS failed for %q: %v", text, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "audio generation failed"})
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "audio/mpeg", data)
}
