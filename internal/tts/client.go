// Package tts fetches synthesized speech for words and example sentences.
package tts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/vocabmaster/api/internal/cache"
)

const (
	ttsEndpoint = "https://translate.google.com/translate_tts"
	maxTextLen  = 200
	cacheTTL    = 24 * time.Hour
)

type Client struct {
	cache      *cache.RedisCache
	httpClient *http.Client
}

// NewClient builds a TTS client. cache may be nil; audio is then fetched on
// every request.
func NewClient(redisCache *cache.RedisCache) *Client {
	return &Client{
		cache: redisCache,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func cacheKey(text, lang string) string {
	h := sha256.Sum256([]byte(lang + ":" + text))
	return "tts:" + hex.EncodeToString(h[:16])
}

// Synthesize returns MP3 audio for the given text, serving from cache when
// possible.
func (c *Client) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("empty text")
	}
	if len(text) > maxTextLen {
		return nil, fmt.Errorf("text too long for synthesis (%d bytes, max %d)", len(text), maxTextLen)
	}

	key := cacheKey(text, lang)
	if c.cache != nil {
		if data, err := c.cache.Get(ctx, key); err == nil {
			return data, nil
		}
	}

	data, err := c.fetch(ctx, text, lang)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, data, cacheTTL); err != nil {
			log.Printf("Warning: failed to cache TTS audio: %v", err)
		}
	}
	return data, nil
}

func (c *Client) fetch(ctx context.Context, text, lang string) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("tl", lang)
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ttsEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	// The endpoint rejects requests without a browser user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("TTS service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TTS service returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
