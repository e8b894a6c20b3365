package config

import (
	"os"
	"strconv"
	"sync"
)

type RefineConfig struct {
	// Provider selects the text generator backend: "gemini" or "openrouter".
	Provider string
	// BatchPauseEvery inserts a short pause after this many records during a
	// full batch run, to stay under model rate limits.
	BatchPauseEvery int
}

var (
	refineConfig *RefineConfig
	refineOnce   sync.Once
)

func LoadRefineConfig() *RefineConfig {
	refineOnce.Do(func() {
		provider := os.Getenv("LLM_PROVIDER")
		if provider == "" {
			provider = "gemini"
		}
		pauseEvery := 10
		if v := os.Getenv("BATCH_PAUSE_EVERY"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				pauseEvery = n
			}
		}
		refineConfig = &RefineConfig{
			Provider:        provider,
			BatchPauseEvery: pauseEvery,
		}
	})
	return refineConfig
}
