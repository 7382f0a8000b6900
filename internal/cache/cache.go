// Package cache memoizes pipeline results for repeated analyses.
package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/biaslens/biaslens/internal/model"
)

// Cache defines the interface for analysis result caching.
type Cache interface {
	Get(key string) (*model.PipelineResult, bool)
	Set(key string, result *model.PipelineResult)
	Delete(key string)
	Clear()
}

// Key generates a cache key from the analysis identity: the prompt, the
// response text, and the target model. Any change to one of the three
// produces a different key.
func Key(prompt, response, targetModel string) string {
	h := sha256.New()
	h.Write([]byte(prompt))
	h.Write([]byte{0})
	h.Write([]byte(response))
	h.Write([]byte{0})
	h.Write([]byte(targetModel))
	return "biaslens:v1:" + hex.EncodeToString(h.Sum(nil))
}
