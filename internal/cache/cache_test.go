package cache

import (
	"testing"
	"time"

	"github.com/biaslens/biaslens/internal/model"
)

func TestKeyDistinguishesInputs(t *testing.T) {
	base := Key("prompt", "response", "gpt-4")

	if Key("prompt", "response", "gpt-4") != base {
		t.Error("identical inputs must produce the same key")
	}
	if Key("prompt2", "response", "gpt-4") == base {
		t.Error("different prompt must change the key")
	}
	if Key("prompt", "response2", "gpt-4") == base {
		t.Error("different response must change the key")
	}
	if Key("prompt", "response", "claude-3") == base {
		t.Error("different target model must change the key")
	}

	// Field boundaries matter: shifting a character across the
	// prompt/response boundary must not collide.
	if Key("ab", "c", "") == Key("a", "bc", "") {
		t.Error("boundary shift must change the key")
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	result := &model.PipelineResult{Prompt: "p", StrategyUsed: model.StrategyNeutralLanguage}
	key := Key("p", "r", "gpt-4")

	if _, found := c.Get(key); found {
		t.Fatal("unexpected hit on empty cache")
	}

	c.Set(key, result)

	got, found := c.Get(key)
	if !found {
		t.Fatal("expected cache hit")
	}
	if got.StrategyUsed != model.StrategyNeutralLanguage {
		t.Errorf("got strategy %s", got.StrategyUsed)
	}

	c.Delete(key)
	if _, found := c.Get(key); found {
		t.Error("expected miss after delete")
	}
}

func TestMemoryCacheCopiesResults(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	key := Key("p", "r", "")

	original := &model.PipelineResult{RiskLevel: model.RiskMedium}
	c.Set(key, original)

	// Mutating the caller's struct after Set must not reach the cache.
	original.RiskLevel = model.RiskHigh

	got, found := c.Get(key)
	if !found {
		t.Fatal("expected cache hit")
	}
	if got.RiskLevel != model.RiskMedium {
		t.Errorf("stored result mutated through the caller's pointer: %s", got.RiskLevel)
	}

	// Each Get hands out an independent copy.
	got.RiskLevel = model.RiskLow
	again, _ := c.Get(key)
	if again.RiskLevel != model.RiskMedium {
		t.Errorf("cache entry mutated through a returned copy: %s", again.RiskLevel)
	}
	if got == again {
		t.Error("Get returned a shared pointer")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(10*time.Millisecond, time.Minute)

	key := Key("p", "r", "")
	c.Set(key, &model.PipelineResult{})

	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get(key); found {
		t.Error("expected entry to expire")
	}
}

func TestMemoryCacheClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set(Key("a", "b", ""), &model.PipelineResult{})
	c.Set(Key("c", "d", ""), &model.PipelineResult{})

	c.Clear()

	if _, found := c.Get(Key("a", "b", "")); found {
		t.Error("expected empty cache after Clear")
	}
}
