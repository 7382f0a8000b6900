package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/biaslens/biaslens/internal/model"
)

// stubRunner fabricates results and optionally fails on chosen prompts.
type stubRunner struct {
	failOn string
	calls  int64
}

func (s *stubRunner) Analyze(ctx context.Context, prompt, response string) (*model.PipelineResult, error) {
	atomic.AddInt64(&s.calls, 1)
	if s.failOn != "" && strings.Contains(prompt, s.failOn) {
		return nil, errors.New("analysis failed")
	}
	return &model.PipelineResult{Prompt: prompt}, nil
}

func TestBatchProcessor_Process_OrderPreserved(t *testing.T) {
	runner := &stubRunner{}
	processor := NewBatchProcessor(runner, 4)

	requests := []Request{
		{Prompt: "p0", Response: "r0"},
		{Prompt: "p1", Response: "r1"},
		{Prompt: "p2", Response: "r2"},
		{Prompt: "p3", Response: "r3"},
		{Prompt: "p4", Response: "r4"},
	}

	results := processor.Process(context.Background(), requests)
	if len(results) != len(requests) {
		t.Fatalf("got %d results, want %d", len(results), len(requests))
	}

	for i, res := range results {
		if res.Index != i {
			t.Errorf("result %d has index %d", i, res.Index)
		}
		if res.Error != nil {
			t.Errorf("result %d: unexpected error %v", i, res.Error)
		}
		if res.Result.Prompt != requests[i].Prompt {
			t.Errorf("result %d prompt = %s, want %s", i, res.Result.Prompt, requests[i].Prompt)
		}
	}

	if got := atomic.LoadInt64(&runner.calls); got != int64(len(requests)) {
		t.Errorf("runner called %d times, want %d", got, len(requests))
	}
}

func TestBatchProcessor_Process_PartialFailure(t *testing.T) {
	runner := &stubRunner{failOn: "p1"}
	processor := NewBatchProcessor(runner, 2)

	requests := []Request{
		{Prompt: "p0", Response: "r0"},
		{Prompt: "p1", Response: "r1"},
		{Prompt: "p2", Response: "r2"},
	}

	results := processor.Process(context.Background(), requests)

	if results[0].Error != nil || results[2].Error != nil {
		t.Error("healthy requests should not fail")
	}
	if results[1].Error == nil {
		t.Error("expected error for failing request")
	}
}

func TestBatchProcessor_Process_Empty(t *testing.T) {
	processor := NewBatchProcessor(&stubRunner{}, 2)
	results := processor.Process(context.Background(), nil)
	if len(results) != 0 {
		t.Fatalf("got %d results for empty batch", len(results))
	}
}

func TestReadRequestsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.tsv")

	content := "# comment line\n" +
		"Is Sikhism a branch of Islam?\tYes, Sikhism is a branch of Islam.\n" +
		"\n" +
		"Tell me about the Golden Temple.\tThe Golden Temple is in Amritsar.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	requests, err := ReadRequestsFromFile(path)
	if err != nil {
		t.Fatalf("ReadRequestsFromFile: %v", err)
	}

	if len(requests) != 2 {
		t.Fatalf("got %d requests, want 2", len(requests))
	}
	if requests[0].Prompt != "Is Sikhism a branch of Islam?" {
		t.Errorf("unexpected first prompt: %s", requests[0].Prompt)
	}
	if requests[1].Response != "The Golden Temple is in Amritsar." {
		t.Errorf("unexpected second response: %s", requests[1].Response)
	}
}

func TestReadRequestsFromFile_MissingTab(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.tsv")
	if err := os.WriteFile(path, []byte("a line without a tab\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadRequestsFromFile(path); err == nil {
		t.Fatal("expected error for line without tab separator")
	}
}

func TestReadRequestsFromFile_Missing(t *testing.T) {
	if _, err := ReadRequestsFromFile(filepath.Join(t.TempDir(), "absent.tsv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
