package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/biaslens/biaslens/internal/model"
)

// Runner defines the interface for analyzing one prompt/response pair.
type Runner interface {
	Analyze(ctx context.Context, prompt, response string) (*model.PipelineResult, error)
}

// Request is one batch item: the prompt that was asked and the response
// to diagnose.
type Request struct {
	Prompt   string
	Response string
}

// BatchResult pairs a request with its pipeline outcome. Index preserves
// the input position so batch output order matches the input file.
type BatchResult struct {
	Index   int
	Request Request
	Result  *model.PipelineResult
	Error   error
}

// BatchProcessor analyzes multiple prompt/response pairs concurrently.
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
	}
}

// Process analyzes all requests with a bounded number of workers and
// returns results in input order. Individual failures are recorded on the
// result, never aborting the rest of the batch.
func (b *BatchProcessor) Process(ctx context.Context, requests []Request) []*BatchResult {
	if len(requests) == 0 {
		return []*BatchResult{}
	}

	results := make([]*BatchResult, len(requests))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < b.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				req := requests[idx]
				res, err := b.runner.Analyze(ctx, req.Prompt, req.Response)
				results[idx] = &BatchResult{
					Index:   idx,
					Request: req,
					Result:  res,
					Error:   err,
				}
			}
		}()
	}

	for idx := range requests {
		select {
		case <-ctx.Done():
			// Mark the remainder as cancelled instead of leaving nil holes
			for j := idx; j < len(requests); j++ {
				results[j] = &BatchResult{Index: j, Request: requests[j], Error: ctx.Err()}
			}
			close(jobs)
			wg.Wait()
			return results
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

// ProcessFile reads prompt/response pairs from a file and analyzes them
// concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*BatchResult, error) {
	requests, err := ReadRequestsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}

	return b.Process(ctx, requests), nil
}

// ReadRequestsFromFile reads tab-separated prompt/response pairs, one per
// line. Blank lines and lines starting with # are skipped.
func ReadRequestsFromFile(filePath string) ([]Request, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var requests []Request

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		prompt, response, found := strings.Cut(line, "\t")
		if !found {
			return nil, fmt.Errorf("line %d: expected tab-separated prompt and response", lineNo)
		}
		prompt = strings.TrimSpace(prompt)
		response = strings.TrimSpace(response)
		if prompt == "" || response == "" {
			return nil, fmt.Errorf("line %d: empty prompt or response", lineNo)
		}

		requests = append(requests, Request{Prompt: prompt, Response: response})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return requests, nil
}
