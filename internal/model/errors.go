package model

import "fmt"

// InvalidInputError reports empty or malformed input text. It fails fast
// and is never retried; missing input is never treated as a neutral score.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// GenerationUnavailableError reports a failed call to the external
// text-generation collaborator (timeout, quota, network). The pipeline
// never substitutes a cached or synthetic answer for it.
type GenerationUnavailableError struct {
	Provider string
	Err      error
}

func (e *GenerationUnavailableError) Error() string {
	return fmt.Sprintf("generation unavailable (%s): %v", e.Provider, e.Err)
}

func (e *GenerationUnavailableError) Unwrap() error {
	return e.Err
}

// StageError wraps a failure with the pipeline stage that produced it and
// the last-known scores, so callers can render a useful message.
type StageError struct {
	Stage  string
	Scores *RubricScores // nil when scoring never completed
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
