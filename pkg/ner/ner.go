package ner

import "context"

// Span is one labeled span returned by a token-classification model.
// Start and End are half-open character offsets into the input text, and
// Score is the model confidence in [0, 1]. Label carries the model's raw
// vocabulary (PER, LOC, ORG, ...); canonical typing happens downstream.
type Span struct {
	Label string  `json:"entity_group"`
	Word  string  `json:"word"`
	Score float64 `json:"score"`
	Start int     `json:"start"`
	End   int     `json:"end"`
}

// Recognizer produces labeled entity spans for a piece of text.
//
// Implementations must be deterministic for a fixed model version and fixed
// input, safe for concurrent use, and must return an empty result for
// empty or whitespace-only input without invoking the underlying model.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]Span, error)
}
