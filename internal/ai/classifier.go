// Package ai suggests categories for transactions whose descriptions match
// no keyword rule. Suggestions are advisory: callers decide whether the
// confidence clears their threshold before applying one.
package ai

import (
	"context"

	"github.com/olex-green/family-budget/internal/model"
)

// Suggestion is one category proposal with the model's self-reported
// confidence in [0, 1].
type Suggestion struct {
	Category   model.Category `json:"category"`
	Confidence float64        `json:"confidence"`
}

// Classifier proposes a category for a transaction description, restricted
// to the given candidates.
type Classifier interface {
	Classify(ctx context.Context, description string, candidates []model.Category) (Suggestion, error)
}
