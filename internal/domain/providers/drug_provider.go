package providers

import (
	"context"
)

// DrugCandidate is a single concept match returned by the normalization
// provider, in provider-defined relevance order.
type DrugCandidate struct {
	RxCUI string
	Name  string
}

// DrugNormalizationProvider defines the interface for drug name normalization services
type DrugNormalizationProvider interface {
	// FindCandidates looks up concept matches for a medicine name. An empty
	// slice means the provider knows no matching concept.
	FindCandidates(ctx context.Context, name string) ([]DrugCandidate, error)

	// SpellingSuggestions returns ranked spelling alternatives for a name the
	// provider could not match, in provider order.
	SpellingSuggestions(ctx context.Context, name string) ([]string, error)
}
