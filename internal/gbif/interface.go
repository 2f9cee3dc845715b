package gbif

import (
	"context"

	"github.com/agenthands/gbif-reconcile/internal/core/model"
)

// SpeciesProvider is the remote taxonomic database the reconciler searches.
type SpeciesProvider interface {
	// MatchSearch looks up name usages by name.
	MatchSearch(ctx context.Context, name string, offset, limit int) ([]model.RawRecord, error)
	// FullTextSearch runs a free-text search over name usages.
	FullTextSearch(ctx context.Context, q string, offset, limit int) (*model.SearchPage, error)
}
