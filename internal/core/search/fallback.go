package search

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/agenthands/gbif-reconcile/internal/core/model"
	"github.com/agenthands/gbif-reconcile/internal/gbif"
)

// Searcher tries an exact match search first and falls back to a full-text
// search restricted to records whose name equals the query.
type Searcher struct {
	Provider gbif.SpeciesProvider
	Limit    int
	Logger   *slog.Logger
}

func NewSearcher(provider gbif.SpeciesProvider, limit int, logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Searcher{
		Provider: provider,
		Limit:    limit,
		Logger:   logger,
	}
}

// Search never fails: provider errors degrade to an empty record set.
func (s *Searcher) Search(ctx context.Context, name string) []model.RawRecord {
	records, err := s.Provider.MatchSearch(ctx, name, 0, s.Limit)
	if err != nil {
		s.Logger.WarnContext(ctx, "match search failed", "query", name, "error", err)
	}
	if len(records) > 0 {
		s.Logger.InfoContext(ctx, "retrieved matches", "query", name, "count", len(records))
		return records
	}

	s.Logger.InfoContext(ctx, "no matches found, carrying out full-text search instead", "query", name)
	records = s.fullTextMatches(ctx, name)
	s.Logger.InfoContext(ctx, "retrieved matches", "query", name, "count", len(records))
	return records
}

func (s *Searcher) fullTextMatches(ctx context.Context, name string) []model.RawRecord {
	page, err := s.Provider.FullTextSearch(ctx, name, 0, s.Limit)
	if err != nil {
		s.Logger.WarnContext(ctx, "full-text search failed", "query", name, "error", err)
		return nil
	}
	if page.Count > len(page.Results) {
		s.Logger.WarnContext(ctx, "full-text search truncated",
			"query", name,
			"total", page.Count,
			"retrieved", len(page.Results),
		)
	}

	var matches []model.RawRecord
	for _, r := range page.Results {
		if !r.HasName(name) {
			continue
		}
		// Full-text records carry only "key"; mirror it under the names the
		// match search uses.
		if r.Key != nil {
			key := json.RawMessage(strconv.FormatInt(*r.Key, 10))
			r.SetExtra("usageKey", key)
			r.SetExtra("relatedToUsageKey", key)
		}
		matches = append(matches, r)
	}
	return matches
}
