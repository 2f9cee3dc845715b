package core

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/agenthands/gbif-reconcile/internal/config"
	"github.com/agenthands/gbif-reconcile/internal/core/aggregate"
	"github.com/agenthands/gbif-reconcile/internal/core/model"
	"github.com/agenthands/gbif-reconcile/internal/core/search"
	"github.com/agenthands/gbif-reconcile/internal/gbif"
)

// Reconciler runs search, aggregation and ranking for reconciliation queries.
// It holds no per-request state.
type Reconciler struct {
	Searcher    *search.Searcher
	Aggregator  *aggregate.Aggregator
	Concurrency int
	Logger      *slog.Logger
}

func NewReconciler(provider gbif.SpeciesProvider, cfg *config.Config, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		Searcher:    search.NewSearcher(provider, cfg.GBIF.Limit, logger),
		Aggregator:  aggregate.NewAggregator(cfg.Service.CandidateType, cfg.Aggregation.SkipKeylessGroups, logger),
		Concurrency: cfg.Batch.Concurrency,
		Logger:      logger,
	}
}

// Reconcile answers a single query.
func (r *Reconciler) Reconcile(ctx context.Context, q model.Query) (model.Result, error) {
	if q.Query == "" {
		return model.NewResult(nil), nil
	}

	records := r.Searcher.Search(ctx, q.Query)

	candidates, err := r.Aggregator.Aggregate(records)
	if err != nil {
		return model.Result{}, err
	}
	aggregate.Rank(candidates)

	if q.Limit > 0 && len(candidates) > q.Limit {
		candidates = candidates[:q.Limit]
	}

	return model.NewResult(candidates), nil
}

// ReconcileBatch answers every query of a batch under its own key. With a
// concurrency of 1 queries run strictly one after another. The first failing
// query fails the batch.
func (r *Reconciler) ReconcileBatch(ctx context.Context, queries map[string]model.Query) (map[string]model.Result, error) {
	results := make(map[string]model.Result, len(queries))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Concurrency, 1))

	for key, q := range queries {
		key, q := key, q
		g.Go(func() error {
			res, err := r.Reconcile(ctx, q)
			if err != nil {
				r.Logger.ErrorContext(ctx, "query failed", "key", key, "query", q.Query, "error", err)
				return err
			}

			mu.Lock()
			results[key] = res
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
