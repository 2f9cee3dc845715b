package aggregate

import (
	"cmp"
	"slices"

	"github.com/agenthands/gbif-reconcile/internal/core/model"
)

// Rank sorts candidates by descending score in place. The sort is stable, so
// ties keep the identity key order produced by Aggregate.
func Rank(candidates []model.Candidate) {
	slices.SortStableFunc(candidates, func(a, b model.Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})
}
