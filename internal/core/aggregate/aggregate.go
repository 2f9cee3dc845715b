package aggregate

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/agenthands/gbif-reconcile/internal/core/model"
)

var ErrKeylessGroup = errors.New("match group has no usage key")

// MatchGroup is the set of records sharing one identity key. It is never empty.
type MatchGroup struct {
	Key     model.IdentityKey
	Records []model.RawRecord
}

type Aggregator struct {
	// CandidateType is the type URI attached to every candidate.
	CandidateType string
	// SkipKeyless drops groups without any usage key instead of failing the
	// whole aggregation.
	SkipKeyless bool
	Logger      *slog.Logger
}

func NewAggregator(candidateType string, skipKeyless bool, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		CandidateType: candidateType,
		SkipKeyless:   skipKeyless,
		Logger:        logger,
	}
}

// Group partitions records by identity key, ordered by ascending key.
func Group(records []model.RawRecord) []MatchGroup {
	index := make(map[model.IdentityKey]int)
	var groups []MatchGroup

	for _, r := range records {
		key := r.IdentityKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, MatchGroup{Key: key})
		}
		groups[i].Records = append(groups[i].Records, r)
	}

	slices.SortFunc(groups, func(a, b MatchGroup) int { return a.Key.Compare(b.Key) })
	return groups
}

// Aggregate turns records into one candidate per match group, in identity
// key order. Candidates are not ranked; see Rank.
func (a *Aggregator) Aggregate(records []model.RawRecord) ([]model.Candidate, error) {
	groups := Group(records)
	candidates := make([]model.Candidate, 0, len(groups))

	for _, g := range groups {
		c, err := a.Candidate(g)
		if err != nil {
			if a.SkipKeyless && errors.Is(err, ErrKeylessGroup) {
				a.Logger.Warn("skipping match group", "name", g.Key.DisplayName(), "error", err)
				continue
			}
			return nil, err
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}

// Candidate builds the result for a single group.
func (a *Aggregator) Candidate(g MatchGroup) (model.Candidate, error) {
	id, err := CanonicalID(g)
	if err != nil {
		return model.Candidate{}, err
	}

	return model.Candidate{
		ID:      id,
		Name:    g.Key.DisplayName(),
		Type:    []string{a.CandidateType},
		Score:   len(g.Records),
		Match:   false,
		Summary: Summarize(g.Records),
	}, nil
}

// CanonicalID returns the smallest usage key in the group.
func CanonicalID(g MatchGroup) (int64, error) {
	var keys []int64
	for _, r := range g.Records {
		if r.Key != nil {
			keys = append(keys, *r.Key)
		}
	}
	if len(keys) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrKeylessGroup, g.Key.DisplayName())
	}
	return slices.Min(keys), nil
}

// Summarize collapses each field to its value when every record carries the
// same one. Otherwise the field lists the distinct values in first-seen order.
// A field missing from some records is never collapsed.
func Summarize(records []model.RawRecord) model.FieldSummary {
	type tally struct {
		values []string
		counts map[string]int
	}
	tallies := make(map[string]*tally)

	for _, r := range records {
		for _, f := range r.Fields() {
			t, ok := tallies[f.Name]
			if !ok {
				t = &tally{counts: make(map[string]int)}
				tallies[f.Name] = t
			}
			v := string(f.Value)
			if t.counts[v] == 0 {
				t.values = append(t.values, v)
			}
			t.counts[v]++
		}
	}

	summary := make(model.FieldSummary, len(tallies))
	for name, t := range tallies {
		if len(t.values) == 1 && t.counts[t.values[0]] == len(records) {
			summary[name] = model.SummaryValue{Consensus: json.RawMessage(t.values[0])}
			continue
		}
		values := make([]json.RawMessage, len(t.values))
		for i, v := range t.values {
			values[i] = json.RawMessage(v)
		}
		summary[name] = model.SummaryValue{Values: values}
	}
	return summary
}
