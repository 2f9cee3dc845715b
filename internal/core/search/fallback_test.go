package search

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/agenthands/gbif-reconcile/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	MatchRecords []model.RawRecord
	MatchErr     error
	Page         *model.SearchPage
	PageErr      error

	MatchCalls    int
	FullTextCalls int
	LastLimit     int
}

func (m *MockProvider) MatchSearch(ctx context.Context, name string, offset, limit int) ([]model.RawRecord, error) {
	m.MatchCalls++
	m.LastLimit = limit
	return m.MatchRecords, m.MatchErr
}

func (m *MockProvider) FullTextSearch(ctx context.Context, q string, offset, limit int) (*model.SearchPage, error) {
	m.FullTextCalls++
	if m.PageErr != nil {
		return nil, m.PageErr
	}
	if m.Page == nil {
		return &model.SearchPage{}, nil
	}
	return m.Page, nil
}

func records(t *testing.T, data string) []model.RawRecord {
	t.Helper()
	var out []model.RawRecord
	require.NoError(t, json.Unmarshal([]byte(data), &out))
	return out
}

func TestSearch_UsesMatchResults(t *testing.T) {
	provider := &MockProvider{
		MatchRecords: records(t, `[{"key": 1, "canonicalName": "Felis catus"}]`),
	}
	s := NewSearcher(provider, 200, nil)

	got := s.Search(context.Background(), "Felis catus")

	assert.Len(t, got, 1)
	assert.Equal(t, 1, provider.MatchCalls)
	assert.Equal(t, 0, provider.FullTextCalls)
	assert.Equal(t, 200, provider.LastLimit)
}

func TestSearch_FallsBackToFullText(t *testing.T) {
	provider := &MockProvider{
		Page: &model.SearchPage{
			Count: 3,
			Results: records(t, `[
				{"key": 10, "scientificName": "Canis lupus"},
				{"key": 11, "canonicalName": "Canis lupus", "scientificName": "Canis lupus Linnaeus, 1758"},
				{"key": 12, "canonicalName": "Canis lupus familiaris"},
				{"key": 13, "canonicalName": "canis lupus"}
			]`),
		},
	}
	s := NewSearcher(provider, 200, nil)

	got := s.Search(context.Background(), "Canis lupus")

	require.Len(t, got, 2)
	assert.Equal(t, 1, provider.FullTextCalls)
	for _, r := range got {
		assert.JSONEq(t, string(r.Extra["usageKey"]), string(r.Extra["relatedToUsageKey"]))
	}
	assert.JSONEq(t, `10`, string(got[0].Extra["usageKey"]))
	assert.JSONEq(t, `11`, string(got[1].Extra["relatedToUsageKey"]))
}

func TestSearch_MatchErrorFallsBack(t *testing.T) {
	provider := &MockProvider{
		MatchErr: errors.New("timeout"),
		Page: &model.SearchPage{
			Results: records(t, `[{"key": 7, "scientificName": "Ursus arctos"}]`),
		},
	}
	s := NewSearcher(provider, 200, nil)

	got := s.Search(context.Background(), "Ursus arctos")
	assert.Len(t, got, 1)
}

func TestSearch_BothEmpty(t *testing.T) {
	provider := &MockProvider{PageErr: errors.New("503")}
	s := NewSearcher(provider, 200, nil)

	got := s.Search(context.Background(), "Nothing here")
	assert.Empty(t, got)
	assert.Equal(t, 1, provider.MatchCalls)
	assert.Equal(t, 1, provider.FullTextCalls)
}
