package core

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/agenthands/gbif-reconcile/internal/core/model"
)

type MockProvider struct {
	// Match and FullText are keyed by query name; JSON arrays of records.
	Match    map[string]string
	FullText map[string]string

	mu      sync.Mutex
	Queries []string
}

func (m *MockProvider) MatchSearch(ctx context.Context, name string, offset, limit int) ([]model.RawRecord, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, name)
	m.mu.Unlock()
	return decode(m.Match[name])
}

func (m *MockProvider) FullTextSearch(ctx context.Context, q string, offset, limit int) (*model.SearchPage, error) {
	records, err := decode(m.FullText[q])
	if err != nil {
		return nil, err
	}
	return &model.SearchPage{Count: len(records), Results: records}, nil
}

func decode(data string) ([]model.RawRecord, error) {
	if data == "" {
		return nil, nil
	}
	var records []model.RawRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, err
	}
	return records, nil
}
