package model

import "encoding/json"

// Candidate is one reconciliation result.
type Candidate struct {
	ID      int64        `json:"id"`
	Name    string       `json:"name"`
	Type    []string     `json:"type"`
	Score   int          `json:"score"`
	Match   bool         `json:"match"`
	Summary FieldSummary `json:"summary"`
}

// FieldSummary maps a field name to the consensus over a match group.
type FieldSummary map[string]SummaryValue

// SummaryValue is either a single agreed value or the distinct values seen,
// in first-seen order.
type SummaryValue struct {
	Consensus json.RawMessage
	Values    []json.RawMessage
}

func (v SummaryValue) IsConsensus() bool {
	return v.Values == nil
}

func (v SummaryValue) MarshalJSON() ([]byte, error) {
	if v.IsConsensus() {
		if v.Consensus == nil {
			return []byte("null"), nil
		}
		return v.Consensus, nil
	}
	return json.Marshal(v.Values)
}

func (v *SummaryValue) UnmarshalJSON(data []byte) error {
	var values []json.RawMessage
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &values); err == nil {
			*v = SummaryValue{Values: values}
			return nil
		}
	}
	*v = SummaryValue{Consensus: append(json.RawMessage(nil), data...)}
	return nil
}

// Result is the response body for one query.
type Result struct {
	Result []Candidate `json:"result"`
}

// NewResult never serializes the candidate list as null.
func NewResult(candidates []Candidate) Result {
	if candidates == nil {
		candidates = []Candidate{}
	}
	return Result{Result: candidates}
}
