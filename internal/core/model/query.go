package model

import "encoding/json"

// Query is a Reconciliation API query object. Only Query and Limit affect
// the result.
type Query struct {
	Query      string          `json:"query"`
	Type       json.RawMessage `json:"type,omitempty"`
	Limit      int             `json:"limit,omitempty"`
	Properties json.RawMessage `json:"properties,omitempty"`
}

// SearchPage is a page of the GBIF full-text search.
type SearchPage struct {
	Offset  int         `json:"offset"`
	Limit   int         `json:"limit"`
	Count   int         `json:"count"`
	Results []RawRecord `json:"results"`
}
