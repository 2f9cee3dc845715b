package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// RawRecord is one name usage as returned by the GBIF species API. Fields the
// reconciler reads are modelled explicitly; everything else is kept verbatim
// in Extra. A nil field means the provider did not send it (or sent null).
type RawRecord struct {
	Key               *int64
	CanonicalName     *string
	ScientificName    *string
	AcceptedNameUsage *string
	Accepted          *string
	Authorship        *string
	Kingdom           *string

	// Extra holds every field not modelled above, keyed by its JSON name.
	Extra map[string]json.RawMessage
}

// Field is a single name/value pair of a record in its JSON form.
type Field struct {
	Name  string
	Value json.RawMessage
}

const (
	FieldKey               = "key"
	FieldCanonicalName     = "canonicalName"
	FieldScientificName    = "scientificName"
	FieldAcceptedNameUsage = "acceptedNameUsage"
	FieldAccepted          = "accepted"
	FieldAuthorship        = "authorship"
	FieldKingdom           = "kingdom"
)

func (r *RawRecord) stringFields() map[string]**string {
	return map[string]**string{
		FieldCanonicalName:     &r.CanonicalName,
		FieldScientificName:    &r.ScientificName,
		FieldAcceptedNameUsage: &r.AcceptedNameUsage,
		FieldAccepted:          &r.Accepted,
		FieldAuthorship:        &r.Authorship,
		FieldKingdom:           &r.Kingdom,
	}
}

func (r *RawRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}

	*r = RawRecord{}
	known := r.stringFields()

	for name, value := range raw {
		if isNull(value) {
			continue
		}

		if name == FieldKey {
			if key, ok := parseKey(value); ok {
				r.Key = &key
				continue
			}
		} else if target, ok := known[name]; ok {
			var s string
			if err := json.Unmarshal(value, &s); err == nil {
				*target = &s
				continue
			}
		}

		// Unknown field, or a known one with an unexpected type.
		r.SetExtra(name, value)
	}

	return nil
}

func (r RawRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage)
	for _, f := range r.Fields() {
		out[f.Name] = f.Value
	}
	return json.Marshal(out)
}

// SetExtra stores a field that has no typed counterpart.
func (r *RawRecord) SetExtra(name string, value json.RawMessage) {
	if r.Extra == nil {
		r.Extra = make(map[string]json.RawMessage)
	}
	r.Extra[name] = value
}

// Fields returns every present field sorted by name, with values compacted.
func (r RawRecord) Fields() []Field {
	fields := make([]Field, 0, len(r.Extra)+7)

	if r.Key != nil {
		fields = append(fields, Field{Name: FieldKey, Value: json.RawMessage(strconv.FormatInt(*r.Key, 10))})
	}
	for name, target := range r.stringFields() {
		if *target == nil {
			continue
		}
		b, _ := json.Marshal(**target)
		fields = append(fields, Field{Name: name, Value: b})
	}
	for name, value := range r.Extra {
		fields = append(fields, Field{Name: name, Value: compact(value)})
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields
}

// IdentityKey derives the grouping key of the record.
func (r RawRecord) IdentityKey() IdentityKey {
	return IdentityKey{
		Name:         firstOf(r.CanonicalName, r.ScientificName, ""),
		AcceptedName: firstOf(r.AcceptedNameUsage, r.Accepted, ""),
		Authority:    firstOf(r.Authorship, nil, UnknownAuthority),
		Kingdom:      firstOf(r.Kingdom, nil, DefaultKingdom),
	}
}

// HasName reports whether the scientific or canonical name equals name exactly.
func (r RawRecord) HasName(name string) bool {
	return (r.ScientificName != nil && *r.ScientificName == name) ||
		(r.CanonicalName != nil && *r.CanonicalName == name)
}

func firstOf(a, b *string, fallback string) string {
	if a != nil {
		return *a
	}
	if b != nil {
		return *b
	}
	return fallback
}

func parseKey(value json.RawMessage) (int64, bool) {
	var n int64
	if err := json.Unmarshal(value, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func isNull(value json.RawMessage) bool {
	return string(compact(value)) == "null"
}

func compact(value json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, value); err != nil {
		return value
	}
	return json.RawMessage(buf.Bytes())
}
