package model

import (
	"cmp"
	"fmt"
)

// Placeholders used when a record lacks the corresponding field.
const (
	UnknownAuthority = "unknown"
	DefaultKingdom   = "Life"
)

// IdentityKey groups records that describe the same taxonomic concept for a
// single query.
type IdentityKey struct {
	Name         string
	AcceptedName string
	Authority    string
	Kingdom      string
}

// Compare orders keys lexicographically, component by component.
func (k IdentityKey) Compare(o IdentityKey) int {
	if c := cmp.Compare(k.Name, o.Name); c != 0 {
		return c
	}
	if c := cmp.Compare(k.AcceptedName, o.AcceptedName); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Authority, o.Authority); c != 0 {
		return c
	}
	return cmp.Compare(k.Kingdom, o.Kingdom)
}

// DisplayName renders "<name> <authority> [=> <accepted>] (<kingdom>)",
// omitting empty parts and the unknown-authority placeholder.
func (k IdentityKey) DisplayName() string {
	name := k.Name
	if k.Authority != "" && k.Authority != UnknownAuthority {
		name += " " + k.Authority
	}
	if k.AcceptedName != "" {
		name += fmt.Sprintf(" [=> %s]", k.AcceptedName)
	}
	return name + fmt.Sprintf(" (%s)", k.Kingdom)
}
