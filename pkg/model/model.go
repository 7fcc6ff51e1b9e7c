package model

import "sort"

// DataFormat describes how the bound columns are interpreted
type DataFormat string

const (
	FormatUnknown       DataFormat = "Unknown"
	FormatRankedLabels  DataFormat = "Ranked Labels"
	FormatRankedValues  DataFormat = "Ranked Values"
	FormatImplicitLinks DataFormat = "Implicit Links"
	FormatExplicitLinks DataFormat = "Explicit Links"
)

// IsRankedList returns true for formats without any links between nodes
func (f DataFormat) IsRankedList() bool {
	return f == FormatRankedLabels || f == FormatRankedValues
}

// Role is the data role a host column is bound to
type Role string

const (
	RoleNode            Role = "NODE"
	RoleNodeType        Role = "NODE_TYPE"
	RoleNodeLinker      Role = "NODE_LINKER"
	RoleLinkedNode      Role = "LINKED_NODE"
	RoleLinkedNodeType  Role = "LINKED_NODE_TYPE"
	RoleLinkWeight      Role = "LINK_WEIGHT"
	RoleFilterKey       Role = "FILTER_KEY"
	RoleLinkedFilterKey Role = "LINKED_FILTER_KEY"
	RoleNodeAttributes  Role = "NODE_ATTRIBUTES"
)

// SingleRoles are the roles resolved to at most one column
var SingleRoles = []Role{
	RoleNode,
	RoleNodeType,
	RoleNodeLinker,
	RoleLinkedNode,
	RoleLinkedNodeType,
	RoleLinkWeight,
	RoleFilterKey,
	RoleLinkedFilterKey,
}

// Column describes a bound host column
type Column struct {
	DisplayName string `json:"displayName"`
	Table       string `json:"table"`
	Roles       []Role `json:"roles"`
}

// HasRole reports whether the column is bound to the given role
func (c Column) HasRole(role Role) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// SelectionID is an opaque row identifier produced by the host. Identifiers
// are compared by value.
type SelectionID string

// SelectionSet is a set of selection ids
type SelectionSet map[SelectionID]struct{}

// Add inserts ids into the set
func (s SelectionSet) Add(ids ...SelectionID) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// AddAll inserts every id of other into the set
func (s SelectionSet) AddAll(other SelectionSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Has reports whether id is in the set
func (s SelectionSet) Has(id SelectionID) bool {
	_, ok := s[id]
	return ok
}

// Equal reports whether both sets hold the same ids. Nil and empty sets are equal.
func (s SelectionSet) Equal(other SelectionSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Sorted returns the ids in ascending order
func (s SelectionSet) Sorted() []SelectionID {
	ids := make([]SelectionID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// StringSet is a set of strings
type StringSet map[string]struct{}

// NewStringSet creates a set holding values
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts a value
func (s StringSet) Add(v string) {
	s[v] = struct{}{}
}

// Has reports whether v is in the set
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Intersect returns the values present in both sets
func (s StringSet) Intersect(other StringSet) StringSet {
	out := make(StringSet)
	for v := range s {
		if other.Has(v) {
			out[v] = struct{}{}
		}
	}
	return out
}

// Sorted returns the values in ascending order
func (s StringSet) Sorted() []string {
	values := make([]string, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
