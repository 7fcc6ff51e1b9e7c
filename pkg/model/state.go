package model

import "maps"

const (
	// SectionAll marks that no section is expanded
	SectionAll = "All"
	// ToggleAllKey is the key of the pin toggling every other pin
	ToggleAllKey = "ALL"
	// DefaultTypeLabel is the node type used when no NODE_TYPE is bound
	DefaultTypeLabel = "Item"
	// CombinedAttributesLabel names the synthetic section summing all attributes
	CombinedAttributesLabel = "combined sum"
)

// ActiveNode is a pinned or active node
type ActiveNode struct {
	Key      string `json:"key"`
	Color    string `json:"color"`
	Selected bool   `json:"selected"`
}

// ChartState is the interaction state of the chart. It is persisted by the
// host as an opaque JSON string.
type ChartState struct {
	SelectedSection  string             `json:"selectedSection"`
	PinnedNodes      []ActiveNode       `json:"pinnedNodes"`
	ActiveNode       *ActiveNode        `json:"activeNode"`
	TogglePin        ActiveNode         `json:"togglePin"`
	View             DataView           `json:"view"`
	AttributeWeights map[string]float64 `json:"attributeWeights"`
}

// DefaultState returns the state used on first load
func DefaultState() ChartState {
	return ChartState{
		SelectedSection:  SectionAll,
		PinnedNodes:      []ActiveNode{},
		TogglePin:        ActiveNode{Key: ToggleAllKey},
		AttributeWeights: map[string]float64{},
	}
}

// Clone returns a deep copy
func (s ChartState) Clone() ChartState {
	c := s
	c.PinnedNodes = append([]ActiveNode{}, s.PinnedNodes...)
	if s.ActiveNode != nil {
		active := *s.ActiveNode
		c.ActiveNode = &active
	}
	c.AttributeWeights = make(map[string]float64, len(s.AttributeWeights))
	maps.Copy(c.AttributeWeights, s.AttributeWeights)
	return c
}

// Equal compares two states deeply. Pin order matters, map order does not.
func (s ChartState) Equal(o ChartState) bool {
	if s.SelectedSection != o.SelectedSection || s.View != o.View || s.TogglePin != o.TogglePin {
		return false
	}
	if (s.ActiveNode == nil) != (o.ActiveNode == nil) {
		return false
	}
	if s.ActiveNode != nil && *s.ActiveNode != *o.ActiveNode {
		return false
	}
	if len(s.PinnedNodes) != len(o.PinnedNodes) {
		return false
	}
	for i := range s.PinnedNodes {
		if s.PinnedNodes[i] != o.PinnedNodes[i] {
			return false
		}
	}
	return maps.Equal(s.AttributeWeights, o.AttributeWeights)
}

// AttributeWeight returns the multiplier of an attribute, 1 when unset
func (s ChartState) AttributeWeight(attribute string) float64 {
	if w, ok := s.AttributeWeights[attribute]; ok {
		return w
	}
	return 1
}

// Pin returns the index of the pin with the given key, or -1
func (s ChartState) Pin(key string) int {
	for i, p := range s.PinnedNodes {
		if p.Key == key {
			return i
		}
	}
	return -1
}

// SelectedNodes returns the selected pins followed by the active node
func (s ChartState) SelectedNodes() []ActiveNode {
	var selected []ActiveNode
	for _, p := range s.PinnedNodes {
		if p.Selected {
			selected = append(selected, p)
		}
	}
	if s.ActiveNode != nil {
		selected = append(selected, *s.ActiveNode)
	}
	return selected
}

// AllPinsSelected is the selected flag of the toggle pin
func (s ChartState) AllPinsSelected() bool {
	for _, p := range s.PinnedNodes {
		if !p.Selected {
			return false
		}
	}
	return true
}
