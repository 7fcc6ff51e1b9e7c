package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupportedViews(t *testing.T) {
	tests := []struct {
		name          string
		format        DataFormat
		hasAttributes bool
		allowPinning  bool
		expected      []DataView
	}{
		{"ranked labels", FormatRankedLabels, false, true, []DataView{ViewItems}},
		{"ranked values", FormatRankedValues, true, true, []DataView{ViewItems, ViewRankedAttributes}},
		{"implicit", FormatImplicitLinks, false, true, []DataView{ViewLinks, ViewJointLinks}},
		{"implicit no pinning", FormatImplicitLinks, true, false, []DataView{ViewLinks, ViewImplicitAttributes}},
		{"explicit", FormatExplicitLinks, true, true, []DataView{
			ViewOutLinks, ViewInLinks, ViewJointOutLinks, ViewJointInLinks, ViewExplicitAttributes,
		}},
		{"unknown", FormatUnknown, false, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SupportedViews(tt.format, tt.hasAttributes, tt.allowPinning))
		})
	}
}

func TestViewOptionsCollapseAttributes(t *testing.T) {
	options := ViewOptions(FormatExplicitLinks, true, false)
	assert.Equal(t, []string{"OUT LINKS", "IN LINKS", AttributesOption}, options)
	assert.Equal(t, ViewExplicitAttributes, ViewForOption(FormatExplicitLinks, AttributesOption))
	assert.Equal(t, ViewImplicitAttributes, ViewForOption(FormatImplicitLinks, AttributesOption))
	assert.Equal(t, ViewRankedAttributes, ViewForOption(FormatRankedLabels, AttributesOption))
	assert.Equal(t, ViewInLinks, ViewForOption(FormatExplicitLinks, "IN LINKS"))
}

func TestViewPredicates(t *testing.T) {
	assert.True(t, ViewJointOutLinks.CountsCooccurrences())
	assert.True(t, ViewJointOutLinks.IsOutbound())
	assert.False(t, ViewJointOutLinks.IsInbound())
	assert.True(t, ViewInLinks.IsInbound())
	assert.True(t, ViewImplicitAttributes.IsAttribute())
	assert.False(t, ViewLinks.IsAttribute())
	assert.True(t, ViewLinks.IsImplicit())
}

func TestStateCloneIsDeep(t *testing.T) {
	s := DefaultState()
	s.PinnedNodes = append(s.PinnedNodes, ActiveNode{Key: "a", Selected: true})
	s.ActiveNode = &ActiveNode{Key: "b"}
	s.AttributeWeights["age"] = 2

	c := s.Clone()
	c.PinnedNodes[0].Selected = false
	c.ActiveNode.Key = "c"
	c.AttributeWeights["age"] = 3

	assert.True(t, s.PinnedNodes[0].Selected)
	assert.Equal(t, "b", s.ActiveNode.Key)
	assert.Equal(t, 2.0, s.AttributeWeights["age"])
	assert.False(t, s.Equal(c))
}

func TestStateEqualIgnoresMapOrder(t *testing.T) {
	a := DefaultState()
	a.AttributeWeights = map[string]float64{"x": 1, "y": 2}
	b := DefaultState()
	b.AttributeWeights = map[string]float64{"y": 2, "x": 1}
	assert.True(t, a.Equal(b))

	b.ActiveNode = &ActiveNode{Key: "k"}
	assert.False(t, a.Equal(b))
}

func TestAttributeWeightDefault(t *testing.T) {
	s := DefaultState()
	assert.Equal(t, 1.0, s.AttributeWeight("missing"))
	s.AttributeWeights["set"] = -0.5
	assert.Equal(t, -0.5, s.AttributeWeight("set"))
}

func TestSelectionSetEqual(t *testing.T) {
	var empty SelectionSet
	assert.True(t, empty.Equal(SelectionSet{}))

	a := SelectionSet{}
	a.Add("1", "2")
	b := SelectionSet{}
	b.Add("2", "1")
	assert.True(t, a.Equal(b))
	assert.Equal(t, []SelectionID{"1", "2"}, a.Sorted())

	b.Add("3")
	assert.False(t, a.Equal(b))
}
