// Package filter turns the interaction state into instructions for the
// host: either a set of row selection ids or a declarative column filter.
package filter

import (
	"slices"

	"github.com/ritzau/pivot-slicer/pkg/logging"
	"github.com/ritzau/pivot-slicer/pkg/model"
)

// OperatorIn is the only filter operator produced
const OperatorIn = "In"

// Target identifies the filtered host column
type Target struct {
	Table  string `json:"table"`
	Column string `json:"column"`
}

// BasicFilter keeps the rows whose target column holds one of Values
type BasicFilter struct {
	Target   Target   `json:"target"`
	Operator string   `json:"operator"`
	Values   []string `json:"values"`
}

// Equal compares two filters by value. Nil filters are equal.
func (f *BasicFilter) Equal(o *BasicFilter) bool {
	if f == nil || o == nil {
		return f == o
	}
	return f.Target == o.Target && f.Operator == o.Operator && slices.Equal(f.Values, o.Values)
}

// Instruction holds exactly one of SelectionIDs or Filter. A nil Filter
// means the selection ids apply, an empty set clearing the selection.
type Instruction struct {
	SelectionIDs model.SelectionSet `json:"-"`
	Filter       *BasicFilter       `json:"filter,omitempty"`
}

// IsFilter reports whether the instruction is a column filter
func (i Instruction) IsFilter() bool {
	return i.Filter != nil
}

// Translate derives the host instruction for the selected pins and active
// node of state
func Translate(state model.ChartState, data *model.ChartData) Instruction {
	var nodes []*model.Node
	for _, a := range state.SelectedNodes() {
		if node, ok := data.Node(a.Key); ok {
			nodes = append(nodes, node)
		}
	}

	var instr Instruction
	if state.View.CountsCooccurrences() {
		instr = Instruction{SelectionIDs: mutualSelections(data, nodes, !state.View.IsInbound())}
	} else {
		instr = filterOrSelection(data, state.View, nodes)
	}

	logging.Trace("translated state",
		"view", string(state.View),
		"selected", len(nodes),
		"filter", instr.IsFilter(),
		"selectionIds", len(instr.SelectionIDs))

	return instr
}

// filterOrSelection prefers a column filter over raw selection ids. Without
// explicit links, nodes sharing a name across types cannot be told apart by a
// single filter value.
func filterOrSelection(data *model.ChartData, view model.DataView, nodes []*model.Node) Instruction {
	ambiguous := data.Format != model.FormatExplicitLinks && slices.ContainsFunc(nodes, func(n *model.Node) bool {
		return len(n.Family) > 1
	})
	if ambiguous {
		ids := make(model.SelectionSet)
		for _, n := range nodes {
			ids.AddAll(n.SelectionIDs)
		}
		return Instruction{SelectionIDs: ids}
	}

	filterCol, keyCol := filterColumn(data, view)
	valueCol := data.Column(model.RoleNode)
	if filterCol < 0 || filterCol >= len(data.Sources) || valueCol < 0 || len(nodes) == 0 {
		return Instruction{SelectionIDs: make(model.SelectionSet)}
	}

	values := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if keyCol && n.FilterKey != "" {
			values = append(values, n.FilterKey)
		} else {
			values = append(values, n.Name)
		}
	}

	return Instruction{Filter: &BasicFilter{
		Target: Target{
			Table:  data.Sources[valueCol].Table,
			Column: data.Sources[filterCol].DisplayName,
		},
		Operator: OperatorIn,
		Values:   values,
	}}
}

// filterColumn picks the column to filter on for the current link
// direction, preferring the dedicated filter key columns. Explicit views
// without a direction filter on node names. keyCol reports whether the
// chosen column holds filter keys rather than names.
func filterColumn(data *model.ChartData, view model.DataView) (idx int, keyCol bool) {
	source := data.Column(model.RoleNode)
	sourceKey := data.Column(model.RoleFilterKey)

	if data.Format == model.FormatExplicitLinks {
		switch {
		case view.IsInbound():
			target := data.Column(model.RoleLinkedNode)
			targetKey := data.Column(model.RoleLinkedFilterKey)
			if targetKey >= 0 {
				return targetKey, true
			}
			return target, false
		case !view.IsOutbound():
			return source, false
		}
	}

	if sourceKey >= 0 {
		return sourceKey, true
	}
	return source, false
}

// mutualSelections collects the selection ids of what all nodes share:
// the rows of their common explicit links, or the rows of the nodes on
// their common linking objects
func mutualSelections(data *model.ChartData, nodes []*model.Node, outbound bool) model.SelectionSet {
	ids := make(model.SelectionSet)
	if len(nodes) == 0 {
		return ids
	}

	switch data.Format {
	case model.FormatExplicitLinks:
		links := nodes[0].LinkedKeys(outbound)
		for _, n := range nodes[1:] {
			links = links.Intersect(n.LinkedKeys(outbound))
		}
		for _, n := range nodes {
			linkIDs := n.LinkSelectionIDs(outbound)
			for link := range links {
				if id, ok := linkIDs[link]; ok {
					ids.Add(id)
				}
			}
		}

	case model.FormatImplicitLinks:
		objects := nodes[0].LinkingObjects
		for _, n := range nodes[1:] {
			objects = objects.Intersect(n.LinkingObjects)
		}
		for object := range objects {
			for _, n := range nodes {
				ids.AddAll(data.ObjectSelections[object][n.Key])
			}
		}
	}

	return ids
}
