// Package weights ranks sections and items for one state of the chart.
//
// Generate is a pure function of its Input: the chart data and state are
// only read, and every call returns a freshly built AllWeights.
package weights

import (
	"github.com/ritzau/pivot-slicer/pkg/logging"
	"github.com/ritzau/pivot-slicer/pkg/model"
)

// Mode is the ranking algorithm used for the sections and items
type Mode int

const (
	// ModeTop ranks every node by its own occurrence or edge weight
	ModeTop Mode = iota
	// ModeRelated ranks nodes related to any selected node
	ModeRelated
	// ModeCooccurrence ranks nodes related to all selected nodes
	ModeCooccurrence
	// ModeAttributes ranks nodes by normalized attribute values
	ModeAttributes
)

func (m Mode) String() string {
	switch m {
	case ModeTop:
		return "top"
	case ModeRelated:
		return "related"
	case ModeCooccurrence:
		return "cooccurrence"
	case ModeAttributes:
		return "attributes"
	default:
		return "unknown"
	}
}

// Input is everything a ranking depends on
type Input struct {
	Settings model.Settings
	State    model.ChartState
	Data     *model.ChartData
	// Selected holds the selected pins and the active node
	Selected              []*model.Node
	CountingCooccurrences bool
	Outbound              bool
	ShowRelated           bool
	// NodeColors maps selected node keys to their pin colors
	NodeColors map[string]string
}

// SelectMode picks the ranking algorithm, first match wins
func SelectMode(in Input) Mode {
	switch {
	case len(in.Data.Attributes) > 0 && in.State.View.IsAttribute():
		return ModeAttributes
	case len(in.Selected) == 0 || in.Data.Format.IsRankedList() || !in.ShowRelated:
		return ModeTop
	case in.CountingCooccurrences:
		return ModeCooccurrence
	default:
		return ModeRelated
	}
}

// generator collects the result of one Generate call
type generator struct {
	in  Input
	out *model.AllWeights
}

// Generate computes all section, item, selected item and family weights
func Generate(in Input) *model.AllWeights {
	out := model.NewAllWeights()
	if in.Data == nil || !in.Data.Loaded() {
		return out
	}

	g := &generator{in: in, out: out}
	mode := SelectMode(in)
	switch mode {
	case ModeAttributes:
		g.attributes()
	case ModeTop:
		g.top()
	case ModeCooccurrence:
		g.cooccurrence()
	case ModeRelated:
		g.related()
	}

	g.selectedItems()
	g.families()
	g.order(mode)

	logging.Trace("generated weights",
		"mode", mode.String(),
		"selected", len(in.Selected),
		"sections", len(out.SectionOrder))

	return out
}

// color returns the pin color of a selected node
func (g *generator) color(key string) string {
	return g.in.NodeColors[key]
}

// isSelected reports whether node is one of the selected nodes
func (g *generator) isSelected(node *model.Node) bool {
	for _, s := range g.in.Selected {
		if s.Key == node.Key {
			return true
		}
	}
	return false
}

// addItem appends an item to a section and tracks the section maximum
func (g *generator) addItem(section string, w model.Weight) {
	g.out.ItemWeights[section] = append(g.out.ItemWeights[section], w)
	if w.Weight > g.out.SectionMaxItemWeights[section] {
		g.out.SectionMaxItemWeights[section] = w.Weight
	}
}

// setSection stores a section weight and tracks the overall maximum
func (g *generator) setSection(w model.Weight) {
	g.out.SectionWeights[w.TargetKey] = w
	if w.Weight > g.out.MaxSectionWeight {
		g.out.MaxSectionWeight = w.Weight
	}
}

// NodeWeight is the raw occurrence weight of a node: the number of linking
// objects for implicit links, the summed edge weight in the given direction
// for explicit links and 0 for ranked lists
func NodeWeight(node *model.Node, format model.DataFormat, outbound bool) float64 {
	switch format {
	case model.FormatImplicitLinks:
		return float64(len(node.LinkingObjects))
	case model.FormatExplicitLinks:
		var sum float64
		for _, targets := range node.ExplicitLinks(outbound) {
			for _, w := range targets {
				sum += w
			}
		}
		return sum
	default:
		return 0
	}
}
