package weights

import (
	"sort"

	"github.com/ritzau/pivot-slicer/pkg/model"
)

// selectedItems weighs the selected nodes themselves for the summary list
func (g *generator) selectedItems() {
	if len(g.in.Selected) == 0 {
		return
	}

	attributeView := g.in.State.View.IsAttribute()
	var mutualObjects, mutualLinks model.StringSet
	if g.in.CountingCooccurrences {
		mutualObjects = g.mutualObjects()
		mutualLinks = g.mutualLinks()
	}

	for _, node := range g.in.Selected {
		var w model.Weight
		if attributeView {
			w = g.selectedAttributeWeight(node)
		} else {
			w = model.NewWeight(node.Key, g.selectedWeight(node, mutualObjects, mutualLinks))
			w.Components[node.Key] = w.Weight
		}
		w.Colors[node.Key] = g.color(node.Key)
		g.out.SelectedItemWeights = append(g.out.SelectedItemWeights, w)
	}

	sortWeights(g.out.SelectedItemWeights)
}

// selectedAttributeWeight picks the node's weight from the expanded
// attribute section, the only attribute or the combined section
func (g *generator) selectedAttributeWeight(node *model.Node) model.Weight {
	section := ""
	selected := g.in.State.SelectedSection
	switch {
	case selected != model.SectionAll && selected != model.CombinedAttributesLabel:
		section = selected
	case len(g.in.Data.Attributes) == 1:
		section = g.in.Data.Attributes[0]
	case len(g.in.Data.Attributes) > 1:
		section = model.CombinedAttributesLabel
	}

	if w, ok := g.out.Item(section, node.Key); ok {
		return w.Clone()
	}
	return model.NewWeight(node.Key, 0)
}

// selectedWeight is the occurrence weight of a selected node, restricted
// to what it shares with the other selected nodes when counting cooccurrences
func (g *generator) selectedWeight(node *model.Node, mutualObjects, mutualLinks model.StringSet) float64 {
	switch g.in.Data.Format {
	case model.FormatImplicitLinks:
		if g.in.CountingCooccurrences {
			return float64(len(mutualObjects))
		}
		return float64(len(node.LinkingObjects))
	case model.FormatExplicitLinks:
		if g.in.CountingCooccurrences {
			return g.mutualLinkWeight(node, mutualLinks)
		}
		return NodeWeight(node, model.FormatExplicitLinks, g.in.Outbound)
	default:
		return 0
	}
}

// families weighs the node families of the selected nodes
func (g *generator) families() {
	unique := make(map[string]*model.Node)
	for _, node := range g.in.Selected {
		unique[node.Name] = node
	}

	for name, node := range unique {
		if len(node.Family) <= 1 {
			continue
		}

		items := make([]model.Weight, 0, len(node.Family))
		var total float64
		for _, key := range node.Family {
			member, ok := g.in.Data.Node(key)
			if !ok {
				continue
			}
			w := NodeWeight(member, g.in.Data.Format, g.in.Outbound)
			items = append(items, model.NewWeight(key, w))
			total += w
		}

		g.out.FamilyItemWeights[name] = items
		g.out.FamilyWeights[name] = total
		g.out.FamilyOrder = append(g.out.FamilyOrder, name)
	}

	sort.Slice(g.out.FamilyOrder, func(i, j int) bool {
		a, b := g.out.FamilyOrder[i], g.out.FamilyOrder[j]
		if g.out.FamilyWeights[a] != g.out.FamilyWeights[b] {
			return g.out.FamilyWeights[a] > g.out.FamilyWeights[b]
		}
		return a < b
	})
}
