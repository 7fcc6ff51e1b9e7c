package weights

import (
	"github.com/ritzau/pivot-slicer/pkg/keys"
	"github.com/ritzau/pivot-slicer/pkg/model"
)

// related ranks nodes linked to any selected node. Each item and section
// records the contribution of every selected node.
func (g *generator) related() {
	implicit := g.in.Data.Format == model.FormatImplicitLinks

	for _, nodeType := range g.relatedTypes(implicit) {
		contributions := make(map[string]float64, len(g.in.Selected))

		for _, target := range g.relatedTargets(nodeType, implicit) {
			item := model.NewWeight(target, 0)
			for _, s := range g.in.Selected {
				c, ok := g.linkStrength(s, nodeType, target, implicit)
				if !ok {
					continue
				}
				item.Weight += c
				item.Components[s.Key] = c
				item.Colors[s.Key] = g.color(s.Key)
				contributions[s.Key] += c
			}
			if item.Weight > 0 {
				g.addItem(nodeType, item)
			}
		}

		g.contributedSection(nodeType, contributions)
	}
}

// cooccurrence ranks nodes linked to every selected node
func (g *generator) cooccurrence() {
	switch g.in.Data.Format {
	case model.FormatImplicitLinks:
		g.implicitCooccurrence()
	case model.FormatExplicitLinks:
		g.explicitCooccurrence()
	}
}

// implicitCooccurrence counts the objects a candidate shares with all
// selected nodes
func (g *generator) implicitCooccurrence() {
	mutual := g.mutualObjects()

	for _, nodeType := range g.in.Data.NodeTypes() {
		section := model.NewWeight(nodeType, 0)
		for _, node := range g.in.Data.NodesOfType(nodeType) {
			if g.isSelected(node) {
				continue
			}
			count := float64(len(mutual.Intersect(node.LinkingObjects)))
			if count > 0 {
				g.addItem(nodeType, model.NewWeight(node.Key, count))
				section.Weight += count
			}
		}
		if section.Weight > 0 {
			g.setSection(section)
		}
	}
}

// explicitCooccurrence sums the edge weights of candidates linked to all
// selected nodes in the current direction
func (g *generator) explicitCooccurrence() {
	mutual := g.mutualLinks()

	for _, nodeType := range g.in.Data.NodeTypes() {
		contributions := make(map[string]float64, len(g.in.Selected))

		for _, node := range g.in.Data.NodesOfType(nodeType) {
			if !mutual.Has(node.Key) {
				continue
			}
			item := model.NewWeight(node.Key, 0)
			for _, s := range g.in.Selected {
				c := s.LinkWeight(g.in.Outbound, nodeType, node.Key)
				item.Weight += c
				item.Components[s.Key] = c
				item.Colors[s.Key] = g.color(s.Key)
				contributions[s.Key] += c
			}
			if item.Weight > 0 {
				g.addItem(nodeType, item)
			}
		}

		g.contributedSection(nodeType, contributions)
	}
}

// contributedSection stores a section whose weight is broken down by selected node
func (g *generator) contributedSection(nodeType string, contributions map[string]float64) {
	section := model.NewWeight(nodeType, 0)
	for _, s := range g.in.Selected {
		c := contributions[s.Key]
		section.Weight += c
		section.Components[s.Key] = c
		section.Colors[s.Key] = g.color(s.Key)
	}
	if section.Weight > 0 {
		g.setSection(section)
	}
}

// relatedTypes returns the node types any selected node links to
func (g *generator) relatedTypes(implicit bool) []string {
	types := make(model.StringSet)
	for _, s := range g.in.Selected {
		if implicit {
			for t := range s.LinkedNodes {
				types.Add(t)
			}
		} else {
			for t := range s.ExplicitLinks(g.in.Outbound) {
				types.Add(t)
			}
		}
	}
	return types.Sorted()
}

// relatedTargets returns the keys of a type linked to any selected node
func (g *generator) relatedTargets(nodeType string, implicit bool) []string {
	targets := make(model.StringSet)
	for _, s := range g.in.Selected {
		if implicit {
			for key := range s.LinkedNodes[nodeType] {
				targets.Add(key)
			}
		} else {
			for key := range s.ExplicitLinks(g.in.Outbound)[nodeType] {
				targets.Add(key)
			}
		}
	}
	return targets.Sorted()
}

// linkStrength is the number of shared objects (implicit) or the edge
// weight (explicit) between a selected node and a target
func (g *generator) linkStrength(s *model.Node, nodeType, target string, implicit bool) (float64, bool) {
	if implicit {
		objects, ok := s.LinkedNodes[nodeType][target]
		return float64(len(objects)), ok
	}
	w, ok := s.ExplicitLinks(g.in.Outbound)[nodeType][target]
	return w, ok
}

// mutualObjects intersects the linking objects of all selected nodes
func (g *generator) mutualObjects() model.StringSet {
	if len(g.in.Selected) == 0 {
		return make(model.StringSet)
	}
	mutual := g.in.Selected[0].LinkingObjects
	for _, s := range g.in.Selected[1:] {
		mutual = mutual.Intersect(s.LinkingObjects)
	}
	return mutual
}

// mutualLinks intersects the linked keys of all selected nodes
func (g *generator) mutualLinks() model.StringSet {
	if len(g.in.Selected) == 0 {
		return make(model.StringSet)
	}
	mutual := g.in.Selected[0].LinkedKeys(g.in.Outbound)
	for _, s := range g.in.Selected[1:] {
		mutual = mutual.Intersect(s.LinkedKeys(g.in.Outbound))
	}
	return mutual
}

// mutualLinkWeight sums the weights from node to every mutual link
func (g *generator) mutualLinkWeight(node *model.Node, mutual model.StringSet) float64 {
	var sum float64
	for _, key := range mutual.Sorted() {
		sum += node.LinkWeight(g.in.Outbound, keys.Type(key), key)
	}
	return sum
}
