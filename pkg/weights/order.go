package weights

import (
	"sort"

	"github.com/ritzau/pivot-slicer/pkg/model"
)

// sortWeights orders weights descending, ties by ascending key
func sortWeights(ws []model.Weight) {
	sort.SliceStable(ws, func(i, j int) bool {
		if ws[i].Weight != ws[j].Weight {
			return ws[i].Weight > ws[j].Weight
		}
		return ws[i].TargetKey < ws[j].TargetKey
	})
}

// order sorts the items of every section and the sections themselves
func (g *generator) order(mode Mode) {
	for _, items := range g.out.ItemWeights {
		sortWeights(items)
	}

	sections := make([]string, 0, len(g.out.SectionWeights))
	for section := range g.out.SectionWeights {
		sections = append(sections, section)
	}

	if mode == ModeAttributes {
		g.out.SectionOrder = g.attributeOrder(sections)
		return
	}

	sort.Slice(sections, g.sectionLess(sections))
	g.out.SectionOrder = sections
}

// attributeOrder puts the combined section first, then the attributes in
// their column order
func (g *generator) attributeOrder(sections []string) []string {
	present := model.NewStringSet(sections...)
	order := make([]string, 0, len(sections))
	if present.Has(model.CombinedAttributesLabel) {
		order = append(order, model.CombinedAttributesLabel)
	}
	for _, attribute := range g.in.Data.Attributes {
		if present.Has(attribute) {
			order = append(order, attribute)
		}
	}
	return order
}

// sectionLess implements the configured section ordering policy. Ties fall
// back to ascending names.
func (g *generator) sectionLess(sections []string) func(i, j int) bool {
	return func(i, j int) bool {
		a, b := sections[i], sections[j]
		switch g.in.Settings.SectionOrder {
		case model.OrderItemValues:
			wa, wb := g.out.SectionWeights[a].Weight, g.out.SectionWeights[b].Weight
			if wa != wb {
				return wa > wb
			}
		case model.OrderItemCounts:
			ca, cb := len(g.out.ItemWeights[a]), len(g.out.ItemWeights[b])
			if ca != cb {
				return ca > cb
			}
		case model.OrderNamesDescending:
			return a > b
		}
		return a < b
	}
}
