package weights

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/ritzau/pivot-slicer/pkg/colors"
	"github.com/ritzau/pivot-slicer/pkg/model"
)

// DisabledLabel is shown for attributes whose multiplier is zero
const DisabledLabel = "—"

// attributeRange is the min and max of an attribute across all nodes
type attributeRange struct {
	min, max float64
}

// normalize maps value linearly to [0,1]. A negative multiplier reverses
// the direction and a degenerate range yields 1.
func (r attributeRange) normalize(value, multiplier float64) float64 {
	span := r.max - r.min
	if span == 0 {
		return 1
	}
	p := (r.max - value) / span
	if multiplier >= 0 {
		p = 1 - p
	}
	if math.IsNaN(p) {
		return 1
	}
	return p
}

// AttributeColors assigns each attribute its color, in attribute order
func AttributeColors(settings model.Settings, attributes []string) map[string]string {
	out := make(map[string]string, len(attributes))
	for i, attribute := range attributes {
		out[attribute] = colors.AttributeColor(settings.BookmarkColor, settings.BookmarkLightness, i)
	}
	return out
}

// attributes ranks every node once per attribute. With more than one
// attribute a combined section sums the weighted normalized values.
func (g *generator) attributes() {
	data := g.in.Data
	attributeColors := AttributeColors(g.in.Settings, data.Attributes)
	nodes := data.SortedNodes()

	ranges := make(map[string]attributeRange, len(data.Attributes))
	for _, attribute := range data.Attributes {
		var values []float64
		for _, node := range nodes {
			if v, ok := node.Attributes[attribute]; ok {
				values = append(values, v)
			}
		}
		if len(values) > 0 {
			ranges[attribute] = attributeRange{min: floats.Min(values), max: floats.Max(values)}
		}
	}

	// attribute -> node key -> normalized weight
	normalized := make(map[string]map[string]float64, len(data.Attributes))

	for _, attribute := range data.Attributes {
		normalized[attribute] = make(map[string]float64)
		multiplier := g.in.State.AttributeWeight(attribute)

		for _, node := range nodes {
			value, ok := node.Attributes[attribute]
			if !ok {
				continue
			}

			item := model.NewWeight(node.Key, 0)
			if multiplier == 0 {
				item.DisplayLabel = DisabledLabel
			} else {
				item.Weight = ranges[attribute].normalize(value, multiplier)
				item.DisplayLabel = fmt.Sprintf("%s (%.2f)", FormatValue(value), item.Weight)
			}
			item.Components[attribute] = item.Weight
			item.Colors[attribute] = attributeColors[attribute]

			normalized[attribute][node.Key] = item.Weight
			g.addItem(attribute, item)
		}
	}

	if len(data.Attributes) > 1 {
		for _, node := range nodes {
			item := model.NewWeight(node.Key, 0)
			for _, attribute := range data.Attributes {
				w, ok := normalized[attribute][node.Key]
				if !ok {
					continue
				}
				delta := math.Abs(g.in.State.AttributeWeight(attribute)) * w
				item.Weight += delta
				item.Components[attribute] = delta
				item.Colors[attribute] = attributeColors[attribute]
			}
			item.DisplayLabel = fmt.Sprintf("%.2f", item.Weight)
			g.addItem(model.CombinedAttributesLabel, item)
		}
	}

	for section, items := range g.out.ItemWeights {
		sum := make([]float64, len(items))
		for i, item := range items {
			sum[i] = item.Weight
		}
		g.setSection(model.NewWeight(section, floats.Sum(sum)))
	}
}

// FormatValue renders an attribute value: whole numbers (or within 1% of
// one) without decimals, small values with two significant digits and
// everything else with two decimals
func FormatValue(v float64) string {
	r := math.Round(v)
	if r == v || (v != 0 && math.Abs(r-v)/math.Abs(v) < 0.01) {
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
	if v < 1 {
		return strconv.FormatFloat(v, 'g', 2, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
