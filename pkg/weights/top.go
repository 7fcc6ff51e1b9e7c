package weights

import "github.com/ritzau/pivot-slicer/pkg/model"

// top ranks every node by its raw weight, one section per node type.
// Zero weights are dropped unless the data is a ranked list.
func (g *generator) top() {
	data := g.in.Data
	keepZero := data.Format.IsRankedList()

	for _, nodeType := range data.NodeTypes() {
		section := model.NewWeight(nodeType, 0)
		kept := 0

		for _, node := range data.NodesOfType(nodeType) {
			weight := NodeWeight(node, data.Format, g.in.Outbound)
			if weight <= 0 && !keepZero {
				continue
			}

			item := model.NewWeight(node.Key, weight)
			if g.isSelected(node) {
				item.Components[node.Key] = weight
				item.Colors[node.Key] = g.color(node.Key)
			}
			g.addItem(nodeType, item)
			section.Weight += weight
			kept++
		}

		if kept > 0 && (section.Weight > 0 || keepZero) {
			g.setSection(section)
		}
	}
}
