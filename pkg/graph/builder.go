package graph

import (
	"fmt"
	"sort"

	"github.com/ritzau/pivot-slicer/pkg/keys"
	"github.com/ritzau/pivot-slicer/pkg/logging"
	"github.com/ritzau/pivot-slicer/pkg/model"
)

// Table holds the bound host columns in column-major order. All value
// slices have the same length.
type Table struct {
	Columns []model.Column
	Values  [][]any
}

// Rows returns the number of rows in the table
func (t *Table) Rows() int {
	if t == nil || len(t.Values) == 0 {
		return 0
	}
	return len(t.Values[0])
}

// Row returns the cells of row i
func (t *Table) Row(i int) []any {
	row := make([]any, len(t.Values))
	for c, values := range t.Values {
		if i < len(values) {
			row[c] = values[i]
		}
	}
	return row
}

// SelectionIDFunc creates the host selection id of a row
type SelectionIDFunc func(row int) model.SelectionID

// RowSelectionID is the default selection id factory
func RowSelectionID(row int) model.SelectionID {
	return model.SelectionID(fmt.Sprintf("row:%d", row))
}

// Options control how rows are turned into a graph
type Options struct {
	// ShowRelated materializes pairwise links between nodes sharing a linking object
	ShowRelated bool
	// DefaultType is the node type used when NODE_TYPE is unbound or empty
	DefaultType string
	// SelectionID creates row selection ids, RowSelectionID when nil
	SelectionID SelectionIDFunc
}

// ColumnIndex returns the index of the first column bound to role, or -1
func ColumnIndex(cols []model.Column, role model.Role) int {
	for i, col := range cols {
		if col.HasRole(role) {
			return i
		}
	}
	return -1
}

// AttributeColumns maps attribute display names to column indices
func AttributeColumns(cols []model.Column) map[string]int {
	attributes := make(map[string]int)
	for i, col := range cols {
		if col.HasRole(model.RoleNodeAttributes) {
			attributes[col.DisplayName] = i
		}
	}
	return attributes
}

// Classify determines the data format from the bound roles
func Classify(cols []model.Column) model.DataFormat {
	hasNode := ColumnIndex(cols, model.RoleNode) != -1
	hasLinker := ColumnIndex(cols, model.RoleNodeLinker) != -1
	hasLinkedNode := ColumnIndex(cols, model.RoleLinkedNode) != -1
	hasAttributes := len(AttributeColumns(cols)) > 0

	switch {
	case hasNode && hasLinker && !hasLinkedNode:
		return model.FormatImplicitLinks
	case hasNode && hasLinkedNode && !hasLinker:
		return model.FormatExplicitLinks
	case hasNode && hasAttributes:
		return model.FormatRankedValues
	case hasNode:
		return model.FormatRankedLabels
	default:
		return model.FormatUnknown
	}
}

// builder holds the per-load scratch state
type builder struct {
	data        *model.ChartData
	opts        Options
	attributes  map[string]int
	nameToTypes map[string]model.StringSet
	skipped     int
}

// Build converts a table into chart data. Tables without a NODE column
// produce an unloaded chart.
func Build(table *Table, opts Options) *model.ChartData {
	if opts.DefaultType == "" {
		opts.DefaultType = model.DefaultTypeLabel
	}
	if opts.SelectionID == nil {
		opts.SelectionID = RowSelectionID
	}

	b := &builder{
		data:        model.NewChartData(),
		opts:        opts,
		nameToTypes: make(map[string]model.StringSet),
	}
	if table == nil {
		return b.data
	}

	cols := table.Columns
	b.data.Sources = append([]model.Column{}, cols...)
	for _, role := range model.SingleRoles {
		b.data.Columns[role] = ColumnIndex(cols, role)
	}
	b.attributes = AttributeColumns(cols)
	for name := range b.attributes {
		b.data.Attributes = append(b.data.Attributes, name)
	}
	sort.Strings(b.data.Attributes)

	b.data.Format = Classify(cols)
	switch b.data.Format {
	case model.FormatImplicitLinks:
		b.loadImplicitLinks(table)
	case model.FormatExplicitLinks:
		b.loadExplicitLinks(table)
	case model.FormatRankedLabels, model.FormatRankedValues:
		b.loadRankedList(table)
	default:
		logging.Debug("no supported column binding", "columns", len(cols))
		return b.data
	}
	b.buildFamilies()

	logging.Debug("built chart data",
		"format", string(b.data.Format),
		"rows", table.Rows(),
		"nodes", len(b.data.Nodes),
		"types", len(b.data.NodesByType),
		"skippedRows", b.skipped)

	return b.data
}

// loadImplicitLinks links nodes through the objects they share
func (b *builder) loadImplicitLinks(table *Table) {
	nodeCol := b.data.Column(model.RoleNode)
	typeCol := b.data.Column(model.RoleNodeType)
	objectCol := b.data.Column(model.RoleNodeLinker)
	filterCol := b.data.Column(model.RoleFilterKey)

	objectsToKeys := make(map[string]model.StringSet)

	for i := 0; i < table.Rows(); i++ {
		row := table.Row(i)
		name := stringValue(row, nodeCol, "")
		object := stringValue(row, objectCol, "")
		if name == "" || object == "" {
			b.skipped++
			continue
		}

		nodeType := stringValue(row, typeCol, b.opts.DefaultType)
		id := b.opts.SelectionID(i)
		key := keys.Create(nodeType, name)

		objectNodes, ok := b.data.ObjectSelections[object]
		if !ok {
			objectNodes = make(map[string]model.SelectionSet)
			b.data.ObjectSelections[object] = objectNodes
		}
		if objectNodes[key] == nil {
			objectNodes[key] = make(model.SelectionSet)
		}
		objectNodes[key].Add(id)

		if objectsToKeys[object] == nil {
			objectsToKeys[object] = make(model.StringSet)
		}
		objectsToKeys[object].Add(key)

		node := b.intern(key, nodeType, name, stringValue(row, filterCol, ""))
		node.SelectionIDs.Add(id)
		node.LinkingObjects.Add(object)
		b.addAttributes(node, row)
	}

	if !b.opts.ShowRelated {
		return
	}

	// Every ordered pair of nodes sharing an object is linked through it
	for object, objectKeys := range objectsToKeys {
		for source := range objectKeys {
			sourceNode := b.data.Nodes[source]
			for target := range objectKeys {
				if source == target {
					continue
				}
				targetNode := b.data.Nodes[target]
				linked, ok := sourceNode.LinkedNodes[targetNode.Type]
				if !ok {
					linked = make(map[string]model.StringSet)
					sourceNode.LinkedNodes[targetNode.Type] = linked
				}
				if linked[target] == nil {
					linked[target] = make(model.StringSet)
				}
				linked[target].Add(object)
			}
		}
	}
}

// loadExplicitLinks creates directed, weighted links between source and target nodes
func (b *builder) loadExplicitLinks(table *Table) {
	nodeCol := b.data.Column(model.RoleNode)
	typeCol := b.data.Column(model.RoleNodeType)
	linkedCol := b.data.Column(model.RoleLinkedNode)
	linkedTypeCol := b.data.Column(model.RoleLinkedNodeType)
	weightCol := b.data.Column(model.RoleLinkWeight)
	filterCol := b.data.Column(model.RoleFilterKey)
	linkedFilterCol := b.data.Column(model.RoleLinkedFilterKey)

	links := NewLinkGraph()

	for i := 0; i < table.Rows(); i++ {
		row := table.Row(i)
		fromName := stringValue(row, nodeCol, "")
		toName := stringValue(row, linkedCol, "")
		if fromName == "" || toName == "" {
			b.skipped++
			continue
		}

		fromType := stringValue(row, typeCol, b.opts.DefaultType)
		toType := stringValue(row, linkedTypeCol, b.opts.DefaultType)
		weight := numberValue(row, weightCol, 1)
		id := b.opts.SelectionID(i)
		fromKey := keys.Create(fromType, fromName)
		toKey := keys.Create(toType, toName)

		fromNode := b.intern(fromKey, fromType, fromName, stringValue(row, filterCol, ""))
		fromNode.SelectionIDs.Add(id)
		fromNode.OutboundSelectionIDs[toKey] = id

		toNode := b.intern(toKey, toType, toName, stringValue(row, linkedFilterCol, ""))
		toNode.InboundSelectionIDs[fromKey] = id

		links.AddWeight(fromKey, toKey, weight)
		b.addAttributes(fromNode, row)
	}

	for _, link := range links.Links() {
		source := b.data.Nodes[link.Source]
		target := b.data.Nodes[link.Target]
		if source.Outbound[target.Type] == nil {
			source.Outbound[target.Type] = make(map[string]float64)
		}
		source.Outbound[target.Type][target.Key] = link.Weight
		if target.Inbound[source.Type] == nil {
			target.Inbound[source.Type] = make(map[string]float64)
		}
		target.Inbound[source.Type][source.Key] = link.Weight
	}
}

// loadRankedList creates unlinked nodes
func (b *builder) loadRankedList(table *Table) {
	nodeCol := b.data.Column(model.RoleNode)
	typeCol := b.data.Column(model.RoleNodeType)
	filterCol := b.data.Column(model.RoleFilterKey)

	for i := 0; i < table.Rows(); i++ {
		row := table.Row(i)
		name := stringValue(row, nodeCol, "")
		if name == "" {
			b.skipped++
			continue
		}

		nodeType := stringValue(row, typeCol, b.opts.DefaultType)
		key := keys.Create(nodeType, name)
		node := b.intern(key, nodeType, name, stringValue(row, filterCol, ""))
		node.SelectionIDs.Add(b.opts.SelectionID(i))
		b.addAttributes(node, row)
	}
}

// intern returns the node for key, creating it on first sight
func (b *builder) intern(key, nodeType, name, filterKey string) *model.Node {
	node, exists := b.data.Nodes[key]
	if !exists {
		node = model.NewNode(nodeType, name, key)
		b.data.Nodes[key] = node
		if b.data.NodesByType[nodeType] == nil {
			b.data.NodesByType[nodeType] = make(model.StringSet)
		}
		b.data.NodesByType[nodeType].Add(key)
		if b.nameToTypes[name] == nil {
			b.nameToTypes[name] = make(model.StringSet)
		}
		b.nameToTypes[name].Add(nodeType)
	}
	if node.FilterKey == "" {
		node.FilterKey = filterKey
	}
	return node
}

// addAttributes records the attribute cells of a row on the node
func (b *builder) addAttributes(node *model.Node, row []any) {
	for name, idx := range b.attributes {
		node.Attributes[name] = numberValue(row, idx, 0)
	}
}

// buildFamilies groups nodes sharing a name across node types
func (b *builder) buildFamilies() {
	for name, types := range b.nameToTypes {
		family := make([]*model.Node, 0, len(types))
		for nodeType := range types {
			if node, ok := b.data.Nodes[keys.Create(nodeType, name)]; ok {
				family = append(family, node)
			}
		}

		sort.Slice(family, func(i, j int) bool {
			ci, cj := b.linkCount(family[i]), b.linkCount(family[j])
			if ci != cj {
				return ci > cj
			}
			return family[i].Key < family[j].Key
		})

		familyKeys := make([]string, len(family))
		for i, node := range family {
			familyKeys[i] = node.Key
		}
		for _, node := range family {
			node.Family = familyKeys
		}
	}
}

// linkCount ranks family members
func (b *builder) linkCount(node *model.Node) int {
	switch b.data.Format {
	case model.FormatImplicitLinks:
		return len(node.LinkingObjects)
	case model.FormatExplicitLinks:
		return len(node.LinkedKeys(true)) + len(node.LinkedKeys(false))
	default:
		return len(node.SelectionIDs)
	}
}
