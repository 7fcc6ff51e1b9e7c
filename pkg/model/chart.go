package model

import "sort"

// Node is a unique (type, name) entity derived from bound rows.
// Relations to other nodes are stored as node keys into ChartData.Nodes.
type Node struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Key  string `json:"key"`

	// Objects (NODE_LINKER values) this node occurs with
	LinkingObjects StringSet `json:"-"`
	// Row selection ids of every row that produced this node
	SelectionIDs SelectionSet `json:"-"`

	// Implicit links: linked node type -> linked node key -> shared objects
	LinkedNodes map[string]map[string]StringSet `json:"-"`
	// Explicit links: linked node type -> linked node key -> summed weight
	Outbound map[string]map[string]float64 `json:"-"`
	Inbound  map[string]map[string]float64 `json:"-"`

	// Selection id of the latest row establishing each directed edge
	OutboundSelectionIDs map[string]SelectionID `json:"-"`
	InboundSelectionIDs  map[string]SelectionID `json:"-"`

	// Keys of nodes sharing this name across types (including this node)
	Family []string `json:"family,omitempty"`

	FilterKey  string             `json:"filterKey,omitempty"`
	Attributes map[string]float64 `json:"attributes,omitempty"`
}

// NewNode creates an empty node
func NewNode(nodeType, name, key string) *Node {
	return &Node{
		Type:                 nodeType,
		Name:                 name,
		Key:                  key,
		LinkingObjects:       make(StringSet),
		SelectionIDs:         make(SelectionSet),
		LinkedNodes:          make(map[string]map[string]StringSet),
		Outbound:             make(map[string]map[string]float64),
		Inbound:              make(map[string]map[string]float64),
		OutboundSelectionIDs: make(map[string]SelectionID),
		InboundSelectionIDs:  make(map[string]SelectionID),
		Attributes:           make(map[string]float64),
	}
}

// ExplicitLinks returns the outbound or inbound weight map
func (n *Node) ExplicitLinks(outbound bool) map[string]map[string]float64 {
	if outbound {
		return n.Outbound
	}
	return n.Inbound
}

// LinkSelectionIDs returns the outbound or inbound selection ids
func (n *Node) LinkSelectionIDs(outbound bool) map[string]SelectionID {
	if outbound {
		return n.OutboundSelectionIDs
	}
	return n.InboundSelectionIDs
}

// LinkedKeys returns every key in the explicit link map of the given direction
func (n *Node) LinkedKeys(outbound bool) StringSet {
	keys := make(StringSet)
	for _, targets := range n.ExplicitLinks(outbound) {
		for key := range targets {
			keys.Add(key)
		}
	}
	return keys
}

// LinkWeight returns the explicit link weight to key, 0 when unlinked
func (n *Node) LinkWeight(outbound bool, nodeType, key string) float64 {
	targets, ok := n.ExplicitLinks(outbound)[nodeType]
	if !ok {
		return 0
	}
	return targets[key]
}

// ChartData is the graph built from one binding of host rows. It is
// rebuilt wholesale on every data rebind and read-only afterwards.
type ChartData struct {
	Format      DataFormat           `json:"format"`
	Attributes  []string             `json:"attributes"`
	Nodes       map[string]*Node     `json:"nodes"`
	NodesByType map[string]StringSet `json:"-"`
	// Linking object -> node key -> row selection ids
	ObjectSelections map[string]map[string]SelectionSet `json:"-"`
	Columns          map[Role]int                       `json:"columns"`
	Sources          []Column                           `json:"sources"`
}

// NewChartData creates an empty, unloaded chart
func NewChartData() *ChartData {
	return &ChartData{
		Format:           FormatUnknown,
		Attributes:       []string{},
		Nodes:            make(map[string]*Node),
		NodesByType:      make(map[string]StringSet),
		ObjectSelections: make(map[string]map[string]SelectionSet),
		Columns:          make(map[Role]int),
	}
}

// Loaded returns true if the bound columns matched a supported format
func (d *ChartData) Loaded() bool {
	return d.Format != FormatUnknown
}

// Column returns the index of the column bound to role, or -1
func (d *ChartData) Column(role Role) int {
	idx, ok := d.Columns[role]
	if !ok {
		return -1
	}
	return idx
}

// Node returns the node with the given key
func (d *ChartData) Node(key string) (*Node, bool) {
	node, ok := d.Nodes[key]
	return node, ok
}

// NodeTypes returns all node types in ascending order
func (d *ChartData) NodeTypes() []string {
	types := make([]string, 0, len(d.NodesByType))
	for t := range d.NodesByType {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// NodesOfType returns the nodes of a type ordered by key
func (d *ChartData) NodesOfType(nodeType string) []*Node {
	keys := d.NodesByType[nodeType].Sorted()
	nodes := make([]*Node, 0, len(keys))
	for _, key := range keys {
		nodes = append(nodes, d.Nodes[key])
	}
	return nodes
}

// SortedNodes returns every node ordered by key
func (d *ChartData) SortedNodes() []*Node {
	keys := make([]string, 0, len(d.Nodes))
	for key := range d.Nodes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	nodes := make([]*Node, 0, len(keys))
	for _, key := range keys {
		nodes = append(nodes, d.Nodes[key])
	}
	return nodes
}
