package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

// Link is a directed, weighted edge between two node keys
type Link struct {
	Source string
	Target string
	Weight float64
}

// LinkGraph accumulates explicit directed edges between node keys.
// Asserting the same edge twice sums the weights.
type LinkGraph struct {
	graph *simple.WeightedDirectedGraph
	ids   map[string]int64 // Map from node key to graph ID
	keys  []string         // Map from graph ID to node key
	loops map[string]float64
}

// NewLinkGraph creates an empty link graph
func NewLinkGraph() *LinkGraph {
	return &LinkGraph{
		graph: simple.NewWeightedDirectedGraph(0, 0),
		ids:   make(map[string]int64),
		loops: make(map[string]float64),
	}
}

// AddNode adds a node key to the graph
func (lg *LinkGraph) AddNode(key string) int64 {
	if id, exists := lg.ids[key]; exists {
		return id
	}

	id := int64(len(lg.keys))
	lg.ids[key] = id
	lg.keys = append(lg.keys, key)
	lg.graph.AddNode(simple.Node(id))
	return id
}

// AddWeight adds weight to the edge from source to target, creating the
// edge and nodes as needed, and returns the accumulated weight
func (lg *LinkGraph) AddWeight(source, target string, weight float64) float64 {
	sourceID := lg.AddNode(source)
	targetID := lg.AddNode(target)

	// gonum simple graphs do not hold self edges
	if sourceID == targetID {
		lg.loops[source] += weight
		return lg.loops[source]
	}

	if existing, ok := lg.graph.Weight(sourceID, targetID); ok {
		weight += existing
	}
	lg.graph.SetWeightedEdge(lg.graph.NewWeightedEdge(
		lg.graph.Node(sourceID), lg.graph.Node(targetID), weight))
	return weight
}

// Weight returns the accumulated weight from source to target
func (lg *LinkGraph) Weight(source, target string) (float64, bool) {
	sourceID, ok := lg.ids[source]
	if !ok {
		return 0, false
	}
	targetID, ok := lg.ids[target]
	if !ok {
		return 0, false
	}
	if sourceID == targetID {
		w, ok := lg.loops[source]
		return w, ok
	}
	if lg.graph.WeightedEdge(sourceID, targetID) == nil {
		return 0, false
	}
	w, _ := lg.graph.Weight(sourceID, targetID)
	return w, true
}

// Links returns all edges ordered by source then target
func (lg *LinkGraph) Links() []Link {
	var links []Link

	iter := lg.graph.WeightedEdges()
	for iter.Next() {
		edge := iter.WeightedEdge()
		links = append(links, Link{
			Source: lg.keys[edge.From().ID()],
			Target: lg.keys[edge.To().ID()],
			Weight: edge.Weight(),
		})
	}
	for key, w := range lg.loops {
		links = append(links, Link{Source: key, Target: key, Weight: w})
	}

	sort.Slice(links, func(i, j int) bool {
		if links[i].Source != links[j].Source {
			return links[i].Source < links[j].Source
		}
		return links[i].Target < links[j].Target
	})
	return links
}

// Len returns the number of nodes in the graph
func (lg *LinkGraph) Len() int {
	return len(lg.keys)
}
