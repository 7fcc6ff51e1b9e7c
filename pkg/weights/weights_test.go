package weights

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritzau/pivot-slicer/pkg/graph"
	"github.com/ritzau/pivot-slicer/pkg/keys"
	"github.com/ritzau/pivot-slicer/pkg/model"
)

func col(name string, roles ...model.Role) model.Column {
	return model.Column{DisplayName: name, Table: "Data", Roles: roles}
}

// people links people and places through documents
func people() *model.ChartData {
	return graph.Build(&graph.Table{
		Columns: []model.Column{
			col("Type", model.RoleNodeType),
			col("Name", model.RoleNode),
			col("Doc", model.RoleNodeLinker),
		},
		Values: [][]any{
			{"Person", "Person", "Person", "Person", "Place", "Place", "Place", "Animal"},
			{"Alice", "Bob", "Carol", "Alice", "Paris", "Paris", "Rome", "Cat"},
			{"Doc1", "Doc1", "Doc2", "Doc2", "Doc1", "Doc2", "Doc2", "Doc3"},
		},
	}, graph.Options{ShowRelated: true})
}

// edges is a small explicit graph
func edges() *model.ChartData {
	return graph.Build(&graph.Table{
		Columns: []model.Column{
			col("From", model.RoleNode),
			col("To", model.RoleLinkedNode),
			col("Weight", model.RoleLinkWeight),
		},
		Values: [][]any{
			{"Alice", "Alice", "Dave", "Dave"},
			{"Bob", "Carol", "Bob", "Erin"},
			{2, 1, 3, 1},
		},
	}, graph.Options{ShowRelated: true})
}

func item(key string) string {
	return keys.Create(model.DefaultTypeLabel, key)
}

func person(name string) string {
	return keys.Create("Person", name)
}

func input(data *model.ChartData, view model.DataView, selected ...string) Input {
	state := model.DefaultState()
	state.View = view
	in := Input{
		Settings:              model.DefaultSettings(),
		State:                 state,
		Data:                  data,
		CountingCooccurrences: view.CountsCooccurrences(),
		Outbound:              !view.IsInbound(),
		ShowRelated:           true,
		NodeColors:            make(map[string]string),
	}
	for i, key := range selected {
		in.Selected = append(in.Selected, data.Nodes[key])
		in.NodeColors[key] = []string{"red", "green", "blue"}[i]
	}
	return in
}

func itemWeight(t *testing.T, all *model.AllWeights, section, key string) model.Weight {
	t.Helper()
	w, ok := all.Item(section, key)
	require.True(t, ok, "missing item %s in %s", key, section)
	return w
}

func TestSelectMode(t *testing.T) {
	ranked := graph.Build(&graph.Table{
		Columns: []model.Column{col("Name", model.RoleNode), col("Score", model.RoleNodeAttributes)},
		Values:  [][]any{{"A", "B"}, {10, 0}},
	}, graph.Options{})
	data := people()
	alice := person("Alice")

	assert.Equal(t, ModeAttributes, SelectMode(input(ranked, model.ViewRankedAttributes)))
	assert.Equal(t, ModeTop, SelectMode(input(ranked, model.ViewItems, item("A"))))
	assert.Equal(t, ModeTop, SelectMode(input(data, model.ViewLinks)))
	assert.Equal(t, ModeRelated, SelectMode(input(data, model.ViewLinks, alice)))
	assert.Equal(t, ModeCooccurrence, SelectMode(input(data, model.ViewJointLinks, alice)))

	// Attribute views without attributes fall through
	assert.Equal(t, ModeRelated, SelectMode(input(data, model.ViewImplicitAttributes, alice)))

	hidden := input(data, model.ViewLinks, alice)
	hidden.ShowRelated = false
	assert.Equal(t, ModeTop, SelectMode(hidden))
}

func TestGenerateUnloaded(t *testing.T) {
	all := Generate(input(model.NewChartData(), model.ViewItems))
	assert.Empty(t, all.SectionOrder)
	assert.Empty(t, all.ItemWeights)
}

func TestTopImplicit(t *testing.T) {
	all := Generate(input(people(), model.ViewLinks))

	assert.Equal(t, 2.0, itemWeight(t, all, "Person", person("Alice")).Weight)
	assert.Equal(t, 1.0, itemWeight(t, all, "Person", person("Bob")).Weight)
	assert.Equal(t, 4.0, all.SectionWeights["Person"].Weight)
	assert.Equal(t, 3.0, all.SectionWeights["Place"].Weight)
	assert.Equal(t, 4.0, all.MaxSectionWeight)
	assert.Equal(t, 2.0, all.SectionMaxItemWeights["Person"])

	// Items are ordered by weight, then key
	persons := all.ItemWeights["Person"]
	require.Len(t, persons, 3)
	assert.Equal(t, []string{person("Alice"), person("Bob"), person("Carol")},
		[]string{persons[0].TargetKey, persons[1].TargetKey, persons[2].TargetKey})
}

func TestTopExplicitDropsZeroWeights(t *testing.T) {
	out := Generate(input(edges(), model.ViewOutLinks))
	assert.Equal(t, 3.0, itemWeight(t, out, model.DefaultTypeLabel, item("Alice")).Weight)
	assert.Equal(t, 4.0, itemWeight(t, out, model.DefaultTypeLabel, item("Dave")).Weight)
	_, ok := out.Item(model.DefaultTypeLabel, item("Bob"))
	assert.False(t, ok, "nodes without outbound links are dropped")

	in := Generate(input(edges(), model.ViewInLinks))
	assert.Equal(t, 5.0, itemWeight(t, in, model.DefaultTypeLabel, item("Bob")).Weight)
	assert.Equal(t, 7.0, in.SectionWeights[model.DefaultTypeLabel].Weight)
}

func TestInfiniteCellsKeepWeightsEncodable(t *testing.T) {
	links := graph.Build(&graph.Table{
		Columns: []model.Column{
			col("From", model.RoleNode),
			col("To", model.RoleLinkedNode),
			col("Weight", model.RoleLinkWeight),
		},
		Values: [][]any{
			{"A", "A"},
			{"B", "C"},
			{"Inf", 2},
		},
	}, graph.Options{ShowRelated: true})

	out := Generate(input(links, model.ViewOutLinks))
	assert.Equal(t, 3.0, itemWeight(t, out, model.DefaultTypeLabel, item("A")).Weight)
	_, err := json.Marshal(out)
	assert.NoError(t, err)

	ranked := graph.Build(&graph.Table{
		Columns: []model.Column{col("Name", model.RoleNode), col("Score", model.RoleNodeAttributes)},
		Values:  [][]any{{"A", "B"}, {"-Inf", 5}},
	}, graph.Options{})

	attrs := Generate(input(ranked, model.ViewRankedAttributes))
	_, err = json.Marshal(attrs)
	assert.NoError(t, err)
}

func TestTopRankedKeepsZeroWeights(t *testing.T) {
	data := graph.Build(&graph.Table{
		Columns: []model.Column{col("Name", model.RoleNode)},
		Values:  [][]any{{"A", "B"}},
	}, graph.Options{})

	all := Generate(input(data, model.ViewItems, item("A")))
	assert.Len(t, all.ItemWeights[model.DefaultTypeLabel], 2)
	assert.Equal(t, []string{model.DefaultTypeLabel}, all.SectionOrder)

	// Selected nodes carry their own component
	a := itemWeight(t, all, model.DefaultTypeLabel, item("A"))
	assert.Equal(t, "red", a.Colors[item("A")])
}

func TestTopWeightGrowsWithRows(t *testing.T) {
	before := Generate(input(edges(), model.ViewOutLinks))

	more := graph.Build(&graph.Table{
		Columns: []model.Column{
			col("From", model.RoleNode),
			col("To", model.RoleLinkedNode),
			col("Weight", model.RoleLinkWeight),
		},
		Values: [][]any{
			{"Alice", "Alice", "Dave", "Dave", "Alice"},
			{"Bob", "Carol", "Bob", "Erin", "Erin"},
			{2, 1, 3, 1, 0.5},
		},
	}, graph.Options{})
	after := Generate(input(more, model.ViewOutLinks))

	for _, w := range before.ItemWeights[model.DefaultTypeLabel] {
		grown := itemWeight(t, after, model.DefaultTypeLabel, w.TargetKey)
		assert.GreaterOrEqual(t, grown.Weight, w.Weight)
	}
}

func TestRelatedImplicit(t *testing.T) {
	alice, bob := person("Alice"), person("Bob")
	all := Generate(input(people(), model.ViewLinks, alice, bob))

	paris := itemWeight(t, all, "Place", keys.Create("Place", "Paris"))
	assert.Equal(t, 3.0, paris.Weight)
	assert.Equal(t, map[string]float64{alice: 2, bob: 1}, paris.Components)
	assert.Equal(t, map[string]string{alice: "red", bob: "green"}, paris.Colors)

	carol := itemWeight(t, all, "Person", person("Carol"))
	assert.Equal(t, map[string]float64{alice: 1}, carol.Components)

	place := all.SectionWeights["Place"]
	assert.Equal(t, 4.0, place.Weight)
	assert.Equal(t, map[string]float64{alice: 3, bob: 1}, place.Components)

	_, ok := all.SectionWeights["Animal"]
	assert.False(t, ok, "unrelated sections are dropped")
}

func TestCooccurrenceImplicit(t *testing.T) {
	all := Generate(input(people(), model.ViewJointLinks, person("Alice"), person("Bob")))

	paris := itemWeight(t, all, "Place", keys.Create("Place", "Paris"))
	assert.Equal(t, 1.0, paris.Weight)
	_, ok := all.Item("Place", keys.Create("Place", "Rome"))
	assert.False(t, ok, "Rome shares no object with Bob")
	_, ok = all.Item("Person", person("Alice"))
	assert.False(t, ok, "selected nodes are not candidates")
}

func TestCooccurrenceExplicit(t *testing.T) {
	alice, dave := item("Alice"), item("Dave")
	all := Generate(input(edges(), model.ViewJointOutLinks, alice, dave))

	items := all.ItemWeights[model.DefaultTypeLabel]
	require.Len(t, items, 1)
	assert.Equal(t, item("Bob"), items[0].TargetKey)
	assert.Equal(t, 5.0, items[0].Weight)
	assert.Equal(t, map[string]float64{alice: 2, dave: 3}, items[0].Components)

	// Selected weights only count mutual links
	require.Len(t, all.SelectedItemWeights, 2)
	assert.Equal(t, dave, all.SelectedItemWeights[0].TargetKey)
	assert.Equal(t, 3.0, all.SelectedItemWeights[0].Weight)
	assert.Equal(t, 2.0, all.SelectedItemWeights[1].Weight)
}

func TestCooccurrenceNeverExceedsRelated(t *testing.T) {
	cases := []struct {
		data     *model.ChartData
		related  model.DataView
		joint    model.DataView
		selected []string
	}{
		{people(), model.ViewLinks, model.ViewJointLinks, []string{person("Alice"), person("Bob")}},
		{people(), model.ViewLinks, model.ViewJointLinks, []string{person("Alice"), keys.Create("Place", "Paris")}},
		{edges(), model.ViewOutLinks, model.ViewJointOutLinks, []string{item("Alice"), item("Dave")}},
		{edges(), model.ViewInLinks, model.ViewJointInLinks, []string{item("Bob")}},
	}

	for _, c := range cases {
		related := Generate(input(c.data, c.related, c.selected...))
		joint := Generate(input(c.data, c.joint, c.selected...))

		for section, items := range joint.ItemWeights {
			for _, w := range items {
				r, ok := related.Item(section, w.TargetKey)
				require.True(t, ok, "%s is jointly related but not related", w.TargetKey)
				assert.LessOrEqual(t, w.Weight, r.Weight)
			}
		}
	}
}

func TestRankedListHasNoRelatedItems(t *testing.T) {
	data := graph.Build(&graph.Table{
		Columns: []model.Column{col("Name", model.RoleNode)},
		Values:  [][]any{{"A", "B"}},
	}, graph.Options{})

	all := Generate(input(data, model.ViewItems, item("A")))
	for _, w := range all.ItemWeights[model.DefaultTypeLabel] {
		assert.Zero(t, w.Weight)
	}
}

func TestGenerateDoesNotMutateInput(t *testing.T) {
	data := people()
	in := input(data, model.ViewLinks, person("Alice"))
	in.State.PinnedNodes = []model.ActiveNode{{Key: person("Alice"), Color: "red", Selected: true}}
	state := in.State.Clone()
	alice := *data.Nodes[person("Alice")]

	Generate(in)
	Generate(in)

	assert.True(t, state.Equal(in.State))
	assert.Equal(t, alice, *data.Nodes[person("Alice")])
}

func TestSectionOrder(t *testing.T) {
	tests := []struct {
		policy string
		want   []string
	}{
		{model.OrderItemValues, []string{"Person", "Place", "Animal"}},
		{model.OrderItemCounts, []string{"Person", "Place", "Animal"}},
		{model.OrderNamesAscending, []string{"Animal", "Person", "Place"}},
		{model.OrderNamesDescending, []string{"Place", "Person", "Animal"}},
	}

	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			in := input(people(), model.ViewLinks)
			in.Settings.SectionOrder = tt.policy
			assert.Equal(t, tt.want, Generate(in).SectionOrder)
		})
	}
}

func TestFamilies(t *testing.T) {
	data := graph.Build(&graph.Table{
		Columns: []model.Column{
			col("Type", model.RoleNodeType),
			col("Name", model.RoleNode),
			col("Doc", model.RoleNodeLinker),
		},
		Values: [][]any{
			{"City", "Person", "Person", "City", "Person"},
			{"Paris", "Paris", "Paris", "Rome", "Rome"},
			{"Doc1", "Doc1", "Doc2", "Doc3", "Doc3"},
		},
	}, graph.Options{ShowRelated: true})

	in := input(data, model.ViewLinks, keys.Create("City", "Paris"), keys.Create("City", "Rome"))
	all := Generate(in)

	assert.Equal(t, []string{"Paris", "Rome"}, all.FamilyOrder)
	assert.Equal(t, 3.0, all.FamilyWeights["Paris"])
	assert.Equal(t, 2.0, all.FamilyWeights["Rome"])
	require.Len(t, all.FamilyItemWeights["Paris"], 2)
	assert.Equal(t, keys.Create("Person", "Paris"), all.FamilyItemWeights["Paris"][0].TargetKey)
}
