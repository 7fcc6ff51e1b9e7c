package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritzau/pivot-slicer/pkg/keys"
	"github.com/ritzau/pivot-slicer/pkg/model"
)

func column(name string, roles ...model.Role) model.Column {
	return model.Column{DisplayName: name, Table: "Data", Roles: roles}
}

func implicitTable() *Table {
	return &Table{
		Columns: []model.Column{
			column("Type", model.RoleNodeType),
			column("Name", model.RoleNode),
			column("Doc", model.RoleNodeLinker),
		},
		Values: [][]any{
			{"Person", "Person", "Person", "Place"},
			{"Alice", "Bob", "Alice", "Paris"},
			{"Doc1", "Doc1", "Doc2", "Doc2"},
		},
	}
}

func explicitTable() *Table {
	return &Table{
		Columns: []model.Column{
			column("From", model.RoleNode),
			column("To", model.RoleLinkedNode),
			column("Weight", model.RoleLinkWeight),
		},
		Values: [][]any{
			{"Alice", "Alice", "Bob", ""},
			{"Bob", "Bob", "Carol", "Dave"},
			{2, "3", nil, 1},
		},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		roles [][]model.Role
		want  model.DataFormat
	}{
		{"implicit", [][]model.Role{{model.RoleNode}, {model.RoleNodeLinker}}, model.FormatImplicitLinks},
		{"explicit", [][]model.Role{{model.RoleNode}, {model.RoleLinkedNode}}, model.FormatExplicitLinks},
		{"both linkers fall back to ranked", [][]model.Role{{model.RoleNode}, {model.RoleNodeLinker}, {model.RoleLinkedNode}}, model.FormatRankedLabels},
		{"ranked values", [][]model.Role{{model.RoleNode}, {model.RoleNodeAttributes}}, model.FormatRankedValues},
		{"ranked labels", [][]model.Role{{model.RoleNode}, {model.RoleNodeType}}, model.FormatRankedLabels},
		{"implicit with attributes", [][]model.Role{{model.RoleNode}, {model.RoleNodeLinker}, {model.RoleNodeAttributes}}, model.FormatImplicitLinks},
		{"no node", [][]model.Role{{model.RoleNodeLinker}, {model.RoleLinkedNode}}, model.FormatUnknown},
		{"nothing bound", nil, model.FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cols []model.Column
			for i, roles := range tt.roles {
				cols = append(cols, column(string(rune('A'+i)), roles...))
			}
			assert.Equal(t, tt.want, Classify(cols))
			assert.Equal(t, tt.want, Classify(cols), "classification is deterministic")
		})
	}
}

func TestColumnIndex(t *testing.T) {
	cols := []model.Column{
		column("Name", model.RoleNode, model.RoleFilterKey),
		column("A", model.RoleNodeAttributes),
		column("B", model.RoleNodeAttributes),
	}

	assert.Equal(t, 0, ColumnIndex(cols, model.RoleNode))
	assert.Equal(t, 0, ColumnIndex(cols, model.RoleFilterKey))
	assert.Equal(t, -1, ColumnIndex(cols, model.RoleNodeLinker))
	assert.Equal(t, map[string]int{"A": 1, "B": 2}, AttributeColumns(cols))
}

func TestBuildImplicitLinks(t *testing.T) {
	data := Build(implicitTable(), Options{ShowRelated: true})
	require.Equal(t, model.FormatImplicitLinks, data.Format)
	require.True(t, data.Loaded())

	alice, ok := data.Node(keys.Create("Person", "Alice"))
	require.True(t, ok)
	bob, ok := data.Node(keys.Create("Person", "Bob"))
	require.True(t, ok)

	assert.Equal(t, model.NewStringSet("Doc1", "Doc2"), alice.LinkingObjects)
	assert.Equal(t, model.NewStringSet("Doc1"), bob.LinkingObjects)
	assert.Len(t, alice.SelectionIDs, 2)

	// Alice and Bob are linked both ways through Doc1
	assert.Equal(t, model.NewStringSet("Doc1"), alice.LinkedNodes["Person"][bob.Key])
	assert.Equal(t, model.NewStringSet("Doc1"), bob.LinkedNodes["Person"][alice.Key])
	assert.Equal(t, model.NewStringSet("Doc2"), alice.LinkedNodes["Place"][keys.Create("Place", "Paris")])
	_, selfLinked := alice.LinkedNodes["Person"][alice.Key]
	assert.False(t, selfLinked)

	assert.Equal(t, []string{"Person", "Place"}, data.NodeTypes())
	assert.Len(t, data.ObjectSelections["Doc1"], 2)
	assert.True(t, data.ObjectSelections["Doc1"][alice.Key].Has(RowSelectionID(0)))
}

func TestBuildImplicitLinksWithoutRelated(t *testing.T) {
	data := Build(implicitTable(), Options{ShowRelated: false})

	alice, ok := data.Node(keys.Create("Person", "Alice"))
	require.True(t, ok)
	assert.Empty(t, alice.LinkedNodes)
	assert.Len(t, alice.LinkingObjects, 2)
}

func TestBuildExplicitLinksSumsWeights(t *testing.T) {
	data := Build(explicitTable(), Options{})
	require.Equal(t, model.FormatExplicitLinks, data.Format)

	aliceKey := keys.Create(model.DefaultTypeLabel, "Alice")
	bobKey := keys.Create(model.DefaultTypeLabel, "Bob")
	carolKey := keys.Create(model.DefaultTypeLabel, "Carol")

	alice, ok := data.Node(aliceKey)
	require.True(t, ok)
	bob, ok := data.Node(bobKey)
	require.True(t, ok)

	assert.Equal(t, 5.0, alice.Outbound[model.DefaultTypeLabel][bobKey])
	assert.Equal(t, 5.0, bob.Inbound[model.DefaultTypeLabel][aliceKey])
	// Missing weight defaults to 1
	assert.Equal(t, 1.0, bob.Outbound[model.DefaultTypeLabel][carolKey])

	// Last row establishing an edge wins
	assert.Equal(t, RowSelectionID(1), alice.OutboundSelectionIDs[bobKey])
	assert.Equal(t, RowSelectionID(1), bob.InboundSelectionIDs[aliceKey])

	// Row with an empty source is skipped
	_, ok = data.Node(keys.Create(model.DefaultTypeLabel, "Dave"))
	assert.False(t, ok)
	assert.Len(t, data.Nodes, 3)
}

func TestBuildRankedValues(t *testing.T) {
	table := &Table{
		Columns: []model.Column{
			column("Name", model.RoleNode),
			column("Score", model.RoleNodeAttributes),
			column("Age", model.RoleNodeAttributes),
		},
		Values: [][]any{
			{"A", "B", nil},
			{10, "x", 3},
			{"-5", 7, 1},
		},
	}

	data := Build(table, Options{DefaultType: "Thing"})
	require.Equal(t, model.FormatRankedValues, data.Format)
	assert.Equal(t, []string{"Age", "Score"}, data.Attributes)
	assert.Len(t, data.Nodes, 2)

	a := data.Nodes[keys.Create("Thing", "A")]
	require.NotNil(t, a)
	assert.Equal(t, 10.0, a.Attributes["Score"])
	assert.Equal(t, 0.0, a.Attributes["Age"])

	b := data.Nodes[keys.Create("Thing", "B")]
	require.NotNil(t, b)
	assert.Equal(t, 0.0, b.Attributes["Score"])
	assert.Equal(t, 7.0, b.Attributes["Age"])
	assert.Empty(t, b.Outbound)
	assert.Empty(t, b.LinkedNodes)
}

func TestBuildUnknownFormat(t *testing.T) {
	table := &Table{
		Columns: []model.Column{column("Doc", model.RoleNodeLinker)},
		Values:  [][]any{{"Doc1"}},
	}

	data := Build(table, Options{})
	assert.False(t, data.Loaded())
	assert.Empty(t, data.Nodes)

	assert.False(t, Build(nil, Options{}).Loaded())
}

func TestBuildIsIdempotent(t *testing.T) {
	for _, table := range []*Table{implicitTable(), explicitTable()} {
		first := Build(table, Options{ShowRelated: true})
		second := Build(table, Options{ShowRelated: true})
		assert.Equal(t, first, second)
	}
}

func TestBuildFamilies(t *testing.T) {
	table := &Table{
		Columns: []model.Column{
			column("Type", model.RoleNodeType),
			column("Name", model.RoleNode),
			column("Doc", model.RoleNodeLinker),
		},
		Values: [][]any{
			{"City", "Person", "Person", "City"},
			{"Paris", "Paris", "Paris", "Rome"},
			{"Doc1", "Doc1", "Doc2", "Doc3"},
		},
	}

	data := Build(table, Options{ShowRelated: true})
	city := data.Nodes[keys.Create("City", "Paris")]
	person := data.Nodes[keys.Create("Person", "Paris")]
	rome := data.Nodes[keys.Create("City", "Rome")]

	// The person appears with two objects and ranks first
	want := []string{person.Key, city.Key}
	assert.Equal(t, want, person.Family)
	assert.Equal(t, want, city.Family)
	assert.Equal(t, []string{rome.Key}, rome.Family)
}

func TestTopWeightGrowsWithRows(t *testing.T) {
	small := explicitTable()
	large := explicitTable()
	large.Values[0] = append(large.Values[0], "Alice")
	large.Values[1] = append(large.Values[1], "Bob")
	large.Values[2] = append(large.Values[2], 4)

	aliceKey := keys.Create(model.DefaultTypeLabel, "Alice")
	before := Build(small, Options{}).Nodes[aliceKey].LinkedKeys(true)
	after := Build(large, Options{}).Nodes[aliceKey]

	assert.Equal(t, before, after.LinkedKeys(true))
	assert.Equal(t, 9.0, after.Outbound[model.DefaultTypeLabel][keys.Create(model.DefaultTypeLabel, "Bob")])
}
