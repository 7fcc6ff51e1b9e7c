package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritzau/pivot-slicer/pkg/config"
	"github.com/ritzau/pivot-slicer/pkg/graph"
	"github.com/ritzau/pivot-slicer/pkg/keys"
	"github.com/ritzau/pivot-slicer/pkg/model"
)

func columns() config.Columns {
	return config.Columns{
		Node:       "node",
		NodeType:   "type",
		NodeLinker: "linker",
		Attributes: []string{"Age"},
	}
}

const people = "\ufeffNode, Type, Linker, Age, notes\n" +
	"Alice, Person, Doc1, 30, x\n" +
	"Bob, Person, Doc1, 40, y\n" +
	"Paris, Place, Doc1, , z\n"

func TestRead(t *testing.T) {
	table, err := Read(strings.NewReader(people), "people", columns())
	require.NoError(t, err)

	require.Len(t, table.Columns, 4)
	assert.Equal(t, model.Column{DisplayName: "Node", Table: "people", Roles: []model.Role{model.RoleNode}}, table.Columns[0])
	assert.Equal(t, []model.Role{model.RoleNodeAttributes}, table.Columns[3].Roles)
	assert.Equal(t, 3, table.Rows())
	assert.Equal(t, []any{"Bob", "Person", "Doc1", "40"}, table.Row(1))
	assert.Equal(t, "", table.Row(2)[3])

	assert.Equal(t, model.FormatImplicitLinks, graph.Classify(table.Columns))
}

func TestReadBuildsGraph(t *testing.T) {
	table, err := Read(strings.NewReader(people), "people", columns())
	require.NoError(t, err)

	data := graph.Build(table, graph.Options{ShowRelated: true, DefaultType: model.DefaultTypeLabel})
	assert.Equal(t, []string{"Age"}, data.Attributes)

	alice, ok := data.Node(keys.Create("Person", "Alice"))
	require.True(t, ok)
	assert.Equal(t, 30.0, alice.Attributes["Age"])
	assert.True(t, alice.LinkingObjects.Has("Doc1"))
}

func TestReadSharedHeader(t *testing.T) {
	cols := config.Columns{Node: "name", FilterKey: "name"}
	table, err := Read(strings.NewReader("name\nA\n"), "t", cols)
	require.NoError(t, err)

	require.Len(t, table.Columns, 1)
	assert.ElementsMatch(t, []model.Role{model.RoleNode, model.RoleFilterKey}, table.Columns[0].Roles)
}

func TestReadEmpty(t *testing.T) {
	_, err := Read(strings.NewReader(""), "t", columns())
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(path, []byte(people), 0o644))

	table, err := ReadFile(path, columns())
	require.NoError(t, err)
	assert.Equal(t, "people", table.Columns[0].Table)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"), columns())
	assert.Error(t, err)
}
