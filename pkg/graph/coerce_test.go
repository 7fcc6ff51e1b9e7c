package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritzau/pivot-slicer/pkg/keys"
	"github.com/ritzau/pivot-slicer/pkg/model"
)

func TestStringValue(t *testing.T) {
	row := []any{"Alice", "", nil, 42}

	assert.Equal(t, "Alice", stringValue(row, 0, "x"))
	assert.Equal(t, "x", stringValue(row, 1, "x"))
	assert.Equal(t, "x", stringValue(row, 2, "x"))
	assert.Equal(t, "42", stringValue(row, 3, "x"))
	assert.Equal(t, "x", stringValue(row, -1, "x"))
	assert.Equal(t, "x", stringValue(row, 9, "x"))
}

func TestNumberValue(t *testing.T) {
	row := []any{"2.5", " 3 ", "abc", -4.0, nil, math.NaN(), 7, ""}

	assert.Equal(t, 2.5, numberValue(row, 0, 1))
	assert.Equal(t, 3.0, numberValue(row, 1, 1))
	assert.Equal(t, 1.0, numberValue(row, 2, 1), "non-numeric takes the default")
	assert.Equal(t, 0.0, numberValue(row, 3, 1), "negatives floor to zero")
	assert.Equal(t, 1.0, numberValue(row, 4, 1))
	assert.Equal(t, 1.0, numberValue(row, 5, 1))
	assert.Equal(t, 7.0, numberValue(row, 6, 1))
	assert.Equal(t, 0.0, numberValue(row, 7, 0))
	assert.Equal(t, 1.0, numberValue(row, -1, 1))
}

func TestNumberValueRejectsNonFinite(t *testing.T) {
	row := []any{"Inf", "-Inf", "NaN", "1e400", math.Inf(1), "+Inf"}

	for i := range row {
		assert.Equal(t, 1.0, numberValue(row, i, 1), "cell %v takes the default", row[i])
	}
}

func TestExplicitLinkWeightIgnoresInfinity(t *testing.T) {
	table := &Table{
		Columns: []model.Column{
			column("From", model.RoleNode),
			column("To", model.RoleLinkedNode),
			column("Weight", model.RoleLinkWeight),
		},
		Values: [][]any{
			{"A"},
			{"B"},
			{"Inf"},
		},
	}

	data := Build(table, Options{})
	a := data.Nodes[keys.Create(model.DefaultTypeLabel, "A")]
	require.NotNil(t, a)
	assert.Equal(t, 1.0, a.Outbound[model.DefaultTypeLabel][keys.Create(model.DefaultTypeLabel, "B")])
}
