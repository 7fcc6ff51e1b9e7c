package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritzau/pivot-slicer/pkg/model"
)

func TestMarshalRoundTrip(t *testing.T) {
	s := model.DefaultState()
	s.View = model.ViewJointLinks
	s.SelectedSection = "Person"
	s.PinnedNodes = []model.ActiveNode{{Key: alice, Color: "hsl(1,2%,3%)", Selected: true}}
	s.ActiveNode = &model.ActiveNode{Key: bob}
	s.AttributeWeights = map[string]float64{"Age": -0.5, "Height": 1}

	blob, err := Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, blob, `"attributeWeights":{"Age":-0.5,"Height":1}`)

	restored, err := Unmarshal(blob)
	require.NoError(t, err)
	assert.True(t, s.Equal(restored))
}

func TestUnmarshalDefaults(t *testing.T) {
	s, err := Unmarshal("")
	require.NoError(t, err)
	assert.True(t, model.DefaultState().Equal(s))

	s, err = Unmarshal(`{"view":"LINKS","pinnedNodes":null}`)
	require.NoError(t, err)
	assert.Equal(t, model.ViewLinks, s.View)
	assert.Equal(t, model.SectionAll, s.SelectedSection)
	assert.NotNil(t, s.PinnedNodes)
	assert.NotNil(t, s.AttributeWeights)
}

func TestUnmarshalInvalid(t *testing.T) {
	s, err := Unmarshal("{not json")
	assert.Error(t, err)
	assert.True(t, model.DefaultState().Equal(s))
}
