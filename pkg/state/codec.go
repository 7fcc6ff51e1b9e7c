package state

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ritzau/pivot-slicer/pkg/model"
)

// Marshal serializes a state for host storage
func Marshal(s model.ChartState) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal state: %w", err)
	}
	return string(data), nil
}

// Unmarshal restores a state from host storage. Fields missing from the
// blob keep their defaults and an empty blob yields the default state.
func Unmarshal(blob string) (model.ChartState, error) {
	s := model.DefaultState()
	if strings.TrimSpace(blob) == "" {
		return s, nil
	}
	if err := json.Unmarshal([]byte(blob), &s); err != nil {
		return model.DefaultState(), fmt.Errorf("failed to unmarshal state: %w", err)
	}
	if s.PinnedNodes == nil {
		s.PinnedNodes = []model.ActiveNode{}
	}
	if s.AttributeWeights == nil {
		s.AttributeWeights = map[string]float64{}
	}
	return s, nil
}
