package model

// Weight is the ranking score of a section or item together with the
// contribution of each selected node (or attribute) for stacked display
type Weight struct {
	TargetKey    string             `json:"targetKey"`
	Weight       float64            `json:"weight"`
	DisplayLabel string             `json:"displayLabel"`
	Components   map[string]float64 `json:"components"`
	Colors       map[string]string  `json:"colors"`
}

// NewWeight creates a weight with empty breakdowns
func NewWeight(target string, weight float64) Weight {
	return Weight{
		TargetKey:  target,
		Weight:     weight,
		Components: make(map[string]float64),
		Colors:     make(map[string]string),
	}
}

// Clone returns a deep copy
func (w Weight) Clone() Weight {
	c := NewWeight(w.TargetKey, w.Weight)
	c.DisplayLabel = w.DisplayLabel
	for k, v := range w.Components {
		c.Components[k] = v
	}
	for k, v := range w.Colors {
		c.Colors[k] = v
	}
	return c
}

// AllWeights is everything the renderer needs for one state of the chart.
// It is recomputed wholesale on every state change.
type AllWeights struct {
	SectionOrder          []string            `json:"sectionOrder"`
	SectionWeights        map[string]Weight   `json:"sectionWeights"`
	SectionMaxItemWeights map[string]float64  `json:"sectionMaxItemWeights"`
	MaxSectionWeight      float64             `json:"maxSectionWeight"`
	ItemWeights           map[string][]Weight `json:"itemWeights"`
	SelectedItemWeights   []Weight            `json:"selectedItemWeights"`

	// Node families keyed by the shared node name
	FamilyWeights     map[string]float64  `json:"familyWeights"`
	FamilyItemWeights map[string][]Weight `json:"familyItemWeights"`
	FamilyOrder       []string            `json:"familyOrder"`
}

// NewAllWeights creates an empty result
func NewAllWeights() *AllWeights {
	return &AllWeights{
		SectionOrder:          []string{},
		SectionWeights:        make(map[string]Weight),
		SectionMaxItemWeights: make(map[string]float64),
		ItemWeights:           make(map[string][]Weight),
		SelectedItemWeights:   []Weight{},
		FamilyWeights:         make(map[string]float64),
		FamilyItemWeights:     make(map[string][]Weight),
		FamilyOrder:           []string{},
	}
}

// Item returns the weight of key within a section
func (a *AllWeights) Item(section, key string) (Weight, bool) {
	for _, w := range a.ItemWeights[section] {
		if w.TargetKey == key {
			return w, true
		}
	}
	return Weight{}, false
}
