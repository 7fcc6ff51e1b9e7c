package state

import "github.com/ritzau/pivot-slicer/pkg/model"

// Reconcile fits a loaded state to freshly built chart data. Missing
// fields take their defaults, attribute multipliers follow the attribute
// columns, and pins or an active node whose key is gone are dropped. An
// unsupported view is replaced and reported through refresh.
func Reconcile(data *model.ChartData, loaded model.ChartState, settings model.Settings) (s model.ChartState, refresh bool) {
	s = loaded.Clone()
	if s.SelectedSection == "" {
		s.SelectedSection = model.SectionAll
	}
	s.TogglePin.Key = model.ToggleAllKey

	s = reconcileNodes(data, s)
	s.TogglePin.Selected = s.AllPinsSelected()

	hasAttributes := len(data.Attributes) > 0
	supported := model.SupportedViews(data.Format, hasAttributes, settings.EnablePinning)
	if len(supported) > 0 && !model.IsSupported(s.View, data.Format, hasAttributes, settings.EnablePinning) {
		s.View = supported[0]
		if loaded.View == "" {
			if def := model.DefaultView(data.Format, hasAttributes); model.IsSupported(def, data.Format, hasAttributes, settings.EnablePinning) {
				s.View = def
			}
		}
		refresh = true
	}

	return s, refresh
}

// reconcileNodes matches attribute multipliers and pins to the data
func reconcileNodes(data *model.ChartData, s model.ChartState) model.ChartState {
	weights := make(map[string]float64, len(data.Attributes))
	for _, attribute := range data.Attributes {
		weights[attribute] = s.AttributeWeight(attribute)
	}
	s.AttributeWeights = weights

	pins := make([]model.ActiveNode, 0, len(s.PinnedNodes))
	for _, p := range s.PinnedNodes {
		if _, ok := data.Node(p.Key); ok {
			pins = append(pins, p)
		}
	}
	s.PinnedNodes = pins

	if s.ActiveNode != nil {
		if _, ok := data.Node(s.ActiveNode.Key); !ok {
			s.ActiveNode = nil
		}
	}
	return s
}
