// Package state owns the interaction state of the chart: pins, the active
// node, the view, attribute multipliers and the undo/redo history.
//
// Every handler derives a new state from a copy of the current one,
// regenerates the weights, records the state in the history and notifies
// the listener.
package state

import (
	"github.com/ritzau/pivot-slicer/pkg/colors"
	"github.com/ritzau/pivot-slicer/pkg/logging"
	"github.com/ritzau/pivot-slicer/pkg/model"
	"github.com/ritzau/pivot-slicer/pkg/weights"
)

// Listener receives state notifications. Nil callbacks are skipped.
type Listener struct {
	// StateSaved is called when a state should be persisted and applied to the host
	StateSaved func(model.ChartState)
	// StateUpdated is called whenever the current state or weights change
	StateUpdated func(model.ChartState)
	// ScrollReset asks the renderer to scroll the item list to the top
	ScrollReset func()
}

// Manager owns the current state and its history
type Manager struct {
	settings model.Settings
	data     *model.ChartData
	listener Listener

	current model.ChartState
	history []model.ChartState
	index   int
	weights *model.AllWeights
	loaded  bool
}

// NewManager creates a manager holding the default state
func NewManager(settings model.Settings, listener Listener) *Manager {
	initial := model.DefaultState()
	return &Manager{
		settings: settings,
		data:     model.NewChartData(),
		listener: listener,
		current:  initial,
		history:  []model.ChartState{initial.Clone()},
		weights:  model.NewAllWeights(),
	}
}

// State returns a copy of the current state
func (m *Manager) State() model.ChartState {
	return m.current.Clone()
}

// Weights returns the weights of the current state
func (m *Manager) Weights() *model.AllWeights {
	return m.weights
}

// Data returns the loaded chart data
func (m *Manager) Data() *model.ChartData {
	return m.data
}

// Settings returns the settings in use
func (m *Manager) Settings() model.Settings {
	return m.settings
}

// Load installs new chart data and settings and restores a persisted
// state. The history restarts on the first load and when the view had to
// be replaced.
func (m *Manager) Load(settings model.Settings, data *model.ChartData, persisted model.ChartState) {
	m.settings = settings
	m.data = data

	state, refresh := Reconcile(data, persisted, settings)
	if refresh || !m.loaded {
		logging.Debug("resetting history", "view", string(state.View), "refresh", refresh)
		m.resetHistory(state)
	}
	m.loaded = true

	m.colorize(&state)
	m.generate(state)
	m.save(state, false)
	m.updated()
}

// Reset replaces the history with a single state
func (m *Manager) Reset(state model.ChartState) {
	m.resetHistory(state)
	if m.data.Loaded() {
		m.generate(m.current)
		m.updated()
	}
}

// resetHistory replaces the history without notifying listeners
func (m *Manager) resetHistory(state model.ChartState) {
	m.colorize(&state)
	m.history = []model.ChartState{state.Clone()}
	m.index = 0
	m.current = state
}

// SelectSection expands a section, or collapses the expanded one
func (m *Manager) SelectSection(section string) {
	if section == "" {
		return
	}
	s := m.current.Clone()
	if s.SelectedSection == model.SectionAll {
		s.SelectedSection = section
	} else {
		s.SelectedSection = model.SectionAll
	}
	m.commit(s, true)
}

// SelectItem selects a listed node. Pinned nodes become selected, other
// nodes become the active node, and clicking the active node again
// deselects it.
func (m *Manager) SelectItem(key string) {
	if !m.known(key) {
		return
	}
	s := m.current.Clone()
	if i := s.Pin(key); i >= 0 {
		s.PinnedNodes[i].Selected = true
		s.ActiveNode = nil
	} else if s.ActiveNode == nil || s.ActiveNode.Key != key {
		s.ActiveNode = &model.ActiveNode{Key: key}
	} else {
		s.ActiveNode = nil
	}
	s.SelectedSection = model.SectionAll
	updateTogglePin(&s)
	m.commit(s, true)
}

// SelectSelectedItem handles a click in the selected items summary: a
// pinned node toggles its selection and the active node is dropped
func (m *Manager) SelectSelectedItem(key string) {
	if !m.known(key) {
		return
	}
	s := m.current.Clone()
	if i := s.Pin(key); i >= 0 {
		s.PinnedNodes[i].Selected = !s.PinnedNodes[i].Selected
	}
	s.ActiveNode = nil
	s.SelectedSection = model.SectionAll
	updateTogglePin(&s)
	m.commit(s, false)
}

// ClickPin toggles the selection of a pin. The toggle-all pin flips every pin.
func (m *Manager) ClickPin(key string) {
	s := m.current.Clone()
	if key == model.ToggleAllKey {
		selected := !s.TogglePin.Selected
		for i := range s.PinnedNodes {
			s.PinnedNodes[i].Selected = selected
		}
		s.TogglePin.Selected = selected
	} else {
		if i := s.Pin(key); i >= 0 {
			s.PinnedNodes[i].Selected = !s.PinnedNodes[i].Selected
		}
		updateTogglePin(&s)
	}
	s.SelectedSection = model.SectionAll
	m.commit(s, true)
}

// TogglePinItem pins or unpins a listed node. Pinning the active node
// keeps it selected, other nodes are pinned unselected.
func (m *Manager) TogglePinItem(key string) {
	if !m.known(key) {
		return
	}
	s := m.current.Clone()
	switch i := s.Pin(key); {
	case i >= 0:
		s.PinnedNodes = append(s.PinnedNodes[:i], s.PinnedNodes[i+1:]...)
	case s.ActiveNode != nil && s.ActiveNode.Key == key:
		s.PinnedNodes = append(s.PinnedNodes, model.ActiveNode{Key: key, Selected: true})
		s.ActiveNode = nil
	default:
		s.PinnedNodes = append(s.PinnedNodes, model.ActiveNode{Key: key})
	}
	updateTogglePin(&s)
	m.commit(s, false)
}

// ClearPin removes a pin, or every pin for the toggle-all key
func (m *Manager) ClearPin(key string) {
	s := m.current.Clone()
	if key == model.ToggleAllKey {
		s.PinnedNodes = []model.ActiveNode{}
	} else if i := s.Pin(key); i >= 0 {
		s.PinnedNodes = append(s.PinnedNodes[:i], s.PinnedNodes[i+1:]...)
	}
	s.SelectedSection = model.SectionAll
	updateTogglePin(&s)
	m.commit(s, true)
}

// CycleView switches to the view option following option
func (m *Manager) CycleView(option string) {
	options := m.viewOptions()
	if len(options) == 0 {
		return
	}
	next := 0
	for i, o := range options {
		if o == option {
			next = (i + 1) % len(options)
			break
		}
	}
	m.SetView(model.ViewForOption(m.data.Format, options[next]))
}

// SetView switches to a view supported by the loaded data
func (m *Manager) SetView(view model.DataView) {
	if !model.IsSupported(view, m.data.Format, len(m.data.Attributes) > 0, m.settings.EnablePinning) {
		logging.Debug("ignoring unsupported view", "view", string(view))
		return
	}
	s := m.current.Clone()
	s.View = view
	s.SelectedSection = model.SectionAll
	m.commit(s, true)
}

// ViewOptions lists the view options offered for the loaded data
func (m *Manager) ViewOptions() []string {
	return m.viewOptions()
}

func (m *Manager) viewOptions() []string {
	return model.ViewOptions(m.data.Format, len(m.data.Attributes) > 0, m.settings.EnablePinning)
}

// ChangeAttributeWeight steps an attribute multiplier up or down
func (m *Manager) ChangeAttributeWeight(attribute string, increase bool) {
	known := false
	for _, a := range m.data.Attributes {
		known = known || a == attribute
	}
	if !known {
		return
	}

	delta := m.settings.AttributeWeightDelta
	if !increase {
		delta = -delta
	}
	s := m.current.Clone()
	s.AttributeWeights[attribute] = s.AttributeWeight(attribute) + delta
	m.commit(s, false)
}

// known reports whether key names a loaded node
func (m *Manager) known(key string) bool {
	if key == "" {
		return false
	}
	_, ok := m.data.Node(key)
	return ok
}

// commit makes s the current state and records it
func (m *Manager) commit(s model.ChartState, resetScroll bool) {
	m.colorize(&s)
	m.generate(s)
	m.save(s, true)
	if resetScroll && m.listener.ScrollReset != nil {
		m.listener.ScrollReset()
	}
	m.updated()
}

// colorize assigns pin colors by pin position. The active node takes the
// color following the last pin.
func (m *Manager) colorize(s *model.ChartState) {
	base, lightness := m.settings.BookmarkColor, m.settings.BookmarkLightness
	for i := range s.PinnedNodes {
		if _, ok := m.data.Node(s.PinnedNodes[i].Key); ok {
			s.PinnedNodes[i].Color = colors.BookmarkColor(base, lightness, i)
		}
	}
	if s.ActiveNode != nil {
		s.ActiveNode.Color = colors.BookmarkColor(base, lightness, len(s.PinnedNodes))
	}
	s.TogglePin.Key = model.ToggleAllKey
	s.TogglePin.Color = colors.TogglePinGray(lightness)
}

// generate recomputes the weights of s
func (m *Manager) generate(s model.ChartState) {
	var selected []*model.Node
	nodeColors := make(map[string]string)
	for _, a := range s.SelectedNodes() {
		if node, ok := m.data.Node(a.Key); ok {
			selected = append(selected, node)
			nodeColors[a.Key] = a.Color
		}
	}

	m.weights = weights.Generate(weights.Input{
		Settings:              m.settings,
		State:                 s,
		Data:                  m.data,
		Selected:              selected,
		CountingCooccurrences: s.View.CountsCooccurrences(),
		Outbound:              !s.View.IsInbound(),
		ShowRelated:           m.settings.ShowRelated,
		NodeColors:            nodeColors,
	})
}

func (m *Manager) saved() {
	if m.listener.StateSaved != nil {
		m.listener.StateSaved(m.current.Clone())
	}
}

func (m *Manager) updated() {
	if m.listener.StateUpdated != nil {
		m.listener.StateUpdated(m.current.Clone())
	}
}

// updateTogglePin derives the toggle-all selection from the pins
func updateTogglePin(s *model.ChartState) {
	s.TogglePin.Selected = s.AllPinsSelected()
}
