package state

import (
	"slices"

	"github.com/ritzau/pivot-slicer/pkg/logging"
	"github.com/ritzau/pivot-slicer/pkg/model"
)

// CanUndo reports whether an earlier state exists
func (m *Manager) CanUndo() bool {
	return m.index > 0 && m.index < len(m.history)
}

// CanRedo reports whether an undone state exists
func (m *Manager) CanRedo() bool {
	return m.index < len(m.history)-1
}

// Undo returns to the previous distinct state. Earlier entries that would
// restore what is already shown are discarded on the way.
func (m *Manager) Undo() {
	pos := m.index
	for pos > 0 {
		candidate := m.restore(m.history[pos-1])
		if candidate.Equal(m.current) {
			m.history = slices.Delete(m.history, pos-1, pos)
			pos--
			continue
		}

		m.index = pos - 1
		m.history[m.index] = candidate.Clone()
		m.compact()
		m.enter(candidate)
		return
	}
	m.index = pos
	m.compact()
}

// Redo returns to the next undone state
func (m *Manager) Redo() {
	if !m.CanRedo() {
		return
	}
	m.index++
	candidate := m.restore(m.history[m.index])
	m.history[m.index] = candidate.Clone()
	m.compact()
	m.enter(candidate)
}

// History returns copies of the recorded states and the current position
func (m *Manager) History() ([]model.ChartState, int) {
	out := make([]model.ChartState, len(m.history))
	for i, s := range m.history {
		out[i] = s.Clone()
	}
	return out, m.index
}

// save records s after the current history position, dropping any redo
// tail. A state equal to the current entry is not recorded again.
func (m *Manager) save(s model.ChartState, emit bool) {
	m.current = s
	if len(m.history) > 0 && m.history[m.index].Equal(s) {
		return
	}

	m.history = append(m.history[:m.index+1], s.Clone())
	m.index = len(m.history) - 1
	logging.Trace("recorded state", "index", m.index, "history", len(m.history))

	if emit {
		m.saved()
	}
}

// restore prepares a recorded state for display: pins the user has since
// created are kept unselected, and a restored active node that is now
// pinned is folded into its pin
func (m *Manager) restore(snapshot model.ChartState) model.ChartState {
	s := snapshot.Clone()

	for _, from := range m.current.PinnedNodes {
		if s.Pin(from.Key) < 0 {
			from.Selected = false
			s.PinnedNodes = append(s.PinnedNodes, from)
		}
	}
	if s.ActiveNode != nil {
		if i := s.Pin(s.ActiveNode.Key); i >= 0 {
			s.PinnedNodes[i].Selected = true
			s.ActiveNode = nil
		}
	}

	s = reconcileNodes(m.data, s)
	updateTogglePin(&s)
	m.colorize(&s)
	return s
}

// enter shows a restored state
func (m *Manager) enter(s model.ChartState) {
	m.current = s
	m.generate(s)
	m.saved()
	m.updated()
}

// compact removes consecutive duplicates from the history, keeping the
// position on the same state
func (m *Manager) compact() {
	out := make([]model.ChartState, 0, len(m.history))
	index := 0
	for i, s := range m.history {
		if len(out) == 0 || !out[len(out)-1].Equal(s) {
			out = append(out, s)
		}
		if i <= m.index {
			index = len(out) - 1
		}
	}
	m.history = out
	m.index = index
}
