package filter

import (
	"github.com/ritzau/pivot-slicer/pkg/logging"
	"github.com/ritzau/pivot-slicer/pkg/model"
)

// FilterAction tells the host whether to merge or remove a filter
type FilterAction int

const (
	ActionMerge FilterAction = iota
	ActionRemove
)

func (a FilterAction) String() string {
	if a == ActionMerge {
		return "merge"
	}
	return "remove"
}

// Host applies filters and selections to the rest of the report
type Host interface {
	// ApplyFilter merges a filter or removes the current one. Removal
	// completes asynchronously with the host's next update cycle.
	ApplyFilter(filter *BasicFilter, action FilterAction)
	// ClearSelection drops the current selection
	ClearSelection()
	// Select selects the given rows
	Select(ids []model.SelectionID)
}

// Manager sends instructions to the host. Direct selections requested
// while a filter is active wait until the host confirms the filter removal.
type Manager struct {
	host Host

	activeFilter     *BasicFilter
	activeSelections model.SelectionSet

	// pending is nil when nothing waits for confirmation
	pending model.SelectionSet
}

// NewManager creates a manager talking to host
func NewManager(host Host) *Manager {
	return &Manager{host: host}
}

// Apply hands an instruction to the host
func (m *Manager) Apply(instr Instruction) {
	if instr.Filter != nil {
		m.pending = nil
		m.sendFilter(instr.Filter)
		return
	}

	ids := instr.SelectionIDs
	if ids == nil {
		ids = make(model.SelectionSet)
	}

	if m.activeFilter != nil || m.pending != nil {
		// Newer requests overwrite older ones still waiting
		m.pending = ids
		m.sendFilter(nil)
		logging.Debug("selections pending filter removal", "count", len(ids))
		return
	}
	m.sendSelections(ids)
}

// ApplyPending sends the selections queued behind a filter removal. The
// host calls it when it finishes an update cycle.
func (m *Manager) ApplyPending() {
	if m.pending == nil {
		return
	}
	ids := m.pending
	m.pending = nil
	m.sendSelections(ids)
}

// HasPending reports whether selections are waiting for confirmation
func (m *Manager) HasPending() bool {
	return m.pending != nil
}

// ActiveFilter returns the filter last sent to the host
func (m *Manager) ActiveFilter() *BasicFilter {
	return m.activeFilter
}

// ActiveSelections returns the selection last sent to the host
func (m *Manager) ActiveSelections() model.SelectionSet {
	return m.activeSelections
}

func (m *Manager) sendFilter(filter *BasicFilter) {
	if filter.Equal(m.activeFilter) {
		return
	}

	action := ActionRemove
	if filter != nil && len(filter.Values) > 0 {
		action = ActionMerge
	}

	m.activeFilter = filter
	if action == ActionRemove {
		m.activeFilter = nil
	}
	logging.Debug("sending filter", "action", action.String())
	m.host.ApplyFilter(filter, action)
}

func (m *Manager) sendSelections(ids model.SelectionSet) {
	if ids.Equal(m.activeSelections) {
		return
	}

	old := m.activeSelections
	m.activeSelections = ids
	if len(old) > 0 {
		m.host.ClearSelection()
	}
	if len(ids) > 0 {
		m.host.Select(ids.Sorted())
	}
	logging.Debug("sending selections", "count", len(ids))
}
