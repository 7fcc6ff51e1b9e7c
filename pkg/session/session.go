// Package session binds chart data, interaction state, host instructions
// and persistence for one chart. All methods are safe for concurrent use.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ritzau/pivot-slicer/pkg/filter"
	"github.com/ritzau/pivot-slicer/pkg/graph"
	"github.com/ritzau/pivot-slicer/pkg/logging"
	"github.com/ritzau/pivot-slicer/pkg/model"
	"github.com/ritzau/pivot-slicer/pkg/pubsub"
	"github.com/ritzau/pivot-slicer/pkg/state"
)

var (
	// ErrUnknownAction is returned for an unsupported action type
	ErrUnknownAction = errors.New("unknown action")
	// ErrInvalidAction is returned when an action lacks a required field
	ErrInvalidAction = errors.New("invalid action")
)

// Action types accepted by Dispatch
const (
	ActionSelectSection         = "selectSection"
	ActionSelectItem            = "selectItem"
	ActionSelectSelectedItem    = "selectSelectedItem"
	ActionClickPin              = "clickPin"
	ActionTogglePinItem         = "togglePinItem"
	ActionClearPin              = "clearPin"
	ActionCycleView             = "cycleView"
	ActionSetView               = "setView"
	ActionChangeAttributeWeight = "changeAttributeWeight"
	ActionUndo                  = "undo"
	ActionRedo                  = "redo"
)

// Action is a user interaction
type Action struct {
	Type      string         `json:"type"`
	Key       string         `json:"key,omitempty"`
	Section   string         `json:"section,omitempty"`
	Option    string         `json:"option,omitempty"`
	View      model.DataView `json:"view,omitempty"`
	Attribute string         `json:"attribute,omitempty"`
	Increase  bool           `json:"increase,omitempty"`
}

// Snapshot is the externally visible session state
type Snapshot struct {
	ID          string           `json:"id"`
	Format      model.DataFormat `json:"format"`
	State       model.ChartState `json:"state"`
	ViewOptions []string         `json:"viewOptions"`
	CanUndo     bool             `json:"canUndo"`
	CanRedo     bool             `json:"canRedo"`
	Settings    model.Settings   `json:"settings"`
}

// Options configure a session
type Options struct {
	Settings model.Settings
	// Store persists the state, a MemoryStore when nil
	Store Store
	// Publisher receives state, weight and host events, optional
	Publisher pubsub.Publisher
}

// Session is the host side of one chart
type Session struct {
	mu        sync.Mutex
	id        string
	settings  model.Settings
	store     Store
	publisher pubsub.Publisher

	states  *state.Manager
	filters *filter.Manager
	host    HostStatus
}

// New creates a session without data
func New(opts Options) *Session {
	s := &Session{
		id:        uuid.NewString(),
		settings:  opts.Settings,
		store:     opts.Store,
		publisher: opts.Publisher,
	}
	if s.store == nil {
		s.store = &MemoryStore{}
	}
	s.states = state.NewManager(opts.Settings, state.Listener{
		StateSaved:   s.stateSaved,
		StateUpdated: s.stateUpdated,
		ScrollReset: func() {
			logging.Trace("scroll reset", "session", s.id)
		},
	})
	s.filters = filter.NewManager(host{s: s})
	return s
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

// Load builds the chart data from table and restores the stored state.
// A missing or unreadable state falls back to the defaults.
func (s *Session) Load(ctx context.Context, table *graph.Table) {
	ctx = logging.WithSessionID(ctx, s.id)

	s.mu.Lock()
	defer s.mu.Unlock()

	persisted := model.DefaultState()
	blob, err := s.store.Load()
	if err != nil {
		logging.WarnContext(ctx, "failed to load state, using defaults", "error", err)
	} else if persisted, err = state.Unmarshal(blob); err != nil {
		logging.WarnContext(ctx, "ignoring stored state", "error", err)
	}

	data := graph.Build(table, graph.Options{
		ShowRelated: s.settings.ShowRelated,
		DefaultType: s.settings.DefaultType(),
	})
	s.states.Load(s.settings, data, persisted)

	// Loading completes a host update cycle
	s.filters.ApplyPending()

	logging.InfoContext(ctx, "chart loaded",
		"format", string(data.Format),
		"nodes", len(data.Nodes),
		"view", string(s.states.State().View))
}

// Dispatch applies a user interaction
func (s *Session) Dispatch(ctx context.Context, a Action) error {
	ctx = logging.WithSessionID(ctx, s.id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.dispatch(a); err != nil {
		return err
	}
	logging.DebugContext(ctx, "action applied", "type", a.Type)
	return nil
}

func (s *Session) dispatch(a Action) error {
	require := func(field, value string) error {
		if value == "" {
			return fmt.Errorf("%w: %s requires %s", ErrInvalidAction, a.Type, field)
		}
		return nil
	}

	switch a.Type {
	case ActionSelectSection:
		if err := require("section", a.Section); err != nil {
			return err
		}
		s.states.SelectSection(a.Section)
	case ActionSelectItem:
		if err := require("key", a.Key); err != nil {
			return err
		}
		s.states.SelectItem(a.Key)
	case ActionSelectSelectedItem:
		if err := require("key", a.Key); err != nil {
			return err
		}
		s.states.SelectSelectedItem(a.Key)
	case ActionClickPin:
		if err := require("key", a.Key); err != nil {
			return err
		}
		s.states.ClickPin(a.Key)
	case ActionTogglePinItem:
		if err := require("key", a.Key); err != nil {
			return err
		}
		s.states.TogglePinItem(a.Key)
	case ActionClearPin:
		if err := require("key", a.Key); err != nil {
			return err
		}
		s.states.ClearPin(a.Key)
	case ActionCycleView:
		s.states.CycleView(a.Option)
	case ActionSetView:
		if err := require("view", string(a.View)); err != nil {
			return err
		}
		s.states.SetView(a.View)
	case ActionChangeAttributeWeight:
		if err := require("attribute", a.Attribute); err != nil {
			return err
		}
		s.states.ChangeAttributeWeight(a.Attribute, a.Increase)
	case ActionUndo:
		s.states.Undo()
	case ActionRedo:
		s.states.Redo()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	return nil
}

// Confirm completes the host update cycle that follows a filter removal
// and flushes the selections waiting for it
func (s *Session) Confirm(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.host.AwaitingConfirmation = false
	s.filters.ApplyPending()
	s.publish(pubsub.TopicHost, pubsub.EventConfirmed, s.hostStatus())
	logging.DebugContext(logging.WithSessionID(ctx, s.id), "host confirmed")
}

// Snapshot returns the current state and the actions available on it
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		ID:          s.id,
		Format:      s.states.Data().Format,
		State:       s.states.State(),
		ViewOptions: s.states.ViewOptions(),
		CanUndo:     s.states.CanUndo(),
		CanRedo:     s.states.CanRedo(),
		Settings:    s.settings,
	}
}

// Data returns the loaded chart data. The data is replaced, never
// modified, by later loads.
func (s *Session) Data() *model.ChartData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states.Data()
}

// Weights returns the weights of the current state
func (s *Session) Weights() *model.AllWeights {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states.Weights()
}

// Host returns what the host was last told to show
func (s *Session) Host() HostStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hostStatus()
}

func (s *Session) hostStatus() HostStatus {
	status := s.host
	status.Selection = append([]model.SelectionID(nil), s.host.Selection...)
	status.Pending = s.filters.HasPending()
	return status
}

// stateSaved persists the state and tells the host what to show
func (s *Session) stateSaved(st model.ChartState) {
	blob, err := state.Marshal(st)
	if err != nil {
		logging.Error("failed to marshal state", "session", s.id, "error", err)
	} else if err := s.store.Save(blob); err != nil {
		logging.Warn("failed to persist state", "session", s.id, "error", err)
	}

	s.filters.Apply(filter.Translate(st, s.states.Data()))
	s.publish(pubsub.TopicState, pubsub.EventStateSaved, s.snapshot())
}

func (s *Session) stateUpdated(model.ChartState) {
	s.publish(pubsub.TopicState, pubsub.EventStateUpdated, s.snapshot())
	s.publish(pubsub.TopicWeights, pubsub.EventWeights, s.states.Weights())
}

func (s *Session) publish(topic, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(topic, eventType, data); err != nil {
		logging.Warn("failed to publish event", "session", s.id, "topic", topic, "error", err)
	}
}
