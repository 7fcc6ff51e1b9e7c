package session

import (
	"github.com/ritzau/pivot-slicer/pkg/filter"
	"github.com/ritzau/pivot-slicer/pkg/logging"
	"github.com/ritzau/pivot-slicer/pkg/model"
	"github.com/ritzau/pivot-slicer/pkg/pubsub"
)

// HostStatus is what the host was last told to show
type HostStatus struct {
	Filter    *filter.BasicFilter `json:"filter"`
	Selection []model.SelectionID `json:"selection"`
	// AwaitingConfirmation is set between a filter removal and Confirm
	AwaitingConfirmation bool `json:"awaitingConfirmation"`
	// Pending is set while selections wait for the confirmation
	Pending bool `json:"pending"`
}

// HostInstruction is published on the host topic
type HostInstruction struct {
	Action    string              `json:"action,omitempty"`
	Filter    *filter.BasicFilter `json:"filter,omitempty"`
	Selection []model.SelectionID `json:"selection,omitempty"`
}

// host records the instructions of the filter manager and forwards them
// to subscribers. The session lock is held by every caller.
type host struct {
	s *Session
}

func (h host) ApplyFilter(f *filter.BasicFilter, action filter.FilterAction) {
	status := &h.s.host
	if action == filter.ActionRemove {
		status.Filter = nil
		status.AwaitingConfirmation = true
	} else {
		status.Filter = f
	}
	h.s.publish(pubsub.TopicHost, pubsub.EventFilter, HostInstruction{Action: action.String(), Filter: f})
}

func (h host) ClearSelection() {
	h.s.host.Selection = nil
	h.s.publish(pubsub.TopicHost, pubsub.EventClear, HostInstruction{})
}

func (h host) Select(ids []model.SelectionID) {
	h.s.host.Selection = ids
	h.s.publish(pubsub.TopicHost, pubsub.EventSelect, HostInstruction{Selection: ids})
	logging.Trace("host selection", "session", h.s.id, "count", len(ids))
}
