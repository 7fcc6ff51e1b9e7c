package watcher

import "github.com/fsnotify/fsnotify"

// ChangeType represents the type of file change detected
type ChangeType int

const (
	// ChangeTypeModified means the file has new content to load
	ChangeTypeModified ChangeType = iota
	// ChangeTypeRemoved means the file is gone; the loaded data stays
	ChangeTypeRemoved
)

func (c ChangeType) String() string {
	if c == ChangeTypeRemoved {
		return "removed"
	}
	return "modified"
}

// classify maps a file system operation to a change. Attribute-only
// changes are ignored.
func classify(op fsnotify.Op) (ChangeType, bool) {
	switch {
	case op.Has(fsnotify.Create), op.Has(fsnotify.Write):
		return ChangeTypeModified, true
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		// Editors saving atomically rename over the file; the Create
		// that follows turns the batch back into a modification
		return ChangeTypeRemoved, true
	default:
		return 0, false
	}
}

// NeedsReload reports whether a settled change should reload the input
func NeedsReload(event ChangeEvent) bool {
	return event.Type == ChangeTypeModified
}
