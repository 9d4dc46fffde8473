package lineMap

import (
	"crypto/sha256"
	"errors"
	"fmt"
)

const (
	LineSnapshotTypeInitial = "initial"
	LineSnapshotTypeChange  = "change"

	LineSnapshotTypeExpanding   = "expanding"
	LineSnapshotTypeContracting = "contracting"
	LineSnapshotTypeUnchanged   = "unchanged"
)

// originUnknown marks a line that cannot be traced back to an earlier
// snapshot: it was inserted by a preprocessing step (e.g. a macro body).
const originUnknown = -1

// LineChange - records how one line of a snapshot relates to the
// previous snapshot: unchanged (with its origin line number), or
// expanding/contracting (no traceable origin).
type LineChange struct {
	_type  string
	origin int
}

// String - returns a string representation of the LineChange for debugging purposes.
func (lc LineChange) String() string {
	if lc._type == LineSnapshotTypeUnchanged {
		return fmt.Sprintf("LineChange{Type: %s, Origin: %d}", lc._type, lc.origin)
	}
	return fmt.Sprintf("LineChange{Type: %s}", lc._type)
}

type LinesSnapshot struct {
	_type   string
	hash    string
	source  string
	lines   []string
	changes map[int]LineChange // keyed by 1-based line number in THIS snapshot.
}

// SourceCompare - compares the source of a snapshot with a given value. Returns true if the
// sources are equal, false otherwise.
func (s LinesSnapshot) SourceCompare(value string) bool {
	return s.hash == generateSourceHash(value)
}

type History struct {
	hasInitialSnapshot bool
	items              []LinesSnapshot
}

// empty - returns true if the history is empty, false otherwise.
func (h *History) empty() bool {
	return len(h.items) == 0
}

// latest - returns the latest snapshot in the history. Returns nil if the history is empty.
func (h *History) latest() *LinesSnapshot {
	if h.empty() {
		return nil
	}
	return &h.items[len(h.items)-1]
}

// LineOrigin - traces a line number in the current (latest) snapshot back through
// all change snapshots to find the original line number in the initial snapshot.
// Returns -1 if the line cannot be traced (e.g. it was inserted by a preprocessor step).
func (h *History) LineOrigin(lineNumber int) int {
	if h.empty() {
		return originUnknown
	}

	current := lineNumber

	// Walk backwards through snapshots (skip the initial one at index 0).
	for i := len(h.items) - 1; i > 0; i-- {
		snapshot := h.items[i]
		if snapshot.changes == nil {
			continue
		}

		change, exists := snapshot.changes[current]
		if !exists {
			// Line was not part of any recorded change; it maps 1:1.
			continue
		}

		switch change._type {
		case LineSnapshotTypeUnchanged:
			current = change.origin
		default:
			// expanding/contracting: inserted or removed by this step.
			return originUnknown
		}
	}

	return current
}

// LineHistory - returns the chronological evolution of a line across all
// recorded snapshots, oldest first.
func (h *History) LineHistory(lineNumber int) []LineChange {
	if h.empty() {
		return nil
	}

	var result []LineChange
	current := lineNumber

	for i := len(h.items) - 1; i > 0; i-- {
		snapshot := h.items[i]
		change, exists := snapshot.changes[current]
		if !exists {
			change = LineChange{_type: LineSnapshotTypeUnchanged, origin: current}
		}
		result = append([]LineChange{change}, result...)

		if change._type != LineSnapshotTypeUnchanged {
			break
		}
		current = change.origin
	}

	return result
}

// snapshot - creates a snapshot of the current state of `Instance`
// and appends it to the history. changes may be nil for the initial snapshot.
func (h *History) snapshot(instance *Instance, _type string, changes map[int]LineChange) error {
	// Cannot have more than one initial snapshot in the history.
	if _type == LineSnapshotTypeInitial && h.hasInitialSnapshot {
		return errors.New("initial snapshot already exists in history")
	}

	h.items = append(h.items, LinesSnapshot{
		_type:   _type,
		hash:    generateSourceHash(instance.value),
		source:  instance.value,
		lines:   splitLines(instance.value),
		changes: changes,
	})

	if _type == LineSnapshotTypeInitial {
		h.hasInitialSnapshot = true
	}

	return nil
}

// generateSourceHash - generates a hash for a given source string. This is used to quickly
// compare sources and determine if they are identical or not.
func generateSourceHash(source string) string {
	hash := sha256.Sum256([]byte(source))
	return fmt.Sprintf("%x", hash)
}

func splitLines(source string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			lines = append(lines, source[start:i])
			start = i + 1
		}
	}
	if start < len(source) {
		lines = append(lines, source[start:])
	}
	return lines
}
