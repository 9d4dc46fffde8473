package lineMap

import (
	"errors"
	"strings"
	"sync"
)

// Instance - holds the current value of a tracked source and its
// snapshot history.
type Instance struct {
	value      string
	valueMutex sync.Mutex
	source     Source
	history    History
}

// New - creates a new instance of a line map, wrapping an already-loaded
// Source. The initial snapshot is not recorded until InitialIndex runs.
func New(value string, source Source) *Instance {
	return &Instance{
		value:  value,
		source: source,
	}
}

// InitialIndex - records the initial snapshot of `Instance.value` in
// `Instance.history`. This method only succeeds once.
func (i *Instance) InitialIndex() error {
	if i.history.hasInitialSnapshot {
		return errors.New("line map: initial snapshot already exists in history")
	}
	return i.history.snapshot(i, LineSnapshotTypeInitial, nil)
}

// Update - replaces `Instance.value` with newValue and records a snapshot.
// A newValue identical to the latest snapshot records nothing. origins[i] (0-based index into the new lines) names the 1-based line
// number in the PREVIOUS snapshot that produced line i+1 of newValue, or
// originUnknown if the line was inserted (e.g. a macro expansion). A nil
// origins with a line count equal to the previous snapshot is treated as
// an identity mapping.
func (i *Instance) Update(newValue string, origins []int) error {
	if !i.history.hasInitialSnapshot {
		return errors.New("line map: initial snapshot does not exist in history")
	}

	latest := i.history.latest()
	if latest.SourceCompare(newValue) {
		return nil
	}

	newLines := splitLines(newValue)
	if origins == nil && len(newLines) == len(latest.lines) {
		origins = identityOrigins(len(newLines))
	}

	changes := make(map[int]LineChange, len(newLines))
	for idx := range newLines {
		lineNumber := idx + 1
		if origins != nil && idx < len(origins) && origins[idx] != originUnknown {
			changes[lineNumber] = LineChange{_type: LineSnapshotTypeUnchanged, origin: origins[idx]}
		} else {
			changes[lineNumber] = LineChange{_type: LineSnapshotTypeExpanding}
		}
	}

	i.valueMutex.Lock()
	i.value = strings.Clone(newValue)
	i.valueMutex.Unlock()

	return i.history.snapshot(i, LineSnapshotTypeChange, changes)
}

// Value returns the current tracked source.
func (i *Instance) Value() string {
	i.valueMutex.Lock()
	defer i.valueMutex.Unlock()
	return i.value
}

// Lines returns the lines of the current tracked source.
func (i *Instance) Lines() []string {
	return splitLines(i.Value())
}

// LineOrigin traces lineNumber back to the initial snapshot.
func (i *Instance) LineOrigin(lineNumber int) int {
	return i.history.LineOrigin(lineNumber)
}

// LineHistory returns the chronological evolution of lineNumber.
func (i *Instance) LineHistory(lineNumber int) []LineChange {
	return i.history.LineHistory(lineNumber)
}

func identityOrigins(n int) []int {
	origins := make([]int, n)
	for idx := range origins {
		origins[idx] = idx + 1
	}
	return origins
}
