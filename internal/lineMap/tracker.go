package lineMap

// Tracker provides a simplified, high-level API for the most common lineMap
// workflow: load a source file, track it through pre-processing transformations,
// and trace lines back to their origin.
//
// Create a Tracker exclusively through Track(). If a Tracker exists, it is
// guaranteed to hold a valid, fully initialised Instance.
type Tracker struct {
	instance *Instance
	source   Source
}

// Track is the single entry point for the facade. It validates and reads the
// .as file at path, creates an Instance with the initial snapshot, and returns a
// ready-to-use *Tracker, or an error if the file cannot be loaded.
//
// The caller does not need to read the file separately — the content read by
// LoadSource is used for the initial snapshot.
func Track(path string) (*Tracker, error) {
	src, err := LoadSource(path)
	if err != nil {
		return nil, err
	}

	instance := New(src.Content(), src)
	if err := instance.InitialIndex(); err != nil {
		return nil, err
	}

	return &Tracker{
		instance: instance,
		source:   src,
	}, nil
}

// Snapshot records a new version of the source after a pre-processing
// step. origins maps each line of source (0-based index) to the 1-based
// line number it came from in the previous snapshot; pass nil when the
// step preserves line count 1:1.
func (t *Tracker) Snapshot(source string, origins []int) error {
	return t.instance.Update(source, origins)
}

// Origin traces a line in the latest processed source back to its original
// line number in the initial .as source. Returns -1 if the line was inserted
// during pre-processing (e.g. by macro expansion).
func (t *Tracker) Origin(lineNumber int) int {
	return t.instance.LineOrigin(lineNumber)
}

// History returns the chronological evolution of a line across all snapshots.
func (t *Tracker) History(lineNumber int) []LineChange {
	return t.instance.LineHistory(lineNumber)
}

// Source returns the current processed source string.
func (t *Tracker) Source() string {
	return t.instance.Value()
}

// Lines returns the lines of the current processed source.
func (t *Tracker) Lines() []string {
	return t.instance.Lines()
}

// FilePath returns the original file path that was passed to Track().
func (t *Tracker) FilePath() string {
	return t.source.Path()
}
