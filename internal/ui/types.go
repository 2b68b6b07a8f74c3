package ui

// Progress reports the stages of a scaffold run.
type Progress interface {
	// Files tracks a batch of total generated files.
	Files(total int) FileTracker
	// Spin shows a spinner while in-process work runs.
	Spin(title string) Task
	// Step announces work done by a child process. The child owns the
	// terminal while it runs, so nothing is animated.
	Step(title string) Task
}

// FileTally counts the outcome of a file batch.
type FileTally struct {
	Written int
	Kept    int
	Total   int
}

// Seen is the number of files recorded so far.
func (t FileTally) Seen() int {
	return t.Written + t.Kept
}

// FileTracker records each file as the deployer reaches it.
type FileTracker interface {
	// Record notes path as written, or kept when written is false.
	Record(path string, written bool)
	// Done closes the tracker and returns the tally. Calling it more than
	// once is safe.
	Done() FileTally
}

// Task is a step of unknown length.
type Task interface {
	// Done ends the step. A non-nil err marks it failed. Calling it more
	// than once is safe.
	Done(err error)
}
