package trace

import "os"

// Options for [Trace].
type Options struct {
	// Where the traced command writes its output. nil discards it.
	Stdout, Stderr *os.File
	// Environment of the traced command. nil inherits the current one.
	Env []string
}

// Result of a trace.
type Result struct {
	// Every call made by the main thread of the command, followed by an
	// [Exit].
	Events []Event
	// Exit status, or -1 if the process was killed by a signal.
	ExitCode int
}

// Calls returns the calls in the trace named name.
func (r *Result) Calls(name string) []*Call {
	var calls []*Call
	for _, event := range r.Events {
		if event.Call != nil && event.Call.Name == name {
			calls = append(calls, event.Call)
		}
	}
	return calls
}
