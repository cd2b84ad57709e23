package trace

import (
	"fmt"
	"strings"
)

// Call is a single system call as strace prints it.
type Call struct {
	// Sequence number from a numbered listing, zero if absent.
	Seq int
	// Thread that made the call, zero if unknown.
	PID  int
	Name string
	// Arguments in their formatted form, e.g. `"/etc/ld.so.cache"` or
	// `PROT_READ|PROT_WRITE`.
	Args []string
	// Return value as printed, e.g. "3", "0x7f9e70c40000" or "-1".
	Ret string
	// Errno name and description of a failed call.
	Errno  string
	Detail string
	// The process ended before the call returned.
	Unfinished bool
	// Program output that ended up inside the trace line.
	Output string
}

// Failed returns true if the call returned an error.
func (c *Call) Failed() bool {
	return c.Errno != ""
}

// Arg returns the nth argument or the empty string.
func (c *Call) Arg(n int) string {
	if n < 0 || n >= len(c.Args) {
		return ""
	}
	return c.Args[n]
}

// Exit ends a trace.
type Exit struct {
	Seq  int
	PID  int
	Code int
	// Name of the signal that killed the process, empty for a normal exit.
	Signal string
}

// Event is either a [Call] or an [Exit].
type Event struct {
	Call *Call
	Exit *Exit
}

// Seq returns the sequence number of the event.
func (e Event) Seq() int {
	switch {
	case e.Call != nil:
		return e.Call.Seq
	case e.Exit != nil:
		return e.Exit.Seq
	default:
		return 0
	}
}

func (e Event) String() string {
	return Format(e)
}

// callColumn is where strace aligns the " = " of a return value.
const callColumn = 39

// Format renders e like strace does, without a sequence number.
func Format(e Event) string {
	return format(e, true)
}

func format(e Event, align bool) string {
	switch {
	case e.Exit != nil:
		if e.Exit.Signal != "" {
			return fmt.Sprintf("+++ killed by %s +++", e.Exit.Signal)
		}
		return fmt.Sprintf("+++ exited with %d +++", e.Exit.Code)

	case e.Call != nil:
		c := e.Call
		var b strings.Builder
		if c.PID != 0 {
			fmt.Fprintf(&b, "[pid %d] ", c.PID)
		}
		b.WriteString(c.Name)
		b.WriteByte('(')
		b.WriteString(strings.Join(c.Args, ", "))
		b.WriteByte(')')
		for align && b.Len() < callColumn {
			b.WriteByte(' ')
		}

		b.WriteString(" = ")
		if c.Unfinished {
			b.WriteByte('?')
			return b.String()
		}

		b.WriteString(c.Ret)
		if c.Errno != "" {
			b.WriteByte(' ')
			b.WriteString(c.Errno)
		}
		if c.Detail != "" {
			fmt.Fprintf(&b, " (%s)", c.Detail)
		}
		return b.String()

	default:
		return ""
	}
}
