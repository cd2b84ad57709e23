// Package trace records and explains the system calls a process makes.
//
// Events come either from existing strace output, via [Parse] and
// [ParseAll], or from running a command under ptrace with [Trace]. Both
// produce the same [Event] values, which [Annotate] renders together with a
// short explanation of what each call is doing during process startup.
package trace
