package trace

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/sysdemo/writedirect/internal"
)

// Trace runs argv under ptrace and records the system calls of its main
// thread until it exits.
//
// Cancelling ctx kills the command. Threads started by the command are not
// followed.
func Trace(ctx context.Context, argv []string, opts *Options) (*Result, error) {
	if len(argv) == 0 {
		return nil, errors.New("no command given")
	}
	if opts == nil {
		opts = &Options{}
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, err
	}

	// All ptrace requests have to come from the thread which forked the
	// tracee.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	cmd := exec.Command(path, argv[1:]...)
	cmd.Args[0] = argv[0]
	cmd.Env = opts.Env
	if opts.Stdout != nil {
		cmd.Stdout = opts.Stdout
	}
	if opts.Stderr != nil {
		cmd.Stderr = opts.Stderr
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{Ptrace: true}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", argv[0], err)
	}
	defer cmd.Process.Release()

	t := &tracer{pid: cmd.Process.Pid, res: &Result{}}

	// The tracee stops with SIGTRAP once execve has succeeded.
	var ws unix.WaitStatus
	if err := t.wait(&ws); err != nil {
		return nil, err
	}
	if !ws.Stopped() {
		return nil, fmt.Errorf("%s: expected exec stop, got status %#x", argv[0], uint32(ws))
	}

	if err := checkKernel(); err != nil {
		_ = unix.Kill(t.pid, unix.SIGKILL)
		_ = t.wait(&ws)
		return nil, err
	}

	const options = unix.PTRACE_O_TRACESYSGOOD | unix.PTRACE_O_TRACEEXEC | unix.PTRACE_O_EXITKILL
	if err := unix.PtraceSetOptions(t.pid, options); err != nil {
		_ = unix.Kill(t.pid, unix.SIGKILL)
		_ = t.wait(&ws)
		return nil, fmt.Errorf("set ptrace options: %w", err)
	}

	// The execve which started the command happened before tracing was set
	// up, so record it the way strace would have shown it.
	t.record(Event{Call: &Call{
		Name: "execve",
		Args: []string{
			quote([]byte(path), false),
			formatArgv(cmd.Args),
			fmt.Sprintf("/* %d vars */", len(cmd.Environ())),
		},
		Ret: "0",
	}})

	stop := context.AfterFunc(ctx, func() {
		_ = unix.Kill(t.pid, unix.SIGKILL)
	})
	defer stop()

	if err := t.run(); err != nil {
		return t.res, err
	}

	if err := ctx.Err(); err != nil {
		return t.res, err
	}

	return t.res, nil
}

type tracer struct {
	pid int
	res *Result
	seq int
}

type pendingCall struct {
	call *Call
	info *syscallInfo
	raw  [6]uint64
	// The call replaced the process image, its argument pointers refer to
	// memory which no longer exists.
	execed bool
}

func (t *tracer) run() error {
	var (
		ws      unix.WaitStatus
		sig     int
		pending *pendingCall
	)

	for {
		if err := unix.PtraceSyscall(t.pid, sig); err != nil {
			return fmt.Errorf("resume tracee: %w", err)
		}
		sig = 0

		if err := t.wait(&ws); err != nil {
			return err
		}

		switch {
		case ws.Exited():
			t.flush(pending)
			t.res.ExitCode = ws.ExitStatus()
			t.record(Event{Exit: &Exit{Code: ws.ExitStatus()}})
			return nil

		case ws.Signaled():
			t.flush(pending)
			t.res.ExitCode = -1
			t.record(Event{Exit: &Exit{Signal: unix.SignalName(ws.Signal())}})
			return nil

		case ws.Stopped() && ws.StopSignal() == unix.SIGTRAP|0x80:
			var regs unix.PtraceRegs
			if err := unix.PtraceGetRegs(t.pid, &regs); err != nil {
				return fmt.Errorf("read registers: %w", err)
			}

			if pending == nil {
				pending = t.enter(&regs)
				continue
			}

			t.exit(pending, &regs)
			pending = nil

		case ws.Stopped() && ws.StopSignal() == unix.SIGTRAP && ws.TrapCause() == unix.PTRACE_EVENT_EXEC:
			// execve succeeded. The syscall exit stop follows.
			if pending != nil {
				pending.execed = true
			}

		case ws.Stopped():
			// Signal delivery stop, pass the signal on.
			sig = int(ws.StopSignal())
		}
	}
}

func (t *tracer) enter(regs *unix.PtraceRegs) *pendingCall {
	p := &pendingCall{
		info: lookupSyscall(regs.Orig_rax),
		raw:  [6]uint64{regs.Rdi, regs.Rsi, regs.Rdx, regs.R10, regs.R8, regs.R9},
	}

	// Format the arguments now, the process may never return from the call.
	p.call = &Call{
		Name: p.info.name,
		Args: formatArgs(p.info, p.raw, 0, false, t.peek),
	}
	return p
}

func (t *tracer) exit(p *pendingCall, regs *unix.PtraceRegs) {
	ret := int64(regs.Rax)
	if !p.execed {
		p.call.Args = formatArgs(p.info, p.raw, ret, true, t.peek)
	}
	p.call.Ret, p.call.Errno, p.call.Detail = formatRet(p.info.ret, regs.Rax)
	t.record(Event{Call: p.call})
}

// flush records a call which never returned.
func (t *tracer) flush(p *pendingCall) {
	if p == nil {
		return
	}
	p.call.Unfinished = true
	t.record(Event{Call: p.call})
}

func (t *tracer) record(event Event) {
	t.seq++
	switch {
	case event.Call != nil:
		event.Call.Seq = t.seq
	case event.Exit != nil:
		event.Exit.Seq = t.seq
	}
	t.res.Events = append(t.res.Events, event)
}

func (t *tracer) peek(addr uintptr, out []byte) (int, error) {
	return unix.PtracePeekData(t.pid, addr, out)
}

func (t *tracer) wait(ws *unix.WaitStatus) error {
	for {
		_, err := unix.Wait4(t.pid, ws, 0, nil)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return fmt.Errorf("wait for tracee: %w", err)
		}
		return nil
	}
}

func formatArgv(argv []string) string {
	quoted := make([]string, 0, len(argv))
	for _, arg := range argv {
		quoted = append(quoted, quote([]byte(arg), false))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// minKernel is the first release with PTRACE_O_EXITKILL.
var minKernel = mustVersion("3.8")

func mustVersion(s string) internal.Version {
	v, err := internal.NewVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func checkKernel() error {
	v, err := internal.KernelVersion()
	if err != nil {
		return fmt.Errorf("detect kernel version: %w", err)
	}
	if v.Unspecified() || !v.Less(minKernel) {
		return nil
	}
	return fmt.Errorf("tracing needs Linux %s or later, running %s", minKernel, v)
}
