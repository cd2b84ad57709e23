package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnsupportedLine is returned for lines which don't describe a call or an
// exit.
var ErrUnsupportedLine = errors.New("unsupported trace line")

var (
	seqPrefix = regexp.MustCompile(`^(\d+)\.\s+`)
	pidPrefix = regexp.MustCompile(`^\[pid\s+(\d+)\]\s*`)
	exitedRe  = regexp.MustCompile(`^\+\+\+ exited with (\d+) \+\+\+$`)
	killedRe  = regexp.MustCompile(`^\+\+\+ killed by (SIG[A-Z0-9]+)(?: \(core dumped\))? \+\+\+$`)
	callName  = regexp.MustCompile(`^([a-z_][a-z0-9_]*)\(`)
	errnoRe   = regexp.MustCompile(`^(E[A-Z0-9]+)(?:\s+\((.*)\))?$`)
	// A byte count immediately followed by program output, which happens
	// when the traced program shares the terminal with strace.
	countOutput = regexp.MustCompile(`^(\d+)(\D.*)$`)
)

// Parse a single line of strace output.
//
// The line may carry a "N." sequence number and a "[pid N]" prefix.
func Parse(line string) (Event, error) {
	s := strings.TrimSpace(line)

	var seq, pid int
	if m := seqPrefix.FindStringSubmatch(s); m != nil {
		seq, _ = strconv.Atoi(m[1])
		s = s[len(m[0]):]
	}
	if m := pidPrefix.FindStringSubmatch(s); m != nil {
		pid, _ = strconv.Atoi(m[1])
		s = s[len(m[0]):]
	}

	if strings.HasPrefix(s, "+++") {
		return parseExit(s, seq, pid)
	}

	m := callName.FindStringSubmatch(s)
	if m == nil {
		return Event{}, fmt.Errorf("%w: %q", ErrUnsupportedLine, line)
	}

	call := &Call{Seq: seq, PID: pid, Name: m[1]}
	args, rest, err := splitArgs(s[len(m[0]):])
	if err != nil {
		return Event{}, fmt.Errorf("%s: %w", call.Name, err)
	}
	call.Args = args

	if call.Name == "write" && len(args) > 0 {
		last := args[len(args)-1]
		if m := countOutput.FindStringSubmatch(last); m != nil {
			args[len(args)-1] = m[1]
			call.Output = m[2]
		}
	}

	rest = strings.TrimSpace(rest)
	ret, ok := strings.CutPrefix(rest, "=")
	if !ok {
		return Event{}, fmt.Errorf("%s: missing return value", call.Name)
	}

	ret = strings.TrimSpace(ret)
	if ret == "?" {
		call.Unfinished = true
		return Event{Call: call}, nil
	}

	ret, tail, _ := strings.Cut(ret, " ")
	call.Ret = ret

	tail = strings.TrimSpace(tail)
	switch {
	case tail == "":
	case errnoRe.MatchString(tail):
		m := errnoRe.FindStringSubmatch(tail)
		call.Errno, call.Detail = m[1], m[2]
	case strings.HasPrefix(tail, "(") && strings.HasSuffix(tail, ")"):
		call.Detail = tail[1 : len(tail)-1]
	default:
		call.Detail = tail
	}

	return Event{Call: call}, nil
}

func parseExit(s string, seq, pid int) (Event, error) {
	if m := exitedRe.FindStringSubmatch(s); m != nil {
		code, err := strconv.Atoi(m[1])
		if err != nil {
			return Event{}, fmt.Errorf("exit code: %w", err)
		}
		return Event{Exit: &Exit{Seq: seq, PID: pid, Code: code}}, nil
	}

	if m := killedRe.FindStringSubmatch(s); m != nil {
		return Event{Exit: &Exit{Seq: seq, PID: pid, Signal: m[1]}}, nil
	}

	return Event{}, fmt.Errorf("%w: %q", ErrUnsupportedLine, s)
}

// splitArgs splits the argument list following the opening parenthesis of a
// call. It returns the text after the closing parenthesis.
func splitArgs(s string) (args []string, rest string, err error) {
	var (
		depth   int
		inQuote bool
		start   int
	)

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inQuote {
			switch ch {
			case '\\':
				i++
			case '"':
				inQuote = false
			}
			continue
		}

		switch ch {
		case '"':
			inQuote = true

		case '{', '[', '(':
			depth++

		case '}', ']':
			depth--

		case ')':
			if depth > 0 {
				depth--
				continue
			}

			arg := strings.TrimSpace(s[start:i])
			if arg != "" || len(args) > 0 {
				args = append(args, arg)
			}
			return args, s[i+1:], nil

		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}

		case '/':
			if i+1 < len(s) && s[i+1] == '*' {
				end := strings.Index(s[i+2:], "*/")
				if end == -1 {
					return nil, "", errors.New("unterminated comment")
				}
				i += end + 3
			}
		}
	}

	if inQuote {
		return nil, "", errors.New("unterminated string")
	}
	return nil, "", errors.New("unterminated argument list")
}

// ParseAll reads strace output from r.
//
// Blank lines and signal notices ("--- SIGCHLD {...} ---") are skipped.
func ParseAll(r io.Reader) ([]Event, error) {
	var events []Event

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "---") {
			continue
		}

		event, err := Parse(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
