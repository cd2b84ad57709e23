package trace

import (
	"fmt"
	"strconv"
	"strings"
	"syscall"
	"unicode"

	"golang.org/x/sys/unix"
)

type argKind uint8

const (
	argInt argKind = iota
	argUint
	argHex
	argFD
	argPath
	argBuf
	argBufRet
	argProt
	argMapFlags
	argOpenFlags
	argAtFlags
	argMode
	argArchPrctl
	argResource
	argAccessMode
)

type retKind uint8

const (
	retInt retKind = iota
	retHex
)

type syscallInfo struct {
	name string
	args []argKind
	ret  retKind
}

// peekFunc reads tracee memory at addr into out.
type peekFunc func(addr uintptr, out []byte) (int, error)

const (
	// strace's default -s value.
	maxStringLen = 32
	maxPathLen   = 4096
)

func formatArgs(info *syscallInfo, raw [6]uint64, ret int64, done bool, peek peekFunc) []string {
	args := make([]string, 0, len(info.args))
	for i, kind := range info.args {
		var next uint64
		if i+1 < len(raw) {
			next = raw[i+1]
		}
		args = append(args, formatArg(kind, raw[i], next, ret, done, peek))
	}
	return args
}

func formatArg(kind argKind, v, next uint64, ret int64, done bool, peek peekFunc) string {
	switch kind {
	case argInt:
		return strconv.FormatInt(int64(v), 10)

	case argUint:
		return strconv.FormatUint(v, 10)

	case argHex:
		return formatAddr(v)

	case argFD:
		if int32(v) == unix.AT_FDCWD {
			return "AT_FDCWD"
		}
		return strconv.FormatInt(int64(int32(v)), 10)

	case argPath:
		if v == 0 {
			return "NULL"
		}
		s, truncated, err := readCString(peek, uintptr(v), maxPathLen)
		if err != nil {
			return formatAddr(v)
		}
		return quote([]byte(s), truncated)

	case argBuf:
		return formatBuf(peek, v, next)

	case argBufRet:
		if !done || ret < 0 {
			return formatAddr(v)
		}
		return formatBuf(peek, v, uint64(ret))

	case argProt:
		return formatFlags(v, protFlags, "PROT_NONE")

	case argMapFlags:
		return formatMapFlags(v)

	case argOpenFlags:
		return formatOpenFlags(v)

	case argAtFlags:
		return formatFlags(v, atFlags, "0")

	case argAccessMode:
		return formatFlags(v, accessModes, "F_OK")

	case argMode:
		return fmt.Sprintf("%#o", v)

	case argArchPrctl:
		if name, ok := archPrctlCodes[v]; ok {
			return name
		}
		return fmt.Sprintf("%#x", v)

	case argResource:
		if v < uint64(len(resources)) {
			return resources[v]
		}
		return strconv.FormatUint(v, 10)

	default:
		return fmt.Sprintf("%#x", v)
	}
}

// formatRet splits a raw return value into the parts strace prints.
func formatRet(kind retKind, raw uint64) (ret, errno, detail string) {
	v := int64(raw)
	if v < 0 && v >= -4095 {
		e := syscall.Errno(-v)
		errno = unix.ErrnoName(e)
		if errno == "" {
			errno = strconv.FormatInt(-v, 10)
		}
		return "-1", errno, capitalize(e.Error())
	}

	if kind == retHex {
		return fmt.Sprintf("%#x", raw), "", ""
	}
	return strconv.FormatInt(v, 10), "", ""
}

func formatAddr(v uint64) string {
	if v == 0 {
		return "NULL"
	}
	return fmt.Sprintf("%#x", v)
}

func formatBuf(peek peekFunc, addr, size uint64) string {
	if addr == 0 {
		return "NULL"
	}

	n := min(size, maxStringLen)
	buf := make([]byte, n)
	if n > 0 {
		if _, err := peek(uintptr(addr), buf); err != nil {
			return formatAddr(addr)
		}
	}
	return quote(buf, size > maxStringLen)
}

// readCString reads a NUL terminated string of at most max bytes.
func readCString(peek peekFunc, addr uintptr, max int) (string, bool, error) {
	var (
		b    strings.Builder
		word [8]byte
	)

	for b.Len() < max {
		n, err := peek(addr, word[:])
		for _, c := range word[:n] {
			if c == 0 {
				return b.String(), false, nil
			}
			b.WriteByte(c)
		}

		if err != nil {
			if b.Len() > 0 {
				return b.String(), true, nil
			}
			return "", false, err
		}
		addr += uintptr(len(word))
	}

	return b.String()[:max], true, nil
}

// quote renders buf the way strace prints strings.
func quote(buf []byte, truncated bool) string {
	var b strings.Builder
	b.WriteByte('"')
	for i, c := range buf {
		nextIsDigit := i+1 < len(buf) && buf[i+1] >= '0' && buf[i+1] <= '7'

		switch {
		case c == '"':
			b.WriteString(`\"`)
		case c == '\\':
			b.WriteString(`\\`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\t':
			b.WriteString(`\t`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\f':
			b.WriteString(`\f`)
		case c == '\v':
			b.WriteString(`\v`)
		case c >= 0x20 && c < 0x7f:
			b.WriteByte(c)
		case nextIsDigit:
			fmt.Fprintf(&b, `\%03o`, c)
		default:
			fmt.Fprintf(&b, `\%o`, c)
		}
	}
	b.WriteByte('"')
	if truncated {
		b.WriteString("...")
	}
	return b.String()
}

type flagName struct {
	value uint64
	name  string
}

var protFlags = []flagName{
	{unix.PROT_READ, "PROT_READ"},
	{unix.PROT_WRITE, "PROT_WRITE"},
	{unix.PROT_EXEC, "PROT_EXEC"},
}

var mapFlags = []flagName{
	{unix.MAP_FIXED, "MAP_FIXED"},
	{unix.MAP_ANONYMOUS, "MAP_ANONYMOUS"},
	{unix.MAP_GROWSDOWN, "MAP_GROWSDOWN"},
	{unix.MAP_DENYWRITE, "MAP_DENYWRITE"},
	{unix.MAP_NORESERVE, "MAP_NORESERVE"},
	{unix.MAP_POPULATE, "MAP_POPULATE"},
	{unix.MAP_STACK, "MAP_STACK"},
	{unix.MAP_FIXED_NOREPLACE, "MAP_FIXED_NOREPLACE"},
}

var openFlags = []flagName{
	{unix.O_CREAT, "O_CREAT"},
	{unix.O_EXCL, "O_EXCL"},
	{unix.O_NOCTTY, "O_NOCTTY"},
	{unix.O_TRUNC, "O_TRUNC"},
	{unix.O_APPEND, "O_APPEND"},
	{unix.O_NONBLOCK, "O_NONBLOCK"},
	{unix.O_DIRECTORY, "O_DIRECTORY"},
	{unix.O_NOFOLLOW, "O_NOFOLLOW"},
	{unix.O_CLOEXEC, "O_CLOEXEC"},
	{unix.O_PATH, "O_PATH"},
}

var atFlags = []flagName{
	{unix.AT_SYMLINK_NOFOLLOW, "AT_SYMLINK_NOFOLLOW"},
	{unix.AT_EACCESS, "AT_EACCESS"},
	{unix.AT_EMPTY_PATH, "AT_EMPTY_PATH"},
}

var accessModes = []flagName{
	{unix.R_OK, "R_OK"},
	{unix.W_OK, "W_OK"},
	{unix.X_OK, "X_OK"},
}

var archPrctlCodes = map[uint64]string{
	0x1001: "ARCH_SET_GS",
	0x1002: "ARCH_SET_FS",
	0x1003: "ARCH_GET_FS",
	0x1004: "ARCH_GET_GS",
	0x1011: "ARCH_GET_CPUID",
	0x1012: "ARCH_SET_CPUID",
}

// Indexed by resource number, see getrlimit(2).
var resources = []string{
	"RLIMIT_CPU",
	"RLIMIT_FSIZE",
	"RLIMIT_DATA",
	"RLIMIT_STACK",
	"RLIMIT_CORE",
	"RLIMIT_RSS",
	"RLIMIT_NPROC",
	"RLIMIT_NOFILE",
	"RLIMIT_MEMLOCK",
	"RLIMIT_AS",
	"RLIMIT_LOCKS",
	"RLIMIT_SIGPENDING",
	"RLIMIT_MSGQUEUE",
	"RLIMIT_NICE",
	"RLIMIT_RTPRIO",
	"RLIMIT_RTTIME",
}

func formatFlags(v uint64, names []flagName, zero string) string {
	if v == 0 {
		return zero
	}

	var parts []string
	for _, flag := range names {
		if v&flag.value == flag.value {
			parts = append(parts, flag.name)
			v &^= flag.value
		}
	}
	if v != 0 {
		parts = append(parts, fmt.Sprintf("%#x", v))
	}
	return strings.Join(parts, "|")
}

func formatMapFlags(v uint64) string {
	var kind string
	switch v & 0x3 {
	case unix.MAP_SHARED:
		kind = "MAP_SHARED"
	case unix.MAP_PRIVATE:
		kind = "MAP_PRIVATE"
	case unix.MAP_SHARED_VALIDATE:
		kind = "MAP_SHARED_VALIDATE"
	default:
		kind = "0"
	}

	if rest := v &^ 0x3; rest != 0 {
		return kind + "|" + formatFlags(rest, mapFlags, "")
	}
	return kind
}

func formatOpenFlags(v uint64) string {
	var mode string
	switch v & unix.O_ACCMODE {
	case unix.O_WRONLY:
		mode = "O_WRONLY"
	case unix.O_RDWR:
		mode = "O_RDWR"
	default:
		mode = "O_RDONLY"
	}

	if rest := v &^ unix.O_ACCMODE; rest != 0 {
		return mode + "|" + formatFlags(rest, openFlags, "")
	}
	return mode
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
