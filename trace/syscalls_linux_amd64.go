package trace

import (
	"fmt"

	"golang.org/x/sys/unix"
)

var syscalls = map[uint64]*syscallInfo{
	unix.SYS_READ:              {"read", []argKind{argFD, argBufRet, argUint}, retInt},
	unix.SYS_WRITE:             {"write", []argKind{argFD, argBuf, argUint}, retInt},
	unix.SYS_OPEN:              {"open", []argKind{argPath, argOpenFlags, argMode}, retInt},
	unix.SYS_CLOSE:             {"close", []argKind{argFD}, retInt},
	unix.SYS_STAT:              {"stat", []argKind{argPath, argHex}, retInt},
	unix.SYS_FSTAT:             {"fstat", []argKind{argFD, argHex}, retInt},
	unix.SYS_LSTAT:             {"lstat", []argKind{argPath, argHex}, retInt},
	unix.SYS_POLL:              {"poll", []argKind{argHex, argUint, argInt}, retInt},
	unix.SYS_LSEEK:             {"lseek", []argKind{argFD, argInt, argInt}, retInt},
	unix.SYS_MMAP:              {"mmap", []argKind{argHex, argUint, argProt, argMapFlags, argFD, argHex}, retHex},
	unix.SYS_MPROTECT:          {"mprotect", []argKind{argHex, argUint, argProt}, retInt},
	unix.SYS_MUNMAP:            {"munmap", []argKind{argHex, argUint}, retInt},
	unix.SYS_BRK:               {"brk", []argKind{argHex}, retHex},
	unix.SYS_RT_SIGACTION:      {"rt_sigaction", []argKind{argInt, argHex, argHex, argUint}, retInt},
	unix.SYS_RT_SIGPROCMASK:    {"rt_sigprocmask", []argKind{argInt, argHex, argHex, argUint}, retInt},
	unix.SYS_IOCTL:             {"ioctl", []argKind{argFD, argHex, argHex}, retInt},
	unix.SYS_PREAD64:           {"pread64", []argKind{argFD, argBufRet, argUint, argInt}, retInt},
	unix.SYS_PWRITE64:          {"pwrite64", []argKind{argFD, argBuf, argUint, argInt}, retInt},
	unix.SYS_READV:             {"readv", []argKind{argFD, argHex, argInt}, retInt},
	unix.SYS_WRITEV:            {"writev", []argKind{argFD, argHex, argInt}, retInt},
	unix.SYS_ACCESS:            {"access", []argKind{argPath, argAccessMode}, retInt},
	unix.SYS_PIPE:              {"pipe", []argKind{argHex}, retInt},
	unix.SYS_SCHED_YIELD:       {"sched_yield", nil, retInt},
	unix.SYS_MADVISE:           {"madvise", []argKind{argHex, argUint, argInt}, retInt},
	unix.SYS_DUP:               {"dup", []argKind{argFD}, retInt},
	unix.SYS_DUP2:              {"dup2", []argKind{argFD, argFD}, retInt},
	unix.SYS_NANOSLEEP:         {"nanosleep", []argKind{argHex, argHex}, retInt},
	unix.SYS_GETPID:            {"getpid", nil, retInt},
	unix.SYS_CLONE:             {"clone", []argKind{argHex, argHex, argHex, argHex, argHex}, retInt},
	unix.SYS_EXECVE:            {"execve", []argKind{argPath, argHex, argHex}, retInt},
	unix.SYS_EXIT:              {"exit", []argKind{argInt}, retInt},
	unix.SYS_WAIT4:             {"wait4", []argKind{argInt, argHex, argInt, argHex}, retInt},
	unix.SYS_KILL:              {"kill", []argKind{argInt, argInt}, retInt},
	unix.SYS_UNAME:             {"uname", []argKind{argHex}, retInt},
	unix.SYS_FCNTL:             {"fcntl", []argKind{argFD, argInt, argHex}, retInt},
	unix.SYS_GETCWD:            {"getcwd", []argKind{argHex, argUint}, retInt},
	unix.SYS_GETUID:            {"getuid", nil, retInt},
	unix.SYS_GETGID:            {"getgid", nil, retInt},
	unix.SYS_GETEUID:           {"geteuid", nil, retInt},
	unix.SYS_GETEGID:           {"getegid", nil, retInt},
	unix.SYS_SIGALTSTACK:       {"sigaltstack", []argKind{argHex, argHex}, retInt},
	unix.SYS_ARCH_PRCTL:        {"arch_prctl", []argKind{argArchPrctl, argHex}, retInt},
	unix.SYS_GETTID:            {"gettid", nil, retInt},
	unix.SYS_FUTEX:             {"futex", []argKind{argHex, argInt, argInt, argHex, argHex, argInt}, retInt},
	unix.SYS_SCHED_GETAFFINITY: {"sched_getaffinity", []argKind{argInt, argUint, argHex}, retInt},
	unix.SYS_SET_TID_ADDRESS:   {"set_tid_address", []argKind{argHex}, retInt},
	unix.SYS_FADVISE64:         {"fadvise64", []argKind{argFD, argInt, argInt, argInt}, retInt},
	unix.SYS_CLOCK_GETTIME:     {"clock_gettime", []argKind{argInt, argHex}, retInt},
	unix.SYS_EXIT_GROUP:        {"exit_group", []argKind{argInt}, retInt},
	unix.SYS_TGKILL:            {"tgkill", []argKind{argInt, argInt, argInt}, retInt},
	unix.SYS_OPENAT:            {"openat", []argKind{argFD, argPath, argOpenFlags, argMode}, retInt},
	unix.SYS_NEWFSTATAT:        {"newfstatat", []argKind{argFD, argPath, argHex, argAtFlags}, retInt},
	unix.SYS_SET_ROBUST_LIST:   {"set_robust_list", []argKind{argHex, argUint}, retInt},
	unix.SYS_PIPE2:             {"pipe2", []argKind{argHex, argOpenFlags}, retInt},
	unix.SYS_PRLIMIT64:         {"prlimit64", []argKind{argInt, argResource, argHex, argHex}, retInt},
	unix.SYS_GETRANDOM:         {"getrandom", []argKind{argBufRet, argUint, argHex}, retInt},
	unix.SYS_STATX:             {"statx", []argKind{argFD, argPath, argAtFlags, argHex, argHex}, retInt},
	unix.SYS_RSEQ:              {"rseq", []argKind{argHex, argHex, argInt, argHex}, retInt},
	unix.SYS_CLONE3:            {"clone3", []argKind{argHex, argUint}, retInt},
	unix.SYS_FACCESSAT2:        {"faccessat2", []argKind{argFD, argPath, argAccessMode, argAtFlags}, retInt},
}

func lookupSyscall(nr uint64) *syscallInfo {
	if info, ok := syscalls[nr]; ok {
		return info
	}
	return &syscallInfo{
		name: fmt.Sprintf("syscall_%#x", nr),
		args: []argKind{argHex, argHex, argHex, argHex, argHex, argHex},
	}
}
