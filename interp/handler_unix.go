//go:build unix

package interp

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// setProcessGroup puts cmd into process group pgid, creating a new one
// if pgid == 0. A whole pipeline shares one process group (the first
// child's pid) so that a single SIGINT forwarded to the group reaches
// every stage at once, the way a job-control shell's foreground pipeline
// behaves. This mirrors the teacher's interp/handler_unix.go, which puts
// every exec'd command in its own group; grouping the whole pipeline
// together is this shell's pipeline-wide equivalent.
//
// exec.Cmd.SysProcAttr's type is pinned to the standard library's
// syscall.SysProcAttr by os/exec itself; every actual signaling call
// below goes through golang.org/x/sys/unix instead of syscall.
func setProcessGroup(cmd *exec.Cmd, pgid int) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true, Pgid: pgid}
}

// interruptProcessGroup sends SIGINT to every process in group pgid.
func interruptProcessGroup(pgid int) {
	_ = unix.Kill(-pgid, unix.SIGINT)
}
