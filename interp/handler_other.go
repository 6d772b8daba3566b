//go:build !unix

package interp

import "os/exec"

func setProcessGroup(cmd *exec.Cmd, pgid int) {}

func interruptProcessGroup(pgid int) {}
