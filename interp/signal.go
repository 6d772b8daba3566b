package interp

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// SIGINT is exposed as a plain int so callers outside this package (the
// REPL driver in cmd/minishell) can compare against Shell.LastSignal
// without importing syscall themselves.
const SIGINT = int(syscall.SIGINT)

// signalState is the single process-wide piece of mutable signal state
// spec.md §4.8/§9 calls for: the most recently observed signal number.
// Everything else in the signal regime lives on the stack of whichever
// function is reacting to it.
type signalState struct {
	lastSignal atomic.Int32
}

func newSignalState() *signalState {
	s := &signalState{}
	// SIGQUIT is ignored in the shell in both phases (spec.md §4.8); there
	// is nothing phase-specific about it, so it is set up once. This
	// disposition is a real SIG_IGN at the OS level and would otherwise
	// survive execve into every external child, so spawnChild resets it
	// around the fork+exec that starts each one (spec.md §4.8's "Default
	// in children" row).
	signal.Ignore(syscall.SIGQUIT)
	return s
}

// LastSignal returns the last signal number observed by the input-phase
// or child-running-phase handler, or 0 if none yet.
func (s *signalState) LastSignal() int {
	return int(s.lastSignal.Load())
}

// NoteInputInterrupt records that SIGINT was observed while awaiting
// input at the prompt (spec.md §4.8's "awaiting input" row), so the REPL
// driver can read it back via Shell.LastSignal immediately afterward to
// decide the resulting exit status (spec.md §6: 130).
func (s *signalState) NoteInputInterrupt() {
	s.lastSignal.Store(int32(syscall.SIGINT))
}

// spawnChild runs start (an *exec.Cmd.Start call) with SIGQUIT
// temporarily restored to its default disposition, so the forked child
// does not inherit the shell's own SIGQUIT-ignored state, then restores
// the shell's ignore once the fork+exec has happened. Go resets any
// custom signal.Notify handler on exec automatically (the kernel does
// this for every signal but SIG_IGN), so SIGQUIT's Ignore is the only
// disposition that needs this treatment; SIGINT's dynamic
// signal.Notify/Stop pairing in watchForeground needs no such handling.
func (s *signalState) spawnChild(start func() error) error {
	signal.Reset(syscall.SIGQUIT)
	defer signal.Ignore(syscall.SIGQUIT)
	return start()
}

// watchForeground arms SIGINT forwarding for the duration of a running
// pipeline: the shell process ignores SIGINT itself (so a Ctrl-C doesn't
// kill the shell alongside its foreground pipeline, spec.md §4.8) and
// forwards it to the child process group instead, mirroring the
// teacher's interruptCommand in interp/handler_unix.go. The returned
// stop func must be called once the pipeline finishes waiting.
func (s *signalState) watchForeground(pgid int) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ch:
				s.lastSignal.Store(int32(syscall.SIGINT))
				interruptProcessGroup(pgid)
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		signal.Stop(ch)
	}
}
