// Package interp implements the executable side of minishell: the
// Environment Table (C1), the here-document collector (C5), the
// executor (C6), the builtin dispatcher (C7), and the signal regime
// (C8). Package syntax supplies the lexer/parser; package expand
// supplies $-substitution.
package interp

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/yocelynnns/42project-minishell/syntax"
)

// ErrInterrupted is returned by a LineReader when the user sent SIGINT
// while it was awaiting input (spec.md §4.8).
var ErrInterrupted = errors.New("interrupted")

// LineReader is the shell's external "readline_with_signals" collaborator
// (spec.md §1): it reads one line at a time, showing prompt, and
// reports io.EOF on end-of-input or ErrInterrupted on Ctrl-C.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// ExitRequest is returned by Run when the line caused the shell itself to
// exit (the `exit` builtin run in a singleton pipeline). Code is already
// reduced mod 256.
type ExitRequest struct {
	Code int
}

func (e *ExitRequest) Error() string {
	return "exit requested"
}

// Shell is the REPL's persistent state: the environment (which survives
// across lines, spec.md §3 Lifecycle) and the last pipeline exit status.
type Shell struct {
	Env      *Environ
	Cwd      string
	LastExit int

	Stdin  *os.File
	Stdout io.Writer
	Stderr io.Writer

	Heredoc LineReader

	// Diagnostic is called for the shell's own "minishell: ..." messages
	// (syntax, redirection, lookup and exec errors); builtins write theirs
	// straight to their stderr instead. The default writes plain text to
	// Stderr. cmd/minishell overrides it to
	// colorize output when attached to a terminal.
	Diagnostic func(format string, args ...any)

	sig         *signalState
	pendingExit *ExitRequest
}

// New creates a Shell seeded from the process environment and working
// directory.
func New() (*Shell, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	sh := &Shell{
		Env:    EnvironFromOS(),
		Cwd:    wd,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		sig:    newSignalState(),
	}
	sh.Diagnostic = sh.defaultDiagnostic
	return sh, nil
}

// NoteInputInterrupt records that the line reader (spec.md §1's
// readline_with_signals collaborator) observed a SIGINT while awaiting
// input at the prompt. The REPL driver calls this, then reads
// LastSignal back, to set $? = 130 (spec.md §4.8, §6).
func (sh *Shell) NoteInputInterrupt() {
	sh.sig.NoteInputInterrupt()
}

// LastSignal returns the most recent signal number observed by either
// signal-regime phase (spec.md §9's single process-wide flag), or 0 if
// none yet.
func (sh *Shell) LastSignal() int {
	return sh.sig.LastSignal()
}

func (sh *Shell) defaultDiagnostic(format string, args ...any) {
	writeDiagnostic(sh.Stderr, format, args...)
}

// expandEnv adapts a Shell to expand.Env.
type expandEnv struct{ sh *Shell }

func (e expandEnv) Get(name string) (string, bool) { return e.sh.Env.Get(name) }
func (e expandEnv) LastExitStatus() int            { return e.sh.LastExit }

// Run executes one line end to end: lex, parse, expand, collect
// here-documents, execute, and record the exit status (spec.md §2, C9).
// A syntax error aborts the line with status 2 and returns nil (the
// caller should simply reprompt); only an ExitRequest signals the REPL
// to stop.
func (sh *Shell) Run(ctx context.Context, line string) error {
	toks, err := syntax.Lex(line)
	if err != nil {
		sh.Diagnostic("minishell: unterminated quote\n")
		sh.LastExit = 2
		return nil
	}

	pipeline, err := syntax.NewParser(toks).ParsePipeline()
	if err != nil {
		sh.Diagnostic("minishell: %v\n", err)
		sh.LastExit = 2
		return nil
	}
	if len(pipeline.Commands) == 0 {
		return nil
	}

	return sh.runPipeline(ctx, pipeline)
}
