// Command minishell is the interactive driver (C9): it reads one line at
// a time, shows the primary or secondary prompt depending on what the
// shell is waiting for, and feeds each line to interp.Shell.Run.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/yocelynnns/42project-minishell/config"
	"github.com/yocelynnns/42project-minishell/interp"
)

// readlineReader adapts a *readline.Instance to interp.LineReader,
// translating the library's own Ctrl-C/EOF sentinels into the ones the
// interp package expects (spec.md §4.8).
type readlineReader struct {
	rl *readline.Instance
}

func (r *readlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	switch {
	case errors.Is(err, readline.ErrInterrupt):
		return "", interp.ErrInterrupted
	case errors.Is(err, io.EOF):
		return "", io.EOF
	case err != nil:
		return "", err
	}
	return line, nil
}

func main() {
	os.Exit(run())
}

func run() int {
	rcPath := pflag.StringP("rc", "r", config.DefaultPath(), "path to startup config file")
	cmdLine := pflag.StringP("command", "c", "", "run a single command line and exit")
	pflag.Parse()

	cfg, err := config.Load(*rcPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "minishell: %s: %v\n", *rcPath, err)
	}

	sh, err := interp.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "minishell: %v\n", err)
		return 1
	}
	for _, dir := range cfg.PathPrefix {
		prependPath(sh, dir)
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	noColor := !interactive || os.Getenv("NO_COLOR") != ""
	diag := color.New(color.FgRed)
	diag.EnableColor()
	if noColor {
		diag.DisableColor()
	}
	sh.Diagnostic = func(format string, args ...any) {
		fmt.Fprint(sh.Stderr, diag.Sprintf(format, args...))
	}

	if *cmdLine != "" {
		sh.Heredoc = noopHeredocReader{}
		if err := sh.Run(context.Background(), *cmdLine); err != nil {
			var exitReq *interp.ExitRequest
			if errors.As(err, &exitReq) {
				return exitReq.Code
			}
		}
		return sh.LastExit
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      cfg.Prompt,
		HistoryFile: historyFile(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "minishell: %v\n", err)
		return 1
	}
	defer rl.Close()

	reader := &readlineReader{rl: rl}
	sh.Heredoc = reader

	ctx := context.Background()
	for {
		line, err := reader.ReadLine(cfg.Prompt)
		if err != nil {
			if errors.Is(err, interp.ErrInterrupted) {
				// spec.md §4.8 awaiting-input SIGINT row / §6 exit-code
				// table: Ctrl-C on a partial prompt line sets $? to 130,
				// the same way heredoc.go does for an interrupted
				// here-document. NoteInputInterrupt records the signal
				// into the shell's single process-wide last-signal flag;
				// LastSignal is read back here to decide the status.
				sh.NoteInputInterrupt()
				if sh.LastSignal() == interp.SIGINT {
					sh.LastExit = 130
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(sh.Stderr, "exit")
				return sh.LastExit
			}
			fmt.Fprintf(os.Stderr, "minishell: %v\n", err)
			return 1
		}

		runErr := sh.Run(ctx, line)
		if runErr != nil {
			var exitReq *interp.ExitRequest
			if errors.As(runErr, &exitReq) {
				return exitReq.Code
			}
			fmt.Fprintf(os.Stderr, "minishell: %v\n", runErr)
		}
	}
}

// prependPath adds dir to the front of the shell's inherited PATH, the
// only way an rc file is allowed to influence command resolution
// (spec.md §9 supplemented features).
func prependPath(sh *interp.Shell, dir string) {
	cur, _ := sh.Env.Get("PATH")
	if cur == "" {
		sh.Env.Set("PATH", dir)
		return
	}
	sh.Env.Set("PATH", dir+":"+cur)
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.minishell_history"
}

// noopHeredocReader backs -c invocations: a heredoc inside a -c argument
// has no further input to read, so its body is always empty at EOF.
type noopHeredocReader struct{}

func (noopHeredocReader) ReadLine(prompt string) (string, error) {
	return "", io.EOF
}
