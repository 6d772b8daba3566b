package interp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/yocelynnns/42project-minishell/expand"
	"github.com/yocelynnns/42project-minishell/syntax"
)

// runPipeline is the executor (C6). It expands every command's argv,
// wires pipes and redirections between stages left to right, and either
// runs a lone builtin directly against the real Shell (the "builtin
// special case" of spec.md §4.6, when the pipeline has exactly one
// command) or forks one external process per stage / runs every other
// builtin isolated in a goroutine standing in for a forked child.
func (sh *Shell) runPipeline(ctx context.Context, pipe *syntax.Pipeline) error {
	var g errgroup.Group

	heredocs, err := sh.collectHeredocs(ctx, pipe, &g)
	if err != nil {
		if errors.Is(err, errHeredocAborted) {
			return nil
		}
		return err
	}

	env := expandEnv{sh}
	argvs := make([][]string, len(pipe.Commands))
	for i, cmd := range pipe.Commands {
		argvs[i] = expand.Argv(cmd.Argv, env)
	}

	n := len(pipe.Commands)
	if n == 1 && len(argvs[0]) > 0 && IsBuiltin(argvs[0][0]) {
		sh.runSingletonBuiltin(argvs[0], pipe.Commands[0], heredocs)
		if werr := g.Wait(); werr != nil {
			sh.Diagnostic("minishell: %v\n", werr)
		}
		return sh.takePendingExit()
	}

	stdins := make([]*os.File, n)
	stdouts := make([]*os.File, n)
	for i := 0; i < n-1; i++ {
		pr, pw, perr := os.Pipe()
		if perr != nil {
			sh.Diagnostic("minishell: pipe: %v\n", perr)
			sh.LastExit = 1
			return nil
		}
		stdouts[i] = pw
		stdins[i+1] = pr
	}

	type stage struct {
		wait func() int
	}
	stages := make([]stage, n)
	pgid := 0

	for i, cmdNode := range pipe.Commands {
		argv := argvs[i]

		stdin, stdout, rerr := sh.applyRedirs(cmdNode, i, stdins[i], stdouts[i], heredocs)
		if rerr != nil {
			sh.Diagnostic("minishell: %v\n", rerr)
			closeIfPipe(stdin)
			closeIfPipe(stdout)
			stages[i] = stage{wait: constWait(1)}
			continue
		}

		if len(argv) == 0 {
			closeIfPipe(stdin)
			closeIfPipe(stdout)
			stages[i] = stage{wait: constWait(0)}
			continue
		}

		if IsBuiltin(argv[0]) {
			st := newIsolatedBuiltinState(sh, sh.stdoutOrDefault(stdout), sh.Stderr)
			name, args := argv[0], argv[1:]
			out := stdout
			done := make(chan int, 1)
			g.Go(func() error {
				defer closeIfPipe(out)
				code, _, _ := st.runBuiltin(name, args)
				done <- code
				return nil
			})
			closeIfPipe(stdin)
			stages[i] = stage{wait: func() int { return <-done }}
			continue
		}

		path, res := lookupCommand(sh.Cwd, pathEnv(sh.Env), argv[0])
		switch res {
		case lookupNotFound:
			sh.Diagnostic("minishell: %s: command not found\n", argv[0])
			closeIfPipe(stdin)
			closeIfPipe(stdout)
			stages[i] = stage{wait: constWait(127)}
			continue
		case lookupNotExecutable:
			sh.Diagnostic("minishell: %s: Permission denied\n", argv[0])
			closeIfPipe(stdin)
			closeIfPipe(stdout)
			stages[i] = stage{wait: constWait(126)}
			continue
		}

		cmd := &exec.Cmd{
			Path:   path,
			Args:   argv,
			Env:    sh.Env.Snapshot(),
			Dir:    sh.Cwd,
			Stdin:  sh.stdinOrDefault(stdin),
			Stdout: sh.stdoutOrDefault(stdout),
			Stderr: sh.Stderr,
		}
		setProcessGroup(cmd, pgid)

		if serr := sh.sig.spawnChild(cmd.Start); serr != nil {
			sh.Diagnostic("minishell: %s: %v\n", argv[0], serr)
			closeIfPipe(stdin)
			closeIfPipe(stdout)
			stages[i] = stage{wait: constWait(126)}
			continue
		}
		if pgid == 0 {
			pgid = cmd.Process.Pid
		}
		// The child now has its own copy of these descriptors; the
		// parent's are released unconditionally (spec.md §5).
		closeIfPipe(stdin)
		closeIfPipe(stdout)

		c := cmd
		stages[i] = stage{wait: func() int { return sh.waitProcess(c) }}
	}

	var stopWatch func()
	if pgid != 0 {
		stopWatch = sh.sig.watchForeground(pgid)
	}

	var last int
	for i := range stages {
		last = stages[i].wait()
	}
	if stopWatch != nil {
		stopWatch()
	}
	if werr := g.Wait(); werr != nil {
		sh.Diagnostic("minishell: %v\n", werr)
	}

	sh.LastExit = last
	return nil
}

// runSingletonBuiltin runs a one-command pipeline's builtin directly
// against the real Shell, so its side effects (cd, export, unset, exit)
// are visible afterward, per spec.md §4.6/§5.
func (sh *Shell) runSingletonBuiltin(argv []string, cmdNode syntax.Command, heredocs map[heredocKey]*os.File) {
	stdin, stdout, rerr := sh.applyRedirs(cmdNode, 0, nil, nil, heredocs)
	if rerr != nil {
		sh.Diagnostic("minishell: %v\n", rerr)
		closeIfPipe(stdin)
		closeIfPipe(stdout)
		sh.LastExit = 1
		return
	}
	defer closeIfPipe(stdin)
	defer closeIfPipe(stdout)

	st := newBuiltinState(sh, sh.stdoutOrDefault(stdout), sh.Stderr)
	code, exitRequested, exitCode := st.runBuiltin(argv[0], argv[1:])
	sh.Cwd = st.cwd
	sh.LastExit = code
	if exitRequested {
		sh.pendingExit = &ExitRequest{Code: exitCode}
	}
}

func (sh *Shell) takePendingExit() error {
	if sh.pendingExit == nil {
		return nil
	}
	e := sh.pendingExit
	sh.pendingExit = nil
	return e
}

// applyRedirs opens cmdIdx's redirections in declaration order, each one
// replacing whatever currently occupies its file descriptor (spec.md
// §4.6 step 2). stdin/stdout start as the pipe endpoints this stage was
// given, or nil if this stage uses the shell's own standard streams.
func (sh *Shell) applyRedirs(cmd syntax.Command, cmdIdx int, stdin, stdout *os.File, heredocs map[heredocKey]*os.File) (newStdin, newStdout *os.File, err error) {
	env := expandEnv{sh}

	for ri, rd := range cmd.Redirs {
		switch rd.Op {
		case syntax.RedirIn:
			target := expand.Word(rd.Target, env)
			f, oerr := os.Open(resolvePath(sh.Cwd, target))
			if oerr != nil {
				return stdin, stdout, fmt.Errorf("%s: %v", target, oerr)
			}
			closeIfPipe(stdin)
			stdin = f
		case syntax.RedirOut:
			target := expand.Word(rd.Target, env)
			f, oerr := os.OpenFile(resolvePath(sh.Cwd, target), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
			if oerr != nil {
				return stdin, stdout, fmt.Errorf("%s: %v", target, oerr)
			}
			closeIfPipe(stdout)
			stdout = f
		case syntax.RedirAppend:
			target := expand.Word(rd.Target, env)
			f, oerr := os.OpenFile(resolvePath(sh.Cwd, target), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
			if oerr != nil {
				return stdin, stdout, fmt.Errorf("%s: %v", target, oerr)
			}
			closeIfPipe(stdout)
			stdout = f
		case syntax.RedirHeredoc:
			f := heredocs[heredocKey{cmdIdx, ri}]
			closeIfPipe(stdin)
			stdin = f
		}
	}
	return stdin, stdout, nil
}

func (sh *Shell) stdinOrDefault(f *os.File) io.Reader {
	if f != nil {
		return f
	}
	return sh.Stdin
}

func (sh *Shell) stdoutOrDefault(f *os.File) io.Writer {
	if f != nil {
		return f
	}
	return sh.Stdout
}

func closeIfPipe(f *os.File) {
	if f != nil {
		f.Close()
	}
}

func constWait(code int) func() int {
	return func() int { return code }
}

func pathEnv(env *Environ) string {
	v, _ := env.Get("PATH")
	return v
}

// waitProcess reaps cmd and translates its result into an exit status
// (spec.md §4.6 step 6, §6): signal-terminated children report 128+N,
// and a SIGINT termination prints a newline the way an interactive
// terminal's line discipline would.
func (sh *Shell) waitProcess(cmd *exec.Cmd) int {
	err := cmd.Wait()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			sig := ws.Signal()
			if sig == syscall.SIGINT {
				fmt.Fprintln(sh.Stdout)
			}
			return 128 + int(sig)
		}
		return exitErr.ExitCode()
	}
	sh.Diagnostic("minishell: %v\n", err)
	return 126
}
