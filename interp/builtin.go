package interp

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// builtinNames is the set IsBuiltin recognizes (spec.md §4.7).
var builtinNames = map[string]bool{
	"echo":   true,
	"cd":     true,
	"pwd":    true,
	"export": true,
	"unset":  true,
	"env":    true,
	"exit":   true,
}

// IsBuiltin reports whether name is one of the shell's builtins.
func IsBuiltin(name string) bool {
	return builtinNames[name]
}

// builtinState is the view a builtin gets of the world it runs in: either
// the real Shell (singleton-pipeline case, spec.md §4.6 "builtin special
// case") or a throwaway clone (every other case, so its side effects stay
// isolated, spec.md §5).
type builtinState struct {
	env      *Environ
	cwd      string
	lastExit int
	stdout   io.Writer
	stderr   io.Writer
}

func newBuiltinState(sh *Shell, stdout, stderr io.Writer) *builtinState {
	return &builtinState{
		env:      sh.Env,
		cwd:      sh.Cwd,
		lastExit: sh.LastExit,
		stdout:   stdout,
		stderr:   stderr,
	}
}

func newIsolatedBuiltinState(sh *Shell, stdout, stderr io.Writer) *builtinState {
	return &builtinState{
		env:      sh.Env.Clone(),
		cwd:      sh.Cwd,
		lastExit: sh.LastExit,
		stdout:   stdout,
		stderr:   stderr,
	}
}

func (st *builtinState) outf(format string, args ...any) {
	writeDiagnostic(st.stdout, format, args...)
}

func (st *builtinState) errf(format string, args ...any) {
	writeDiagnostic(st.stderr, "minishell: "+format, args...)
}

// runBuiltin executes one builtin call (spec.md §4.7) and returns its
// exit status plus, for `exit`, the requested process exit code and
// whether the caller should honor it as a real shell exit (only true
// when st is the real Shell's own state, decided by the caller).
func (st *builtinState) runBuiltin(name string, args []string) (code int, exitRequested bool, exitCode int) {
	switch name {
	case "echo":
		return st.echo(args), false, 0
	case "cd":
		return st.cd(args), false, 0
	case "pwd":
		return st.pwd(args), false, 0
	case "export":
		return st.export(args), false, 0
	case "unset":
		return st.unset(args), false, 0
	case "env":
		return st.envCmd(args), false, 0
	case "exit":
		return st.exit(args)
	default:
		panic("interp: runBuiltin called with non-builtin name " + name)
	}
}

func isEchoNFlag(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	for _, c := range s[1:] {
		if c != 'n' {
			return false
		}
	}
	return true
}

func (st *builtinState) echo(args []string) int {
	newline := true
	for len(args) > 0 && isEchoNFlag(args[0]) {
		newline = false
		args = args[1:]
	}
	st.outf("%s", strings.Join(args, " "))
	if newline {
		st.outf("\n")
	}
	return 0
}

func (st *builtinState) pwd(args []string) int {
	if len(args) != 0 {
		st.errf("pwd: too many arguments\n")
		return 1
	}
	st.outf("%s\n", st.cwd)
	return 0
}

func (st *builtinState) cd(args []string) int {
	var target string
	switch len(args) {
	case 0:
		// spec.md §9 Open Question: this shell does not honor HOME here.
		return 0
	case 1:
		target = args[0]
	default:
		st.errf("cd: too many arguments\n")
		return 1
	}

	resolved := resolvePath(st.cwd, target)
	info, err := os.Stat(resolved)
	if err != nil {
		st.errf("cd: %s: %v\n", target, err)
		return 1
	}
	if !info.IsDir() {
		st.errf("cd: %s: not a directory\n", target)
		return 1
	}

	oldpwd := st.cwd
	st.cwd = filepath.Clean(resolved)
	st.env.Set("OLDPWD", oldpwd)
	st.env.Set("PWD", st.cwd)
	return 0
}

func (st *builtinState) export(args []string) int {
	if len(args) == 0 {
		for _, name := range st.env.Sorted() {
			val, _ := st.env.Get(name)
			if st.env.IsValued(name) {
				st.outf("declare -x %s=%q\n", name, val)
			} else {
				st.outf("declare -x %s\n", name)
			}
		}
		return 0
	}

	status := 0
	for _, arg := range args {
		name, op, value, hasAssign := splitAssignment(arg)
		if !IsValidName(name) {
			st.errf("export: `%s': not a valid identifier\n", arg)
			status = 1
			continue
		}
		switch {
		case !hasAssign:
			if !st.env.Has(name) {
				st.env.SetUnvalued(name)
			}
		case op == "+=":
			prev, _ := st.env.Get(name)
			st.env.Set(name, prev+value)
		default:
			st.env.Set(name, value)
		}
	}
	return status
}

// splitAssignment parses NAME, NAME=VALUE, or NAME+=VALUE.
func splitAssignment(arg string) (name, op, value string, hasAssign bool) {
	i := strings.IndexByte(arg, '=')
	if i < 0 {
		return arg, "", "", false
	}
	if i > 0 && arg[i-1] == '+' {
		return arg[:i-1], "+=", arg[i+1:], true
	}
	return arg[:i], "=", arg[i+1:], true
}

func (st *builtinState) unset(args []string) int {
	status := 0
	for _, name := range args {
		if !IsValidName(name) {
			st.errf("unset: `%s': not a valid identifier\n", name)
			status = 1
			continue
		}
		st.env.Unset(name)
	}
	return status
}

func (st *builtinState) envCmd(args []string) int {
	if len(args) != 0 {
		return 127
	}
	st.env.Each(func(name, value string, hasValue bool) bool {
		if hasValue {
			st.outf("%s=%s\n", name, value)
		}
		return true
	})
	return 0
}

func (st *builtinState) exit(args []string) (code int, exitRequested bool, exitCode int) {
	st.errf("exit\n")
	switch len(args) {
	case 0:
		return 0, true, st.lastExit
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			st.errf("exit: %s: numeric argument required\n", args[0])
			return 2, true, 2
		}
		mod := n % 256
		if mod < 0 {
			mod += 256
		}
		return 0, true, mod
	default:
		st.errf("exit: too many arguments\n")
		return 1, false, 0
	}
}

// resolvePath joins rel onto cwd unless rel is already absolute; it is
// used for every filesystem access a builtin or redirection performs so
// that an isolated (cloned) builtin never depends on the real process's
// working directory (spec.md §5 Resource discipline).
func resolvePath(cwd, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(cwd, rel)
}
