package interp

import (
	"errors"
	"os"
	"strings"
)

// lookupResult classifies how command resolution (spec.md §4.6 step 4)
// turned out.
type lookupResult int

const (
	lookupFound lookupResult = iota
	lookupNotFound
	lookupNotExecutable
)

// lookupCommand resolves name to an executable path the way the
// teacher's interp/handler.go LookPathDir does: a name containing '/' is
// used as given (relative to cwd); otherwise every PATH entry is tried in
// order.
func lookupCommand(cwd, pathEnv, name string) (path string, res lookupResult) {
	if strings.ContainsRune(name, '/') {
		full := resolvePath(cwd, name)
		return full, classify(full)
	}
	for _, dir := range strings.Split(pathEnv, ":") {
		if dir == "" {
			continue
		}
		candidate := resolvePath(dir, name)
		if res := classify(candidate); res == lookupFound {
			return candidate, lookupFound
		}
	}
	return "", lookupNotFound
}

func classify(path string) lookupResult {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return lookupNotFound
		}
		return lookupNotExecutable
	}
	if info.IsDir() {
		return lookupNotExecutable
	}
	if info.Mode()&0o111 == 0 {
		return lookupNotExecutable
	}
	return lookupFound
}
