package interp

import (
	"os"
	"sort"
	"strings"
)

// entry is one Environment Table row (spec.md §3 "Env entry"). value is
// absent (hasValue == false) for names introduced by a bare `export NAME`.
type entry struct {
	value    string
	hasValue bool
}

// Environ is the ordered, unique-by-name mapping from C1. Insertion order
// is preserved so that `env` iterates deterministically the way a real
// shell's environment does; `export` with no args lists Sorted instead.
type Environ struct {
	order   []string
	entries map[string]entry
}

// NewEnviron returns an empty Environ.
func NewEnviron() *Environ {
	return &Environ{entries: make(map[string]entry)}
}

// EnvironFromOS seeds an Environ from the current process's environment,
// preserving the order os.Environ() returns it in.
func EnvironFromOS() *Environ {
	e := NewEnviron()
	for _, kv := range os.Environ() {
		i := strings.IndexByte(kv, '=')
		if i < 0 {
			continue
		}
		e.Set(kv[:i], kv[i+1:])
	}
	return e
}

// Get returns the value for name and whether it is set, valued or not. An
// unvalued entry (bare `export NAME`) reports ok == true but an empty
// value, matching expand.Env's contract that $NAME of such a variable
// expands to the empty string.
func (e *Environ) Get(name string) (string, bool) {
	en, ok := e.entries[name]
	if !ok {
		return "", false
	}
	return en.value, true
}

// Has reports whether name exists in the table at all, valued or not.
func (e *Environ) Has(name string) bool {
	_, ok := e.entries[name]
	return ok
}

// IsValued reports whether name is set and carries a value (as opposed
// to a bare `export NAME`).
func (e *Environ) IsValued(name string) bool {
	en, ok := e.entries[name]
	return ok && en.hasValue
}

// Set assigns value to name, inserting it at the end of iteration order
// if new, or updating it in place if already present.
func (e *Environ) Set(name, value string) {
	if _, ok := e.entries[name]; !ok {
		e.order = append(e.order, name)
	}
	e.entries[name] = entry{value: value, hasValue: true}
}

// SetUnvalued records name as present with no value (bare `export NAME`).
func (e *Environ) SetUnvalued(name string) {
	if _, ok := e.entries[name]; !ok {
		e.order = append(e.order, name)
	}
	e.entries[name] = entry{}
}

// Unset removes name. Unsetting a name that isn't present is a no-op.
func (e *Environ) Unset(name string) {
	if _, ok := e.entries[name]; !ok {
		return
	}
	delete(e.entries, name)
	for i, n := range e.order {
		if n == name {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// Each calls fn for every entry in insertion order, stopping early if fn
// returns false.
func (e *Environ) Each(fn func(name, value string, hasValue bool) bool) {
	for _, name := range e.order {
		en := e.entries[name]
		if !fn(name, en.value, en.hasValue) {
			return
		}
	}
}

// Sorted returns names in lexical order, for `export`'s no-argument
// listing (spec.md §4.7).
func (e *Environ) Sorted() []string {
	names := make([]string, len(e.order))
	copy(names, e.order)
	sort.Strings(names)
	return names
}

// Snapshot returns only valued entries, formatted NAME=VALUE, in
// insertion order, for handoff to a child process image (spec.md §4.1).
func (e *Environ) Snapshot() []string {
	out := make([]string, 0, len(e.order))
	for _, name := range e.order {
		en := e.entries[name]
		if en.hasValue {
			out = append(out, name+"="+en.value)
		}
	}
	return out
}

// IsValidName reports whether name matches [A-Za-z_][A-Za-z0-9_]*
// (spec.md §3).
func IsValidName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Clone returns an independent copy, used to isolate a non-singleton
// pipeline builtin's mutations from the real shell environment (spec.md
// §4.6's "builtin special case", §5's builtin-in-parent carve-out).
func (e *Environ) Clone() *Environ {
	c := &Environ{
		order:   append([]string(nil), e.order...),
		entries: make(map[string]entry, len(e.entries)),
	}
	for k, v := range e.entries {
		c.entries[k] = v
	}
	return c
}
