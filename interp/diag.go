package interp

import (
	"fmt"
	"io"
)

// writeDiagnostic formats a message onto w; callers that report errors
// supply the "minishell: " prefix (spec.md §6) in format themselves.
// cmd/minishell colors the shell's own messages by replacing
// Shell.Diagnostic with a github.com/fatih/color wrapper; this function
// itself stays plain so it behaves identically under tests and pipes.
func writeDiagnostic(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
