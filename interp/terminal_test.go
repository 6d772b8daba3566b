//go:build unix

package interp

import (
	"bufio"
	"context"
	"testing"

	"github.com/creack/pty"
)

// TestRunAgainstPseudoTerminal exercises the executor with a real
// pseudo-terminal as the pipeline's stdout, the way an interactive
// minishell session actually runs (as opposed to every other test in
// this package, which captures output into a bytes.Buffer).
func TestRunAgainstPseudoTerminal(t *testing.T) {
	ptyFile, ttyFile, err := pty.Open()
	if err != nil {
		t.Fatalf("pty.Open: %v", err)
	}
	defer ptyFile.Close()
	defer ttyFile.Close()

	sh, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sh.Stdin = ttyFile
	sh.Stdout = ttyFile
	sh.Stderr = ttyFile
	sh.Heredoc = errLineReader{}

	done := make(chan error, 1)
	go func() { done <- sh.Run(context.Background(), "echo hi") }()

	got, err := bufio.NewReader(ptyFile).ReadString('\n')
	if err != nil {
		t.Fatalf("reading from pty master: %v", err)
	}
	if want := "hi\r\n"; got != want {
		t.Fatalf("pty output = %q, want %q", got, want)
	}
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
}
