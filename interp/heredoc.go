package interp

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yocelynnns/42project-minishell/expand"
	"github.com/yocelynnns/42project-minishell/syntax"
)

// errHeredocAborted is returned internally when Ctrl-C interrupts
// here-document collection (spec.md §4.5, step 4); readHeredocBody sets
// LastExit = 130 before returning it, and runPipeline swallows it so Run
// returns nil and the caller reprompts.
var errHeredocAborted = errors.New("heredoc collection aborted")

// heredocKey addresses one Redirection within a Pipeline by position.
type heredocKey struct {
	cmd, redir int
}

// collectHeredocs materializes every HEREDOC redirection in pipe by
// reading from sh.Heredoc with the secondary prompt, before any process
// is forked (spec.md §4.5): the shell itself is the reader, under the
// "awaiting input" signal disposition.
//
// Each body is piped through an anonymous os.Pipe; a goroutine supervised
// by g writes the collected bytes and closes the write end, so a body
// larger than the OS pipe buffer cannot deadlock collection against the
// later exec phase.
func (sh *Shell) collectHeredocs(ctx context.Context, pipe *syntax.Pipeline, g *errgroup.Group) (map[heredocKey]*os.File, error) {
	files := make(map[heredocKey]*os.File)

	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	for ci, cmd := range pipe.Commands {
		for ri, rd := range cmd.Redirs {
			if rd.Op != syntax.RedirHeredoc {
				continue
			}
			body, err := sh.readHeredocBody(rd.Target)
			if err != nil {
				closeAll()
				return nil, err
			}

			pr, pw, err := os.Pipe()
			if err != nil {
				closeAll()
				return nil, err
			}
			g.Go(func() error {
				defer pw.Close()
				_, werr := io.Copy(pw, strings.NewReader(body))
				return werr
			})
			files[heredocKey{ci, ri}] = pr
		}
	}
	return files, nil
}

// readHeredocBody reads lines until one equals delim.Text exactly,
// expanding each line as if double-quoted unless delim was quoted at any
// character (spec.md §3 Invariants, §4.5).
func (sh *Shell) readHeredocBody(delim syntax.Word) (string, error) {
	suppressExpand := delim.AnyQuoted()
	env := expandEnv{sh}

	var lines []string
	for {
		line, err := sh.Heredoc.ReadLine("> ")
		if err != nil {
			if errors.Is(err, ErrInterrupted) {
				sh.LastExit = 130
				return "", errHeredocAborted
			}
			if errors.Is(err, io.EOF) {
				break // real shells accept an unterminated heredoc at EOF
			}
			return "", err
		}
		if line == delim.Text {
			break
		}
		if !suppressExpand {
			line = expand.Document(line, env)
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return "", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}
