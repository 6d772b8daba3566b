package syntax

import "fmt"

// ParseError is a syntax error at a specific offending token, formatted
// the way the shell reports it to the user (spec.md §4.3).
type ParseError struct {
	Token string // offending token text, or "newline" at end of input
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error near unexpected token '%s'", e.Token)
}

// Parser turns a token sequence into a Pipeline. It holds no state beyond
// its cursor into the token slice; one Parser parses exactly one line.
type Parser struct {
	toks []Token
	pos  int
}

// NewParser returns a Parser over toks.
func NewParser(toks []Token) *Parser {
	return &Parser{toks: toks}
}

// Parse lexes and parses line in one step.
func Parse(line string) (*Pipeline, error) {
	toks, err := Lex(line)
	if err != nil {
		return nil, err
	}
	return NewParser(toks).ParsePipeline()
}

func (p *Parser) cur() (Token, bool) {
	if p.pos >= len(p.toks) {
		return Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *Parser) curText() string {
	if t, ok := p.cur(); ok {
		return t.Text
	}
	return "newline"
}

// ParsePipeline implements:
//
//	pipeline := command ( '|' command )*
//	command  := (redir | WORD)*
//	redir    := ('<' | '>' | '>>' | '<<') WORD
func (p *Parser) ParsePipeline() (*Pipeline, error) {
	if len(p.toks) == 0 {
		// A blank (or whitespace-only) line: no command at all, as
		// opposed to one command with an empty argv.
		return &Pipeline{}, nil
	}
	if t, ok := p.cur(); ok && t.Kind == PIPE {
		return nil, &ParseError{Token: "|"}
	}

	pipe := &Pipeline{}
	for {
		cmd, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		pipe.Commands = append(pipe.Commands, cmd)

		t, ok := p.cur()
		if !ok {
			break
		}
		if t.Kind != PIPE {
			// Any leftover non-pipe token at this point would mean the
			// command parser stopped early, which only happens on an
			// operator it didn't recognize as a redirection start; there
			// are none in this grammar, so this is unreachable in
			// practice but guarded for safety.
			return nil, &ParseError{Token: t.Text}
		}
		p.pos++ // consume '|'

		if next, ok := p.cur(); !ok {
			return nil, &ParseError{Token: "newline"}
		} else if next.Kind == PIPE {
			return nil, &ParseError{Token: "|"}
		}
	}
	return pipe, nil
}

func (p *Parser) parseCommand() (Command, error) {
	var cmd Command
	for {
		t, ok := p.cur()
		if !ok || t.Kind == PIPE {
			return cmd, nil
		}
		switch t.Kind {
		case WORD:
			cmd.Argv = append(cmd.Argv, Word{Text: t.Text, Quoting: t.Quoting, Quoted: t.Quoted})
			p.pos++
		case REDIR_IN, REDIR_OUT, APPEND, HEREDOC:
			p.pos++
			target, ok := p.cur()
			if !ok || target.Kind != WORD {
				return Command{}, &ParseError{Token: p.curText()}
			}
			cmd.Redirs = append(cmd.Redirs, Redirection{
				Op:     redirOpFor(t.Kind),
				Target: Word{Text: target.Text, Quoting: target.Quoting, Quoted: target.Quoted},
			})
			p.pos++
		default:
			return Command{}, &ParseError{Token: t.Text}
		}
	}
}

func redirOpFor(k Kind) RedirOp {
	switch k {
	case REDIR_IN:
		return RedirIn
	case REDIR_OUT:
		return RedirOut
	case APPEND:
		return RedirAppend
	case HEREDOC:
		return RedirHeredoc
	default:
		panic("syntax: not a redirection token kind")
	}
}
