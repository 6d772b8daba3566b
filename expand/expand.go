// Package expand performs the shell's one expansion pass: substituting
// $NAME and $? outside single quotes, and removing the quote characters
// that the lexer already stripped from the surface text (quote removal
// is therefore a no-op here; it is only ever visible through the
// quoting mask's effect on which bytes are eligible for substitution).
package expand

import (
	"strconv"

	"github.com/yocelynnns/42project-minishell/syntax"
)

// Env is the read view the expander needs of shell state: variable
// lookup and the last pipeline exit status ($?).
type Env interface {
	Get(name string) (value string, ok bool)
	LastExitStatus() int
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameByte(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}

// Word expands one lexed word's text against env, using its per-byte
// quoting mask to decide which '$' sequences are live.
func Word(w syntax.Word, env Env) string {
	text, quoting := w.Text, w.Quoting
	var out []byte

	for i := 0; i < len(text); i++ {
		c := text[i]
		q := quoteAt(quoting, i)
		if c != '$' || (q != syntax.NONE && q != syntax.DOUBLE) {
			out = append(out, c)
			continue
		}

		// c == '$' and eligible for expansion.
		if i+1 < len(text) && text[i+1] == '?' {
			out = append(out, strconv.Itoa(env.LastExitStatus())...)
			i++
			continue
		}

		j := i + 1
		if j < len(text) && isNameStart(text[j]) {
			k := j + 1
			for k < len(text) && isNameByte(text[k]) {
				k++
			}
			name := text[j:k]
			if val, ok := env.Get(name); ok {
				out = append(out, val...)
			}
			i = k - 1
			continue
		}

		// '$' followed by neither '?' nor a name start: literal.
		out = append(out, c)
	}

	return string(out)
}

// quoteAt returns the quoting tag at index i, or syntax.NONE if the mask
// is shorter than the text (defensive; lexer output always keeps them
// equal length, spec.md §8 invariant).
func quoteAt(quoting []syntax.Quote, i int) syntax.Quote {
	if i < 0 || i >= len(quoting) {
		return syntax.NONE
	}
	return quoting[i]
}

// Document expands a here-document body line the same way as a
// double-quoted word: only $NAME and $?, with every byte treated as
// DOUBLE-tagged (spec.md §4.5).
func Document(line string, env Env) string {
	quoting := make([]syntax.Quote, len(line))
	for i := range quoting {
		quoting[i] = syntax.DOUBLE
	}
	return Word(syntax.Word{Text: line, Quoting: quoting}, env)
}

// Argv expands every word of argv, dropping words that become empty and
// had no quoted region at all (spec.md §4.4 edge case).
func Argv(words []syntax.Word, env Env) []string {
	var out []string
	for _, w := range words {
		val := Word(w, env)
		if val == "" && !w.AnyQuoted() {
			continue
		}
		out = append(out, val)
	}
	return out
}
