package expand

import (
	"testing"

	"github.com/yocelynnns/42project-minishell/syntax"
)

type fakeEnv struct {
	vars     map[string]string
	lastExit int
}

func (f fakeEnv) Get(name string) (string, bool) {
	v, ok := f.vars[name]
	return v, ok
}

func (f fakeEnv) LastExitStatus() int { return f.lastExit }

func word(text string, q syntax.Quote) syntax.Word {
	quoting := make([]syntax.Quote, len(text))
	for i := range quoting {
		quoting[i] = q
	}
	return syntax.Word{Text: text, Quoting: quoting, Quoted: q != syntax.NONE}
}

func TestWordExpansion(t *testing.T) {
	env := fakeEnv{vars: map[string]string{"HOME": "/root", "EMPTY": ""}, lastExit: 7}

	tests := []struct {
		name string
		w    syntax.Word
		want string
	}{
		{"unquoted var", word("$HOME", syntax.NONE), "/root"},
		{"double quoted var", word("$HOME", syntax.DOUBLE), "/root"},
		{"single quoted var not expanded", word("$HOME", syntax.SINGLE), "$HOME"},
		{"undefined var expands empty", word("$NOPE", syntax.NONE), ""},
		{"exit status", word("$?", syntax.NONE), "7"},
		{"dollar with no name is literal", word("$ ", syntax.NONE), "$ "},
		{"trailing dollar is literal", word("$", syntax.NONE), "$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Word(tt.w, env)
			if got != tt.want {
				t.Errorf("Word(%q) = %q, want %q", tt.w.Text, got, tt.want)
			}
		})
	}
}

func TestWordMixedQuoting(t *testing.T) {
	env := fakeEnv{vars: map[string]string{"X": "Y"}}
	// The lexer's output for $X'$X'"$X": quote characters removed, each
	// byte tagged with the region it came from.
	text := "$X$X$X"
	quoting := make([]syntax.Quote, len(text))
	for i := range "$X" {
		quoting[i] = syntax.NONE
	}
	for i := len("$X"); i < len("$X$X"); i++ {
		quoting[i] = syntax.SINGLE
	}
	for i := len("$X$X"); i < len(text); i++ {
		quoting[i] = syntax.DOUBLE
	}
	w := syntax.Word{Text: text, Quoting: quoting}
	got := Word(w, env)
	want := "Y$XY"
	if got != want {
		t.Fatalf("Word(%q) = %q, want %q", text, got, want)
	}
}

func TestDocumentExpandsLikeDoubleQuotes(t *testing.T) {
	env := fakeEnv{vars: map[string]string{"NAME": "world"}}
	got := Document("hello $NAME, status $?", env)
	want := "hello world, status 0"
	if got != want {
		t.Fatalf("Document = %q, want %q", got, want)
	}
}

func TestArgvDropsEmptyUnquotedWords(t *testing.T) {
	env := fakeEnv{vars: map[string]string{}}
	words := []syntax.Word{
		word("$UNSET", syntax.NONE),
		word("", syntax.SINGLE),
		word("kept", syntax.NONE),
	}
	got := Argv(words, env)
	want := []string{"", "kept"}
	if len(got) != len(want) {
		t.Fatalf("Argv = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("Argv[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
