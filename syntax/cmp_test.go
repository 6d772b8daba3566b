package syntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestParsePipelineStructural compares a whole parsed Pipeline against a
// hand-built expectation, which is more convenient to keep correct as
// the AST grows than asserting on individual fields.
func TestParsePipelineStructural(t *testing.T) {
	got, err := Parse(`grep -n "foo bar" < in.txt | wc -l`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := &Pipeline{
		Commands: []Command{
			{
				Argv: []Word{
					{Text: "grep", Quoting: []Quote{NONE, NONE, NONE, NONE}},
					{Text: "-n", Quoting: []Quote{NONE, NONE}},
					{
						Text:    "foo bar",
						Quoting: []Quote{DOUBLE, DOUBLE, DOUBLE, DOUBLE, DOUBLE, DOUBLE, DOUBLE},
						Quoted:  true,
					},
				},
				Redirs: []Redirection{
					{Op: RedirIn, Target: Word{Text: "in.txt", Quoting: []Quote{NONE, NONE, NONE, NONE, NONE, NONE}}},
				},
			},
			{
				Argv: []Word{
					{Text: "wc", Quoting: []Quote{NONE, NONE}},
					{Text: "-l", Quoting: []Quote{NONE, NONE}},
				},
			},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Parse result mismatch (-want +got):\n%s", diff)
	}
}
