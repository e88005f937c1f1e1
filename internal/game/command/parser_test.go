package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want ParseResult
	}{
		{"", ParseResult{}},
		{"   \t ", ParseResult{}},
		{"look", ParseResult{Command: "look"}},
		{"GET Sword", ParseResult{Command: "get", Args: []string{"Sword"}}},
		{"  put   all.bread\tsack  ", ParseResult{Command: "put", Args: []string{"all.bread", "sack"}}},
		{"give 5 coins bob", ParseResult{Command: "give", Args: []string{"5", "coins", "bob"}}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Parse(tt.line), "line %q", tt.line)
	}
}

func TestParse_WordsSurvive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		words := rapid.SliceOfN(rapid.StringMatching(`[a-z0-9.]{1,8}`), 1, 6).Draw(rt, "words")
		sep := rapid.SampledFrom([]string{" ", "  ", "\t", " \t "}).Draw(rt, "sep")

		got := Parse(strings.Join(words, sep))
		if got.Command != words[0] {
			rt.Fatalf("command %q, want %q", got.Command, words[0])
		}
		if len(got.Args) != len(words)-1 {
			rt.Fatalf("got %d args, want %d", len(got.Args), len(words)-1)
		}
		for i, a := range got.Args {
			if a != words[i+1] {
				rt.Fatalf("arg %d = %q, want %q", i, a, words[i+1])
			}
		}
	})
}
