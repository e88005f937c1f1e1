package telnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestColorize(t *testing.T) {
	assert.Equal(t, "\033[32m> \033[0m", Colorize(Green, "> "))
}

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "Welcome to Midgaard!", StripANSI(Colorize(Bold+Cyan, "Welcome to Midgaard!")))
	assert.Equal(t, "no escapes", StripANSI("no escapes"))
	assert.Equal(t, "dangling \033[", StripANSI("dangling \033["))
}

func TestStripANSI_UndoesColorize(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z0-9 .,!?]{0,40}`).Draw(rt, "text")
		color := rapid.SampledFrom([]string{Reset, Bold, Green, Yellow, Cyan}).Draw(rt, "color")
		if got := StripANSI(Colorize(color, text)); got != text {
			rt.Fatalf("got %q, want %q", got, text)
		}
	})
}
