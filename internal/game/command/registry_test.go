package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestResolve_NamesAndAliases(t *testing.T) {
	r := DefaultRegistry()
	tests := []struct {
		input   string
		name    string
		handler string
	}{
		{"north", "north", HandlerMove},
		{"n", "north", HandlerMove},
		{"sw", "southwest", HandlerMove},
		{"l", "look", HandlerLook},
		{"i", "inventory", HandlerInventory},
		{"take", "get", HandlerGet},
		{"grab", "hold", HandlerHold},
		{"eq", "equipment", HandlerEquipment},
		{"sac", "sacrifice", HandlerSacrifice},
		{"?", "help", HandlerHelp},
		{"quit", "quit", HandlerQuit},
	}
	for _, tt := range tests {
		cmd, ok := r.Resolve(tt.input)
		require.True(t, ok, "input %q", tt.input)
		assert.Equal(t, tt.name, cmd.Name, "input %q", tt.input)
		assert.Equal(t, tt.handler, cmd.Handler, "input %q", tt.input)
	}
}

func TestResolve_AbbreviationsFollowTableOrder(t *testing.T) {
	r := DefaultRegistry()
	tests := map[string]string{
		"we":   "west",
		"wea":  "wear",
		"inv":  "inventory",
		"jun":  "junk",
		"don":  "donate",
		"po":   "pour",
		"rep":  "repair",
		"wiel": "wield",
	}
	for input, want := range tests {
		cmd, ok := r.Resolve(input)
		require.True(t, ok, "input %q", input)
		assert.Equal(t, want, cmd.Name, "input %q", input)
	}
}

func TestResolve_ExactCommandsAreNotAbbreviated(t *testing.T) {
	r := DefaultRegistry()
	for _, input := range []string{"q", "qu", "qui"} {
		_, ok := r.Resolve(input)
		assert.False(t, ok, input)
	}
}

func TestResolve_Unknown(t *testing.T) {
	r := DefaultRegistry()
	for _, input := range []string{"", "attack", "xyzzy", "looking"} {
		_, ok := r.Resolve(input)
		assert.False(t, ok, input)
	}
}

func TestNewRegistry_Collisions(t *testing.T) {
	tests := []struct {
		name string
		cmds []Command
		want string
	}{
		{"duplicate name", []Command{{Name: "get"}, {Name: "get"}}, `command "get" already used by "get"`},
		{"alias shadows name", []Command{{Name: "get"}, {Name: "take", Aliases: []string{"get"}}}, `alias "get" of "take" already used by "get"`},
		{"name shadows alias", []Command{{Name: "get", Aliases: []string{"take"}}, {Name: "take"}}, `command "take" already used by "get"`},
		{"unnamed", []Command{{Handler: HandlerGet}}, "has no name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.cmds)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCommandsByCategory(t *testing.T) {
	cats := DefaultRegistry().CommandsByCategory()

	for _, c := range []string{CategoryMovement, CategoryWorld, CategoryItems, CategoryEquipment, CategoryConsumables, CategorySystem} {
		assert.Contains(t, cats, c)
	}
	assert.Len(t, cats[CategoryMovement], 10)
	assert.Equal(t, "north", cats[CategoryMovement][0].Name)
}

func TestEveryHandlerIsWired(t *testing.T) {
	for _, cmd := range DefaultRegistry().Commands() {
		switch cmd.Handler {
		case HandlerMove, HandlerQuit:
			continue
		}
		_, ok := handlers[cmd.Handler]
		assert.True(t, ok, "command %q has no handler %q", cmd.Name, cmd.Handler)
	}
}

func TestResolve_PrefixOfNameFindsACommandStartingWithIt(t *testing.T) {
	r := DefaultRegistry()
	cmds := r.Commands()
	rapid.Check(t, func(rt *rapid.T) {
		cmd := cmds[rapid.IntRange(0, len(cmds)-1).Draw(rt, "cmd")]
		if cmd.Exact {
			return
		}
		prefix := cmd.Name[:rapid.IntRange(1, len(cmd.Name)).Draw(rt, "len")]

		got, ok := r.Resolve(prefix)
		if !ok {
			rt.Fatalf("%q did not resolve", prefix)
		}
		if got.Name != prefix && !strings.HasPrefix(got.Name, prefix) && !containsAlias(got, prefix) {
			rt.Fatalf("%q resolved to unrelated %q", prefix, got.Name)
		}
	})
}

func containsAlias(cmd *Command, word string) bool {
	for _, a := range cmd.Aliases {
		if a == word {
			return true
		}
	}
	return false
}
