package command

import (
	"fmt"
	"strings"
)

// Registry resolves what a player typed to a Command.
//
// Lookup tries the exact name, then an alias, then the first command in
// table order whose name starts with the input, so "inv" finds inventory
// and "we" finds west before wear. Exact commands are never abbreviated.
type Registry struct {
	ordered []*Command
	byName  map[string]*Command
	aliases map[string]*Command
}

// NewRegistry builds a Registry from cmds, keeping their order for
// abbreviation lookup.
//
// Precondition: names and aliases are unique across cmds.
// Postcondition: Returns a Registry or an error naming the first collision.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{
		ordered: make([]*Command, 0, len(cmds)),
		byName:  make(map[string]*Command, len(cmds)),
		aliases: make(map[string]*Command),
	}
	taken := func(word string) string {
		if c, ok := r.byName[word]; ok {
			return c.Name
		}
		if c, ok := r.aliases[word]; ok {
			return c.Name
		}
		return ""
	}

	for i := range cmds {
		cmd := &cmds[i]
		if cmd.Name == "" {
			return nil, fmt.Errorf("command %d has no name", i)
		}
		if owner := taken(cmd.Name); owner != "" {
			return nil, fmt.Errorf("command %q already used by %q", cmd.Name, owner)
		}
		r.byName[cmd.Name] = cmd
		for _, alias := range cmd.Aliases {
			if owner := taken(alias); owner != "" {
				return nil, fmt.Errorf("alias %q of %q already used by %q", alias, cmd.Name, owner)
			}
			r.aliases[alias] = cmd
		}
		r.ordered = append(r.ordered, cmd)
	}
	return r, nil
}

// DefaultRegistry returns a Registry of BuiltinCommands. It panics if the
// built-in table collides with itself.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve finds the command for word.
//
// Postcondition: Returns (command, true) on a match, or (nil, false).
func (r *Registry) Resolve(word string) (*Command, bool) {
	if word == "" {
		return nil, false
	}
	if cmd, ok := r.byName[word]; ok {
		return cmd, true
	}
	if cmd, ok := r.aliases[word]; ok {
		return cmd, true
	}
	for _, cmd := range r.ordered {
		if !cmd.Exact && strings.HasPrefix(cmd.Name, word) {
			return cmd, true
		}
	}
	return nil, false
}

// Commands returns every command in table order.
func (r *Registry) Commands() []*Command {
	return append([]*Command(nil), r.ordered...)
}

// CommandsByCategory groups the commands by Category, each group in table
// order.
func (r *Registry) CommandsByCategory() map[string][]*Command {
	groups := make(map[string][]*Command)
	for _, cmd := range r.ordered {
		groups[cmd.Category] = append(groups[cmd.Category], cmd)
	}
	return groups
}
