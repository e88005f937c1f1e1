// Package scripting runs zone Lua scripts that veto or react to item moves.
// Game state reaches scripts only through the callbacks set on Manager.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit caps the opcodes one hook call may execute when a
// zone sets no limit of its own.
const DefaultInstructionLimit = 100_000

// unsafeGlobals are removed from every sandbox after the base library loads.
var unsafeGlobals = []string{"dofile", "loadfile", "load", "loadstring", "collectgarbage", "require", "module"}

// NewSandbox returns a state with only the base, table, string and math
// libraries and no way to reach the filesystem. The caller closes it.
func NewSandbox() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}
	for _, name := range unsafeGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// opBudget cancels itself once Done has been polled limit times. GopherLua
// polls Done before every instruction while a context is set.
type opBudget struct {
	context.Context
	cancel context.CancelFunc
	left   atomic.Int64
}

func (b *opBudget) Done() <-chan struct{} {
	if b.left.Add(-1) < 0 {
		b.cancel()
	}
	return b.Context.Done()
}

// Bounded runs fn with L limited to limit instructions; limit <= 0 means
// DefaultInstructionLimit. Exceeding the budget makes fn's Lua call fail.
func Bounded(L *lua.LState, limit int, fn func() error) error {
	ctx, cancel := context.WithCancel(context.Background())
	b := &opBudget{Context: ctx, cancel: cancel}
	b.left.Store(int64(effectiveLimit(limit)))
	L.SetContext(b)
	defer func() {
		L.RemoveContext()
		cancel()
	}()
	return fn()
}

func effectiveLimit(limit int) int {
	if limit <= 0 {
		return DefaultInstructionLimit
	}
	return limit
}
