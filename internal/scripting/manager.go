package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/deltamud/internal/game/dice"
)

// globalKey holds the shared scripts consulted for zones without their own.
const globalKey = "*global*"

// Fields is the table passed to a hook. Values may be string, int, bool or
// []string; other types are dropped.
type Fields map[string]any

// ItemInfo is what engine.item.query returns for an item.
type ItemInfo struct {
	ID     string
	DefID  string
	Name   string
	Short  string
	Type   string
	Weight int
	// Where is "kind:owner", e.g. "room:temple".
	Where string
}

// RoomInfo is what engine.world.query_room returns for a room.
type RoomInfo struct {
	ID    string
	Title string
	Items []string
}

// vm is one zone's Lua state. A state is single-threaded, so calls hold mu.
type vm struct {
	mu    sync.Mutex
	L     *lua.LState
	limit int
}

// Manager holds a Lua state per zone plus an optional global one.
type Manager struct {
	mu     sync.RWMutex
	vms    map[string]*vm
	roller *dice.Roller
	logger *zap.Logger

	// Callbacks behind the engine.* modules. A nil callback makes its Lua
	// function a no-op returning nil.
	QueryItem func(id string) *ItemInfo
	QueryRoom func(roomID string) *RoomInfo
	Broadcast func(roomID, msg string)
	Tell      func(uid, msg string)
}

// NewManager returns a Manager with no scripts loaded.
//
// Precondition: roller and logger must be non-nil.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	if roller == nil || logger == nil {
		panic("scripting.NewManager: roller and logger are required")
	}
	return &Manager{vms: make(map[string]*vm), roller: roller, logger: logger}
}

// LoadZone runs every .lua file in dir, in name order, in a fresh sandbox
// for zoneID, replacing any state loaded before. Each file and each later
// hook call gets limit instructions.
func (m *Manager) LoadZone(zoneID, dir string, limit int) error {
	return m.load(zoneID, dir, limit)
}

// LoadGlobal loads the scripts used for zones that have none.
func (m *Manager) LoadGlobal(dir string, limit int) error {
	return m.load(globalKey, dir, limit)
}

func (m *Manager) load(key, dir string, limit int) error {
	files, err := luaFiles(dir)
	if err != nil {
		return fmt.Errorf("scripting: %s: %w", key, err)
	}
	L := NewSandbox()
	m.RegisterModules(L)
	for _, path := range files {
		if err := Bounded(L, limit, func() error { return L.DoFile(path) }); err != nil {
			L.Close()
			return fmt.Errorf("scripting: %s: loading %s: %w", key, path, err)
		}
	}

	m.mu.Lock()
	old := m.vms[key]
	m.vms[key] = &vm{L: L, limit: limit}
	m.mu.Unlock()
	if old != nil {
		old.close()
	}
	m.logger.Debug("scripts loaded", zap.String("zone", key), zap.Int("files", len(files)))
	return nil
}

func luaFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// HasZone reports whether zoneID has its own scripts.
func (m *Manager) HasZone(zoneID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.vms[zoneID]
	return ok
}

// Call invokes the global function hook in zoneID's state, or the global
// state when the zone has none.
//
// Postcondition: returns the hook's first result; LNil with a nil error
// when no state or no such function exists; LNil and an error when the
// hook raises or runs out of instructions.
func (m *Manager) Call(zoneID, hook string, args ...lua.LValue) (lua.LValue, error) {
	return m.call(zoneID, hook, func(*lua.LState) []lua.LValue { return args })
}

// CallFields invokes hook with fields as its single table argument.
func (m *Manager) CallFields(zoneID, hook string, fields Fields) (lua.LValue, error) {
	return m.call(zoneID, hook, func(L *lua.LState) []lua.LValue {
		return []lua.LValue{fields.table(L)}
	})
}

func (m *Manager) lookup(zoneID string) *vm {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.vms[zoneID]; ok {
		return v
	}
	return m.vms[globalKey]
}

func (m *Manager) call(zoneID, hook string, args func(*lua.LState) []lua.LValue) (lua.LValue, error) {
	v := m.lookup(zoneID)
	if v == nil {
		return lua.LNil, nil
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.L == nil {
		return lua.LNil, nil
	}
	fn := v.L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return lua.LNil, nil
	}

	L := v.L
	err := Bounded(L, v.limit, func() error {
		return L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args(L)...)
	})
	if err != nil {
		return lua.LNil, fmt.Errorf("scripting: %s in zone %s: %w", hook, zoneID, err)
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

func (v *vm) close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.L != nil {
		v.L.Close()
		v.L = nil
	}
}

// Close releases every state. Later calls find no scripts.
func (m *Manager) Close() {
	m.mu.Lock()
	vms := m.vms
	m.vms = make(map[string]*vm)
	m.mu.Unlock()
	for _, v := range vms {
		v.close()
	}
}

func (f Fields) table(L *lua.LState) *lua.LTable {
	tbl := L.NewTable()
	for k, v := range f {
		switch val := v.(type) {
		case string:
			tbl.RawSetString(k, lua.LString(val))
		case int:
			tbl.RawSetString(k, lua.LNumber(val))
		case bool:
			tbl.RawSetString(k, lua.LBool(val))
		case []string:
			list := L.NewTable()
			for _, s := range val {
				list.Append(lua.LString(s))
			}
			tbl.RawSetString(k, list)
		}
	}
	return tbl
}
