package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers all engine.* Lua tables into L:
//
//	engine.log.debug|info|warn|error(msg)
//	engine.dice.roll(expr)      -> {total, dice, modifier} or nil
//	engine.dice.number(lo, hi)  -> int
//	engine.dice.check(skill)    -> bool
//	engine.item.query(id)       -> {id, def, name, short, type, weight, where} or nil
//	engine.world.query_room(id) -> {id, title, items} or nil
//	engine.world.broadcast(room, msg)
//	engine.world.tell(uid, msg)
//
// Precondition: L must be from NewSandbox.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetGlobal("engine", engine)

	engine.RawSetString("log", m.logModule(L))
	engine.RawSetString("dice", m.diceModule(L))
	engine.RawSetString("item", m.itemModule(L))
	engine.RawSetString("world", m.worldModule(L))
}

func (m *Manager) logModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	levels := map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	}
	for name, fn := range levels {
		fn := fn
		L.SetField(mod, name, L.NewFunction(func(L *lua.LState) int {
			fn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	return mod
}

func (m *Manager) diceModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "roll", L.NewFunction(func(L *lua.LState) int {
		result, err := m.roller.RollExpr(L.CheckString(1))
		if err != nil {
			m.logger.Warn("scripting: bad dice expression", zap.Error(err))
			L.Push(lua.LNil)
			return 1
		}
		sum := 0
		for _, d := range result.Rolls {
			sum += d
		}
		tbl := L.NewTable()
		tbl.RawSetString("total", lua.LNumber(result.Total()))
		tbl.RawSetString("dice", lua.LNumber(sum))
		tbl.RawSetString("modifier", lua.LNumber(result.Modifier))
		L.Push(tbl)
		return 1
	}))
	L.SetField(mod, "number", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(m.roller.Number(L.CheckInt(1), L.CheckInt(2))))
		return 1
	}))
	L.SetField(mod, "check", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(m.roller.Check(L.CheckInt(1))))
		return 1
	}))
	return mod
}

func (m *Manager) itemModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "query", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		if m.QueryItem == nil {
			L.Push(lua.LNil)
			return 1
		}
		info := m.QueryItem(id)
		if info == nil {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(Fields{
			"id":     info.ID,
			"def":    info.DefID,
			"name":   info.Name,
			"short":  info.Short,
			"type":   info.Type,
			"weight": info.Weight,
			"where":  info.Where,
		}.table(L))
		return 1
	}))
	return mod
}

func (m *Manager) worldModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "query_room", L.NewFunction(func(L *lua.LState) int {
		roomID := L.CheckString(1)
		if m.QueryRoom == nil {
			L.Push(lua.LNil)
			return 1
		}
		info := m.QueryRoom(roomID)
		if info == nil {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(Fields{
			"id":    info.ID,
			"title": info.Title,
			"items": info.Items,
		}.table(L))
		return 1
	}))
	L.SetField(mod, "broadcast", L.NewFunction(func(L *lua.LState) int {
		roomID, msg := L.CheckString(1), L.CheckString(2)
		if m.Broadcast != nil {
			m.Broadcast(roomID, msg)
		}
		return 0
	}))
	L.SetField(mod, "tell", L.NewFunction(func(L *lua.LState) int {
		uid, msg := L.CheckString(1), L.CheckString(2)
		if m.Tell != nil {
			m.Tell(uid, msg)
		}
		return 0
	}))
	return mod
}
