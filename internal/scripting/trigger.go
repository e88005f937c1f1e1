package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/deltamud/internal/game/inventory"
)

// Scope tells a trigger where a move happens.
type Scope struct {
	Zone      string
	Room      string
	ActorName string
}

// ScopeFunc resolves the zone, room and actor name of a move.
type ScopeFunc func(mv inventory.Move) Scope

// Triggers runs allow_<op> and on_<op> Lua hooks around item moves.
//
// Only an explicit false from an allow hook vetoes; a missing hook, a nil
// return or a script error allows the move.
type Triggers struct {
	mgr    *Manager
	items  *inventory.Manager
	scope  ScopeFunc
	logger *zap.Logger
}

// NewTriggers binds mgr to the item manager it guards.
//
// Precondition: all arguments must be non-nil.
func NewTriggers(mgr *Manager, items *inventory.Manager, scope ScopeFunc, logger *zap.Logger) *Triggers {
	return &Triggers{mgr: mgr, items: items, scope: scope, logger: logger}
}

// Allow implements inventory.Trigger.
func (t *Triggers) Allow(mv inventory.Move) bool {
	sc := t.scope(mv)
	ret, err := t.mgr.CallFields(sc.Zone, "allow_"+string(mv.Op), t.fields(mv, sc))
	if err != nil {
		t.logger.Warn("allow hook failed", zap.String("op", string(mv.Op)), zap.Error(err))
		return true
	}
	if ret == lua.LFalse {
		t.logger.Debug("move vetoed by script",
			zap.String("op", string(mv.Op)),
			zap.String("item", string(mv.Item)),
			zap.String("zone", sc.Zone),
		)
		return false
	}
	return true
}

// Notify implements inventory.Trigger.
func (t *Triggers) Notify(mv inventory.Move) {
	sc := t.scope(mv)
	if _, err := t.mgr.CallFields(sc.Zone, "on_"+string(mv.Op), t.fields(mv, sc)); err != nil {
		t.logger.Warn("notify hook failed", zap.String("op", string(mv.Op)), zap.Error(err))
	}
}

func (t *Triggers) fields(mv inventory.Move, sc Scope) Fields {
	f := Fields{
		"op":         string(mv.Op),
		"item":       string(mv.Item),
		"actor":      mv.Actor,
		"actor_name": sc.ActorName,
		"room":       sc.Room,
		"from_kind":  mv.From.Kind.String(),
		"from":       mv.From.Owner(),
		"to_kind":    mv.To.Kind.String(),
		"to":         mv.To.Owner(),
	}
	if mv.To.Kind == inventory.LocEquipment {
		f["slot"] = mv.To.Slot.String()
	} else if mv.From.Kind == inventory.LocEquipment {
		f["slot"] = mv.From.Slot.String()
	}
	if it, ok := t.items.Item(mv.Item); ok {
		f["def"] = it.DefID
		f["name"] = it.Name
	}
	return f
}

// ItemInfoFor builds the engine.item.query view of an item.
func ItemInfoFor(items *inventory.Manager, id string) *ItemInfo {
	it, ok := items.Item(inventory.ItemID(id))
	if !ok {
		return nil
	}
	return &ItemInfo{
		ID:     string(it.ID),
		DefID:  it.DefID,
		Name:   it.Name,
		Short:  it.ShortDesc,
		Type:   string(it.Type),
		Weight: it.Weight(),
		Where:  it.Location().Kind.String() + ":" + it.Location().Owner(),
	}
}

var _ inventory.Trigger = (*Triggers)(nil)
