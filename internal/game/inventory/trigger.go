package inventory

// Trigger is consulted around every Manager.Move.
//
// Allow is phase one: it must not mutate world state and returns false to
// veto. Notify runs after a successful move and may move other items.
type Trigger interface {
	Allow(mv Move) bool
	Notify(mv Move)
}

// Triggers fans out to several triggers in order.
type Triggers []Trigger

// Allow returns false as soon as any trigger vetoes.
func (ts Triggers) Allow(mv Move) bool {
	for _, t := range ts {
		if !t.Allow(mv) {
			return false
		}
	}
	return true
}

// Notify calls every trigger in order.
func (ts Triggers) Notify(mv Move) {
	for _, t := range ts {
		t.Notify(mv)
	}
}

// TriggerFuncs adapts plain functions to Trigger. Nil fields allow and ignore.
type TriggerFuncs struct {
	AllowFunc  func(Move) bool
	NotifyFunc func(Move)
}

// Allow implements Trigger.
func (f TriggerFuncs) Allow(mv Move) bool {
	if f.AllowFunc == nil {
		return true
	}
	return f.AllowFunc(mv)
}

// Notify implements Trigger.
func (f TriggerFuncs) Notify(mv Move) {
	if f.NotifyFunc != nil {
		f.NotifyFunc(mv)
	}
}
