package session

// Condition indexes a character's bodily conditions.
type Condition int

// Conditions.
const (
	Drunk Condition = iota
	Hunger
	Thirst
	numConditions
)

// MaxCondition is the upper bound of every condition.
const MaxCondition = 24

// Unaffected marks a condition that never changes, as for immortals.
const Unaffected = -1

// Conditions holds the drunk, hunger and thirst levels. For hunger and thirst
// a higher value means better fed; for drunk a higher value means more drunk.
type Conditions [numConditions]int

// Gain adds delta to c, clamped to [0, MaxCondition]. Unaffected conditions
// never change.
//
// Postcondition: returns the new value.
func (cs *Conditions) Gain(c Condition, delta int) int {
	if cs[c] == Unaffected {
		return Unaffected
	}
	v := cs[c] + delta
	if v < 0 {
		v = 0
	}
	if v > MaxCondition {
		v = MaxCondition
	}
	cs[c] = v
	return v
}

// Full reports whether c has passed the sated threshold.
func (cs *Conditions) Full(c Condition) bool {
	return cs[c] > 20
}

// TooDrunk reports whether the character is too drunk to drink more.
func (cs *Conditions) TooDrunk() bool {
	return cs[Drunk] > 10
}
