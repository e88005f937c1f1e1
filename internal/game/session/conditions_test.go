package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestConditions_Gain(t *testing.T) {
	var c Conditions
	assert.Equal(t, 5, c.Gain(Thirst, 5))
	assert.Equal(t, MaxCondition, c.Gain(Thirst, 100))
	assert.True(t, c.Full(Thirst))
	assert.Equal(t, 0, c.Gain(Hunger, -3))
	assert.False(t, c.Full(Hunger))

	c[Drunk] = 11
	assert.True(t, c.TooDrunk())
	c[Drunk] = Unaffected
	assert.Equal(t, Unaffected, c.Gain(Drunk, 10))
	assert.False(t, c.TooDrunk())
}

func TestConditions_GainStaysInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var c Conditions
		for _, d := range rapid.SliceOf(rapid.IntRange(-30, 30)).Draw(rt, "deltas") {
			if v := c.Gain(Hunger, d); v < 0 || v > MaxCondition {
				rt.Fatalf("hunger %d out of range", v)
			}
		}
	})
}
