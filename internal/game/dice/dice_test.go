package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/deltamud/internal/game/dice"
)

func TestParse(t *testing.T) {
	tests := map[string]dice.Expr{
		"d20":     {Text: "d20", Count: 1, Sides: 20},
		"2d6":     {Text: "2d6", Count: 2, Sides: 6},
		"2d6+3":   {Text: "2d6+3", Count: 2, Sides: 6, Modifier: 3},
		" 4D8-2 ": {Text: " 4D8-2 ", Count: 4, Sides: 8, Modifier: -2},
	}
	for in, want := range tests {
		got, err := dice.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, bad := range []string{"", "20", "0d6", "2d1", "2dx", "2d6+x", "2d6+", "d", "banana"} {
		_, err := dice.Parse(bad)
		assert.Error(t, err, "expression %q", bad)
	}
}

func TestExpr_Roll(t *testing.T) {
	e, err := dice.Parse("3d6+1")
	require.NoError(t, err)

	res := e.Roll(dice.NewFixedSource(0, 5, 8))
	assert.Equal(t, []int{1, 6, 3}, res.Rolls)
	assert.Equal(t, 11, res.Total())
	assert.Equal(t, "3d6+1: [1 6 3] +1 = 11", res.String())
}

func TestExpr_Roll_StaysInRange(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		e := dice.Expr{
			Count:    rapid.IntRange(1, 10).Draw(rt, "count"),
			Sides:    rapid.IntRange(2, 100).Draw(rt, "sides"),
			Modifier: rapid.IntRange(-20, 20).Draw(rt, "modifier"),
		}
		res := e.Roll(src)
		if len(res.Rolls) != e.Count {
			rt.Fatalf("rolled %d dice, want %d", len(res.Rolls), e.Count)
		}
		for _, v := range res.Rolls {
			if v < 1 || v > e.Sides {
				rt.Fatalf("die %d outside 1..%d", v, e.Sides)
			}
		}
		if res.Total() < e.Count+e.Modifier || res.Total() > e.Count*e.Sides+e.Modifier {
			rt.Fatalf("total %d out of range", res.Total())
		}
	})
}

func TestBetween(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-50, 50).Draw(rt, "lo")
		hi := rapid.IntRange(-50, 50).Draw(rt, "hi")
		v := dice.Between(src, lo, hi)
		if v < min(lo, hi) || v > max(lo, hi) {
			rt.Fatalf("Between(%d, %d) = %d", lo, hi, v)
		}
	})
}

func TestSources_PanicOnNonPositive(t *testing.T) {
	assert.Panics(t, func() { dice.NewCryptoSource().Intn(0) })
	assert.Panics(t, func() { dice.NewFixedSource(1).Intn(-1) })
}

func TestFixedSource_Cycles(t *testing.T) {
	src := dice.NewFixedSource(1, 7)
	assert.Equal(t, []int{1, 2, 1, 2}, []int{src.Intn(5), src.Intn(5), src.Intn(5), src.Intn(5)})
}

func TestRoller_LogsDraws(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := dice.NewLoggedRoller(dice.NewFixedSource(49, 50, 0, 2), zap.New(core))

	assert.True(t, r.Check(50), "roll 50 against skill 50 succeeds")
	assert.False(t, r.Check(50), "roll 51 against skill 50 fails")
	assert.Equal(t, 3, r.Number(3, 10))

	res, err := r.RollExpr("1d4")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total())

	_, err = r.RollExpr("nope")
	assert.Error(t, err)

	assert.Equal(t, 2, logs.FilterMessage("skill check").Len())
	assert.Equal(t, 1, logs.FilterMessage("dice number").Len())
	assert.Equal(t, 1, logs.FilterMessage("dice roll").Len())
}
