package dice_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/cory-johannsen/dungeon/internal/testutil"
)

func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Dice: []int{4, 5}, Modifier: 3}
	assert.Equal(t, 12, r.Total())
}

func TestRollResult_String(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Dice: []int{4, 5}, Modifier: 3}
	assert.Equal(t, "2d6+3 → [4 5] +3 = 12", r.String())
}

func TestRollResult_String_PanicsOnEmptyExpression(t *testing.T) {
	r := dice.RollResult{Dice: []int{4}}
	assert.Panics(t, func() { _ = r.String() })
}

func TestRollResult_Total_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ds := rapid.SliceOf(rapid.IntRange(1, 20)).Draw(rt, "dice")
		modifier := rapid.IntRange(-100, 100).Draw(rt, "modifier")
		r := dice.RollResult{Expression: "Nd6+M", Dice: ds, Modifier: modifier}

		expected := modifier
		for _, d := range ds {
			expected += d
		}
		assert.Equal(rt, expected, r.Total())
		assert.True(rt, strings.Contains(r.String(), fmt.Sprintf("= %d", expected)))
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		in                    string
		count, sides, modifer int
	}{
		{"d20", 1, 20, 0},
		{"2d6", 2, 6, 0},
		{"1d6+4", 1, 6, 4},
		{"3D4-1", 3, 4, -1},
	}
	for _, tc := range tests {
		e, err := dice.Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.count, e.Count, tc.in)
		assert.Equal(t, tc.sides, e.Sides, tc.in)
		assert.Equal(t, tc.modifer, e.Modifier, tc.in)
		assert.Equal(t, tc.in, e.Raw)
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "20", "0d6", "xd6", "1d1", "1d", "1d6+x", "101d6", "1000000000d6"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, "expected %q to be rejected", in)
	}
}

func TestParse_CountCap(t *testing.T) {
	e, err := dice.Parse(fmt.Sprintf("%dd6", dice.MaxCount))
	require.NoError(t, err)
	assert.Equal(t, dice.MaxCount, e.Count)

	_, err = dice.Parse(fmt.Sprintf("%dd6", dice.MaxCount+1))
	assert.ErrorContains(t, err, "must be <= 100")
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("bogus") })
	assert.NotPanics(t, func() { dice.MustParse("1d8+2") })
}

func TestRoll_Property_TotalWithinBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 6).Draw(rt, "count")
		sides := rapid.IntRange(2, 20).Draw(rt, "sides")
		mod := rapid.IntRange(-5, 5).Draw(rt, "mod")
		expr := dice.MustParse(fmt.Sprintf("%dd%d%+d", count, sides, mod))

		r := dice.Roll(expr, dice.NewCryptoSource())
		require.Len(rt, r.Dice, count)
		assert.GreaterOrEqual(rt, r.Total(), expr.Min())
		assert.LessOrEqual(rt, r.Total(), expr.Max())
	})
}

func TestRoll_UsesSource(t *testing.T) {
	src := &testutil.SequenceSource{Ints: []int{2, 5}}
	r := dice.Roll(dice.MustParse("2d6+1"), src)
	assert.Equal(t, []int{3, 6}, r.Dice)
	assert.Equal(t, 10, r.Total())
}

func TestRoller_Chance_StrictBoundary(t *testing.T) {
	chance := func(draw, p float64) bool {
		return dice.NewLoggedRoller(testutil.NewFloats(draw), zap.NewNop()).Chance("test", p)
	}
	assert.False(t, chance(0.3, 0.3), "a draw equal to the threshold misses")
	assert.True(t, chance(0.2999, 0.3))
	assert.True(t, chance(0.99, 1.5), "thresholds above 1 always hit")
	assert.False(t, chance(0, -0.1), "negative thresholds never hit")
}

func TestRoller_LogsAndRolls(t *testing.T) {
	roller := dice.NewLoggedRoller(&testutil.SequenceSource{Ints: []int{0}, Floats: []float64{0.5}}, zap.NewNop())
	assert.Equal(t, 1, roller.Roll(dice.MustParse("1d4")).Total())
	assert.True(t, roller.Chance("crit", 0.6))
	assert.NotNil(t, roller.Source())
}

func TestCryptoSource_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
		f := src.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewCryptoSource().Intn(0) })
}

func TestSeededSource_Reproducible(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
		assert.Equal(t, a.Intn(100), b.Intn(100))
	}
}
