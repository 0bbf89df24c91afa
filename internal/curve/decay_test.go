package curve

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultiplierAtZero(t *testing.T) {
	require.Equal(t, 0, Multiplier(0).Cmp(Scale))
}

func TestMultiplierBeyondHorizon(t *testing.T) {
	for _, x := range []uint64{TableSize * Step, TableSize*Step + 1, TableSize * Step * 10} {
		require.Zero(t, Multiplier(x).Sign(), "x=%d", x)
	}
}

func TestMultiplierExactSteps(t *testing.T) {
	// 每个整步长恰好减半（带四舍五入）
	one := big.NewInt(1)
	prev := new(big.Int).Set(Scale)
	for k := uint64(1); k < TableSize; k++ {
		expected := new(big.Int).Add(prev, one)
		expected.Rsh(expected, 1)

		got := Multiplier(k * Step)
		require.Equal(t, 0, got.Cmp(expected), "k=%d", k)
		prev = expected
	}
}

func TestMultiplierHalfLife(t *testing.T) {
	// 一个步长后乘数为 0.5 * Scale
	half := new(big.Int).Rsh(Scale, 1)
	require.Equal(t, 0, Multiplier(Step).Cmp(half))
}

func TestMultiplierInterpolationMidpoint(t *testing.T) {
	// 第一个步长中点：1e18 与 5e17 的中间值
	got := Multiplier(Step / 2)
	expected, _ := new(big.Int).SetString("750000000000000000", 10)
	require.Equal(t, 0, got.Cmp(expected))
}

func TestMultiplierLastSegmentInterpolation(t *testing.T) {
	// 最后一段的下界按 0 插值
	x := uint64((TableSize-1)*Step + Step/2)
	upper := Multiplier(uint64((TableSize - 1) * Step))
	expected := new(big.Int).Rsh(upper, 1)
	require.Equal(t, 0, Multiplier(x).Cmp(expected))
}

func TestMultiplierMonotonic(t *testing.T) {
	var prev *big.Int
	for x := uint64(0); x <= TableSize*Step+Step; x += 7919 {
		cur := Multiplier(x)
		if prev != nil {
			require.LessOrEqual(t, cur.Cmp(prev), 0, "x=%d", x)
		}
		require.LessOrEqual(t, cur.Cmp(Scale), 0)
		require.GreaterOrEqual(t, cur.Sign(), 0)
		prev = cur
	}
}

func TestMultiplierDoesNotAliasTable(t *testing.T) {
	// 返回值可被调用方修改，不能影响内部表
	m := Multiplier(Step)
	m.SetInt64(42)
	require.Equal(t, 0, Multiplier(Step).Cmp(new(big.Int).Rsh(Scale, 1)))
}
