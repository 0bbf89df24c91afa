package curve

import (
	"math/big"
)

// 定点指数衰减曲线：用 2^-k 预计算表加线性插值逼近指数衰减，
// 整数运算，无浮点。输入 x = 经过秒数 * 衰减速率（1e5 = 1.0），
// 每经过一个表步长（1e5）价格乘数减半。

const (
	// Step 表步长，x 每前进 1e5 衰减进入下一个半衰期
	Step = 100000

	// TableSize 预计算表条目数，x >= TableSize*Step 时视为完全衰减
	TableSize = 61
)

// Scale 定点精度 1e18
var Scale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// halfLifeTable 2^-k * 1e18，k = 0..60，逐项减半并四舍五入
var halfLifeTable [TableSize]*big.Int

func init() {
	one := big.NewInt(1)
	halfLifeTable[0] = new(big.Int).Set(Scale)
	for k := 1; k < TableSize; k++ {
		// 上一项加一再右移一位，即除以二并四舍五入
		entry := new(big.Int).Add(halfLifeTable[k-1], one)
		entry.Rsh(entry, 1)
		halfLifeTable[k] = entry
	}
}

// Multiplier 计算衰减乘数，返回 [0, Scale] 区间内的定点值
func Multiplier(x uint64) *big.Int {
	if x >= TableSize*Step {
		return new(big.Int)
	}

	index := x / Step
	rem := x % Step

	if rem == 0 {
		return new(big.Int).Set(halfLifeTable[index])
	}

	// 相邻两项之间线性插值，越界的下一项按 0 处理
	upper := halfLifeTable[index]
	lower := new(big.Int)
	if index+1 < TableSize {
		lower = halfLifeTable[index+1]
	}

	// result = upper - (upper - lower) * rem / Step
	diff := new(big.Int).Sub(upper, lower)
	diff.Mul(diff, new(big.Int).SetUint64(rem))
	diff.Div(diff, big.NewInt(Step))

	return new(big.Int).Sub(upper, diff)
}
