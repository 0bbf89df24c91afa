package chain

import (
	"time"
)

// Clock 时间源接口，注入逻辑层以便测试中模拟价格衰减
type Clock interface {
	Now() time.Time
}

type realClock struct{}

// NewClock 创建系统时钟
func NewClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}
