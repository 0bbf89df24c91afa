package model

import (
	"database/sql/driver"
	"fmt"
	"math/big"
	"strconv"
)

// BigInt 18位定点精度的金额类型（wei），数据库中以十进制字符串存储
type BigInt struct {
	big.Int
}

// NewBigInt 从 *big.Int 创建金额
func NewBigInt(i *big.Int) BigInt {
	var b BigInt
	if i != nil {
		b.Set(i)
	}
	return b
}

// NewBigIntFromString 从十进制字符串创建金额
func NewBigIntFromString(s string) (BigInt, bool) {
	var b BigInt
	if _, ok := b.SetString(s, 10); !ok {
		return BigInt{}, false
	}
	return b, true
}

// Value 实现 driver.Valuer 接口
func (b BigInt) Value() (driver.Value, error) {
	return b.String(), nil
}

// Scan 实现 sql.Scanner 接口
func (b *BigInt) Scan(value interface{}) error {
	if value == nil {
		b.SetInt64(0)
		return nil
	}

	switch v := value.(type) {
	case string:
		if v == "" {
			b.SetInt64(0)
			return nil
		}
		if _, ok := b.SetString(v, 10); !ok {
			return fmt.Errorf("invalid big integer string: %q", v)
		}
	case []byte:
		return b.Scan(string(v))
	case int64:
		b.SetInt64(v)
	default:
		return fmt.Errorf("unsupported type for BigInt: %T", value)
	}

	return nil
}

// GormDataType 自定义数据库列类型（uint256 十进制最长78位）
func (BigInt) GormDataType() string {
	return "varchar(78)"
}

// MarshalJSON 以字符串形式序列化，避免前端精度丢失
func (b BigInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(b.String())), nil
}

// UnmarshalJSON 支持字符串和数字两种形式
func (b *BigInt) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	if s == "" || s == "null" {
		b.SetInt64(0)
		return nil
	}
	if _, ok := b.SetString(s, 10); !ok {
		return fmt.Errorf("invalid big integer: %q", string(data))
	}
	return nil
}
