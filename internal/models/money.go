package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money 统一金额类型。日元无小数位，统一取整到整数円。
type Money struct {
	decimal.Decimal
}

// NewMoney 从整数円创建金额
func NewMoney(yen int64) Money {
	return Money{Decimal: decimal.NewFromInt(yen)}
}

// NewMoneyFromDecimal 从 decimal 创建金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(0)}
}

// Add 金额相加
func (m Money) Add(other Money) Money {
	return Money{Decimal: m.Decimal.Add(other.Decimal)}
}

// Sub 金额相减
func (m Money) Sub(other Money) Money {
	return Money{Decimal: m.Decimal.Sub(other.Decimal)}
}

// MulFloor 乘以系数并向下取整（消费税计算用）
func (m Money) MulFloor(rate decimal.Decimal) Money {
	return Money{Decimal: m.Decimal.Mul(rate).Floor()}
}

// IsZero 判断是否为零
func (m Money) IsZero() bool {
	return m.Decimal.IsZero()
}

// Yen 返回整数円
func (m Money) Yen() int64 {
	return m.Decimal.Round(0).IntPart()
}

// MarshalJSON 统一输出整数
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal.Round(0).IntPart())
}

// UnmarshalJSON 解析金额（数字或字符串）
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		m.Decimal = d.Round(0)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	m.Decimal = decimal.NewFromFloat(f).Round(0)
	return nil
}

// Value 用于数据库写入
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(0).Value()
}

// Scan 用于数据库读取
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(0)
	return nil
}

// String 返回整数円字符串
func (m Money) String() string {
	return m.Decimal.Round(0).String()
}
