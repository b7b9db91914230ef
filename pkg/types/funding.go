package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// FundingPrograms 站点的资助项目，使用位运算支持多项目叠加
// 表单中每个项目是一个 0/1 字段，入库时合并为一个整数列
type FundingPrograms int64

// 资助项目位
const (
	FundingNone FundingPrograms = 0

	FundingNEVI   FundingPrograms = 1 << iota // National Electric Vehicle Infrastructure
	FundingCFI                                // Charging and Fueling Infrastructure
	FundingEVCRAA                             // EV Charger Reliability and Accessibility Accelerator
	FundingCMAQ                               // Congestion Mitigation and Air Quality
	FundingCRP                                // Carbon Reduction Program
	FundingOther                              // 其他联邦项目
)

// fundingNames 与表单字段名一致
var fundingNames = []struct {
	flag FundingPrograms
	name string
}{
	{FundingNEVI, "NEVI"},
	{FundingCFI, "CFI"},
	{FundingEVCRAA, "EVC_RAA"},
	{FundingCMAQ, "CMAQ"},
	{FundingCRP, "CRP"},
	{FundingOther, "OTHER"},
}

// Set 设置指定的项目位
func (f *FundingPrograms) Set(flag FundingPrograms) {
	*f |= flag
}

// Unset 取消指定的项目位
func (f *FundingPrograms) Unset(flag FundingPrograms) {
	*f &^= flag
}

// SetTo 按 0/1 设置项目位
func (f *FundingPrograms) SetTo(flag FundingPrograms, on bool) {
	if on {
		f.Set(flag)
	} else {
		f.Unset(flag)
	}
}

// Contain 检查是否包含指定的项目位
func (f FundingPrograms) Contain(flag FundingPrograms) bool {
	return f&flag == flag
}

// HasAny 检查是否包含任意一个指定的项目位，不传参数时检查是否有任意项目
func (f FundingPrograms) HasAny(flags ...FundingPrograms) bool {
	if len(flags) == 0 {
		return f != FundingNone
	}
	for _, flag := range flags {
		if f&flag != 0 {
			return true
		}
	}
	return false
}

// Bit 返回指定项目的 0/1 表单值
func (f FundingPrograms) Bit(flag FundingPrograms) int {
	if f.Contain(flag) {
		return 1
	}
	return 0
}

// Names 返回已设置项目的表单字段名
func (f FundingPrograms) Names() []string {
	names := make([]string, 0, len(fundingNames))
	for _, fn := range fundingNames {
		if f.Contain(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return names
}

// String 实现 fmt.Stringer 接口
func (f FundingPrograms) String() string {
	if f == FundingNone {
		return "none"
	}
	return strings.Join(f.Names(), "|")
}

// Value 实现 driver.Valuer 接口，用于数据库存储
func (f FundingPrograms) Value() (driver.Value, error) {
	return int64(f), nil
}

// Scan 实现 sql.Scanner 接口，用于从数据库读取
func (f *FundingPrograms) Scan(value interface{}) error {
	if value == nil {
		*f = FundingNone
		return nil
	}

	switch v := value.(type) {
	case int64:
		*f = FundingPrograms(v)
	case int:
		*f = FundingPrograms(v)
	case uint64:
		*f = FundingPrograms(v)
	case []byte:
		var num int64
		if err := json.Unmarshal(v, &num); err != nil {
			return err
		}
		*f = FundingPrograms(num)
	default:
		return fmt.Errorf("cannot scan type %T into FundingPrograms", value)
	}
	return nil
}

// MarshalJSON 实现 json.Marshaler 接口
func (f FundingPrograms) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(f))
}

// UnmarshalJSON 实现 json.Unmarshaler 接口
func (f *FundingPrograms) UnmarshalJSON(data []byte) error {
	var num int64
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*f = FundingPrograms(num)
	return nil
}
