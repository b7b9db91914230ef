package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONList 以 JSON 数组存储在单列中的切片
//
// 说明：
// - 用于不需要索引的明细数据，如站点的端口列表和子受助方
// - nil 和空切片都存储为 []
// - 字段顺序即为前端的行顺序
type JSONList[T any] []T

// GormDataType gorm 建表使用的列类型
func (JSONList[T]) GormDataType() string {
	return "json"
}

// Value 实现 driver.Valuer 接口
func (l JSONList[T]) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal([]T(l))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSONList: %w", err)
	}
	return string(data), nil
}

// Scan 实现 sql.Scanner 接口
func (l *JSONList[T]) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to scan JSONList: unsupported database type %T, expected []byte or string", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}

	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("failed to unmarshal JSONList from JSON: %w", err)
	}
	*l = out
	return nil
}

// MarshalJSON 实现 json.Marshaler 接口，nil 输出 []
func (l JSONList[T]) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(l))
}
