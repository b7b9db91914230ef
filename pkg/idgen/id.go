package idgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidID = errors.New("invalid id")

// ID 站点主键，JSON 中以字符串表示，避免前端大整数精度丢失
type ID int64

// Next 用生成器生成一个 ID
func Next(g Generator) (ID, error) {
	v, err := g.NextID()
	if err != nil {
		return 0, err
	}
	return ID(v), nil
}

// ParseID 解析十进制字符串，必须大于 0
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidID)
	}
	val, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	if val <= 0 {
		return 0, fmt.Errorf("%w: must be positive, got %d", ErrInvalidID, val)
	}
	return ID(val), nil
}

// String 实现 fmt.Stringer 接口
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// IsValid 大于 0
func (id ID) IsValid() bool {
	return id > 0
}

// Time 生成时间
func (id ID) Time() time.Time {
	return GetTimestamp(int64(id))
}

// MarshalJSON 序列化为字符串
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON 支持字符串和数字
func (id *ID) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		val, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse ID from string: %w", err)
		}
		*id = ID(val)
		return nil
	}

	var num int64
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("failed to parse ID from number: %w", err)
	}
	*id = ID(num)
	return nil
}
