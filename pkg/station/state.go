package station

// Status 字段的校验状态
type Status uint8

const (
	StatusValid     Status = iota // 通过
	StatusMissing                 // 必填但未填写
	StatusMalformed               // 已填写但格式或关联关系错误
)

func (s Status) String() string {
	switch s {
	case StatusMissing:
		return "missing"
	case StatusMalformed:
		return "malformed"
	default:
		return "valid"
	}
}

// Reason 格式错误的原因
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonFormat      Reason = "format"       // 格式不符
	ReasonLength      Reason = "length"       // 超过长度上限
	ReasonRange       Reason = "range"        // 数值超出范围
	ReasonPrecision   Reason = "precision"    // 小数位数不足
	ReasonCalendar    Reason = "calendar"     // 日期不存在
	ReasonZero        Reason = "zero"         // 必填的端口数量为 0
	ReasonGreaterThan Reason = "greater_than" // 端口数量大于已填写的端口
	ReasonLessThan    Reason = "less_than"    // 端口数量小于已填写的端口
	ReasonDuplicate   Reason = "duplicate"    // 动态行中有重复或无效的值
	ReasonNotAllowed  Reason = "not_allowed"  // 值不在允许的集合中
)

// FieldState 单个字段的校验结果：Valid | Missing | Malformed(reason)
// 一个字段同一时间只有一种状态
type FieldState struct {
	Status Status `json:"status"`
	Reason Reason `json:"reason,omitempty"`
}

// Valid 通过
func Valid() FieldState {
	return FieldState{Status: StatusValid}
}

// Missing 必填未填写
func Missing() FieldState {
	return FieldState{Status: StatusMissing}
}

// Malformed 格式错误
func Malformed(reason Reason) FieldState {
	return FieldState{Status: StatusMalformed, Reason: reason}
}

// IsValid 是否通过
func (s FieldState) IsValid() bool {
	return s.Status == StatusValid
}

// IsMissing 是否必填未填写
func (s FieldState) IsMissing() bool {
	return s.Status == StatusMissing
}

// IsMalformed 是否格式错误
func (s FieldState) IsMalformed() bool {
	return s.Status == StatusMalformed
}

// FieldStates 字段到状态的映射，未出现的字段视为通过
type FieldStates map[Field]FieldState

// Get 获取字段状态
func (fs FieldStates) Get(f Field) FieldState {
	if s, ok := fs[f]; ok {
		return s
	}
	return Valid()
}

// Clone 浅拷贝
func (fs FieldStates) Clone() FieldStates {
	c := make(FieldStates, len(fs))
	for k, v := range fs {
		c[k] = v
	}
	return c
}
