package station

import "encoding/json"

// 端口数量错误在旧版 custom_errors 中使用的后缀
const (
	suffixZero        = "_zero"
	suffixGreaterThan = "_greater_than"
	suffixLessThan    = "_less_than"
)

// Result 一次校验的完整结果，每次校验都重新生成
type Result struct {
	// States 每个字段的状态，覆盖所有字段
	States FieldStates
	// IncorrectValues 格式错误字段的标签，按校验顺序，用于页面顶部的汇总横幅
	IncorrectValues []string
	// ErrorSubrecipientRowIDs 需要高亮的子受助方行
	ErrorSubrecipientRowIDs []RowID
	// ErrorPortRowIDs 需要高亮的端口行
	ErrorPortRowIDs []RowID
}

func newResult() *Result {
	return &Result{
		States:                  make(FieldStates, fieldCount),
		IncorrectValues:         []string{},
		ErrorSubrecipientRowIDs: []RowID{},
		ErrorPortRowIDs:         []RowID{},
	}
}

// Valid 所有字段都通过
func (r *Result) Valid() bool {
	for _, s := range r.States {
		if !s.IsValid() {
			return false
		}
	}
	return true
}

// State 获取字段状态
func (r *Result) State(f Field) FieldState {
	return r.States.Get(f)
}

// InvalidField 旧版 invalidField 视图：字段名 -> 是否有错
func (r *Result) InvalidField() map[string]bool {
	m := make(map[string]bool, fieldCount)
	for _, f := range Fields() {
		m[f.Key()] = !r.State(f).IsValid()
	}
	return m
}

// MissingRequiredMessage 旧版 missingRequiredMessage 视图
func (r *Result) MissingRequiredMessage() map[string]bool {
	m := make(map[string]bool, fieldCount)
	for _, f := range Fields() {
		m[f.Key()] = r.State(f).IsMissing()
	}
	return m
}

// CustomErrors 旧版 customErrors 视图
// 端口数量的 zero / greater_than / less_than 使用带后缀的键，每次都全部输出
func (r *Result) CustomErrors() map[string]bool {
	m := make(map[string]bool, fieldCount+6)
	for _, f := range Fields() {
		s := r.State(f)
		if f == FieldNumFedFundedPorts || f == FieldNumNonFedFundedPorts {
			m[f.Key()+suffixZero] = s.Reason == ReasonZero
			m[f.Key()+suffixGreaterThan] = s.Reason == ReasonGreaterThan
			m[f.Key()+suffixLessThan] = s.Reason == ReasonLessThan
			m[f.Key()] = s.IsMalformed() && s.Reason == ReasonFormat
			continue
		}
		m[f.Key()] = s.IsMalformed()
	}
	return m
}

// resultJSON 接口返回的结构
type resultJSON struct {
	Valid                   bool                  `json:"valid"`
	Fields                  map[string]FieldState `json:"fields"`
	InvalidField            map[string]bool       `json:"invalid_field"`
	MissingRequiredMessage  map[string]bool       `json:"missing_required_message"`
	CustomErrors            map[string]bool       `json:"custom_errors"`
	IncorrectValues         []string              `json:"incorrect_values"`
	ErrorSubrecipientRowIDs []RowID               `json:"error_subrecipient_row_ids"`
	ErrorPortRowIDs         []RowID               `json:"error_port_row_ids"`
}

// MarshalJSON 同时输出新的字段状态和旧版三个映射
func (r *Result) MarshalJSON() ([]byte, error) {
	fields := make(map[string]FieldState, fieldCount)
	for _, f := range Fields() {
		fields[f.Key()] = r.State(f)
	}
	return json.Marshal(resultJSON{
		Valid:                   r.Valid(),
		Fields:                  fields,
		InvalidField:            r.InvalidField(),
		MissingRequiredMessage:  r.MissingRequiredMessage(),
		CustomErrors:            r.CustomErrors(),
		IncorrectValues:         r.IncorrectValues,
		ErrorSubrecipientRowIDs: r.ErrorSubrecipientRowIDs,
		ErrorPortRowIDs:         r.ErrorPortRowIDs,
	})
}
