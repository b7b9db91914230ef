package station

import "regexp"

// 输入框类型
const (
	InputKindComboBox   = "combobox"
	InputKindDatePicker = "datepicker"
)

// InputValid 根据是否有错误返回输入框的错误样式类名，没有错误时为空
func InputValid(hasError bool, kind string) string {
	if !hasError {
		return ""
	}
	switch kind {
	case InputKindComboBox:
		return "usa-combo-box--error"
	case InputKindDatePicker:
		return "usa-date-picker--error"
	default:
		return "usa-input--error"
	}
}

var usDateRegex = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

// ConvertDateFormat 把日期选择器的 MM/DD/YYYY 转为 YYYY-MM-DD
// 只做格式转换，不校验日期；无法识别的输入原样返回
func ConvertDateFormat(date string) string {
	m := usDateRegex.FindStringSubmatch(date)
	if m == nil {
		return date
	}
	return m[3] + "-" + m[1] + "-" + m[2]
}
