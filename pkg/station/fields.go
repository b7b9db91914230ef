package station

import (
	"strings"

	"ev-chart-station/pkg/validator"
)

// formatRules 非空字段的格式规则，使用 go-playground/validator 标签语法
// 规则按顺序执行，第一个失败的标签决定错误原因
var formatRules = map[Field]string{
	FieldStationID:       "nowhitespace,max=36",
	FieldNickname:        "max=50",
	FieldAddress:         "max=255",
	FieldCity:            "max=100",
	FieldZip:             "digits,len=5",
	FieldZipExtended:     "digits,len=4",
	FieldLatitude:        "numeric,decimals=6,latitude",
	FieldLongitude:       "numeric,decimals=6,longitude",
	FieldOperationalDate: "isodate,calendar",
}

// tagReasons 验证标签到错误原因的映射
var tagReasons = map[string]Reason{
	validator.TagNoWhitespace: ReasonFormat,
	validator.TagDigits:       ReasonFormat,
	validator.TagISODate:      ReasonFormat,
	validator.TagDecimals:     ReasonPrecision,
	validator.TagCalendar:     ReasonCalendar,
	"numeric":                 ReasonFormat,
	"len":                     ReasonFormat,
	"max":                     ReasonLength,
	"latitude":                ReasonRange,
	"longitude":               ReasonRange,
}

func reasonForTag(tag string) Reason {
	if r, ok := tagReasons[tag]; ok {
		return r
	}
	return ReasonFormat
}

// checkFormat 按字段的格式规则检查已填写的值
func checkFormat(f Field, value string) FieldState {
	if fe := validator.Var(value, formatRules[f]); fe != nil {
		return Malformed(reasonForTag(fe.Tag))
	}
	return Valid()
}

// ValidateText 必填文本字段：去空白后为空视为未填写，否则检查格式
func ValidateText(f Field, value string) FieldState {
	if strings.TrimSpace(value) == "" {
		return Missing()
	}
	return checkFormat(f, value)
}

// ValidateNickname 昵称可选，只限制长度
func ValidateNickname(value string) FieldState {
	if value == "" {
		return Valid()
	}
	return checkFormat(FieldNickname, value)
}

// ValidateSelection 必填下拉框，未选择或为哨兵值视为未填写
func ValidateSelection(value string) FieldState {
	v := strings.TrimSpace(value)
	if v == "" || v == stateUnset {
		return Missing()
	}
	return Valid()
}

// ValidateAFC AFC 必填，只能是 0 或 1
func ValidateAFC(afc *int) FieldState {
	if afc == nil {
		return Missing()
	}
	if *afc != 0 && *afc != 1 {
		return Malformed(ReasonNotAllowed)
	}
	return Valid()
}

// ValidateFederallyFunded 是否联邦资助必须选择
func ValidateFederallyFunded(funded *bool) FieldState {
	if funded == nil {
		return Missing()
	}
	return Valid()
}

// ValidateDRID 仅当子受助方可以新增站点时直接受助方必填
func ValidateDRID(drID string, features Features) FieldState {
	if features.SRAddsStation && strings.TrimSpace(drID) == "" {
		return Missing()
	}
	return Valid()
}

// ValidateFundingType 资助项目至少选择一个
// 允许登记非联邦资助站点且该站点明确为非联邦资助时，资助项目不再必填，
// 改由非联邦端口数量的必填性约束
func ValidateFundingType(r *Record, funded *bool, features Features) FieldState {
	for _, v := range r.fundingFlags() {
		if v != 0 && v != 1 {
			return Malformed(ReasonNotAllowed)
		}
	}
	if r.FundingPrograms().HasAny() {
		return Valid()
	}
	if features.RegisterNonFedFundedStation && isExplicitlyFalse(funded) {
		return Valid()
	}
	return Missing()
}

func isExplicitlyFalse(b *bool) bool {
	return b != nil && !*b
}
