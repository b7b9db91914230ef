package validator

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// 自定义验证标签
const (
	TagNoWhitespace = "nowhitespace" // 任何位置都不允许空白字符
	TagDigits       = "digits"       // 仅 ASCII 数字，且非空
	TagDecimals     = "decimals"     // 小数位数不少于参数值，如 decimals=6
	TagISODate      = "isodate"      // YYYY-MM-DD 格式
	TagCalendar     = "calendar"     // YYYY-MM-DD 且为真实存在的日期
)

// ISODateLayout 站点日期字段使用的格式
const ISODateLayout = "2006-01-02"

var isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// registerTags 注册站点表单使用的自定义标签
// 标签名都是常量，注册失败只可能是编程错误
func registerTags(v *validator.Validate) {
	tags := map[string]validator.Func{
		TagNoWhitespace: noWhitespace,
		TagDigits:       digits,
		TagDecimals:     decimals,
		TagISODate:      isoDate,
		TagCalendar:     calendarDate,
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// fieldString 取字段的字符串值，非字符串类型返回 false
func fieldString(fl validator.FieldLevel) (string, bool) {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return "", false
	}
	return field.String(), true
}

func noWhitespace(fl validator.FieldLevel) bool {
	s, ok := fieldString(fl)
	if !ok {
		return false
	}
	return !strings.ContainsFunc(s, unicode.IsSpace)
}

func digits(fl validator.FieldLevel) bool {
	s, ok := fieldString(fl)
	if !ok || s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// decimals 检查小数部分的位数，值本身必须能解析为数字
func decimals(fl validator.FieldLevel) bool {
	s, ok := fieldString(fl)
	if !ok {
		return false
	}
	minPlaces, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return false
	}

	_, frac, found := strings.Cut(s, ".")
	if !found {
		return minPlaces <= 0
	}
	return len(frac) >= minPlaces
}

func isoDate(fl validator.FieldLevel) bool {
	s, ok := fieldString(fl)
	return ok && isoDateRegex.MatchString(s)
}

// calendarDate 解析后再格式化必须与原值一致，拒绝 2023-02-30 这类日期
func calendarDate(fl validator.FieldLevel) bool {
	s, ok := fieldString(fl)
	if !ok || !isoDateRegex.MatchString(s) {
		return false
	}
	t, err := time.Parse(ISODateLayout, s)
	if err != nil {
		return false
	}
	return t.Format(ISODateLayout) == s
}
