package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationContext 验证上下文，收集一次验证中的所有错误
type ValidationContext struct {
	// Scene 验证场景
	Scene ValidateScene `json:"scene"`
	// Errors 所有验证错误的集合
	Errors []*FieldError `json:"errors,omitempty"`
}

// FieldError 单个字段的验证错误
// 国际化时，可以通过 Namespace + Tag 和 Param 查找对应的翻译
type FieldError struct {
	// FieldName 结构体字段名
	FieldName string `json:"field_name,omitempty"`
	// JsonName JSON 字段名
	JsonName string `json:"json_name"`
	// Tag 验证标签（如 required, max, decimals 等）
	Tag string `json:"tag"`
	// Param 验证参数（如 max=36 中的 "36"）
	Param string `json:"param,omitempty"`
	// Value 字段的实际值
	Value any `json:"value,omitempty"`
	// Message 友好的错误消息
	Message string `json:"message,omitempty"`
	// Namespace 字段的完整命名空间（如 fed_funded_ports[0].port_type）
	Namespace string `json:"namespace,omitempty"`
}

// NewFieldError 创建字段错误
func NewFieldError(value any, fieldName, jsonName, tag, param string) *FieldError {
	return &FieldError{
		FieldName: fieldName,
		JsonName:  jsonName,
		Tag:       tag,
		Param:     param,
		Value:     value,
		Namespace: jsonName,
	}
}

// String 返回友好的错误信息
func (fe *FieldError) String() string {
	if fe.Message != "" {
		return fmt.Sprintf("field '%s': %s", fe.Namespace, fe.Message)
	}
	return fmt.Sprintf("field '%s' validation failed on tag '%s'", fe.Namespace, fe.Tag)
}

// Error 实现 error 接口
func (fe *FieldError) Error() string {
	return fe.String()
}

// HasErrors 检查是否有验证错误
func (vc *ValidationContext) HasErrors() bool {
	return len(vc.Errors) > 0
}

// AddError 通过 FieldError 添加字段错误
func (vc *ValidationContext) AddError(err *FieldError) {
	if err != nil {
		vc.Errors = append(vc.Errors, err)
	}
}

// AddErrorByValidator 通过 validator.FieldError 添加字段错误
func (vc *ValidationContext) AddErrorByValidator(err validator.FieldError) {
	vc.Errors = append(vc.Errors, &FieldError{
		FieldName: err.StructField(),
		JsonName:  err.Field(),
		Tag:       err.Tag(),
		Param:     err.Param(),
		Value:     err.Value(),
		Message:   err.Error(),
		Namespace: err.Namespace(),
	})
}

// AddErrorByDetail 通过详细信息添加字段错误
func (vc *ValidationContext) AddErrorByDetail(value any, field, json, tag, param, message, namespace string) {
	vc.Errors = append(vc.Errors, &FieldError{
		FieldName: field,
		JsonName:  json,
		Tag:       tag,
		Param:     param,
		Value:     value,
		Message:   message,
		Namespace: namespace,
	})
}

func (fe *FieldError) WithMessage(message string) *FieldError {
	fe.Message = message
	return fe
}
