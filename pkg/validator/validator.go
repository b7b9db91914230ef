package validator

import (
	"errors"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidateScene 验证场景标识符，使用位运算支持场景组合验证
//
// 使用示例：
//
//	rules := map[ValidateScene]map[string]string{
//	    SceneCreate | SceneUpdate: {"station_id": "required,max=36"},
//	}
//
//	if scene&SceneCreate != 0 {
//	    // 执行创建场景的验证
//	}
type ValidateScene int64

// 预定义的验证场景
const (
	SceneNone   ValidateScene = 0      // 无场景
	SceneCreate ValidateScene = 1 << 0 // 新增站点
	SceneUpdate ValidateScene = 1 << 1 // 编辑站点
	SceneAll    ValidateScene = -1     // 所有场景(111...111)
)

// RuleValidator 规则验证器接口 - 提供场景化的字段格式规则
// 返回格式：map[场景][json字段名]规则字符串，规则遵循 go-playground/validator 的标签语法
type RuleValidator interface {
	RuleValidation() map[ValidateScene]map[string]string
}

// CustomValidator 自定义验证器接口 - 跨字段验证和复杂业务逻辑验证
// 所有错误通过 report 报告，无需返回值
//
// 示例：
//
//	func (r *Record) CustomValidation(scene ValidateScene, report FuncReportError) {
//	    if r.DRID == "" && scene == SceneUpdate {
//	        report("dr_id", "required", "")
//	    }
//	}
type CustomValidator interface {
	CustomValidation(scene ValidateScene, report FuncReportError)
}

// FuncReportError 错误报告函数类型
//   - namespace: 字段路径（如 "fed_funded_ports[0].port_type"）
//   - tag: 验证标签
//   - param: 验证参数
type FuncReportError func(namespace, tag, param string)

// Validator 验证器，封装 go-playground/validator
//   - 默认验证器全局唯一，New() 创建独立实例
//   - 注册了站点表单所需的自定义标签（见 tags.go）
//   - 缓存类型实现的接口信息，避免重复的类型断言
type Validator struct {
	// validate 底层验证器实例，并发安全
	validate *validator.Validate
	// typeCache key: reflect.Type, value: *typeCache
	typeCache *sync.Map
}

// typeCache 类型信息缓存
type typeCache struct {
	isRuleValidator   bool
	isCustomValidator bool
	validationRules   map[ValidateScene]map[string]string
}

var (
	defaultValidator *Validator
	once             sync.Once
)

// Default 获取默认验证器实例（单例），可在多个 goroutine 中并发调用
func Default() *Validator {
	once.Do(func() {
		defaultValidator = New()
	})
	return defaultValidator
}

// Validate 使用默认验证器验证对象
func Validate(obj any, scene ValidateScene) []*FieldError {
	return Default().Validate(obj, scene)
}

// Var 使用默认验证器验证单个值
func Var(value any, rule string) *FieldError {
	return Default().Var(value, rule)
}

// New 创建新的验证器实例
// 使用 json tag 作为字段名，错误中显示的是前端表单使用的字段名
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	registerTags(v)

	return &Validator{
		validate:  v,
		typeCache: &sync.Map{},
	}
}

// Var 按规则验证单个值，只返回第一个失败的标签
// 返回 nil 表示验证通过
func (v *Validator) Var(value any, rule string) *FieldError {
	if rule == "" {
		return nil
	}

	err := v.validate.Var(value, rule)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return NewFieldError(value, "", "", "", "").WithMessage(err.Error())
	}

	e := validationErrors[0]
	return &FieldError{
		Tag:     e.Tag(),
		Param:   e.Param(),
		Value:   e.Value(),
		Message: e.Error(),
	}
}

// Validate 验证模型，支持指定场景
//
// 验证流程（按顺序执行）：
//  1. 字段规则验证：struct tag，RuleValidator 的场景化规则在此基础上补充
//  2. 结构规则验证：CustomValidator 的跨字段验证
//
// 收集所有错误后统一返回，nil 表示验证通过
func (v *Validator) Validate(obj any, scene ValidateScene) []*FieldError {
	if obj == nil {
		return []*FieldError{
			NewFieldError(nil, "struct", "struct", "required", "").
				WithMessage("validation target cannot be nil"),
		}
	}

	cache := v.getOrCacheTypeInfo(obj)
	ctx := acquireValidationContext(scene)
	defer releaseValidationContext(ctx)

	v.validateFieldsByTags(obj, ctx)
	if cache.isRuleValidator {
		v.validateFieldsByRules(obj, cache.validationRules, ctx)
	}

	if cache.isCustomValidator {
		v.validateStructRules(obj, scene, ctx)
	}

	return detachErrors(ctx)
}

// validateFieldsByRules 通过 RuleValidator 接口验证字段
// 场景匹配使用位运算，多个匹配场景的规则按字段合并
func (v *Validator) validateFieldsByRules(obj any, rules map[ValidateScene]map[string]string, ctx *ValidationContext) {
	if rules == nil || ctx == nil {
		return
	}

	matchedRules := make(map[string]string)
	for scene, sceneRules := range rules {
		if scene&ctx.Scene != 0 {
			for fieldName, rule := range sceneRules {
				matchedRules[fieldName] = rule
			}
		}
	}
	if len(matchedRules) == 0 {
		return
	}

	val := reflect.ValueOf(obj)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return
	}

	// 按字段名排序，错误顺序稳定
	for _, fieldName := range slices.Sorted(maps.Keys(matchedRules)) {
		rule := matchedRules[fieldName]
		if rule == "" {
			continue
		}

		field := val.FieldByName(fieldName)
		if !field.IsValid() {
			field = v.findFieldByJSONTag(val, val.Type(), fieldName)
		}
		if !field.IsValid() || !field.CanInterface() {
			continue
		}

		if fe := v.Var(field.Interface(), rule); fe != nil {
			fe.FieldName = fieldName
			fe.JsonName = fieldName
			fe.Namespace = fieldName
			ctx.AddError(fe)
		}
	}
}

// validateFieldsByTags 通过 struct tag 验证字段（标准方式）
func (v *Validator) validateFieldsByTags(obj any, ctx *ValidationContext) {
	err := v.validate.Struct(obj)
	if err == nil {
		return
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// 非结构体等情况，作为普通错误处理
		ctx.AddErrorByDetail(obj, "", "", "", "", err.Error(), "")
		return
	}
	for _, e := range validationErrors {
		ctx.AddErrorByValidator(e)
	}
}

// validateStructRules 执行 CustomValidator 的跨字段验证
func (v *Validator) validateStructRules(obj any, scene ValidateScene, ctx *ValidationContext) {
	customValidator, ok := obj.(CustomValidator)
	if !ok {
		return
	}

	report := func(namespace, tag, param string) {
		ctx.AddErrorByDetail(nil, namespace, namespace, tag, param, "", namespace)
	}
	customValidator.CustomValidation(scene, report)
}

// getOrCacheTypeInfo 获取或缓存类型信息
func (v *Validator) getOrCacheTypeInfo(obj any) *typeCache {
	typ := reflect.TypeOf(obj)
	if typ == nil {
		return &typeCache{}
	}

	if cached, ok := v.typeCache.Load(typ); ok {
		return cached.(*typeCache)
	}

	cache := &typeCache{}
	if ruleValidator, ok := obj.(RuleValidator); ok {
		cache.isRuleValidator = true
		cache.validationRules = ruleValidator.RuleValidation()
	}
	_, cache.isCustomValidator = obj.(CustomValidator)

	actual, _ := v.typeCache.LoadOrStore(typ, cache)
	return actual.(*typeCache)
}

// findFieldByJSONTag 通过 JSON tag 查找字段
func (v *Validator) findFieldByJSONTag(val reflect.Value, typ reflect.Type, jsonTag string) reflect.Value {
	for i := 0; i < typ.NumField(); i++ {
		tag := strings.SplitN(typ.Field(i).Tag.Get("json"), ",", 2)[0]
		if tag == jsonTag {
			return val.Field(i)
		}
	}
	return reflect.Value{}
}
