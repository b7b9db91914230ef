package validator

import "sync"

// maxPooledErrors 超过此容量的错误切片不放回池中
const maxPooledErrors = 64

// validationContextPool 复用 ValidationContext，每次请求校验都会创建一个
var validationContextPool = sync.Pool{
	New: func() any {
		return &ValidationContext{
			Errors: make([]*FieldError, 0, 8),
		}
	},
}

// acquireValidationContext 从对象池获取 ValidationContext
// 使用后必须调用 releaseValidationContext 归还
func acquireValidationContext(scene ValidateScene) *ValidationContext {
	ctx := validationContextPool.Get().(*ValidationContext)
	ctx.Scene = scene
	ctx.Errors = ctx.Errors[:0]
	return ctx
}

// releaseValidationContext 归还 ValidationContext
// 归还前清空错误引用，调用方需要先复制 Errors
func releaseValidationContext(ctx *ValidationContext) {
	if ctx == nil {
		return
	}
	if cap(ctx.Errors) > maxPooledErrors {
		ctx.Errors = make([]*FieldError, 0, 8)
	} else {
		clear(ctx.Errors)
		ctx.Errors = ctx.Errors[:0]
	}
	validationContextPool.Put(ctx)
}

// detachErrors 复制出错误列表，池中的上下文可以安全归还
func detachErrors(ctx *ValidationContext) []*FieldError {
	if !ctx.HasErrors() {
		return nil
	}
	out := make([]*FieldError, len(ctx.Errors))
	copy(out, ctx.Errors)
	return out
}
