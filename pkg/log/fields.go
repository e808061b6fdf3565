package log

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	FieldNameModule      = "module"
	FieldNameComponent   = "component"
	FieldNameConstructor = "constructor"
	FieldNameTypeName    = "type"
)

// FieldModule 返回一个包含模块名的 zap 字段。
func FieldModule(module string) zap.Field {
	return zap.String(FieldNameModule, module)
}

// FieldComponent 返回一个包含组件名的 zap 字段。
func FieldComponent(component string) zap.Field {
	return zap.String(FieldNameComponent, component)
}

// FieldConstructor 以 8 位十六进制输出构造器 ID。
func FieldConstructor(id uint32) zap.Field {
	return zap.String(FieldNameConstructor, fmt.Sprintf("%08x", id))
}

func FieldTypeName(name string) zap.Field {
	return zap.String(FieldNameTypeName, name)
}
