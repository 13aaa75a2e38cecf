package convert

import (
	"github.com/jinzhu/copier"
)

// StructAssign 按同名字段将 source 拷贝到 target，返回 target
// dao 模型与领域模型之间的转换统一走这里
func StructAssign(source interface{}, target interface{}) interface{} {
	_ = copier.Copy(target, source)
	return target
}
