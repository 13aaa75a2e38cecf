package noteid

import (
	"strings"

	lzstring "github.com/daku10/go-lz-string"
	"go.uber.org/zap"
)

// DecodeFunc 旧编码解码函数
type DecodeFunc func(string) (string, error)

// Migrator 将旧 LZString 编码的笔记 ID 迁移为规范编码
// 迁移失败不是错误：ID 保持原样，调用方继续处理后续条目
type Migrator struct {
	logger *zap.Logger
	decode DecodeFunc
}

// MigratorOption Migrator 配置项
type MigratorOption func(*Migrator)

// WithDecode 注入旧编码解码函数，测试用
func WithDecode(decode DecodeFunc) MigratorOption {
	return func(m *Migrator) {
		m.decode = decode
	}
}

// NewMigrator 创建迁移器
func NewMigrator(logger *zap.Logger, opts ...MigratorOption) *Migrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Migrator{
		logger: logger,
		decode: lzstring.DecompressFromBase64,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Migrate 尝试把旧编码 ID 转换为规范编码，返回迁移后的 ID
// 规范 ID（长度不超过阈值）原样返回，因此重复调用是幂等的
func (m *Migrator) Migrate(id string) string {
	if !(len(id) > LegacyGateLength) {
		return id
	}

	decoded, err := m.decode(id)
	if err != nil {
		// 空输入一类的解码失败是旧数据中的常见情况，可以忽略
		if isEmptyInputError(err) {
			m.logger.Warn("legacy note id decode skipped, can be ignored",
				zap.String("id", id),
				zap.Error(err))
		} else {
			m.logger.Error("legacy note id decode failed",
				zap.String("id", id),
				zap.Error(err))
		}
		return id
	}

	if decoded == "" || !IsValidSourceID(decoded) {
		return id
	}

	encoded, err := Encode(decoded)
	if err != nil {
		return id
	}
	return encoded
}

func isEmptyInputError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "empty") || strings.Contains(msg, "no input")
}
