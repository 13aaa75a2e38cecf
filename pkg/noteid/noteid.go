// Package noteid 提供笔记 ID 的规范编码与旧格式迁移
// Package noteid provides canonical note id encoding and legacy-format migration
//
// 规范格式为 UUID 原始字节的 base64url 编码（22 字符）
// 旧数据中存在 LZString 压缩文本编码的 ID，读取时需要迁移
package noteid

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// canonicalSourceLength UUID 字符串形式的固定长度
const canonicalSourceLength = 36

// LegacyGateLength 旧编码判定阈值
// 一个 UUID 以旧编码（每 3 字节展开为 4 字符）存储后的最小长度，减一以优化比较。
// 低于该长度的 ID 不可能是被误存的旧编码，直接跳过解码尝试，
// 避免大量无意义的解析失败。阈值公式来自历史数据，不可改动。
const LegacyGateLength = (4*canonicalSourceLength)/3 - 1

// Encode 将 UUID 字符串编码为规范的 base64url 短 ID
func Encode(sourceID string) (string, error) {
	u, err := uuid.Parse(sourceID)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(u[:]), nil
}

// Decode 将规范短 ID 还原为 UUID 字符串
func Decode(id string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(id)
	if err != nil {
		return "", err
	}
	u, err := uuid.FromBytes(b)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// IsValidSourceID 校验字符串是否为合法的 UUID 源 ID
func IsValidSourceID(s string) bool {
	if len(s) != canonicalSourceLength {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// New 生成一个新的规范短 ID
func New() string {
	u := uuid.New()
	return base64.RawURLEncoding.EncodeToString(u[:])
}
