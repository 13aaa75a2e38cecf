package noteid

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// 长度不超过阈值的 ID 不会触发解码
func TestMigrateShortIDSkipped(t *testing.T) {
	decodeCalls := 0
	m := NewMigrator(zap.NewNop(), WithDecode(func(s string) (string, error) {
		decodeCalls++
		return "", nil
	}))

	id := New()
	assert.LessOrEqual(t, len(id), LegacyGateLength)

	got := m.Migrate(id)
	assert.Equal(t, id, got)
	assert.Equal(t, 0, decodeCalls)
}

// 旧编码解码为合法 UUID 时迁移为规范编码
func TestMigrateLegacyID(t *testing.T) {
	source := "ad3f7c2e-3a5c-4c2b-9d6e-1f2a3b4c5d6e"
	legacyID := strings.Repeat("x", LegacyGateLength+1)

	decodeCalls := 0
	m := NewMigrator(zap.NewNop(), WithDecode(func(s string) (string, error) {
		decodeCalls++
		assert.Equal(t, legacyID, s)
		return source, nil
	}))

	got := m.Migrate(legacyID)
	assert.Equal(t, 1, decodeCalls)

	expected, err := Encode(source)
	assert.Nil(t, err)
	assert.Equal(t, expected, got)
}

// 迁移是幂等的：迁移后的 ID 再次迁移不会触发解码
func TestMigrateIdempotent(t *testing.T) {
	source := "ad3f7c2e-3a5c-4c2b-9d6e-1f2a3b4c5d6e"
	legacyID := strings.Repeat("x", LegacyGateLength+1)

	decodeCalls := 0
	m := NewMigrator(zap.NewNop(), WithDecode(func(s string) (string, error) {
		decodeCalls++
		return source, nil
	}))

	first := m.Migrate(legacyID)
	second := m.Migrate(first)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, decodeCalls)
}

// 解码失败时保留原始 ID，不向上传播错误
func TestMigrateDecodeError(t *testing.T) {
	legacyID := strings.Repeat("x", LegacyGateLength+1)

	m := NewMigrator(zap.NewNop(), WithDecode(func(s string) (string, error) {
		return "", errors.New("invalid compressed data")
	}))

	assert.Equal(t, legacyID, m.Migrate(legacyID))
}

// 空输入一类的解码失败同样保留原始 ID
func TestMigrateEmptyInputError(t *testing.T) {
	legacyID := strings.Repeat("x", LegacyGateLength+1)

	m := NewMigrator(zap.NewNop(), WithDecode(func(s string) (string, error) {
		return "", errors.New("empty input")
	}))

	assert.Equal(t, legacyID, m.Migrate(legacyID))
}

// 解码结果不是合法 UUID 时保留原始 ID
func TestMigrateInvalidDecodedID(t *testing.T) {
	legacyID := strings.Repeat("x", LegacyGateLength+1)

	m := NewMigrator(zap.NewNop(), WithDecode(func(s string) (string, error) {
		return "definitely-not-a-uuid", nil
	}))

	assert.Equal(t, legacyID, m.Migrate(legacyID))
}

// 解码结果为空串时保留原始 ID
func TestMigrateEmptyDecodedID(t *testing.T) {
	legacyID := strings.Repeat("x", LegacyGateLength+1)

	m := NewMigrator(zap.NewNop(), WithDecode(func(s string) (string, error) {
		return "", nil
	}))

	assert.Equal(t, legacyID, m.Migrate(legacyID))
}
