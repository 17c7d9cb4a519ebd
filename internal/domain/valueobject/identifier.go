package valueobject

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// RefKind 标识符形态
type RefKind int

const (
	// RefNumeric 自增主键
	RefNumeric RefKind = iota
	// RefExternal 训练服务分配的外部 UUID
	RefExternal
)

// ErrInvalidAgentRef 无法解析的智能体标识
var ErrInvalidAgentRef = errors.New("invalid agent identifier")

// AgentRef 智能体标识值对象（不可变）
// 在 HTTP 边界解析一次，之后仓储按形态分发查询，避免把字符串嗅探
// 散落在各处 SQL 拼装里。
type AgentRef struct {
	kind     RefKind
	numeric  uint64
	external string
}

// ParseAgentRef 解析路径参数里的智能体标识。
// 8-4-4-4-12 的十六进制分组（大小写不敏感）视为外部 UUID，
// 纯十进制数字视为自增主键，其余一律拒绝。
func ParseAgentRef(raw string) (AgentRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return AgentRef{}, ErrInvalidAgentRef
	}

	if isCanonicalUUID(raw) {
		u, err := uuid.Parse(raw)
		if err != nil {
			return AgentRef{}, ErrInvalidAgentRef
		}
		return AgentRef{kind: RefExternal, external: strings.ToLower(u.String())}, nil
	}

	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return AgentRef{}, ErrInvalidAgentRef
	}
	return AgentRef{kind: RefNumeric, numeric: n}, nil
}

// NumericRef 从已知主键构造标识
func NumericRef(id uint64) AgentRef {
	return AgentRef{kind: RefNumeric, numeric: id}
}

// ExternalRef 从已知外部 UUID 构造标识
func ExternalRef(id string) AgentRef {
	return AgentRef{kind: RefExternal, external: strings.ToLower(id)}
}

// Kind 返回标识形态
func (r AgentRef) Kind() RefKind {
	return r.kind
}

// Numeric 返回自增主键（仅 RefNumeric 有效）
func (r AgentRef) Numeric() uint64 {
	return r.numeric
}

// External 返回外部 UUID（仅 RefExternal 有效）
func (r AgentRef) External() string {
	return r.external
}

// String 返回标识的字符串形式
func (r AgentRef) String() string {
	if r.kind == RefExternal {
		return r.external
	}
	return strconv.FormatUint(r.numeric, 10)
}

// isCanonicalUUID 只认标准 8-4-4-4-12 形态。
// uuid.Parse 还接受花括号和 urn: 前缀等变体，这里先做形态检查把它们挡掉。
func isCanonicalUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	for i, c := range s {
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return false
			}
		default:
			if !isHexDigit(c) {
				return false
			}
		}
	}
	return true
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
