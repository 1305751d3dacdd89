// pkg/types/common.go
package types

import "strings"

// Digest 代表文件内容的指纹 (Hex String)
// 它是去重的唯一依据，应当是不可变的值对象。
type Digest string

func (d Digest) String() string { return string(d) }

// 验证 Digest 合法性
func (d Digest) IsZero() bool { return d == "" }

// IsValid 只做长度与字符集检查 (sha256 / blake3-256 都是 64 位 hex)
func (d Digest) IsValid() bool {
	if len(d) != 64 {
		return false
	}
	return strings.IndexFunc(string(d), func(r rune) bool {
		return !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f')
	}) < 0
}

// Short 返回前 8 位，用于日志
func (d Digest) Short() string {
	if len(d) < 8 {
		return string(d)
	}
	return string(d[:8])
}

// Location 是 Storage Backend 内部的不透明句柄 (例如 "ab/cdef...")
// 上层只负责保存和回传，不解析它。
type Location string

func (l Location) String() string { return string(l) }
func (l Location) IsZero() bool   { return l == "" }

// ObjectID / RecordID 使用 UUID 字符串
type ObjectID string

func (id ObjectID) String() string { return string(id) }

type RecordID string

func (id RecordID) String() string { return string(id) }
