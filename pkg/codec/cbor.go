// Package codec 提供进程间共享的 CBOR 编解码模式 (事件载荷)
package codec

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var encOptions = cbor.EncOptions{
	// 1. Map Key 排序，相同的消息编码结果唯一
	Sort: cbor.SortCanonical,

	// 2. 时间保留纳秒精度，编码为 RFC 3339 字符串
	Time:    cbor.TimeRFC3339Nano,
	TimeTag: cbor.EncTagNone,

	// 3. 禁止不定长编码
	IndefLength: cbor.IndefLengthForbidden,
}


var decOptions = cbor.DecOptions{
	// 限制容器大小和嵌套深度，防止恶意载荷耗尽内存
	MaxArrayElements: 100000,
	MaxMapPairs:      10000,
	MaxNestedLevels:  32,

	IndefLength: cbor.IndefLengthForbidden,
	DupMapKey:   cbor.DupMapKeyEnforcedAPF,
	TimeTag:     cbor.DecTagIgnored,

	// 解到 any 时嵌套 map 用 string key，结果可以直接交给 encoding/json
	DefaultMapType: reflect.TypeOf(map[string]any(nil)),
}

var (
	em cbor.EncMode
	dm cbor.DecMode
)

func init() {
	var err error
	// 选项是常量，失败只可能是编程错误
	if em, err = encOptions.EncMode(); err != nil {
		panic(fmt.Sprintf("cbor: invalid encode options: %v", err))
	}
	if dm, err = decOptions.DecMode(); err != nil {
		panic(fmt.Sprintf("cbor: invalid decode options: %v", err))
	}
}

func Marshal(v any) ([]byte, error) {
	data, err := em.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cbor marshal: %w", err)
	}
	return data, nil
}

func Unmarshal(data []byte, v any) error {
	if err := dm.Unmarshal(data, v); err != nil {
		return fmt.Errorf("cbor unmarshal: %w", err)
	}
	return nil
}
