// Package optional 区分JSON字段的三种状态：未提供、显式null、有值
//
// 部分更新（PATCH）时，"没传这个字段"和"传了null"语义不同：
//
//	{"title": "New"}                      → description 未提供，保持原值
//	{"title": "New", "description": null} → description 置为NULL
//
// 指针字段无法区分这两种情况（都是nil），所以用Optional包装。
package optional

import (
	"bytes"
	"encoding/json"
)

var nullLiteral = []byte("null")

// Optional 可选值
//   - Set=false: 请求中没有这个字段
//   - Set=true, Valid=false: 字段值为null
//   - Set=true, Valid=true: 字段有值
type Optional[T any] struct {
	Value T
	Set   bool
	Valid bool
}

// Of 构造一个有值的Optional
func Of[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true, Valid: true}
}

// Null 构造一个显式null的Optional
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// Absent 构造一个未提供的Optional（零值）
func Absent[T any]() Optional[T] {
	return Optional[T]{}
}

// IsNull 字段已提供且为null
func (o Optional[T]) IsNull() bool {
	return o.Set && !o.Valid
}

// Ptr 转为指针：null或未提供时返回nil
func (o Optional[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// UnmarshalJSON 字段出现在JSON中就会被调用（包括null）
// 字段缺失时不会调用，Set保持false
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), nullLiteral) {
		var zero T
		o.Value = zero
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON 未提供或null都输出null
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return nullLiteral, nil
	}
	return json.Marshal(o.Value)
}
