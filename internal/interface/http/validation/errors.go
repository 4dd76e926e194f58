package validation

import (
	"encoding/json"
	"fmt"
)

// Errors 字段级错误集合
// 同一字段可以有多条错误，字段按第一次出现的顺序记录
type Errors struct {
	fields map[string][]string
	order  []string
}

// NewErrors 创建空的错误集合
func NewErrors() *Errors {
	return &Errors{fields: make(map[string][]string)}
}

// Add 添加一条错误
func (e *Errors) Add(field, msg string) {
	if _, ok := e.fields[field]; !ok {
		e.order = append(e.order, field)
	}
	e.fields[field] = append(e.fields[field], msg)
}

// Has 字段是否已有错误
func (e *Errors) Has(field string) bool {
	return len(e.fields[field]) > 0
}

// Empty 没有任何错误
func (e *Errors) Empty() bool {
	return len(e.order) == 0
}

// Fields 字段 → 错误列表
func (e *Errors) Fields() map[string][]string {
	return e.fields
}

// Message 汇总信息：第一条错误，加上剩余错误数量
// 例如 "The title field is required. (and 2 more errors)"
func (e *Errors) Message() string {
	if e.Empty() {
		return ""
	}
	first := e.fields[e.order[0]][0]

	total := 0
	for _, msgs := range e.fields {
		total += len(msgs)
	}
	switch rest := total - 1; rest {
	case 0:
		return first
	case 1:
		return first + " (and 1 more error)"
	default:
		return fmt.Sprintf("%s (and %d more errors)", first, rest)
	}
}

func (e *Errors) Error() string {
	return e.Message()
}

// MarshalJSON 序列化为 {"field": ["msg"]}
func (e *Errors) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.fields)
}
