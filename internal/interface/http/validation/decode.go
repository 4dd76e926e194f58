package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ErrMalformedBody 请求体不是JSON对象
var ErrMalformedBody = errors.New("request body must be a JSON object")

// DecodeObject 把请求体解析为 字段名 → 原始JSON
// 空请求体等同于 {}；语法错误或顶层不是对象时返回ErrMalformedBody
func DecodeObject(body []byte) (map[string]json.RawMessage, error) {
	fields := make(map[string]json.RawMessage)
	if len(bytes.TrimSpace(body)) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, ErrMalformedBody
	}
	// 顶层为null时Unmarshal不会报错
	if fields == nil {
		fields = make(map[string]json.RawMessage)
	}
	return fields, nil
}

// DecodeFields 逐字段解码到结构体dst（必须是结构体指针）
// 字段按json标签匹配，未知字段忽略；某个字段类型不匹配时记录到bag，其余字段继续解码
func DecodeFields(fields map[string]json.RawMessage, dst interface{}, bag *Errors) {
	v := reflect.ValueOf(dst).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := jsonFieldName(sf)
		raw, ok := fields[name]
		if !ok {
			continue
		}

		kind := valueKind(sf.Type)
		target := v.Field(i).Addr().Interface()
		if err := json.Unmarshal(normalize(raw, kind), target); err != nil {
			bag.Add(name, TypeMessage(name, kind))
		}
	}
}

// normalize 按目标类型整理原始值，再交给json.Unmarshal
// 字符串去掉首尾空白；整数字段接受"2008"和2008.0这类写法
// 无法整理的值原样返回，由Unmarshal报告类型错误
func normalize(raw json.RawMessage, kind reflect.Kind) json.RawMessage {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return raw
	}
	switch kind {
	case reflect.String:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return raw
		}
		trimmed, err := json.Marshal(strings.TrimSpace(s))
		if err != nil {
			return raw
		}
		return trimmed
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, ok := integral(raw); ok {
			return json.RawMessage(strconv.FormatInt(n, 10))
		}
	}
	return raw
}

// maxExactFloat float64能精确表示的最大整数
const maxExactFloat = 1 << 53

// integral 解析整数写法
//
//	2008      → 2008
//	2008.0    → 2008（小数部分为0的数字）
//	"2008"    → 2008（十进制整数字符串，允许首尾空白和正负号）
//	"2008.0"  → 失败
//	2008.5    → 失败
func integral(raw json.RawMessage) (int64, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}

	switch x := v.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		return n, err == nil
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, true
		}
		f, err := x.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) > maxExactFloat {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}

// valueKind 字段的基础类型
// 指针取元素类型；Optional[T]这类包装类型取其Value字段
func valueKind(t reflect.Type) reflect.Kind {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName("Value"); ok {
			return valueKind(f.Type)
		}
	}
	return t.Kind()
}
