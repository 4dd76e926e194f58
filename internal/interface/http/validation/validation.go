// Package validation 请求参数校验
//
// 基于gin的binding引擎（go-playground/validator v10），额外提供：
//   - 自定义规则 not_future_year（年份不能晚于今年）
//   - 字段级错误集合 Errors，收集一个请求的全部错误而不是第一个
//   - 逐字段解码JSON，类型不匹配记为该字段的校验错误
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var setupOnce sync.Once

// Engine 返回gin使用的validator实例
// 第一次调用时注册自定义规则，并让错误中的字段名使用json标签
func Engine() *validator.Validate {
	v, _ := binding.Validator.Engine().(*validator.Validate)
	setupOnce.Do(func() {
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("not_future_year", notFutureYear)
	})
	return v
}

// Struct 按binding标签校验结构体，错误写入bag
// 已经有错误的字段（如类型不匹配）不再重复报告
func Struct(obj interface{}, bag *Errors) error {
	Engine()
	err := binding.Validator.ValidateStruct(obj)
	return collect(err, bag)
}

// Var 按规则校验单个值，用于Optional字段
func Var(field string, value interface{}, tag string, bag *Errors) error {
	err := Engine().Var(value, tag)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			bag.Add(field, message(field, fe.Tag(), fe.Param(), fe.Kind()))
		}
		return nil
	}
	return err
}

func collect(err error, bag *Errors) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		field := fe.Field()
		if bag.Has(field) {
			continue
		}
		bag.Add(field, message(field, fe.Tag(), fe.Param(), fe.Kind()))
	}
	return nil
}

// notFutureYear 年份不能晚于当前自然年
func notFutureYear(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int() <= int64(time.Now().Year())
	}
	return false
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

// message 按规则生成英文错误信息（客户端直接展示）
func message(field, tag, param string, kind reflect.Kind) string {
	attr := attribute(field)
	switch tag {
	case "required":
		return fmt.Sprintf("The %s field is required.", attr)
	case "max":
		if kind == reflect.String {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", attr, param)
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", attr, param)
	case "gte", "min":
		return fmt.Sprintf("The %s field must be at least %s.", attr, param)
	case "not_future_year":
		return fmt.Sprintf("The %s field must not be greater than %d.", attr, time.Now().Year())
	default:
		return fmt.Sprintf("The %s field is invalid.", attr)
	}
}

// TypeMessage 类型不匹配的错误信息
func TypeMessage(field string, kind reflect.Kind) string {
	attr := attribute(field)
	switch kind {
	case reflect.String:
		return fmt.Sprintf("The %s field must be a string.", attr)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("The %s field must be an integer.", attr)
	default:
		return fmt.Sprintf("The %s field is invalid.", attr)
	}
}

// UniqueMessage 唯一性校验失败的错误信息
func UniqueMessage(field string) string {
	return fmt.Sprintf("The %s has already been taken.", attribute(field))
}

// attribute 字段名转为可读形式：published_year → published year
func attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
