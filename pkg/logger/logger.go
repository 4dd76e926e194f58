// Package logger 基于zap的结构化日志
//
// 用法：
//
//	log, err := logger.New(logger.Options{Level: "info", Format: "json", Output: "stdout"})
//	if err != nil {
//	    panic(err)
//	}
//	defer log.Sync()
//
//	log.Info("服务启动", zap.Int("port", 8080))
//
// New会同时替换zap的全局Logger，没有注入Logger的地方可以用zap.L()。
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 日志配置
type Options struct {
	Level        string // debug | info | warn | error
	Format       string // console | json
	Output       string // stdout | stderr | /path/to/file
	EnableCaller bool
}

// New 创建Logger并设置为全局Logger
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	encoding := "json"
	if strings.EqualFold(opts.Format, "console") {
		encoding = "console"
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	output := opts.Output
	if output == "" {
		output = "stdout"
	}

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     !opts.EnableCaller,
		DisableStacktrace: level > zapcore.DebugLevel,
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("创建日志失败: %w", err)
	}

	zap.ReplaceGlobals(log)
	return log, nil
}

// ParseLevel 解析日志级别，空字符串视为info
func ParseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return l, fmt.Errorf("无效的日志级别: %s", level)
	}
	return l, nil
}
