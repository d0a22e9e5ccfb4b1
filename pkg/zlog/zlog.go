package zlog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.New(newCore(zapcore.InfoLevel, zapcore.AddSync(os.Stdout)), zap.AddCaller(), zap.AddCallerSkip(1))

// Init 根据配置初始化全局日志；logPath 为空时只输出到控制台
func Init(logPath string, level string) {
	lvl := parseLevel(level)
	var ws zapcore.WriteSyncer = zapcore.AddSync(os.Stdout)
	if strings.TrimSpace(logPath) != "" {
		_ = os.MkdirAll(filepath.Dir(logPath), 0o755)
		rotate := &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    64,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		}
		ws = zapcore.NewMultiWriteSyncer(ws, zapcore.AddSync(rotate))
	}
	logger = zap.New(newCore(lvl, ws), zap.AddCaller(), zap.AddCallerSkip(1))
}

func newCore(level zapcore.Level, ws zapcore.WriteSyncer) zapcore.Core {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), ws, level)
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// L 返回底层 zap.Logger
func L() *zap.Logger {
	return logger
}

func Debug(msg string, fields ...zap.Field) {
	logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	logger.Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	logger.Fatal(msg, fields...)
}

// Sync 刷新缓冲区，进程退出前调用
func Sync() error {
	return logger.Sync()
}
