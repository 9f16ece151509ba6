package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// 未调用 InitLog 之前（比如单元测试）也能安全打印
var logger = newLogger(os.Stdout, "paipu")

func newLogger(w io.Writer, prefix string) *log.Logger {
	// 使用 stdout，避免 IDE 控制台把所有日志显示为红色
	l := log.New(w)
	l.SetPrefix(prefix)
	l.SetReportTimestamp(true)
	l.SetTimeFormat(time.DateTime)
	l.SetReportCaller(true)
	// 跳过本包的包装函数，显示真实调用位置
	l.SetCallerOffset(1)
	return l
}

// InitLog 初始化全局日志，level 支持 debug/info/warn/error，默认 info
func InitLog(appName string, logLevel string) {
	logger = newLogger(os.Stdout, appName)
	logger.SetLevel(parseLevel(logLevel))
}

// SetLevel 运行时调整日志级别（配置热更新）
func SetLevel(level string) {
	logger.SetLevel(parseLevel(level))
}

// SetOutput 重定向输出，cli 的 replay 子命令把日志写到 stderr
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func Fatal(format string, args ...any) {
	logger.Fatalf(format, args...)
}

func Info(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warn(format string, args ...any) {
	logger.Warnf(format, args...)
}

func Error(format string, args ...any) {
	logger.Errorf(format, args...)
}

func Debug(format string, args ...any) {
	logger.Debugf(format, args...)
}
