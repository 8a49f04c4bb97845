package log

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// root is the logger behind the package level functions. Library code stays
// silent until a binary installs a real logger with SetDefault.
// root 是包级函数背后的日志记录器。在程序通过 SetDefault 安装真正的记录器之前，库代码保持静默。
var root atomic.Pointer[Logger]

func init() {
	l := NewLogger(DiscardHandler())
	root.Store(&l)
}

// SetDefault installs l as the root logger. A logger built by this package
// also becomes the slog default.
func SetDefault(l Logger) {
	root.Store(&l)
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
}

// Root returns the root logger.
func Root() Logger {
	return *root.Load()
}

// The helpers below call Write themselves instead of going through the
// level methods, so the frame skipped by Write is always the caller's.
// 以下函数直接调用 Write，使 Write 跳过的调用帧总是调用方。

// Trace logs at trace level on the root logger.
//
//	log.Trace("msg", "key1", val1)
func Trace(msg string, ctx ...interface{}) {
	Root().Write(LevelTrace, msg, ctx...)
}

// Debug logs at debug level on the root logger.
func Debug(msg string, ctx ...interface{}) {
	Root().Write(LevelDebug, msg, ctx...)
}

// Info logs at info level on the root logger.
//
//	log.Info("msg", "key1", val1, "key2", val2)
func Info(msg string, ctx ...interface{}) {
	Root().Write(LevelInfo, msg, ctx...)
}

func Warn(msg string, ctx ...interface{}) {
	Root().Write(LevelWarn, msg, ctx...)
}

func Error(msg string, ctx ...interface{}) {
	Root().Write(LevelError, msg, ctx...)
}

// Crit logs at crit level and exits the process.
// Crit 在严重级别记录消息后退出程序。
func Crit(msg string, ctx ...interface{}) {
	Root().Write(LevelCrit, msg, ctx...)
	os.Exit(1)
}

// New returns a child of the root logger carrying ctx.
func New(ctx ...interface{}) Logger {
	return Root().With(ctx...)
}
