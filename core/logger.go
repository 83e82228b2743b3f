package core

// Logger 是引擎的日志接口，由宿主注入。
// 引擎自身绝不写 stdout；默认使用 NopLogger 静默。
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// NopLogger 是默认的空日志实现。
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Warnf(string, ...any)  {}

var _ Logger = NopLogger{}
