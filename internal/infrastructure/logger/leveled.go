package logger

import "go.uber.org/zap"

// Leveled adapts Logger to the key/value leveled logger interface used by
// HTTP client libraries such as go-retryablehttp.
type Leveled struct {
	sugar *zap.SugaredLogger
}

// Leveled returns a key/value adapter over the logger
func (l *Logger) Leveled() *Leveled {
	return &Leveled{sugar: l.zap.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (l *Leveled) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}

func (l *Leveled) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

func (l *Leveled) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l *Leveled) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, keysAndValues...)
}
