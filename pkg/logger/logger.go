package logger

import (
	"go.uber.org/zap"
)

// Logger is the logging interface used across the application
type Logger interface {
	Info(msg string, values ...any)
	Warn(msg string, values ...any)
	Error(msg string, values ...any)
	Debug(msg string, values ...any)
	Fatal(msg string, values ...any)
}

type zapLogger struct {
	log *zap.SugaredLogger
}

var global Logger = newNop()

// Init builds the global logger. env "production" switches to the JSON
// production config.
func Init(env string) error {
	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	l, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	global = &zapLogger{log: l.Sugar()}
	return nil
}

func newNop() Logger {
	return &zapLogger{log: zap.NewNop().Sugar()}
}

// L returns the global logger
func L() Logger {
	return global
}

func Info(msg string, values ...any)  { global.Info(msg, values...) }
func Warn(msg string, values ...any)  { global.Warn(msg, values...) }
func Error(msg string, values ...any) { global.Error(msg, values...) }
func Debug(msg string, values ...any) { global.Debug(msg, values...) }
func Fatal(msg string, values ...any) { global.Fatal(msg, values...) }

func (l *zapLogger) Info(msg string, values ...any)  { l.log.Infow(msg, values...) }
func (l *zapLogger) Warn(msg string, values ...any)  { l.log.Warnw(msg, values...) }
func (l *zapLogger) Error(msg string, values ...any) { l.log.Errorw(msg, values...) }
func (l *zapLogger) Debug(msg string, values ...any) { l.log.Debugw(msg, values...) }
func (l *zapLogger) Fatal(msg string, values ...any) { l.log.Fatalw(msg, values...) }
