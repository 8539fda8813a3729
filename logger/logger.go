// Package logger wraps zap with the small set of knobs this server needs:
// stdout vs rotated file output, and a textual level.
package logger

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level is one of the supported logging levels.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

func toZapLevel(l Level) zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Options configures a Logger.
type Options struct {
	// Stdout, if true, writes to standard output instead of Filename.
	Stdout bool
	Level  Level

	// Filename, MaxSize (MB), MaxAge (days) and MaxBackups configure
	// lumberjack rotation. Ignored when Stdout is true.
	Filename   string
	MaxSize    int
	MaxAge     int
	MaxBackups int
}

// Logger is a thin, leveled wrapper around *zap.SugaredLogger.
type Logger struct {
	sugared *zap.SugaredLogger
}

func (l Logger) Debugf(template string, args ...interface{}) { l.sugared.Debugf(template, args...) }
func (l Logger) Infof(template string, args ...interface{})  { l.sugared.Infof(template, args...) }
func (l Logger) Warnf(template string, args ...interface{})  { l.sugared.Warnf(template, args...) }
func (l Logger) Errorf(template string, args ...interface{}) { l.sugared.Errorf(template, args...) }

// With returns a Logger that attaches the given key/value pairs to every
// subsequent log line, used to tag output with a connection ID.
func (l Logger) With(args ...interface{}) Logger {
	return Logger{sugared: l.sugared.With(args...)}
}

// New builds a Logger from opt.
func New(opt Options) Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format("2006-01-02T15:04:05.000Z"))
	}
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	var w zapcore.WriteSyncer
	switch {
	case opt.Stdout || opt.Filename == "":
		w = zapcore.AddSync(os.Stdout)
	default:
		if err := os.MkdirAll(filepath.Dir(opt.Filename), 0o755); err != nil {
			panic(err)
		}
		w = zapcore.AddSync(&lumberjack.Logger{
			Filename:   opt.Filename,
			MaxSize:    opt.MaxSize,
			MaxAge:     opt.MaxAge,
			MaxBackups: opt.MaxBackups,
		})
	}

	core := zapcore.NewCore(encoder, w, toZapLevel(opt.Level))
	return Logger{sugared: zap.New(core).Sugar()}
}

var (
	stdOpt = Options{Stdout: true, Level: LevelInfo}
	std    = New(stdOpt)
)

// SetOptions replaces the global Logger's configuration.
func SetOptions(opt Options) {
	stdOpt = opt
	std = New(opt)
}

func Debugf(template string, args ...interface{}) { std.Debugf(template, args...) }
func Infof(template string, args ...interface{})  { std.Infof(template, args...) }
func Warnf(template string, args ...interface{})  { std.Warnf(template, args...) }
func Errorf(template string, args ...interface{}) { std.Errorf(template, args...) }
