package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ILogger interface {
	Debug(module, message string, details map[string]interface{})
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
	Sync() error
}

type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger writes JSON logs to a rotating file and mirrors them to the
// console (human-readable in development, JSON in production).
func NewZapLogger(logFilePath string, isProd bool) *ZapLogger {
	rotator := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    10, // Megabytes
		MaxBackups: 5,
		MaxAge:     30, // Days
		Compress:   true,
	}

	jsonEncoder := zapcore.NewJSONEncoder(encoderConfig())

	fileCore := zapcore.NewCore(
		jsonEncoder,
		zapcore.AddSync(rotator),
		zap.InfoLevel,
	)

	var consoleEncoder zapcore.Encoder
	if isProd {
		consoleEncoder = jsonEncoder
	} else {
		consoleEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	consoleCore := zapcore.NewCore(
		consoleEncoder,
		zapcore.Lock(os.Stdout),
		zap.DebugLevel,
	)

	core := zapcore.NewTee(fileCore, consoleCore)
	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	return &ZapLogger{logger: l}
}

// NewIsolatedLogger writes only to the file, keeping noisy domains (e.g. the
// websocket hub) out of the main log stream.
func NewIsolatedLogger(logFilePath string) *ZapLogger {
	rotator := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.AddSync(rotator),
		zap.InfoLevel,
	)

	l := zap.New(fileCore, zap.AddCaller(), zap.AddCallerSkip(1))
	return &ZapLogger{logger: l}
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.MessageKey = "message"
	cfg.LevelKey = "level"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

func (l *ZapLogger) Debug(module, message string, details map[string]interface{}) {
	l.logger.Debug(message, zap.String("module", module), zap.Any("details", nonNil(details)))
}

func (l *ZapLogger) Info(module, message string, details map[string]interface{}) {
	l.logger.Info(message, zap.String("module", module), zap.Any("details", nonNil(details)))
}

func (l *ZapLogger) Warn(module, message string, details map[string]interface{}) {
	l.logger.Warn(message, zap.String("module", module), zap.Any("details", nonNil(details)))
}

func (l *ZapLogger) Error(module, message string, details map[string]interface{}) {
	l.logger.Error(message, zap.String("module", module), zap.Any("details", nonNil(details)))
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

func nonNil(details map[string]interface{}) map[string]interface{} {
	if details == nil {
		return map[string]interface{}{}
	}
	return details
}
