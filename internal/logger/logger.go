package logger

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/BruksfildServices01/barber-sales/internal/config"
)

// RequestIDKey is the gin context key (and response header) carrying the request id.
const RequestIDKey = "X-Request-ID"

// New builds the process logger: console output in development, JSON in
// production, plus a rotating file when log.file is set.
func New(cfg config.Log) (*zap.Logger, func()) {
	var lvl zapcore.Level
	if err := lvl.Set(cfg.Level); err != nil {
		lvl = zapcore.InfoLevel
	}

	var enc zapcore.Encoder
	if cfg.JSON {
		ec := zap.NewProductionEncoderConfig()
		ec.TimeKey = "ts"
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		ec.EncodeCaller = zapcore.ShortCallerEncoder
		enc = zapcore.NewJSONEncoder(ec)
	} else {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.EncodeCaller = zapcore.ShortCallerEncoder
		enc = zapcore.NewConsoleEncoder(ec)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), lvl),
	}

	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    max(1, cfg.MaxSizeMB),
			MaxBackups: max(0, cfg.MaxBackups),
			MaxAge:     max(0, cfg.MaxAgeDays),
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(rotator), lvl))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	if !cfg.JSON {
		l = l.WithOptions(zap.Development())
	}
	return l, func() { _ = l.Sync() }
}

// Middleware writes one access log line per request.
func Middleware(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if rid := c.GetString(RequestIDKey); rid != "" {
			fields = append(fields, zap.String("request_id", rid))
		}

		switch {
		case len(c.Errors) > 0:
			l.Error("http", append(fields, zap.String("errors", c.Errors.String()))...)
		case c.Writer.Status() >= 500:
			l.Error("http", fields...)
		default:
			l.Info("http", fields...)
		}
	}
}

// FromContext returns l annotated with the request id, when one is present.
func FromContext(c *gin.Context, l *zap.Logger) *zap.Logger {
	if rid := c.GetString(RequestIDKey); rid != "" {
		return l.With(zap.String("request_id", rid))
	}
	return l
}
