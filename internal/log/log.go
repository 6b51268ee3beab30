package log

import (
	"os"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var base atomic.Pointer[zap.Logger]

func init() { base.Store(zap.NewNop()) }

// Setup builds the process logger: JSON to stdout, and to file when path is set.
func Setup(level, file string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.MessageKey = "action"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	enc := zapcore.NewJSONEncoder(encCfg)

	sinks := []zapcore.WriteSyncer{zapcore.Lock(os.Stdout)}
	if file != "" {
		f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, zapcore.AddSync(f))
	}
	l := zap.New(zapcore.NewCore(enc, zapcore.NewMultiWriteSyncer(sinks...), lvl))
	Use(l)
	return l, nil
}

// Use swaps the process logger (tests install an observer here).
func Use(l *zap.Logger) { base.Store(l) }

func L() *zap.Logger { return base.Load() }

func write(level zapcore.Level, kind string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	zf := []zap.Field{zap.String("kind", kind)}
	if c != nil {
		zf = append(zf,
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
		)
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			zf = append(zf, zap.String("req_id", rid))
		}
		if uid, ok := c.Locals("uid").(string); ok && uid != "" {
			zf = append(zf, zap.String("user_id", uid))
		}
	}
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	if len(fields) > 0 {
		zf = append(zf, zap.Any("fields", fields))
	}
	if ce := L().Check(level, action); ce != nil {
		ce.Write(zf...)
	}
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, "info", c, action, nil, fields)
}

func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, "audit", c, action, nil, fields)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.WarnLevel, "security", c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(zapcore.ErrorLevel, "error", c, action, err, fields)
}
