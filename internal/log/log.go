package log

import (
	"io"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// SetOutput redirects the shared logger, e.g. to a MultiWriter with a
// log file next to stdout.
func SetOutput(w io.Writer) {
	logger = zerolog.New(w).With().Timestamp().Logger()
}

func write(level zerolog.Level, c *fiber.Ctx, action string, err error, fields map[string]any) {
	ev := logger.WithLevel(level).Str("action", action)
	if c != nil {
		ev = ev.Str("ip", c.IP()).Str("method", c.Method()).Str("path", c.Path())
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			ev = ev.Str("req_id", rid)
		}
		if uid, ok := c.Locals("user_id").(int64); ok {
			ev = ev.Int64("user_id", uid)
		}
	}
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Fields(fields).Send()
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(zerolog.InfoLevel, c, action, nil, fields)
}

// Audit marks state-changing actions worth tracing back to a request.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(zerolog.InfoLevel, c, action, nil, fields)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(zerolog.WarnLevel, c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(zerolog.ErrorLevel, c, action, err, fields)
}
