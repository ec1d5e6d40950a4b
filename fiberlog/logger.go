package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const logMessage = "обработан запрос api"

// статусы от 300 пишутся как warning
const warnStatusFrom = 300

// New создаёт middleware access-лога поверх logrus
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) > 0 {
		cfg = config[0]
	}
	d := &data{pid: os.Getpid()}
	ftm := getFuncTagMap(cfg, d)
	return func(c *fiber.Ctx) error {
		d.start = time.Now()
		err := c.Next()
		d.end = time.Now()
		if c.Method() == fiber.MethodOptions {
			return err
		}
		writeEntry(cfg.Logger, collectFields(ftm, c, d), c.Response().StatusCode())
		return err
	}
}

// collectFields вычисляет поля лога, пустые строковые значения опускаются
func collectFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	fields := make(log.Fields, len(ftm))
	for tag, fn := range ftm {
		value := fn(c, d)
		if strValue, ok := value.(string); ok {
			if strValue == "" {
				continue
			}
			fields[tag] = strValue
			continue
		}
		fields[tag] = value
	}
	return fields
}

func writeEntry(logger *log.Logger, fields log.Fields, statusCode int) {
	if logger == nil {
		log.WithFields(fields).Info(logMessage)
		return
	}
	entry := logger.WithFields(fields)
	if statusCode >= warnStatusFrom {
		entry.Warn(logMessage)
		return
	}
	entry.Info(logMessage)
}
