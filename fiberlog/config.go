package fiberlog

import "github.com/sirupsen/logrus"

// Config задаёт логгер и состав полей access-лога
type Config struct {
	Logger *logrus.Logger
	Tags   []string
}

// ConfigDefault используется, когда конфигурация не передана
var ConfigDefault = Config{
	Logger: nil,
	Tags: []string{
		TagMethod,
		TagPath,
		TagStatus,
		TagLatency,
		TagIP,
		RequestID,
	},
}
