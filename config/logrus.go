package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logg.SetLevel(logrus.InfoLevel)
	logg.SetOutput(os.Stdout)
}

// GetLogger returns the process logger
func GetLogger() *logrus.Logger {
	return logg
}

// SetLevel changes the log level; unknown names leave it unchanged
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logg.Warnf("⚠️ Config: unknown LOG_LEVEL %q, keeping %s", level, logg.GetLevel())
		return
	}
	logg.SetLevel(lvl)
}

// LogError logs err with the module/function context it happened in
func LogError(moduleName string, funcName string, context string, data any, err error) {
	fields := logrus.Fields{
		"module":   moduleName,
		"funcName": funcName,
		"context":  context,
	}
	if data != nil {
		fields["data"] = data
	}
	logg.WithFields(fields).Error(err.Error())
}
