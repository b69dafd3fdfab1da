/*
 * Copyright (c) YugabyteDB, Inc.
 */

package log

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	easy "github.com/t-tomalak/logrus-easy-formatter"
)

// SetFormatter prints only the message, the way operators read progress lines
func SetFormatter() {
	logrus.SetReportCaller(false)
	logrus.SetFormatter(&easy.Formatter{
		LogFormat: "%msg%",
	})
}

// SetDebugFormatter adds level, time and caller file:line to every entry
func SetDebugFormatter() {
	logrus.SetReportCaller(true)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:          viper.GetBool("disable-color"),
		DisableLevelTruncation: true,
		FullTimestamp:          true,
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
		},
	})
}

// SetLogLevel sets log level and formatter for logrus. debug overrides logLevel.
func SetLogLevel(logLevel string, debug bool) error {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
		SetDebugFormatter()
		return nil
	}
	SetFormatter()
	if logLevel == "" {
		logrus.SetLevel(logrus.InfoLevel)
		return nil
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.SetLevel(logrus.InfoLevel)
		return errors.Wrapf(err, "error parsing log level %q", logLevel)
	}
	logrus.SetLevel(level)
	return nil
}
