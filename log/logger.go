package log

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

var timeFormat = "2006-01-02 15:04:05.000 -0700"

var (
	logger *logrus.Logger
)

func init() {
	logger = nil
}

func Init(debug bool) {
	if debug {
		initDebug()
	} else {
		initProduction()
	}
}

func initDebug() {
	logger = logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	logger.SetOutput(os.Stdout)
}

func initProduction() {
	logger = logrus.New()

	var formatter logrus.Formatter
	if viper.GetString("log-format") == "json" {
		jsonFormatter := new(logrus.JSONFormatter)
		jsonFormatter.TimestampFormat = timeFormat
		formatter = jsonFormatter
	} else {
		textFormatter := new(logrus.TextFormatter)
		textFormatter.TimestampFormat = timeFormat
		textFormatter.FullTimestamp = true
		formatter = textFormatter
	}
	logger.SetFormatter(formatter)

	level := logrus.InfoLevel
	if raw := viper.GetString("log-level"); raw != "" {
		if l, err := logrus.ParseLevel(raw); err != nil {
			fmt.Printf("failed to parse log level: %s\n", err)
		} else {
			level = l
		}
	}
	logger.SetLevel(level)

	logPath := viper.GetString("log-file-path")
	var writer io.Writer = os.Stdout
	if len(logPath) > 0 {
		writer = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     10, //days
			Compress:   true,
		})

		if file, err := os.OpenFile(logPath+".panic", os.O_CREATE|os.O_WRONLY, 0666); err != nil {
			fmt.Println("failed to log panic into file")
		} else {
			redirectPanicOutput(file)
		}
	}
	logger.SetOutput(writer)
}

func Logger() *logrus.Logger {
	if logger == nil {
		Init(false)
	}
	return logger
}

// Stage returns an entry tagged with the pipeline stage it narrates.
func Stage(stage string) *logrus.Entry {
	return Logger().WithField("stage", stage)
}
