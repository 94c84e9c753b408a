package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log является глобальным экземпляром логгера для всего приложения.
var Log *logrus.Logger

// fileSink - ротируемый файл, если задан LOG_FILE
var fileSink *lumberjack.Logger

// Init инициализирует глобальный логгер.
// Эта функция должна быть вызвана один раз при старте приложения в main.go.
func Init() {
	Log = logrus.New()

	// 1. Устанавливаем уровень логирования из переменной окружения.
	// По умолчанию - "info". Для отладки можно выставить "debug".
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// 2. Устанавливаем форматтер.
	// "json" - для продакшена и сбора логов.
	// "text" - для удобной разработки.
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	// 3. Устанавливаем, куда писать логи.
	// Всегда stdout, плюс ротируемый файл при LOG_FILE=path.
	Log.SetOutput(output(os.Getenv("LOG_FILE")))
}

func output(path string) io.Writer {
	if path == "" {
		fileSink = nil
		return os.Stdout
	}
	fileSink = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // дни
	}
	return io.MultiWriter(os.Stdout, fileSink)
}

// Close закрывает файл логов, если он открыт
func Close() error {
	if fileSink == nil {
		return nil
	}
	return fileSink.Close()
}
