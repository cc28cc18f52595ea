package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// Log lines go to stdout and to a daily file under LOG_DIR (default log/app).
func init() {
	dir := os.Getenv("LOG_DIR")
	if dir == "" {
		dir = filepath.Join("log", "app")
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		fmt.Println("❌ Could not create log directory:", err)
		return
	}

	fileName := filepath.Join(dir, fmt.Sprintf("app_%s.log", time.Now().Format("02-01-2006")))
	logFile, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Println("❌ Could not open log file:", err)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stdout, logFile))
	log.SetLevel(log.LevelInfo)
}

// SetLevel changes the minimum level, e.g. log.LevelDebug in development
func SetLevel(level log.Level) {
	log.SetLevel(level)
}

// ParseLevel maps a LOG_LEVEL value to a fiber log level.
func ParseLevel(name string) (log.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return log.LevelTrace, true
	case "debug":
		return log.LevelDebug, true
	case "info":
		return log.LevelInfo, true
	case "warn", "warning":
		return log.LevelWarn, true
	case "error":
		return log.LevelError, true
	default:
		return log.LevelInfo, false
	}
}

func Success(message string) {
	log.Info("✅ " + message)
}

func Error(message string, err error) {
	if err != nil {
		log.Error("❌ " + message + ": " + err.Error())
	} else {
		log.Error("❌ " + message)
	}
}

func Warning(message string) {
	log.Warn("⚠️ " + message)
}

func Debug(message string) {
	log.Debug("🐛 " + message)
}

func Info(message string) {
	log.Info("ℹ️ " + message)
}

func Infof(format string, args ...interface{}) {
	Info(fmt.Sprintf(format, args...))
}

func Warningf(format string, args ...interface{}) {
	Warning(fmt.Sprintf(format, args...))
}

func Fatal(message string) {
	log.Fatal("💥 " + message)
	os.Exit(1)
}
