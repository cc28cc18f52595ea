package logger

import (
	"fmt"

	log_model "tour-booking/models/log"
	"tour-booking/types"

	"gorm.io/gorm"
)

// AsyncLogger persists request logs off the request path.
type AsyncLogger struct {
	db      *gorm.DB
	channel chan types.LogEntry
}

// NewAsyncLogger creates the logger; a nil db logs to the console instead.
func NewAsyncLogger(db *gorm.DB) *AsyncLogger {
	return &AsyncLogger{
		db:      db,
		channel: make(chan types.LogEntry, 100),
	}
}

// ProcessLog drains the queue until Close is called. Run it on its own goroutine.
func (logger *AsyncLogger) ProcessLog() {
	Info("Starting asynchronous request logger")

	for logEntry := range logger.channel {
		dbLog := log_model.Log{
			Method:       logEntry.Method,
			URL:          logEntry.URL,
			RequestBody:  logEntry.RequestBody,
			ResponseBody: logEntry.ResponseBody,
			StatusCode:   logEntry.StatusCode,
			ActorID:      logEntry.ActorID,
			DurationMs:   logEntry.DurationMs,
			CreatedAt:    logEntry.CreatedAt,
		}

		if logger.db == nil {
			// memory mode has nowhere to persist
			Debug(fmt.Sprintf("%s %s %d %dms", logEntry.Method, logEntry.URL, logEntry.StatusCode, logEntry.DurationMs))
			continue
		}
		if err := logger.db.Create(&dbLog).Error; err != nil {
			Error("Failed to insert request log", err)
		}
	}
}

// Log queues an entry. When the queue is full the entry is dropped rather
// than blocking the request.
func (logger *AsyncLogger) Log(entry types.LogEntry) {
	select {
	case logger.channel <- entry:
	default:
		Warningf("Request log queue full, dropping %s %s", entry.Method, entry.URL)
	}
}

// Close stops ProcessLog once the queue is drained
func (logger *AsyncLogger) Close() {
	close(logger.channel)
}
