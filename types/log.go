package types

import "time"

// LogEntry is one HTTP exchange queued for the request log table
type LogEntry struct {
	Method       string
	URL          string
	RequestBody  string
	ResponseBody string
	StatusCode   int
	ActorID      *uint
	DurationMs   int64
	CreatedAt    time.Time
}
