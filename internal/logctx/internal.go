package logctx

import (
	"pngme/internal/global"
	"time"
)

// Errors always reach stderr, everything else only up to the -v level
func (logger *Logger) accepts(eventLevel int, eventSeverity string) bool {
	logger.mutex.Lock()
	defer logger.mutex.Unlock()
	return eventSeverity == global.ErrorLog || eventLevel <= logger.PrintLevel
}

// Queues event for the watcher. Level is checked again since SetLogLevel may have run
// between accepts and here.
func (logger *Logger) log(eventLevel int, eventSeverity string, tags []string, fullMessage string) {
	logger.mutex.Lock()
	defer logger.mutex.Unlock()

	if eventLevel > logger.PrintLevel && eventSeverity != global.ErrorLog {
		return
	}

	event := Event{
		Timestamp: time.Now(),
		Tags:      tags,
		Severity:  eventSeverity,
		Message:   fullMessage,
	}

	logger.queue = append(logger.queue, event)
	logger.cond.Signal() // Notify watcher that new event is available
}
