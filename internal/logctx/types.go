package logctx

import (
	"sync"
	"time"
)

// One queued log line, Tags are the operation path (CLI, Encode, Lock, ...)
type Event struct {
	Timestamp time.Time
	Severity  string
	Tags      []string
	Message   string
}

// Per process logger shared by every command through the context.
// PrintLevel is the resolved -v level, it only changes once the config file is loaded.
type Logger struct {
	ID         string
	CreatedAt  time.Time
	queue      []Event         // event buffer
	mutex      sync.Mutex      // protects buffer
	cond       *sync.Cond      // condition to signal new events
	Done       <-chan struct{} // closing stops the watcher once the queue is drained
	PrintLevel int             // Highest verbosity recorded (0 none ... 5 debug dumps)
	wg         *sync.WaitGroup // Holds process exit until the stderr watcher has drained the queue
}
