package logger

import (
	"time"
)

// LogAndMeasureExecutionTime logs that the given function started, and
// returns a closure that logs how long it took. Use with defer.
func LogAndMeasureExecutionTime(log *Logger, functionName string) (onEnd func()) {
	start := time.Now()
	log.Tracef("%s start", functionName)
	return func() {
		log.Tracef("%s end. Took: %s", functionName, time.Since(start))
	}
}
