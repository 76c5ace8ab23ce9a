package logger

import (
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// BackendLog is the logging backend used to create all subsystem loggers.
var BackendLog = NewBackend()

var (
	subsystemLoggersMutex sync.Mutex
	subsystemLoggers      = make(map[string]*Logger)
)

// RegisterSubSystem returns the logger for the given subsystem tag,
// creating it on first use. All loggers are off until a level is set.
func RegisterSubSystem(subsystem string) *Logger {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()

	logger, exists := subsystemLoggers[subsystem]
	if !exists {
		logger = BackendLog.Logger(subsystem)
		subsystemLoggers[subsystem] = logger
	}
	return logger
}

// InitLog attaches log file and error log file to the backend log and
// starts it.
func InitLog(logFile, errLogFile string) error {
	err := BackendLog.AddLogFile(logFile, LevelTrace)
	if err != nil {
		return errors.Wrapf(err, "error adding log file %s as log rotator for level %s", logFile, LevelTrace)
	}
	err = BackendLog.AddLogFile(errLogFile, LevelWarn)
	if err != nil {
		return errors.Wrapf(err, "error adding log file %s as log rotator for level %s", errLogFile, LevelWarn)
	}
	err = BackendLog.AddLogWriter(nopCloser{os.Stderr}, LevelInfo)
	if err != nil {
		return err
	}
	return BackendLog.Run()
}

// SetLogLevels sets the logging level for all of the registered subsystems.
func SetLogLevels(level Level) {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()

	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
}

// SetLogLevel sets the logging level for the given subsystem.
func SetLogLevel(subsystem string, level Level) error {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()

	logger, ok := subsystemLoggers[subsystem]
	if !ok {
		return errors.Errorf("unknown subsystem %s, supported subsystems: %s",
			subsystem, supportedSubsystemsNoLock())
	}
	logger.SetLevel(level)
	return nil
}

// SupportedSubsystems returns a sorted slice of the registered subsystems.
func SupportedSubsystems() []string {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()

	return supportedSubsystemsNoLock()
}

func supportedSubsystemsNoLock() []string {
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsystem := range subsystemLoggers {
		subsystems = append(subsystems, subsystem)
	}
	sort.Strings(subsystems)
	return subsystems
}

// ParseAndSetLogLevels attempts to parse the specified log level spec and
// set the levels accordingly. The spec is either a single level applied to
// all subsystems, or a comma-separated list of <subsystem>=<level> pairs.
func ParseAndSetLogLevels(logLevelSpec string) error {
	// When the specified string doesn't have any delimiters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(logLevelSpec, ",") && !strings.Contains(logLevelSpec, "=") {
		level, ok := LevelFromString(logLevelSpec)
		if !ok {
			return errors.Errorf("the specified log level [%s] is invalid", logLevelSpec)
		}
		SetLogLevels(level)
		return nil
	}

	// Split the specified string into subsystem/level pairs while detecting
	// issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(logLevelSpec, ",") {
		if !strings.Contains(logLevelPair, "=") {
			return errors.Errorf("the specified log level contains an invalid "+
				"subsystem/level pair [%s]", logLevelPair)
		}

		fields := strings.Split(logLevelPair, "=")
		subsystem, levelString := fields[0], fields[1]
		level, ok := LevelFromString(levelString)
		if !ok {
			return errors.Errorf("the specified log level [%s] is invalid", levelString)
		}
		err := SetLogLevel(subsystem, level)
		if err != nil {
			return err
		}
	}
	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
