package lndk

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
	sphinx "github.com/lightningnetwork/lightning-onion"
	"github.com/niteshbalusu11/lndk/lndclient"
	"github.com/niteshbalusu11/lndk/offers"
	"github.com/niteshbalusu11/lndk/onionmsg"
	"github.com/niteshbalusu11/lndk/signal"
)

// logWriter implements an io.Writer that outputs to both standard output and
// the write-end pipe of an initialized log rotator.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	if logRotatorPipe != nil {
		logRotatorPipe.Write(p)
	}

	return len(p), nil
}

// Loggers per subsystem.  A single backend logger is created and all subsystem
// loggers created from it will write to the backend.  When adding new
// subsystems, add the subsystem logger variable here and to the
// subsystemLoggers map.
var (
	// backendLog is the logging backend used to create all subsystem
	// loggers.
	backendLog = btclog.NewBackend(logWriter{})

	// logRotator is one of the logging outputs.  It should be closed on
	// application shutdown.
	logRotator *rotator.Rotator

	// logRotatorPipe is the write-end pipe for writing to the log rotator.
	logRotatorPipe *io.PipeWriter

	log     = backendLog.Logger("LNDK")
	rpcsLog = backendLog.Logger("RPCS")
	ofrsLog = backendLog.Logger("OFRS")
	lndcLog = backendLog.Logger("LNDC")
	onmsLog = backendLog.Logger("ONMS")
	sphxLog = backendLog.Logger("SPHX")
)

// Initialize package-global logger variables.
func init() {
	signal.UseLogger(log)
	offers.UseLogger(ofrsLog)
	lndclient.UseLogger(lndcLog)
	onionmsg.UseLogger(onmsLog)
	sphinx.UseLogger(sphxLog)
}

// subsystemLoggers maps each subsystem identifier to its associated logger.
var subsystemLoggers = map[string]btclog.Logger{
	"LNDK": log,
	"RPCS": rpcsLog,
	"OFRS": ofrsLog,
	"LNDC": lndcLog,
	"ONMS": onmsLog,
	"SPHX": sphxLog,
}

// initLogRotator initializes the logging rotator to write logs to logFile and
// create roll files in the same directory.  It must be called before the
// package-global log rotator variables are used.
func initLogRotator(logFile string, maxLogFileSize, maxLogFiles int) error {
	logDir, _ := filepath.Split(logFile)
	err := os.MkdirAll(logDir, 0700)
	if err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	r, err := rotator.New(logFile, int64(maxLogFileSize*1024), false,
		maxLogFiles)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %w", err)
	}

	pr, pw := io.Pipe()
	go r.Run(pr)

	logRotatorPipe = pw
	logRotator = r

	return nil
}

// setLogLevel sets the logging level for provided subsystem.  Invalid
// subsystems are ignored.
func setLogLevel(subsystemID string, logLevel string) {
	// Ignore invalid subsystems.
	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}

	// Defaults to info if the log level is invalid.
	level, _ := btclog.LevelFromString(logLevel)
	logger.SetLevel(level)
}

// setLogLevels sets the log level for all subsystem loggers to the passed
// level.
func setLogLevels(logLevel string) {
	for subsystemID := range subsystemLoggers {
		setLogLevel(subsystemID, logLevel)
	}
}
