package scoputil

import (
	"fmt"
	"os"
	"path"
	"runtime"

	log "github.com/sirupsen/logrus"
)

// Configures the global logger the way all scoperec commands expect
// it: text output to stdout with full timestamps and the reporting
// caller appended to each entry.
func SetupLogging() {
	log.SetLevel(log.InfoLevel)
	if level, err := log.ParseLevel(os.Getenv("SCOPEREC_LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}
	log.SetOutput(os.Stdout)
	log.SetReportCaller(true)
	log.SetFormatter(&log.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			// Grab filename and line of current frame and add it to log entry
			_, filename := path.Split(f.File)
			return "", fmt.Sprintf("%20v:%-5d", filename, f.Line)
		},
	})
}
