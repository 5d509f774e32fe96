package msastat

import (
	"io"

	"github.com/op/go-logging"
)

// Modules are the loggers the commands know about.
var Modules = []string{"msastat", "msatools", "store"}

var formatter = logging.MustStringFormatter(`%{message}`)

// SetLogging sends messages to w at the named level. With debug, the
// calculations log at debug level whatever the level says, so the
// probability tables get printed.
func SetLogging(w io.Writer, level string, debug bool) error {
	lvl, err := logging.LogLevel(level)
	if err != nil {
		return err
	}
	logging.SetFormatter(formatter)
	logging.SetBackend(logging.NewLogBackend(w, "", 0))
	for _, m := range Modules {
		logging.SetLevel(lvl, m)
	}
	if debug {
		logging.SetLevel(logging.DEBUG, "msatools")
	}
	return nil
}
