package display

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/apex/log"
	"github.com/fatih/color"
)

var (
	lock     sync.Mutex
	file     *os.File
	stderr   io.Writer = os.Stderr
	level              = log.InfoLevel
	useColor bool
)

// Init sets up the log handler and the debug log file.
func Init() {
	f, err := ioutil.TempFile("", "gopathdeps-log-")
	if err != nil {
		log.WithError(err).Warn("could not open log file")
	}
	file = f

	// Always set the logging package to debug, otherwise we lose the debug
	// entries that we would write to the log file.
	log.SetLevel(log.DebugLevel)
	log.SetHandler(log.HandlerFunc(Handler))
}

// SetInteractive turns colors and ANSI control characters on or off.
func SetInteractive(interactive bool) {
	// Disable Unicode and ANSI control characters on Windows.
	if runtime.GOOS == "windows" {
		interactive = false
	}
	useSpinner = interactive
	useColor = interactive
	color.NoColor = !interactive
}

// SetDebug turns debug logging to STDERR on or off.
//
// The log file always receives debug-level entries.
func SetDebug(debug bool) {
	// This sets `level` rather than calling `log.SetLevel`, because the latter
	// filters entries before they reach the handler.
	if debug {
		level = log.DebugLevel
	} else {
		level = log.InfoLevel
	}
}

// File returns the log file name, or "" if there is no log file.
func File() string {
	if file == nil {
		return ""
	}
	return file.Name()
}

// Handler handles log entries. It multiplexes them into two outputs, writing
// human-readable messages to STDERR and machine-readable entries to a log file.
func Handler(entry *log.Entry) error {
	lock.Lock()
	defer lock.Unlock()

	if entry.Level >= level {
		fmt.Fprintln(stderr, format(entry))
	}

	if file == nil {
		return nil
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, byte('\n'))
	_, err = file.Write(data)
	return err
}

var levelColors = map[log.Level]*color.Color{
	log.DebugLevel: color.New(color.FgWhite),
	log.InfoLevel:  color.New(color.FgBlue),
	log.WarnLevel:  color.New(color.FgYellow),
	log.ErrorLevel: color.New(color.FgRed),
	log.FatalLevel: color.New(color.FgRed, color.Bold),
}

func format(entry *log.Entry) string {
	name := entry.Level.String()
	if c, ok := levelColors[entry.Level]; ok && useColor {
		name = c.Sprint(name)
	}
	msg := name + " " + entry.Message
	if level == log.DebugLevel {
		var keys []string
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg += fmt.Sprintf(" %s=%v", k, entry.Fields[k])
		}
	}
	return msg
}
