package utils

import (
	"fmt"
	"strings"
)

type options struct {
	noColorize bool
	verbose    bool
}

var opts = &options{}

type optInterface struct{}

func Opts() optInterface {
	return optInterface{}
}

func (optInterface) NoColorize() bool {
	return opts.noColorize
}

func (optInterface) Verbose() bool {
	return opts.verbose
}

// SetNoColorize disables ANSI styling on all stringified structures.
// The driver binds this to its --no-color flag before any output is produced.
func SetNoColorize(b bool) {
	opts.noColorize = b
}

// SetVerbose toggles verbose diagnostics in the driver.
func SetVerbose(b bool) {
	opts.verbose = b
}

// CanColorize guards a color.SprintFunc behind the no-colorize option,
// degrading to plain formatting when styling is disabled.
func CanColorize(col func(...interface{}) string) func(...interface{}) string {
	if opts.noColorize {
		return func(is ...interface{}) string {
			return fmt.Sprintf(strings.Repeat("%s", len(is)), is...)
		}
	}
	return col
}

// OnVerbose runs the thunk only when verbose diagnostics are enabled.
func OnVerbose(do func()) {
	if opts.verbose {
		do()
	}
}
