// Package color provides terminal color output support for punch.
// It respects the NO_COLOR environment variable (https://no-color.org/).
package color

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

var state struct {
	enabled  bool
	once     sync.Once
	disabled bool
}

// Init initializes the color system based on environment and flags.
// Colors stay off when NO_COLOR is set, TERM is dumb, stdout is not a
// terminal, or the flag disables them explicitly.
func Init(noColorFlag bool) {
	state.once.Do(func() {
		if _, exists := os.LookupEnv("NO_COLOR"); exists {
			state.disabled = true
		}
		if t := os.Getenv("TERM"); t == "dumb" {
			state.disabled = true
		}
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			state.disabled = true
		}
		if noColorFlag {
			state.disabled = true
		}
		state.enabled = !state.disabled
	})
}

// Enabled returns true if color output is enabled.
func Enabled() bool {
	Init(false) // Ensure initialized
	return state.enabled
}

// Disable turns off color output.
func Disable() {
	state.disabled = true
	state.enabled = false
}

// Enable turns on color output.
func Enable() {
	state.disabled = false
	state.enabled = true
}

// ANSI color codes
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	DimCode = "\033[2m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
	Gray   = "\033[90m"
)

// colorFunc is a function that wraps text with color codes.
type colorFunc func(string) string

func makeColorFunc(codes ...string) colorFunc {
	return func(s string) string {
		if !Enabled() {
			return s
		}
		return strings.Join(codes, "") + s + Reset
	}
}

// Pre-defined color functions
var (
	Redf    = makeColorFunc(Red)
	Greenf  = makeColorFunc(Green)
	Yellowf = makeColorFunc(Yellow)
	Bluef   = makeColorFunc(Blue)
	Cyanf   = makeColorFunc(Cyan)
	Grayf   = makeColorFunc(Gray)
	Boldf   = makeColorFunc(Bold)
	Dimf    = makeColorFunc(DimCode)
)

// Success formats a success message in green.
func Success(s string) string {
	return Greenf(s)
}

// Error formats an error message in red.
func Error(s string) string {
	return Redf(s)
}

// Errorf formats an error message with printf-style arguments.
func Errorf(format string, args ...any) string {
	return Redf(fmt.Sprintf(format, args...))
}

// Warning formats a warning message in yellow.
func Warning(s string) string {
	return Yellowf(s)
}

// Info formats an informational message in cyan.
func Info(s string) string {
	return Cyanf(s)
}

// Header formats a bucket header in bold.
func Header(s string) string {
	return Boldf(s)
}

// Dim formats dimmed text (for secondary information).
func Dim(s string) string {
	return Dimf(s)
}

// Deficit formats a negative balance in red, Surplus a positive one in green.
func Deficit(s string) string {
	return Redf(s)
}

// Surplus formats a positive balance in green.
func Surplus(s string) string {
	return Greenf(s)
}
