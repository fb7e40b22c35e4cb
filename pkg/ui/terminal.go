package ui

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"golang.org/x/term"
)

// ASCII logo for the application
const ASCIILogo = `
  ╔═══════════════════════════════════════════╗
  ║  _     ___   ___  _____  _  _____  ___    ║
  ║ | |   / __| / __||_   _|/_\|_   _|/ __|   ║
  ║ | |__| (__  \__ \  | | / _ \ | |  \__ \   ║
  ║ |____|\___| |___/  |_|/_/ \_\|_|  |___/   ║
  ║     LeetCode submission stats for rosters ║
  ╚═══════════════════════════════════════════╝
`

var (
	// Out receives tables and exports
	Out io.Writer = os.Stdout
	// Err receives status messages and progress
	Err io.Writer = os.Stderr

	quietMode    atomic.Bool
	colorEnabled atomic.Bool
)

func init() {
	colorEnabled.Store(term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "")
}

// SetQuietMode suppresses everything but errors and results
func SetQuietMode(quiet bool) {
	quietMode.Store(quiet)
}

// IsQuietMode reports whether quiet mode is on
func IsQuietMode() bool {
	return quietMode.Load()
}

// SetColorEnabled turns ANSI colors on or off
func SetColorEnabled(enabled bool) {
	colorEnabled.Store(enabled)
}

// ColorEnabled reports whether ANSI colors are in use
func ColorEnabled() bool {
	return colorEnabled.Load()
}

// IsInteractive reports whether stdout is a terminal
func IsInteractive() bool {
	f, ok := Out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Color functions for terminal output
var (
	Cyan    = colorize("\033[36m%s\033[0m")
	Yellow  = colorize("\033[33m%s\033[0m")
	Red     = colorize("\033[31m%s\033[0m")
	Green   = colorize("\033[32m%s\033[0m")
	Magenta = colorize("\033[35m%s\033[0m")
	Dim     = colorize("\033[2m%s\033[0m")
)

// colorize returns a function that wraps text with ANSI color codes
func colorize(colorString string) func(string) string {
	return func(text string) string {
		if !ColorEnabled() {
			return text
		}
		return fmt.Sprintf(colorString, text)
	}
}

// PrintLogo prints the ASCII logo with color
func PrintLogo() {
	if IsQuietMode() {
		return
	}
	fmt.Fprint(Err, Cyan(ASCIILogo))
}

// PrintError prints an error message in red, even in quiet mode
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Fprintln(Err, Red(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Fprintln(Err, Red(msg))
	}
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	if IsQuietMode() {
		return
	}
	fmt.Fprintln(Err, Green(msg))
}

// PrintInfo prints a label/value pair
func PrintInfo(label string, value string) {
	if IsQuietMode() {
		return
	}
	fmt.Fprintf(Err, "%s: %s\n", Cyan(label), Yellow(value))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if IsQuietMode() {
		return
	}
	if len(args) > 0 {
		fmt.Fprintln(Err, Yellow(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Fprintln(Err, Yellow(msg))
	}
}

// PrintHighlight prints a highlighted message in magenta
func PrintHighlight(msg string) {
	if IsQuietMode() {
		return
	}
	fmt.Fprintln(Err, Magenta(msg))
}
