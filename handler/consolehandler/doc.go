// Package consolehandler selects the console stream a pipeline writes to
// and decides whether that stream should be colored.
//
// Destination names "stderr" (the default) and "stdout". ColorMode names
// "auto", "always" and "never"; in auto mode color is used only when the
// writer is a terminal and NO_COLOR is unset.
package consolehandler
