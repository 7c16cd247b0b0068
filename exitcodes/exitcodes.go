// Package exitcodes defines the standard exit codes used by shortcut-acceptor.
package exitcodes

// Exit code constants used by shortcut-acceptor:
//
// * Success (0): The run completed and the report was written, whatever the pass rate
// * RuntimeErr (2): Configuration, catalog or I/O errors
const (
	Success    = 0
	RuntimeErr = 2
)
