package cmd

import "fmt"

const (
	ExitOK       = 0
	ExitFindings = 1
	ExitArg      = 2
)

// ExitError carries the process exit code. Kind is the stable error code
// used when the error is rendered as an event.
type ExitError struct {
	Code int
	Kind string
	Msg  string
}

func (e *ExitError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Msg
}
