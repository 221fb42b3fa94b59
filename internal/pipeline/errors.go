package pipeline

import "fmt"

// NotFoundError indicates the host is not under a served domain.
type NotFoundError struct {
	Host string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("host not served: %q", e.Host)
}

// BadRequestError indicates the host has no username label.
type BadRequestError struct {
	Host string
}

func (e *BadRequestError) Error() string {
	return fmt.Sprintf("no username in host: %q", e.Host)
}

// StageError wraps an unexpected failure inside a pipeline stage.
type StageError struct {
	Stage Stage
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline stage %s failed: %v", e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}
