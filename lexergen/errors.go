package lexergen

import "github.com/pkg/errors"

// StageError names the pipeline stage a wrapped failure originated in,
// so a caller can report "failed during minimization" without string
// matching the underlying error.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return "lexergen: " + e.Stage + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error { return e.Err }

func wrapStage(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: errors.WithStack(err)}
}
