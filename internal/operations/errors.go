package operations

import (
	"context"
	"errors"
	"fmt"
)

// OperationError reports the stage that aborted a run
type OperationError struct {
	Stage string `json:"stage"`
	Cause error  `json:"cause,omitempty"`
}

// Error implements the error interface
func (e *OperationError) Error() string {
	if e == nil {
		return "unknown operation error"
	}
	if e.Cause == nil {
		return fmt.Sprintf("stage %s failed", e.Stage)
	}
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Cause)
}

// Unwrap returns the underlying error
func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewOperationError wraps cause as a failure of stage
func NewOperationError(stage string, cause error) *OperationError {
	return &OperationError{Stage: stage, Cause: cause}
}

// StageOf returns the stage named by an OperationError in err's chain
func StageOf(err error) string {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Stage
	}
	return ""
}

// IsCancellation reports whether err was caused by context cancellation
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
