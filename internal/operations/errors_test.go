package operations

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationError(t *testing.T) {
	cause := errors.New("boom")
	err := NewOperationError(StageNormalize, cause)

	assert.Equal(t, "stage normalize: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, StageNormalize, StageOf(fmt.Errorf("wrapped: %w", err)))
	assert.Empty(t, StageOf(cause))

	assert.Equal(t, "stage report failed", NewOperationError(StageReport, nil).Error())

	var nilErr *OperationError
	assert.Equal(t, "unknown operation error", nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
}

func TestIsCancellation(t *testing.T) {
	assert.True(t, IsCancellation(NewOperationError(StageLoad, context.Canceled)))
	assert.True(t, IsCancellation(context.DeadlineExceeded))
	assert.False(t, IsCancellation(errors.New("other")))
	assert.False(t, IsCancellation(nil))
}
