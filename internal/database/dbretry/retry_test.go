package dbretry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/arbiterhq/arbiter/internal/database/dbretry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotFound = errors.New("record not found")

func TestIsRetryableError(t *testing.T) {
	t.Parallel()

	assert.False(t, dbretry.IsRetryableError(nil))
	assert.False(t, dbretry.IsRetryableError(errNotFound))

	assert.True(t, dbretry.IsRetryableError(context.DeadlineExceeded))
	assert.True(t, dbretry.IsRetryableError(errors.New("read tcp: connection reset by peer")))
	assert.True(t, dbretry.IsRetryableError(errors.New("dial tcp: connection refused")))
	assert.True(t, dbretry.IsRetryableError(errors.New("unexpected EOF")))
}

func TestOperationStopsOnPermanentError(t *testing.T) {
	t.Parallel()

	calls := 0

	_, err := dbretry.Operation(t.Context(), func(context.Context) (int, error) {
		calls++
		return 0, errNotFound
	})

	require.ErrorIs(t, err, errNotFound)
	assert.Equal(t, 1, calls, "non-retryable errors must not be retried")
}

func TestOperationRetriesTransientError(t *testing.T) {
	t.Parallel()

	calls := 0

	result, err := dbretry.Operation(t.Context(), func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("write tcp: broken pipe")
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, 3, calls)
}

func TestNoResultPropagatesSentinel(t *testing.T) {
	t.Parallel()

	err := dbretry.NoResult(t.Context(), func(context.Context) error {
		return errNotFound
	})

	require.ErrorIs(t, err, errNotFound)
}
