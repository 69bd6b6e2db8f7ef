package analytics

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettle_IndependentOutcomes(t *testing.T) {
	boom := errors.New("boom")
	outcomes := Settle(context.Background(),
		func(context.Context) (int, error) { return 1, nil },
		func(context.Context) (int, error) { return 0, boom },
		func(context.Context) (int, error) { return 3, nil },
	)

	require.Len(t, outcomes, 3)
	assert.Equal(t, 1, outcomes[0].Value)
	assert.NoError(t, outcomes[0].Err)
	assert.ErrorIs(t, outcomes[1].Err, boom)
	assert.Equal(t, 3, outcomes[2].Value)
}

func TestSettle_FailureDoesNotCancelSiblings(t *testing.T) {
	var finished atomic.Bool
	outcomes := Settle(context.Background(),
		func(context.Context) (string, error) { return "", errors.New("fast failure") },
		func(ctx context.Context) (string, error) {
			select {
			case <-time.After(20 * time.Millisecond):
				finished.Store(true)
				return "slow", nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		},
	)

	assert.Error(t, outcomes[0].Err)
	assert.NoError(t, outcomes[1].Err)
	assert.Equal(t, "slow", outcomes[1].Value)
	assert.True(t, finished.Load())
}

func TestSettle_RunsConcurrently(t *testing.T) {
	op := func(context.Context) (int, error) {
		time.Sleep(50 * time.Millisecond)
		return 1, nil
	}

	start := time.Now()
	outcomes := Settle(context.Background(), op, op, op, op, op, op)

	assert.Len(t, outcomes, 6)
	assert.Less(t, time.Since(start), 250*time.Millisecond)
}

func TestSettle_RecoversPanics(t *testing.T) {
	outcomes := Settle(context.Background(),
		func(context.Context) (int, error) { panic("bad payload") },
		func(context.Context) (int, error) { return 7, nil },
	)

	assert.ErrorContains(t, outcomes[0].Err, "bad payload")
	assert.Equal(t, 7, outcomes[1].Value)
}

func TestSettle_NoOps(t *testing.T) {
	assert.Empty(t, Settle[int](context.Background()))
}
