package reactive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromPromise(t *testing.T) {
	t.Run("transitions from pending to fulfilled", func(t *testing.T) {
		ready := make(chan struct{})
		sig := FromPromise(context.Background(), func(ctx context.Context) (int, error) {
			<-ready
			return 42, nil
		})

		assert.Equal(t, PromisePending, sig.Read().Status)

		close(ready)
		assert.Eventually(t, func() bool {
			return sig.Untracked().Status == PromiseFulfilled
		}, time.Second, time.Millisecond)

		state := sig.Untracked()
		assert.Equal(t, 42, state.Value)
		assert.NoError(t, state.Err)
	})

	t.Run("transitions from pending to rejected", func(t *testing.T) {
		wantErr := errors.New("upstream failed")
		sig := FromPromise(context.Background(), func(ctx context.Context) (int, error) {
			return 0, wantErr
		})

		assert.Eventually(t, func() bool {
			return sig.Untracked().Status == PromiseRejected
		}, time.Second, time.Millisecond)

		state := sig.Untracked()
		assert.ErrorIs(t, state.Err, wantErr)
	})
}
