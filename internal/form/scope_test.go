package form

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestScope_CloseCancelsAndWaits(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewScope(context.Background())
	var finished atomic.Int32
	for i := 0; i < 4; i++ {
		s.Go(func(ctx context.Context) {
			select {
			case <-ctx.Done():
			case <-time.After(time.Hour):
			}
			finished.Add(1)
		})
	}
	s.Close()

	assert.Equal(t, int32(4), finished.Load())
	assert.True(t, s.Closed())
	assert.ErrorIs(t, s.Context().Err(), context.Canceled)
}

func TestScope_GoAfterClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewScope(context.Background())
	s.Close()
	s.Close()

	ran := false
	assert.False(t, s.Go(func(context.Context) { ran = true }))
	assert.False(t, ran)
}

func TestScope_ParentCancellation(t *testing.T) {
	defer goleak.VerifyNone(t)

	parent, cancel := context.WithCancel(context.Background())
	s := NewScope(parent)
	cancel()

	<-s.Context().Done()
	s.Close()
}
