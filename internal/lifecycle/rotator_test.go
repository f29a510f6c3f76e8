package lifecycle

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotatorAdvancesAndResetsOnSetChange(t *testing.T) {
	ticks := make(chan time.Time)
	var calls atomic.Int32
	r := NewRotator(time.Hour, func() { calls.Add(1) })
	r.newTicker = func(time.Duration) (<-chan time.Time, func()) { return ticks, func() {} }

	r.Start(context.Background(), MessagesPreparation)
	defer r.Stop()

	ticks <- time.Now()
	ticks <- time.Now()
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
	set, idx := r.Current()
	assert.Equal(t, MessagesPreparation, set)
	assert.Equal(t, 2, idx)

	ticks <- time.Now()
	require.Eventually(t, func() bool { _, i := r.Current(); return i == 0 }, time.Second, 5*time.Millisecond)

	ticks <- time.Now()
	require.Eventually(t, func() bool { _, i := r.Current(); return i == 1 }, time.Second, 5*time.Millisecond)
	r.SetMessages(MessagesPreparation)
	_, idx = r.Current()
	assert.Equal(t, 1, idx, "same set keeps position")

	r.SetMessages(MessagesAnalysis)
	set, idx = r.Current()
	assert.Equal(t, MessagesAnalysis, set)
	assert.Equal(t, 0, idx)
}

func TestRotatorStop(t *testing.T) {
	r := NewRotator(5*time.Millisecond, nil)
	r.Start(context.Background(), MessagesInit)
	assert.True(t, r.Running())
	r.Stop()
	assert.False(t, r.Running())
	r.Stop()
}
