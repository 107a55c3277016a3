package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunner_EveryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := New(ctx)

	var calls atomic.Int32
	r.Every(5*time.Millisecond, "tick", func(context.Context) error {
		calls.Add(1)
		return nil
	})

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	r.Wait()
}

func TestRunner_ErrorsAndPanicsDoNotStopSchedule(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := New(ctx)

	var calls atomic.Int32
	r.Every(5*time.Millisecond, "flaky", func(context.Context) error {
		n := calls.Add(1)
		switch n {
		case 1:
			return errors.New("boom")
		case 2:
			panic("kaboom")
		}
		return nil
	})

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	r.Wait()
}
