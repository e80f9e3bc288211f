package supervisor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeComponent struct {
	startErr error
	stopErr  error
	started  atomic.Bool
	stopped  atomic.Bool
}

func (f *fakeComponent) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started.Store(true)
	return nil
}

func (f *fakeComponent) Stop(ctx context.Context) error {
	f.stopped.Store(true)
	return f.stopErr
}

func TestSupervisor_RunStartsAllAndStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	a := &fakeComponent{}
	b := &fakeComponent{}

	var hookCalled atomic.Bool
	s := New([]Component{a, b},
		WithContext(ctx),
		WithShutdownHook(func(context.Context) error {
			hookCalled.Store(true)
			return nil
		}),
	)

	var wg sync.WaitGroup
	wg.Add(1)
	var runErr error
	go func() {
		defer wg.Done()
		runErr = s.Run()
	}()

	require.Eventually(t, func() bool { return a.started.Load() && b.started.Load() }, time.Second, 5*time.Millisecond)

	cancel()
	wg.Wait()

	assert.NoError(t, runErr)
	assert.True(t, a.stopped.Load())
	assert.True(t, b.stopped.Load())
	assert.True(t, hookCalled.Load())
}

func TestSupervisor_StopOrderIsReverseOfStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	var stopOrder []string

	a := &orderedComponent{name: "a", order: &stopOrder, mu: &mu}
	b := &orderedComponent{name: "b", order: &stopOrder, mu: &mu}

	s := New([]Component{a, b}, WithContext(ctx))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.Run()
	}()

	require.Eventually(t, func() bool { return a.started.Load() && b.started.Load() }, time.Second, 5*time.Millisecond)
	cancel()
	wg.Wait()

	assert.Equal(t, []string{"b", "a"}, stopOrder)
}

type orderedComponent struct {
	name    string
	order   *[]string
	mu      *sync.Mutex
	started atomic.Bool
}

func (o *orderedComponent) Start(ctx context.Context) error {
	o.started.Store(true)
	return nil
}

func (o *orderedComponent) Stop(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	*o.order = append(*o.order, o.name)
	return nil
}

func TestSupervisor_FailedComponentStartStopsAlreadyStarted(t *testing.T) {
	a := &fakeComponent{}
	b := &fakeComponent{startErr: errors.New("boom")}

	s := New([]Component{a, b}, WithContext(context.Background()))

	err := s.Run()
	require.Error(t, err)
	assert.True(t, a.started.Load())
	assert.True(t, a.stopped.Load())
	assert.False(t, b.started.Load())
}

func TestSupervisor_ShutdownHookErrorIsJoinedIntoResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a := &fakeComponent{stopErr: errors.New("stop failed")}

	s := New([]Component{a},
		WithContext(ctx),
		WithShutdownHook(func(context.Context) error { return errors.New("hook failed") }),
	)

	var wg sync.WaitGroup
	wg.Add(1)
	var runErr error
	go func() {
		defer wg.Done()
		runErr = s.Run()
	}()

	require.Eventually(t, func() bool { return a.started.Load() }, time.Second, 5*time.Millisecond)
	cancel()
	wg.Wait()

	require.Error(t, runErr)
	assert.ErrorContains(t, runErr, "stop failed")
	assert.ErrorContains(t, runErr, "hook failed")
}
