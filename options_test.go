package vtpool_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/giantswarm/vtpool"
)

// panicTestCase defines a test case for option validation panic tests.
type panicTestCase struct {
	name     string
	panics   bool
	panicMsg string
	fn       func()
}

// requirePanics calls fn and verifies it panics (or not) with the expected message.
func requirePanics(t *testing.T, shouldPanic bool, wantMsg string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if shouldPanic && r == nil {
			t.Fatal("expected panic but didn't get one")
		}
		if !shouldPanic && r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
		if shouldPanic && r != nil {
			if msg := fmt.Sprint(r); msg != wantMsg {
				t.Fatalf("expected panic message %q, got %q", wantMsg, msg)
			}
		}
	}()
	fn()
}

// runPanicTests runs a slice of panic test cases using requirePanics.
func runPanicTests(t *testing.T, tests []panicTestCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			requirePanics(t, tt.panics, tt.panicMsg, tt.fn)
		})
	}
}

func TestWithNamePanicsOnEmpty(t *testing.T) {
	t.Parallel()
	runPanicTests(t, []panicTestCase{
		{
			name:     "empty",
			panics:   true,
			panicMsg: "vtpool: pool name must not be empty",
			fn:       func() { vtpool.WithName("") },
		},
		{name: "valid", fn: func() { vtpool.WithName("http") }},
	})
}

func TestWithJoinTimeoutPanicsOnInvalid(t *testing.T) {
	t.Parallel()
	runPanicTests(t, []panicTestCase{
		{
			name:     "zero",
			panics:   true,
			panicMsg: "vtpool: join timeout must be greater than 0, got 0s",
			fn:       func() { vtpool.WithJoinTimeout(0) },
		},
		{
			name:     "negative",
			panics:   true,
			panicMsg: "vtpool: join timeout must be greater than 0, got -1s",
			fn:       func() { vtpool.WithJoinTimeout(-1 * time.Second) },
		},
		{name: "valid", fn: func() { vtpool.WithJoinTimeout(time.Hour) }},
	})
}

func TestNilFunctionOptionsPanic(t *testing.T) {
	t.Parallel()
	runPanicTests(t, []panicTestCase{
		{
			name:     "executor factory",
			panics:   true,
			panicMsg: "vtpool: executor factory must not be nil",
			fn:       func() { vtpool.WithExecutorFactory(nil) },
		},
		{
			name:     "panic handler",
			panics:   true,
			panicMsg: "vtpool: panic handler must not be nil",
			fn:       func() { vtpool.WithPanicHandler(nil) },
		},
		{
			name:     "lifecycle listener",
			panics:   true,
			panicMsg: "vtpool: lifecycle listener must not be nil",
			fn:       func() { vtpool.WithLifecycleListener(nil) },
		},
	})
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	got := vtpool.ApplyOptionsForTesting()
	want := vtpool.ConfigSnapshot{
		Name:        vtpool.DefaultName,
		JoinTimeout: vtpool.DefaultJoinTimeout,
	}
	if got != want {
		t.Fatalf("default config = %+v, want %+v", got, want)
	}
}

func TestOptionsApply(t *testing.T) {
	t.Parallel()

	noopListener := func(vtpool.LifecycleEvent, error) {}
	factory := func() (vtpool.Executor, error) { return nil, nil }

	tests := map[string]struct {
		opts  []vtpool.Option
		check func(t *testing.T, s vtpool.ConfigSnapshot)
	}{
		"name": {
			opts: []vtpool.Option{vtpool.WithName("http")},
			check: func(t *testing.T, s vtpool.ConfigSnapshot) {
				t.Helper()
				if s.Name != "http" {
					t.Errorf("Name = %q, want http", s.Name)
				}
			},
		},
		"join timeout": {
			opts: []vtpool.Option{vtpool.WithJoinTimeout(3 * time.Second)},
			check: func(t *testing.T, s vtpool.ConfigSnapshot) {
				t.Helper()
				if s.JoinTimeout != 3*time.Second {
					t.Errorf("JoinTimeout = %s, want 3s", s.JoinTimeout)
				}
			},
		},
		"executor factory": {
			opts: []vtpool.Option{vtpool.WithExecutorFactory(factory)},
			check: func(t *testing.T, s vtpool.ConfigSnapshot) {
				t.Helper()
				if !s.HasExecutorFactory {
					t.Error("HasExecutorFactory = false")
				}
			},
		},
		"panic handler": {
			opts: []vtpool.Option{vtpool.WithPanicHandler(func(any, []byte) {})},
			check: func(t *testing.T, s vtpool.ConfigSnapshot) {
				t.Helper()
				if !s.HasPanicHandler {
					t.Error("HasPanicHandler = false")
				}
			},
		},
		"listeners accumulate": {
			opts: []vtpool.Option{
				vtpool.WithLifecycleListener(noopListener),
				vtpool.WithLifecycleListener(noopListener),
			},
			check: func(t *testing.T, s vtpool.ConfigSnapshot) {
				t.Helper()
				if s.Listeners != 2 {
					t.Errorf("Listeners = %d, want 2", s.Listeners)
				}
			},
		},
		"last name wins": {
			opts: []vtpool.Option{vtpool.WithName("a"), vtpool.WithName("b")},
			check: func(t *testing.T, s vtpool.ConfigSnapshot) {
				t.Helper()
				if s.Name != "b" {
					t.Errorf("Name = %q, want b", s.Name)
				}
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tc.check(t, vtpool.ApplyOptionsForTesting(tc.opts...))
		})
	}
}

func TestRunnable(t *testing.T) {
	t.Parallel()

	if vtpool.Runnable(nil) != nil {
		t.Error("Runnable(nil) != nil")
	}

	called := false
	vtpool.Runnable(func() { called = true })(context.Background())
	if !called {
		t.Error("Runnable task did not call fn")
	}
}
