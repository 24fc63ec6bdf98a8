package kernel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSpinlockZeroValueUnlocked(t *testing.T) {
	var l Spinlock[int]

	if l.Locked() {
		t.Fatalf("Locked() = true, want false")
	}
	g, ok := l.TryLock()
	if !ok {
		t.Fatalf("TryLock() ok = false, want true")
	}
	if !l.Locked() {
		t.Fatalf("Locked() = false while guard is live, want true")
	}
	g.Unlock()
	if l.Locked() {
		t.Fatalf("Locked() = true after Unlock, want false")
	}
}

func TestSpinlockTryLockHeld(t *testing.T) {
	l := NewSpinlock("fb")

	g := l.Lock()
	if _, ok := l.TryLock(); ok {
		t.Fatalf("TryLock() ok = true while held, want false")
	}
	g.Unlock()

	g2, ok := l.TryLock()
	if !ok {
		t.Fatalf("TryLock() ok = false after release, want true")
	}
	if got := *g2.Value(); got != "fb" {
		t.Fatalf("Value() = %q, want %q", got, "fb")
	}
	g2.Unlock()
}

func TestSpinlockGuardWritesVisibleToNextHolder(t *testing.T) {
	l := NewSpinlock(0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		g := l.Lock()
		*g.Value() = 42
		g.Unlock()
	}()
	<-done

	g := l.Lock()
	defer g.Unlock()
	if got := *g.Value(); got != 42 {
		t.Fatalf("Value() = %d, want 42", got)
	}
}

func TestSpinlockMutualExclusion(t *testing.T) {
	for _, procs := range []int{1, 4} {
		t.Run("", func(t *testing.T) {
			oldProcs := runtime.GOMAXPROCS(procs)
			defer runtime.GOMAXPROCS(oldProcs)

			const (
				workers   = 8
				perWorker = 5_000
			)

			l := NewSpinlock(0)
			var live atomic.Int32
			var overlap atomic.Bool

			start := make(chan struct{})
			var wg sync.WaitGroup
			wg.Add(workers)
			for i := 0; i < workers; i++ {
				go func() {
					defer wg.Done()
					<-start
					for j := 0; j < perWorker; j++ {
						g := l.Lock()
						if live.Add(1) != 1 {
							overlap.Store(true)
						}
						*g.Value() = *g.Value() + 1
						live.Add(-1)
						g.Unlock()
					}
				}()
			}
			close(start)
			wg.Wait()

			if overlap.Load() {
				t.Fatalf("more than one guard was live at once")
			}
			g := l.Lock()
			defer g.Unlock()
			if got, want := *g.Value(), workers*perWorker; got != want {
				t.Fatalf("counter = %d, want %d", got, want)
			}
		})
	}
}

func TestSpinlockReleaseWakesWaiter(t *testing.T) {
	l := NewSpinlock(struct{}{})
	g := l.Lock()

	acquired := make(chan struct{})
	go func() {
		g := l.Lock()
		close(acquired)
		g.Unlock()
	}()

	select {
	case <-acquired:
		t.Fatal("waiter acquired a held lock")
	case <-time.After(20 * time.Millisecond):
	}

	g.Unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for waiter to acquire released lock")
	}
}

func TestSpinlockDoReleasesOnPanic(t *testing.T) {
	l := NewSpinlock(0)

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected panic from Do callback")
			}
		}()
		l.Do(func(v *int) {
			*v = 7
			panic("boom")
		})
	}()

	if l.Locked() {
		t.Fatalf("Locked() = true after panicking Do, want false")
	}
	l.Do(func(v *int) {
		if *v != 7 {
			t.Fatalf("value = %d, want 7", *v)
		}
	})
}

func TestGuardDoubleUnlockPanics(t *testing.T) {
	l := NewSpinlock(0)
	g := l.Lock()
	g.Unlock()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on second Unlock")
		}
	}()
	g.Unlock()
}

func TestGuardValueAfterUnlockPanics(t *testing.T) {
	l := NewSpinlock(0)
	g := l.Lock()
	g.Unlock()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on Value after Unlock")
		}
	}()
	_ = g.Value()
}
