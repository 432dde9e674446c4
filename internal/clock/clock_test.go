package clock

import (
	"sync"
	"testing"
	"time"
)

func TestFixed(t *testing.T) {
	at := time.Date(2025, 3, 14, 6, 45, 0, 0, time.UTC)
	c := Fixed(at)

	for i := 0; i < 3; i++ {
		if got := c.Now(); !got.Equal(at) {
			t.Errorf("Fixed.Now() = %v, want %v", got, at)
		}
	}
}

func TestSystem_Location(t *testing.T) {
	loc := time.FixedZone("Test", 3*60*60)
	now := System{Location: loc}.Now()

	if now.Location() != loc {
		t.Errorf("System.Now() location = %v, want %v", now.Location(), loc)
	}
}

func TestOverridable_SetAndClear(t *testing.T) {
	base := Fixed(time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC))
	o := NewOverridable(base)

	if o.Active() {
		t.Fatal("new Overridable should have no override")
	}
	if got := o.Now(); !got.Equal(base.Now()) {
		t.Errorf("Now() without override = %v, want base %v", got, base.Now())
	}

	pinned := time.Date(2025, 3, 14, 7, 15, 0, 0, time.UTC)
	o.Set(pinned)

	for i := 0; i < 3; i++ {
		if got := o.Now(); !got.Equal(pinned) {
			t.Errorf("Now() with override = %v, want %v", got, pinned)
		}
	}
	if got, ok := o.Override(); !ok || !got.Equal(pinned) {
		t.Errorf("Override() = %v, %v; want %v, true", got, ok, pinned)
	}

	o.Clear()
	if o.Active() {
		t.Error("Clear() should remove the override")
	}
	if got := o.Now(); !got.Equal(base.Now()) {
		t.Errorf("Now() after Clear = %v, want base %v", got, base.Now())
	}
}

func TestOverridable_Changes(t *testing.T) {
	o := NewOverridable(Fixed(time.Time{}))

	select {
	case <-o.Changes():
		t.Fatal("unexpected change signal before any Set")
	default:
	}

	o.Set(time.Now())
	o.Set(time.Now())

	select {
	case <-o.Changes():
	default:
		t.Fatal("expected change signal after Set")
	}

	// Both Sets coalesce into a single pending signal.
	select {
	case <-o.Changes():
		t.Fatal("expected signals to coalesce")
	default:
	}

	o.Clear()
	select {
	case <-o.Changes():
	default:
		t.Fatal("expected change signal after Clear")
	}

	// Clearing an already cleared clock is not a change.
	o.Clear()
	select {
	case <-o.Changes():
		t.Fatal("unexpected change signal for no-op Clear")
	default:
	}
}

func TestOverridable_ConcurrentAccess(t *testing.T) {
	o := NewOverridable(Fixed(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	pinned := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = o.Now()
				_, _ = o.Override()
			}
		}()
	}

	for j := 0; j < 100; j++ {
		o.Set(pinned)
		o.Clear()
	}
	wg.Wait()
}

func TestNewOverridable_NilBase(t *testing.T) {
	o := NewOverridable(nil)
	if _, ok := o.Base().(System); !ok {
		t.Errorf("Base() = %T, want System", o.Base())
	}
}
