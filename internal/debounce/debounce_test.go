package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTimer_SingleSchedule(t *testing.T) {
	var called int32
	timer := New(30 * time.Millisecond)

	timer.Schedule(func() { atomic.AddInt32(&called, 1) })
	if !timer.Pending() {
		t.Fatal("Pending() = false right after Schedule")
	}

	time.Sleep(100 * time.Millisecond)

	if got := atomic.LoadInt32(&called); got != 1 {
		t.Fatalf("called = %d, want 1", got)
	}
	if timer.Pending() {
		t.Fatal("Pending() = true after firing")
	}
}

func TestTimer_RapidSchedulesCollapseToLast(t *testing.T) {
	var called, last int32
	timer := New(50 * time.Millisecond)

	for i := 1; i <= 10; i++ {
		value := int32(i)
		timer.Schedule(func() {
			atomic.StoreInt32(&last, value)
			atomic.AddInt32(&called, 1)
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)

	if got := atomic.LoadInt32(&called); got != 1 {
		t.Fatalf("called = %d, want 1", got)
	}
	if got := atomic.LoadInt32(&last); got != 10 {
		t.Fatalf("last = %d, want 10", got)
	}
}

func TestTimer_Cancel(t *testing.T) {
	var called int32
	timer := New(30 * time.Millisecond)

	if timer.Cancel() {
		t.Fatal("Cancel() = true with nothing pending")
	}
	timer.Schedule(func() { atomic.AddInt32(&called, 1) })
	if !timer.Cancel() {
		t.Fatal("Cancel() = false with a pending callback")
	}

	time.Sleep(80 * time.Millisecond)
	if got := atomic.LoadInt32(&called); got != 0 {
		t.Fatalf("called = %d after Cancel, want 0", got)
	}
}

func TestTimer_StopRefusesFutureSchedules(t *testing.T) {
	var called int32
	timer := New(20 * time.Millisecond)

	timer.Schedule(func() { atomic.AddInt32(&called, 1) })
	timer.Stop()
	timer.Schedule(func() { atomic.AddInt32(&called, 1) })

	if timer.Pending() {
		t.Fatal("Pending() = true after Stop")
	}
	time.Sleep(60 * time.Millisecond)
	if got := atomic.LoadInt32(&called); got != 0 {
		t.Fatalf("called = %d after Stop, want 0", got)
	}
}
