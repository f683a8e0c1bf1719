package catch

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-catch/internal/core"
)

func TestRunnerEndsRound(t *testing.T) {
	cfg := testConfig()
	cfg.Round.DurationSecs = 1

	var mu sync.Mutex
	ends := 0
	var last Snapshot
	r := NewRound(cfg, rand.New(rand.NewSource(1)), func(Result) {
		mu.Lock()
		ends++
		mu.Unlock()
	})
	rn := NewRunner(r, func(s Snapshot) {
		mu.Lock()
		last = s
		mu.Unlock()
	})
	rn.SetField(testField)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rn.Run(ctx); err != nil {
		t.Fatalf("Run() = %v, expected nil", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if ends != 1 {
		t.Errorf("round end callback fired %d times, expected 1", ends)
	}
	if !last.Ended() {
		t.Errorf("last published phase = %v, expected ended", last.Phase)
	}
	if last.RemainingSeconds != 0 {
		t.Errorf("last RemainingSeconds = %d, expected 0", last.RemainingSeconds)
	}
}

func TestRunnerCancel(t *testing.T) {
	r := NewRound(testConfig(), rand.New(rand.NewSource(1)), nil)
	rn := NewRunner(r, nil)
	rn.SetField(testField)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rn.Run(ctx) }()

	// Pointer input is safe while the loop runs.
	for i := 0; i < 20; i++ {
		rn.Pointer(core.PointerEvent{Action: core.PointerDown})
		rn.Pointer(core.PointerEvent{Action: core.PointerMove, X: float64(i * 20), Y: 500, Bounds: core.NewRectF(0, 0, 400, 600)})
		time.Sleep(2 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, expected context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}

	snap := rn.Snapshot()
	if snap.Phase != PhasePlaying {
		t.Errorf("Phase = %v after cancel, expected playing", snap.Phase)
	}
	if snap.Catcher.X < 5 || snap.Catcher.X > 95 {
		t.Errorf("catcher X = %v outside its band", snap.Catcher.X)
	}
}

func TestRunnerEndCallbackMayUseRunner(t *testing.T) {
	cfg := testConfig()
	cfg.Round.DurationSecs = 1

	var rn *Runner
	got := make(chan Snapshot, 1)
	r := NewRound(cfg, rand.New(rand.NewSource(1)), func(Result) {
		rn.SetField(testField)
		got <- rn.Snapshot()
	})
	rn = NewRunner(r, nil)
	rn.SetField(testField)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- rn.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() = %v, expected nil", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run() did not return: the end callback could not reach the runner")
	}

	select {
	case snap := <-got:
		if !snap.Ended() {
			t.Errorf("phase seen from the end callback = %v, expected ended", snap.Phase)
		}
	default:
		t.Error("end callback did not fire")
	}
}
