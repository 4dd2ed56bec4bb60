package lock

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestLocalLocker_RunsFunction(t *testing.T) {
	l := NewLocalLocker()
	doctorID := uuid.New()

	ran := false
	err := l.WithDoctorLock(context.Background(), doctorID, func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Fatal("expected function to run")
	}
}

func TestLocalLocker_PropagatesError(t *testing.T) {
	l := NewLocalLocker()
	want := errors.New("boom")

	err := l.WithDoctorLock(context.Background(), uuid.New(), func(ctx context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestLocalLocker_SerializesSameDoctor(t *testing.T) {
	l := NewLocalLocker()
	doctorID := uuid.New()

	var mu sync.Mutex
	inSection := 0
	maxConcurrent := 0

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.WithDoctorLock(context.Background(), doctorID, func(ctx context.Context) error {
				mu.Lock()
				inSection++
				if inSection > maxConcurrent {
					maxConcurrent = inSection
				}
				mu.Unlock()

				mu.Lock()
				inSection--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	if maxConcurrent > 1 {
		t.Fatalf("expected serialized sections, saw %d concurrent", maxConcurrent)
	}
}

func TestLocalLocker_CancelledContext(t *testing.T) {
	l := NewLocalLocker()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.WithDoctorLock(ctx, uuid.New(), func(ctx context.Context) error {
		t.Fatal("function should not run with cancelled context")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
