package usecase

import (
	"sync"
	"testing"
	"time"
)

func TestSessionLocks_SerializesSameID(t *testing.T) {
	l := newSessionLocks()
	var (
		mu      sync.Mutex
		active  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.lock("a")
			defer unlock()
			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()
	if maxSeen != 1 {
		t.Fatalf("expected at most one holder, saw %d", maxSeen)
	}
	if l.size() != 0 {
		t.Fatalf("expected entries released, got %d", l.size())
	}
}

func TestSessionLocks_IndependentIDs(t *testing.T) {
	l := newSessionLocks()
	unlockA := l.lock("a")
	done := make(chan struct{})
	go func() {
		unlock := l.lock("b")
		unlock()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("lock on b blocked by a")
	}
	if l.size() != 1 {
		t.Fatalf("expected only a held, got %d", l.size())
	}
	unlockA()
	if l.size() != 0 {
		t.Fatalf("expected empty table, got %d", l.size())
	}
}
