package memory

import (
	"fmt"
	"sync"
	"testing"
)

func TestRememberKeepsLastSix(t *testing.T) {
	tr := NewTranscript(DefaultLimit)
	for i := 0; i < 10; i++ {
		tr.Remember(1, RoleUser, fmt.Sprintf("msg-%d", i))
	}

	h := tr.Snapshot(1)
	if len(h) != DefaultLimit {
		t.Fatalf("len = %d", len(h))
	}
	if h[0].Content != "msg-4" || h[len(h)-1].Content != "msg-9" {
		t.Fatalf("unexpected window: first=%q last=%q", h[0].Content, h[len(h)-1].Content)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	tr := NewTranscript(0)
	tr.Remember(7, RoleUser, "hello")
	snap := tr.Snapshot(7)
	snap[0].Content = "mutated"
	if tr.Snapshot(7)[0].Content != "hello" {
		t.Fatal("snapshot leaked internal slice")
	}
	if len(tr.Snapshot(99)) != 0 {
		t.Fatal("unknown user should have empty history")
	}
}

func TestForget(t *testing.T) {
	tr := NewTranscript(3)
	tr.Remember(5, RoleUser, "hi")
	tr.Forget(5)
	if len(tr.Snapshot(5)) != 0 {
		t.Fatal("history survived Forget")
	}
}

func TestConcurrentUsers(t *testing.T) {
	tr := NewTranscript(DefaultLimit)
	var wg sync.WaitGroup
	for u := int64(0); u < 8; u++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				tr.Remember(userID, RoleUser, "ping")
				_ = tr.Snapshot(userID)
			}
		}(u)
	}
	wg.Wait()

	for u := int64(0); u < 8; u++ {
		if got := len(tr.Snapshot(u)); got != DefaultLimit {
			t.Fatalf("user %d history len = %d", u, got)
		}
	}
}
