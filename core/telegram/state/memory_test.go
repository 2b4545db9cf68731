package state

import "testing"

func TestStateLifecycle(t *testing.T) {
	m := NewMemoryManager()
	const user int64 = 42

	if m.InProgress(user) {
		t.Fatal("fresh user should be idle")
	}
	if got := m.GetState(user); got != StateIdle {
		t.Fatalf("state = %q", got)
	}

	m.SetState(user, State("contact:name"))
	if !m.InProgress(user) {
		t.Fatal("user should be in progress")
	}

	m.SetData(user, "name", "Alice")
	if v, ok := m.GetData(user, "name"); !ok || v != "Alice" {
		t.Fatalf("data = %q, ok=%v", v, ok)
	}

	m.Clear(user)
	if m.InProgress(user) {
		t.Fatal("cleared user should be idle")
	}
	if _, ok := m.GetData(user, "name"); ok {
		t.Fatal("data survived Clear")
	}
}

func TestDataWithoutStateStaysIdle(t *testing.T) {
	m := NewMemoryManager()
	const user int64 = 7

	m.SetData(user, "need", "web")
	if m.InProgress(user) {
		t.Fatal("storing data must not start a conversation")
	}
	if v, ok := m.GetData(user, "need"); !ok || v != "web" {
		t.Fatalf("data = %q, ok=%v", v, ok)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	m := NewMemoryManager()
	m.SetState(1, State("contact:email"))
	if m.InProgress(2) {
		t.Fatal("state leaked across users")
	}
}
