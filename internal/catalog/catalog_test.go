package catalog

import "testing"

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() != 5 {
		t.Fatalf("len = %d", c.Len())
	}

	wantOrder := []string{"web", "mobile", "ai", "uiux", "maintenance"}
	entries := c.Entries()
	for i, key := range wantOrder {
		if entries[i].Key != key {
			t.Fatalf("entry %d = %q, want %q", i, entries[i].Key, key)
		}
	}

	for _, e := range entries {
		if e.Name == "" || e.Description == "" || e.StartsFrom == "" {
			t.Fatalf("incomplete entry %q: %+v", e.Key, e)
		}
	}
}

func TestLookup(t *testing.T) {
	c := Default()
	e, ok := c.Lookup("ai")
	if !ok || e.Key != "ai" {
		t.Fatalf("lookup ai: ok=%v entry=%+v", ok, e)
	}
	if _, ok := c.Lookup("blockchain"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestEntriesIsACopy(t *testing.T) {
	c := Default()
	entries := c.Entries()
	entries[0].Name = "mutated"
	if c.Entries()[0].Name == "mutated" {
		t.Fatal("Entries leaked internal slice")
	}
}
