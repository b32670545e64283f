package inspect

import (
	"testing"

	"github.com/objscope/objscope/pkg/errors"
)

func TestRegisterLookupRoundTrip(t *testing.T) {
	reg := NewRegistry()
	f := NewFactory(reg)

	n, err := f.New(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if n.ID == "" {
		t.Fatal("node should have an id")
	}

	got, err := reg.Lookup(n.ID)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != n {
		t.Error("Lookup should return the same node instance")
	}
}

func TestLookupUnknownID(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Lookup("no-such-id")
	if err == nil {
		t.Fatal("Lookup of unknown id should fail")
	}
	if !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("error code = %s, want NOT_FOUND_NODE", errors.GetCode(err))
	}
}

func TestChildrenAreRegistered(t *testing.T) {
	reg := NewRegistry()
	f := NewFactory(reg)

	n, err := f.New([]int{10, 20})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, c := range n.Children() {
		got, err := reg.Lookup(c.ID)
		if err != nil {
			t.Fatalf("child %s not registered: %v", c.ID, err)
		}
		if got != c {
			t.Error("Lookup should return the same child instance")
		}
	}
}

func TestUniqueIDs(t *testing.T) {
	reg := NewRegistry()
	f := NewFactory(reg)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		n, err := f.New(i)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if seen[n.ID] {
			t.Fatalf("duplicate id %s", n.ID)
		}
		seen[n.ID] = true
	}
	if reg.Len() != 50 {
		t.Errorf("Len = %d, want 50", reg.Len())
	}
}

func TestCapacityEviction(t *testing.T) {
	reg := NewRegistry(WithCapacity(2))
	f := NewFactory(reg)

	first, _ := f.New(1)
	second, _ := f.New(2)
	third, _ := f.New(3)

	// Least-recently-created is gone.
	if _, err := reg.Lookup(first.ID); !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Error("oldest node should have been evicted")
	}
	if _, err := reg.Lookup(second.ID); err != nil {
		t.Errorf("second node should survive: %v", err)
	}
	if _, err := reg.Lookup(third.ID); err != nil {
		t.Errorf("third node should survive: %v", err)
	}
	if reg.Len() != 2 {
		t.Errorf("Len = %d, want 2", reg.Len())
	}
}

func TestDefaultRegistry(t *testing.T) {
	n, err := New("hello")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := Default().Lookup(n.ID)
	if err != nil {
		t.Fatalf("default registry lookup: %v", err)
	}
	if got != n {
		t.Error("package-level New should register in the default registry")
	}
}
