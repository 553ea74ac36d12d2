package status

import "testing"

func TestMetricMapGetCachesPointer(t *testing.T) {
	r := NewRegistry()

	a := r.Ints.Get("vehicle.mounts")
	b := r.Ints.Get("vehicle.mounts")
	if a != b {
		t.Fatal("Expected Get to return the cached pointer")
	}

	a.Add(3)
	if got := b.Load(); got != 3 {
		t.Errorf("Expected 3, got %d", got)
	}
	if !r.Ints.Has("vehicle.mounts") {
		t.Error("Expected key to be registered")
	}
}

func TestRegistrySnapshotOrder(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("b.count").Store(2)
	r.Ints.Get("a.count").Store(1)
	r.Bools.Get("c.flag").Store(true)

	want := "a.count=1 b.count=2 c.flag=true"
	if got := r.Snapshot(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if r.TotalCount() != 3 {
		t.Errorf("Expected 3 metrics, got %d", r.TotalCount())
	}
}
