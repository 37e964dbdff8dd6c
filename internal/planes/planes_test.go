package planes

import "testing"

func TestPoolGetReturnsZeroed(t *testing.T) {
	t.Parallel()

	p := NewPool()
	pl := p.Get(8)
	if pl.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", pl.Len())
	}
	for i, v := range pl.Values() {
		if v != 0 {
			t.Fatalf("Values()[%d] = %v, want 0", i, v)
		}
	}
	p.Put(pl)
}

func TestPoolReuseIsZeroed(t *testing.T) {
	t.Parallel()

	p := NewPool()
	pl := p.Get(4)
	pl.Values()[0] = 42
	pl.Values()[3] = 43
	p.Put(pl)

	// Whether or not the pool hands back the same plane, it must be clean.
	again := p.Get(4)
	for i, v := range again.Values() {
		if v != 0 {
			t.Fatalf("reused Values()[%d] = %v, want 0", i, v)
		}
	}
	p.Put(again, nil)
}

func TestResize(t *testing.T) {
	t.Parallel()

	pl := &Plane{}
	pl.Resize(16)
	pl.Values()[15] = 1
	pl.Resize(4)
	if pl.Len() != 4 || cap(pl.Values()) != 16 {
		t.Fatalf("shrink: len=%d cap=%d, want 4/16", pl.Len(), cap(pl.Values()))
	}
	pl.Resize(16)
	if pl.Values()[15] != 0 {
		t.Fatal("grow within capacity did not zero")
	}
	pl.Resize(-1)
	if pl.Len() != 0 {
		t.Fatalf("negative resize: len=%d", pl.Len())
	}
}
