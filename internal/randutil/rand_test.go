package randutil

import "testing"

func TestNewIsDeterministic(t *testing.T) {
	t.Parallel()
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Uint64(), b.Uint64(); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
}

func TestStreamsDiffer(t *testing.T) {
	t.Parallel()
	s0, s1 := Stream(7, 0), Stream(7, 1)
	same := 0
	for i := 0; i < 64; i++ {
		if s0.Uint64() == s1.Uint64() {
			same++
		}
	}
	if same == 64 {
		t.Fatal("streams 0 and 1 produced identical sequences")
	}
}

func TestSeed(t *testing.T) {
	t.Parallel()
	seed := int64(99)
	if got := Seed(&seed); got != 99 {
		t.Errorf("Seed(&99) = %d", got)
	}
	if Seed(nil) == 0 {
		t.Error("Seed(nil) returned zero")
	}
}
