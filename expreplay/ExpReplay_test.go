package expreplay

import (
	"fmt"
	"testing"

	"github.com/yyc3/adaptive/transition"
)

// numbered returns an experience whose id encodes its insertion order.
func numbered(i int) transition.Experience {
	return transition.Experience{ID: fmt.Sprintf("exp-%d", i), Reward: float64(i)}
}

func TestNewRejectsInvalidCapacity(t *testing.T) {
	if _, err := New(0, 1); err == nil {
		t.Error("expected an error for capacity 0")
	}
}

func TestAddEvictsOldestAtCapacity(t *testing.T) {
	b, err := New(5, 1)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 8; i++ {
		b.Add(numbered(i))
	}

	if b.Len() != 5 {
		t.Fatalf("expected length 5, got %v", b.Len())
	}

	// Experiences 0-2 are the evicted ones; 3-7 remain in order
	recent := b.Recent(5)
	for i, e := range recent {
		if want := fmt.Sprintf("exp-%d", i+3); e.ID != want {
			t.Errorf("position %v: expected %v, got %v", i, want, e.ID)
		}
	}
}

func TestSampleReturnsAtMostLen(t *testing.T) {
	b, err := New(10, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		b.Add(numbered(i))
	}

	if got := len(b.Sample(10)); got != 3 {
		t.Errorf("expected 3 samples, got %v", got)
	}
}

func TestSampleEmptyBuffer(t *testing.T) {
	b, err := New(10, 1)
	if err != nil {
		t.Fatal(err)
	}

	if got := b.Sample(5); len(got) != 0 {
		t.Errorf("expected no samples from an empty buffer, got %v", len(got))
	}
}

func TestSampleDrawsOnlyStoredExperiences(t *testing.T) {
	b, err := New(4, 42)
	if err != nil {
		t.Fatal(err)
	}

	stored := make(map[string]bool)
	for i := 0; i < 4; i++ {
		e := numbered(i)
		stored[e.ID] = true
		b.Add(e)
	}

	for _, e := range b.Sample(4) {
		if !stored[e.ID] {
			t.Errorf("sampled unknown experience %v", e.ID)
		}
	}
}

func TestRecentChronologicalAfterWrap(t *testing.T) {
	b, err := New(5, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 7; i++ {
		b.Add(numbered(i))
	}

	recent := b.Recent(3)
	for i, e := range recent {
		if want := fmt.Sprintf("exp-%d", i+4); e.ID != want {
			t.Errorf("position %v: expected %v, got %v", i, want, e.ID)
		}
	}
}

func TestClear(t *testing.T) {
	b, err := New(5, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 7; i++ {
		b.Add(numbered(i))
	}

	b.Clear()
	if b.Len() != 0 {
		t.Errorf("expected empty buffer after clear, got length %v", b.Len())
	}
	if b.Capacity() != 5 {
		t.Errorf("expected capacity 5 after clear, got %v", b.Capacity())
	}

	b.Add(numbered(99))
	if got := b.Recent(1)[0].ID; got != "exp-99" {
		t.Errorf("expected exp-99 after clear and add, got %v", got)
	}
}
