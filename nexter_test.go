package starlake_test

import (
	"testing"

	"github.com/sparkify/starlake"
)

func TestNexter(t *testing.T) {
	n := starlake.NewNexter(starlake.NexterStartFrom(19))
	if num := n.Next(); num != 19 {
		t.Fatalf("expected 19 for Next, but %d", num)
	}
	if num := n.Last(); num != 19 {
		t.Fatalf("expected 19 for Last, but %d", num)
	}
	if num := n.Next(); num != 20 {
		t.Fatalf("expected 20 for Next, but %d", num)
	}
}

func TestNexterFromZero(t *testing.T) {
	n := starlake.NewNexter()
	for i := uint64(0); i < 5; i++ {
		if num := n.Next(); num != i {
			t.Fatalf("expected %d for Next, but %d", i, num)
		}
	}
}
