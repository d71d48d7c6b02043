package middleware

import (
	"context"
	"testing"
)

func TestCountersAccumulate(t *testing.T) {
	ctr := &Counters{}

	if msgs, kb := ctr.Snapshot(); msgs != 0 || kb {
		t.Fatalf("fresh counters = (%d, %v)", msgs, kb)
	}

	ctr.Add(false)
	ctr.Add(true)
	ctr.Add(false)

	msgs, kb := ctr.Snapshot()
	if msgs != 3 {
		t.Fatalf("messages = %d, want 3", msgs)
	}
	if !kb {
		t.Fatal("keyboard flag lost")
	}
}

func TestCountersContextRoundTrip(t *testing.T) {
	ctr := &Counters{}
	ctx := WithCounters(context.Background(), ctr)

	got := CountersFrom(ctx)
	if got != ctr {
		t.Fatalf("counters from context = %p, want %p", got, ctr)
	}
	got.Add(true)

	if msgs, kb := ctr.Snapshot(); msgs != 1 || !kb {
		t.Fatalf("snapshot = (%d, %v), want (1, true)", msgs, kb)
	}

	if CountersFrom(context.Background()) != nil {
		t.Fatal("bare context must carry no counters")
	}
}

func TestCountersNilSafety(t *testing.T) {
	var ctr *Counters
	ctr.Add(true)
	if msgs, kb := ctr.Snapshot(); msgs != 0 || kb {
		t.Fatalf("nil counters = (%d, %v)", msgs, kb)
	}
}
