package telegram

import (
	"context"
	"testing"

	"github.com/m3rciful/shoplistbot/shoplist"
	"github.com/m3rciful/shoplistbot/telegram/middleware"
)

func TestCountOutboundReportsToUpdateCounters(t *testing.T) {
	ctr := &middleware.Counters{}
	ctx := middleware.WithCounters(context.Background(), ctr)

	countOutbound(ctx, shoplist.View{Text: "Shopping list:"})
	countOutbound(ctx, shoplist.View{
		Text:    "Shopping list:",
		Buttons: shoplist.MainMenuButtons(),
	})

	msgs, kb := ctr.Snapshot()
	if msgs != 2 {
		t.Fatalf("messages = %d, want 2", msgs)
	}
	if !kb {
		t.Fatal("keyboard flag not set by a buttoned view")
	}
}

func TestCountOutboundWithoutCounters(t *testing.T) {
	// A context with no counters attached must be a safe no-op.
	countOutbound(context.Background(), shoplist.View{Text: "x"})
}
