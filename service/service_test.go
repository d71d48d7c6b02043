package service

import (
	"context"
	"errors"
	"testing"

	"github.com/m3rciful/shoplistbot/shoplist"
	"github.com/m3rciful/shoplistbot/store"
)

// fakeMessenger drives the service without a live bot.
type fakeMessenger struct {
	nextID  int
	sends   int
	edits   int
	deletes []shoplist.MessageRef
	editErr error

	lastText string
}

func (f *fakeMessenger) Send(_ context.Context, chatID int64, view shoplist.View) (shoplist.MessageRef, error) {
	f.sends++
	f.lastText = view.Text
	f.nextID++
	return shoplist.MessageRef{ChatID: chatID, MessageID: f.nextID}, nil
}

func (f *fakeMessenger) Edit(_ context.Context, ref shoplist.MessageRef, view shoplist.View) (shoplist.MessageRef, error) {
	f.edits++
	f.lastText = view.Text
	if f.editErr != nil {
		return shoplist.MessageRef{}, f.editErr
	}
	return ref, nil
}

func (f *fakeMessenger) Delete(_ context.Context, ref shoplist.MessageRef) error {
	f.deletes = append(f.deletes, ref)
	return nil
}

func newTestService() (*Service, *fakeMessenger, *store.MemoryStore) {
	m := &fakeMessenger{}
	st := store.NewMemory()
	return New(shoplist.NewDocument(), m, st), m, st
}

func TestOnTextAddsItemAndCleansUp(t *testing.T) {
	svc, m, st := newTestService()
	ctx := context.Background()

	err := svc.OnText(ctx, TextEvent{ChatID: 7, MessageID: 101, Text: "Milk"})
	if err != nil {
		t.Fatalf("on text: %v", err)
	}

	if m.sends != 1 {
		t.Fatalf("sends = %d, want 1", m.sends)
	}
	if len(m.deletes) != 1 || m.deletes[0].MessageID != 101 {
		t.Fatalf("deletes = %+v", m.deletes)
	}
	if st.Saves() != 1 {
		t.Fatalf("saves = %d, want 1", st.Saves())
	}

	doc := svc.Snapshot()
	if len(doc.Items) != 1 || doc.Items[0].Name != "Milk" {
		t.Fatalf("items = %+v", doc.Items)
	}
	if doc.ActiveMessage == nil {
		t.Fatal("active message not recorded")
	}
}

func TestOnTextCommentIsPureNoOp(t *testing.T) {
	svc, m, st := newTestService()
	ctx := context.Background()

	err := svc.OnText(ctx, TextEvent{ChatID: 7, MessageID: 101, Text: "# note to self"})
	if err != nil {
		t.Fatalf("on text: %v", err)
	}

	if m.sends != 0 || m.edits != 0 {
		t.Fatal("comment must not touch the screen")
	}
	if len(m.deletes) != 0 {
		t.Fatal("comment message must not be deleted")
	}
	if st.Saves() != 0 {
		t.Fatal("comment must not persist")
	}
}

func TestOnActionToggleOutOfRangeIsEventFatal(t *testing.T) {
	svc, m, st := newTestService()
	ctx := context.Background()

	if err := svc.OnText(ctx, TextEvent{ChatID: 7, MessageID: 1, Text: "Milk"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	savesBefore := st.Saves()
	sendsBefore := m.sends
	editsBefore := m.edits

	err := svc.OnAction(ctx, ActionEvent{ChatID: 7, Action: shoplist.ActionToggle, Payload: "9"})
	if err != nil {
		t.Fatalf("event-fatal errors are absorbed, got %v", err)
	}
	if st.Saves() != savesBefore {
		t.Fatal("failed toggle must not persist")
	}
	if m.sends != sendsBefore || m.edits != editsBefore {
		t.Fatal("failed toggle must not touch the screen")
	}
}

func TestOnActionUnknownIsDropped(t *testing.T) {
	svc, m, st := newTestService()
	ctx := context.Background()

	if err := svc.OnAction(ctx, ActionEvent{ChatID: 7, Action: "bogus"}); err != nil {
		t.Fatalf("unknown action: %v", err)
	}
	if m.sends != 0 || st.Saves() != 0 {
		t.Fatal("unknown action must not show or persist")
	}
}

func TestRecipeFlowEndToEnd(t *testing.T) {
	svc, m, st := newTestService()
	ctx := context.Background()

	steps := []func() error{
		func() error {
			return svc.OnAction(ctx, ActionEvent{ChatID: 7, Action: shoplist.ActionStartRecipe})
		},
		func() error { return svc.OnText(ctx, TextEvent{ChatID: 7, MessageID: 2, Text: "Pasta"}) },
		func() error { return svc.OnText(ctx, TextEvent{ChatID: 7, MessageID: 3, Text: "Noodles"}) },
		func() error { return svc.OnText(ctx, TextEvent{ChatID: 7, MessageID: 4, Text: "Sauce"}) },
		func() error {
			return svc.OnAction(ctx, ActionEvent{ChatID: 7, Action: shoplist.ActionRecipeDone})
		},
		func() error { return svc.OnText(ctx, TextEvent{ChatID: 7, MessageID: 5, Text: "Pasta"}) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	doc := svc.Snapshot()
	if len(doc.Items) != 2 {
		t.Fatalf("items = %+v, want expanded recipe", doc.Items)
	}
	if got := doc.Recipes["Pasta"]; len(got) != 2 {
		t.Fatalf("recipe = %v", got)
	}
	if doc.CurrentRecipe != nil {
		t.Fatal("capture mode survived the flow")
	}

	// Every handled event persisted exactly once.
	if st.Saves() != len(steps) {
		t.Fatalf("saves = %d, want %d", st.Saves(), len(steps))
	}

	// First event sends, the rest edit the same screen message.
	if m.sends != 1 || m.edits != len(steps)-1 {
		t.Fatalf("sends=%d edits=%d", m.sends, m.edits)
	}
}

func TestSendFailureStillCountsAsHandled(t *testing.T) {
	m := &fakeMessenger{}
	st := store.NewMemory()
	svc := New(shoplist.NewDocument(), m, st)
	ctx := context.Background()

	// Seed an active message, then make every edit fail with a dead
	// reference so the screen falls back to sending.
	if err := svc.OnText(ctx, TextEvent{ChatID: 7, MessageID: 1, Text: "Milk"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	m.editErr = errors.New("message to edit not found")

	if err := svc.OnText(ctx, TextEvent{ChatID: 7, MessageID: 2, Text: "Eggs"}); err != nil {
		t.Fatalf("transport trouble must not fail the event: %v", err)
	}

	doc := svc.Snapshot()
	if len(doc.Items) != 2 {
		t.Fatalf("items = %+v", doc.Items)
	}
	if st.Saves() != 2 {
		t.Fatalf("saves = %d, want 2", st.Saves())
	}
}

func TestShowSummary(t *testing.T) {
	svc, m, st := newTestService()
	ctx := context.Background()

	if err := svc.ShowSummary(ctx, 7); err != nil {
		t.Fatalf("show summary: %v", err)
	}
	if m.sends != 1 {
		t.Fatalf("sends = %d, want 1", m.sends)
	}
	if m.lastText != "Shopping list:" {
		t.Fatalf("text = %q", m.lastText)
	}
	if st.Saves() != 1 {
		t.Fatalf("saves = %d, want 1", st.Saves())
	}
}
