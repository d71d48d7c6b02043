package screen

import (
	"context"
	"errors"
	"testing"

	"github.com/m3rciful/shoplistbot/shoplist"
)

// fakeMessenger records calls and returns scripted results.
type fakeMessenger struct {
	sends   int
	edits   int
	nextID  int
	editErr error
	sendErr error

	lastView shoplist.View
}

func (f *fakeMessenger) Send(_ context.Context, chatID int64, view shoplist.View) (shoplist.MessageRef, error) {
	f.sends++
	f.lastView = view
	if f.sendErr != nil {
		return shoplist.MessageRef{}, f.sendErr
	}
	f.nextID++
	return shoplist.MessageRef{ChatID: chatID, MessageID: f.nextID}, nil
}

func (f *fakeMessenger) Edit(_ context.Context, ref shoplist.MessageRef, view shoplist.View) (shoplist.MessageRef, error) {
	f.edits++
	f.lastView = view
	if f.editErr != nil {
		return shoplist.MessageRef{}, f.editErr
	}
	return ref, nil
}

func (f *fakeMessenger) Delete(context.Context, shoplist.MessageRef) error { return nil }

func view(text string) shoplist.View {
	return shoplist.View{Text: text}
}

func TestReconcileSendsWhenNoActiveMessage(t *testing.T) {
	m := &fakeMessenger{}
	s := New(m)
	doc := shoplist.NewDocument()

	if err := s.Reconcile(context.Background(), doc, 7, view("hello")); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if m.sends != 1 || m.edits != 0 {
		t.Fatalf("sends=%d edits=%d, want 1/0", m.sends, m.edits)
	}
	if doc.ActiveMessage == nil || doc.ActiveMessage.ChatID != 7 {
		t.Fatalf("active message = %+v", doc.ActiveMessage)
	}
}

func TestReconcileEditsActiveMessage(t *testing.T) {
	m := &fakeMessenger{}
	s := New(m)
	doc := shoplist.NewDocument()
	doc.ActiveMessage = &shoplist.MessageRef{ChatID: 7, MessageID: 3}

	if err := s.Reconcile(context.Background(), doc, 7, view("hello")); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if m.edits != 1 || m.sends != 0 {
		t.Fatalf("sends=%d edits=%d, want 0/1", m.sends, m.edits)
	}
	if doc.ActiveMessage.MessageID != 3 {
		t.Fatalf("active message changed: %+v", doc.ActiveMessage)
	}
}

func TestReconcileUnchangedIsSuccess(t *testing.T) {
	m := &fakeMessenger{editErr: ErrUnchanged}
	s := New(m)
	doc := shoplist.NewDocument()
	doc.ActiveMessage = &shoplist.MessageRef{ChatID: 7, MessageID: 3}

	if err := s.Reconcile(context.Background(), doc, 7, view("same")); err != nil {
		t.Fatalf("unchanged edit must not fail: %v", err)
	}
	if m.sends != 0 {
		t.Fatal("unchanged edit must not fall through to send")
	}
	if doc.ActiveMessage.MessageID != 3 {
		t.Fatalf("active message changed: %+v", doc.ActiveMessage)
	}
}

func TestReconcileSelfHealsDeadReference(t *testing.T) {
	m := &fakeMessenger{editErr: errors.New("message to edit not found")}
	s := New(m)
	doc := shoplist.NewDocument()
	doc.ActiveMessage = &shoplist.MessageRef{ChatID: 7, MessageID: 3}

	if err := s.Reconcile(context.Background(), doc, 7, view("hello")); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if m.edits != 1 || m.sends != 1 {
		t.Fatalf("sends=%d edits=%d, want 1/1", m.sends, m.edits)
	}
	if doc.ActiveMessage.MessageID == 3 {
		t.Fatal("dead reference not replaced")
	}
}

func TestReconcileSendFailurePropagates(t *testing.T) {
	boom := errors.New("network down")
	m := &fakeMessenger{editErr: errors.New("dead ref"), sendErr: boom}
	s := New(m)
	doc := shoplist.NewDocument()
	doc.ActiveMessage = &shoplist.MessageRef{ChatID: 7, MessageID: 3}

	err := s.Reconcile(context.Background(), doc, 7, view("hello"))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want send failure", err)
	}
	// The stale reference survives; a later event retries the edit first.
	if doc.ActiveMessage == nil || doc.ActiveMessage.MessageID != 3 {
		t.Fatalf("active message = %+v", doc.ActiveMessage)
	}
}
