// Package service owns the shopping document and sequentializes every
// inbound event: one exclusive lock, one mutation per event, reconcile the
// screen, then persist. Concurrent events queue on the lock rather than
// interleave, which keeps the document linearizable without any further
// coordination.
package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/m3rciful/shoplistbot/logger"
	"github.com/m3rciful/shoplistbot/screen"
	"github.com/m3rciful/shoplistbot/shoplist"
	"github.com/m3rciful/shoplistbot/store"
)

// TextEvent is an inbound chat message.
type TextEvent struct {
	ChatID    int64
	MessageID int
	UserID    int64
	Text      string
}

// ActionEvent is an inbound button press.
type ActionEvent struct {
	ChatID  int64
	UserID  int64
	Action  string
	Payload string
}

// Service drives the state machine over the single shared document.
type Service struct {
	mu     sync.Mutex
	doc    *shoplist.Document
	screen *screen.Screen
	msgr   screen.Messenger
	store  store.Store
}

// New builds the service around an already loaded document.
func New(doc *shoplist.Document, msgr screen.Messenger, st store.Store) *Service {
	doc.Normalize()
	return &Service{
		doc:    doc,
		screen: screen.New(msgr),
		msgr:   msgr,
		store:  st,
	}
}

// OnText handles a chat message. Comment messages are a pure no-op; every
// other message mutates the document, updates the screen, deletes the
// originating message, and persists. Transport failures are logged and the
// event counts as handled.
func (s *Service) OnText(ctx context.Context, ev TextEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, handled := shoplist.HandleText(s.doc, ev.Text)
	if !handled {
		logger.Debug(ctx, "list", "text.ignored",
			slog.String("payload", logger.SanitizeLimit(ev.Text, 64)),
		)
		return nil
	}

	s.show(ctx, ev.ChatID, *view)
	s.deleteInbound(ctx, ev)
	s.persist(ctx)
	return nil
}

// OnAction handles a button press. Unknown action tags and event-fatal
// router errors are logged and dropped without a view update or save.
func (s *Service) OnAction(ctx context.Context, ev ActionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, err := shoplist.HandleAction(s.doc, ev.Action, ev.Payload)
	if err != nil {
		logger.Error(ctx, "list", "action.rejected",
			slog.String("action", ev.Action),
			slog.String("payload", logger.SanitizeLimit(ev.Payload, 64)),
			slog.String("err", err.Error()),
		)
		return nil
	}
	if view == nil {
		logger.Warn(ctx, "list", "action.unknown",
			slog.String("action", ev.Action),
		)
		return nil
	}

	s.show(ctx, ev.ChatID, *view)
	s.persist(ctx)
	return nil
}

// ShowSummary forces the summary view onto the screen, used by /start.
func (s *Service) ShowSummary(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.show(ctx, chatID, shoplist.SummaryView(s.doc))
	s.persist(ctx)
	return nil
}

// SaveNow persists the document under the lock, used on shutdown.
func (s *Service) SaveNow(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persist(ctx)
}

// Snapshot returns a deep copy of the current document.
func (s *Service) Snapshot() *shoplist.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

func (s *Service) show(ctx context.Context, chatID int64, view shoplist.View) {
	if err := s.screen.Reconcile(ctx, s.doc, chatID, view); err != nil {
		// Terminal send failure: the event stays handled, the screen is stale.
		logger.Error(ctx, "tg", "screen.send_failed",
			slog.Int64("chat_id", chatID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
	}
}

func (s *Service) deleteInbound(ctx context.Context, ev TextEvent) {
	ref := shoplist.MessageRef{ChatID: ev.ChatID, MessageID: ev.MessageID}
	if err := s.msgr.Delete(ctx, ref); err != nil {
		logger.Warn(ctx, "tg", "inbound.delete_failed",
			slog.Int64("chat_id", ev.ChatID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
	}
}

func (s *Service) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.doc); err != nil {
		logger.Error(ctx, "store", "save.failed",
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
	}
}
