// Package screen keeps the single displayed chat message synchronized with
// the document's current view, editing in place when possible and sending a
// fresh message when the old reference is dead.
package screen

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m3rciful/shoplistbot/logger"
	"github.com/m3rciful/shoplistbot/shoplist"
)

// ErrUnchanged reports that an edit found the displayed content already
// identical. It is a success alias, not a failure: callers must not retry.
var ErrUnchanged = errors.New("screen: message content unchanged")

// Messenger is the outbound transport surface the screen depends on.
type Messenger interface {
	// Send posts a new message and returns its reference.
	Send(ctx context.Context, chatID int64, view shoplist.View) (shoplist.MessageRef, error)
	// Edit replaces text and buttons of an existing message. It returns the
	// possibly reassigned reference, or ErrUnchanged when the content is
	// already identical.
	Edit(ctx context.Context, ref shoplist.MessageRef, view shoplist.View) (shoplist.MessageRef, error)
	// Delete removes a message, best-effort.
	Delete(ctx context.Context, ref shoplist.MessageRef) error
}

// Screen reconciles the desired view against the document's active message.
type Screen struct {
	m Messenger
}

// New builds a Screen over the given messenger.
func New(m Messenger) *Screen {
	return &Screen{m: m}
}

// Reconcile makes the chat show exactly one message with the given view.
// An existing active message is edited in place; an unchanged edit counts
// as success; any other edit failure falls through to sending a new
// message, which replaces the dead reference. Only the final send failure
// propagates.
func (s *Screen) Reconcile(ctx context.Context, doc *shoplist.Document, chatID int64, view shoplist.View) error {
	if am := doc.ActiveMessage; am != nil {
		ref, err := s.m.Edit(ctx, *am, view)
		switch {
		case err == nil:
			// The platform may reassign the identifier on some edits.
			doc.ActiveMessage = &ref
			return nil
		case errors.Is(err, ErrUnchanged):
			logger.Debug(ctx, "tg", "screen.unchanged",
				slog.Int64("chat_id", am.ChatID),
			)
			return nil
		default:
			logger.Warn(ctx, "tg", "screen.edit_failed",
				slog.Int64("chat_id", am.ChatID),
				slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			)
		}
	}

	ref, err := s.m.Send(ctx, chatID, view)
	if err != nil {
		return err
	}
	doc.ActiveMessage = &ref
	return nil
}
