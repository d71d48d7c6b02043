package telegram

import (
	"context"
	"errors"
	"strconv"

	"github.com/m3rciful/shoplistbot/screen"
	"github.com/m3rciful/shoplistbot/shoplist"
	"github.com/m3rciful/shoplistbot/telegram/keyboard"
	"github.com/m3rciful/shoplistbot/telegram/middleware"
	"github.com/m3rciful/shoplistbot/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

// BotMessenger implements screen.Messenger over a live Telebot instance.
// Send and Edit stay synchronous because the screen needs the resulting
// message reference; Delete is fire-and-forget through the dispatcher.
type BotMessenger struct {
	bot        *tele.Bot
	dispatcher *sender.Dispatcher
}

// NewBotMessenger wires the messenger to the bot and the async sender.
func NewBotMessenger(bot *tele.Bot, dispatcher *sender.Dispatcher) *BotMessenger {
	return &BotMessenger{bot: bot, dispatcher: dispatcher}
}

// Send posts a new message with the view's text and keyboard.
func (m *BotMessenger) Send(ctx context.Context, chatID int64, view shoplist.View) (shoplist.MessageRef, error) {
	msg, err := m.bot.Send(tele.ChatID(chatID), view.Text, keyboard.Markup(view.Buttons))
	if err != nil {
		return shoplist.MessageRef{}, err
	}
	countOutbound(ctx, view)
	return shoplist.MessageRef{ChatID: msg.Chat.ID, MessageID: msg.ID}, nil
}

// Edit rewrites an existing message in place. A "not modified" response from
// the API maps to screen.ErrUnchanged so the caller treats it as success.
func (m *BotMessenger) Edit(ctx context.Context, ref shoplist.MessageRef, view shoplist.View) (shoplist.MessageRef, error) {
	stored := tele.StoredMessage{
		MessageID: strconv.Itoa(ref.MessageID),
		ChatID:    ref.ChatID,
	}
	msg, err := m.bot.Edit(stored, view.Text, keyboard.Markup(view.Buttons))
	if err != nil {
		if errors.Is(err, tele.ErrSameMessageContent) {
			return ref, screen.ErrUnchanged
		}
		return shoplist.MessageRef{}, err
	}
	countOutbound(ctx, view)
	if msg == nil {
		return ref, nil
	}
	return shoplist.MessageRef{ChatID: msg.Chat.ID, MessageID: msg.ID}, nil
}

// countOutbound reports a successful outbound message on the update's
// counters, when the context carries any.
func countOutbound(ctx context.Context, view shoplist.View) {
	if ctr := middleware.CountersFrom(ctx); ctr != nil {
		ctr.Add(len(view.Buttons) > 0)
	}
}

// Delete removes a message asynchronously. When the queue is unavailable the
// call degrades to a synchronous delete so inbound cleanup still happens.
func (m *BotMessenger) Delete(ctx context.Context, ref shoplist.MessageRef) error {
	stored := tele.StoredMessage{
		MessageID: strconv.Itoa(ref.MessageID),
		ChatID:    ref.ChatID,
	}
	if m.dispatcher != nil {
		err := m.dispatcher.Enqueue(ctx, "delete", "deleteMessage", func() error {
			return m.bot.Delete(stored)
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, sender.ErrQueueFull) && !errors.Is(err, sender.ErrQueueClosed) {
			return err
		}
	}
	return m.bot.Delete(stored)
}
