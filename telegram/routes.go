package telegram

import (
	"time"

	"github.com/m3rciful/shoplistbot/logger"
	"github.com/m3rciful/shoplistbot/service"
	"github.com/m3rciful/shoplistbot/telegram/callbacks"
	"github.com/m3rciful/shoplistbot/telegram/middleware"

	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// Routes binds the service to bot endpoints: /start, plain text, and all
// inline button callbacks.
func Routes(svc *service.Service) []Route {
	return []Route{
		{Endpoint: "/start", Handler: wrap("start", func(c tele.Context) error {
			ctx := middleware.WithHandler(c, "start")
			return svc.ShowSummary(ctx, c.Chat().ID)
		})},
		{Endpoint: tele.OnText, Handler: wrap("text", func(c tele.Context) error {
			ctx := middleware.WithHandler(c, "text")
			msg := c.Message()
			if msg == nil {
				return nil
			}
			ev := service.TextEvent{
				ChatID:    msg.Chat.ID,
				MessageID: msg.ID,
				Text:      msg.Text,
			}
			if msg.Sender != nil {
				ev.UserID = msg.Sender.ID
			}
			return svc.OnText(ctx, ev)
		})},
		{Endpoint: tele.OnCallback, Handler: wrap("callback", func(c tele.Context) error {
			ctx := middleware.WithHandler(c, "callback")
			cb := c.Callback()
			if cb == nil {
				return nil
			}
			// Ack first so the client stops its spinner even if handling fails.
			_ = c.Respond()

			ev := service.ActionEvent{
				Action:  callbacks.CallbackKey(c),
				Payload: callbacks.CallbackPayload(c),
			}
			if c.Chat() != nil {
				ev.ChatID = c.Chat().ID
			}
			if c.Sender() != nil {
				ev.UserID = c.Sender().ID
			}
			return svc.OnAction(ctx, ev)
		})},
	}
}

// wrap emits one summary line per handled update with outbound counters.
func wrap(name string, h tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		err := h(c)

		ctx := middleware.BuildContext(c)
		start, _ := c.Get("update_start").(time.Time)
		msgs, kb := middleware.GetCounters(c)
		attrs := []slog.Attr{
			slog.String("handler", name),
			slog.Int("messages", msgs),
			slog.Bool("kb", kb),
		}
		if !start.IsZero() {
			attrs = append(attrs, slog.Duration("duration", logger.Took(start)))
		}
		if err != nil {
			attrs = append(attrs, slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
			logger.Error(ctx, "tg", "handler.done", attrs...)
			return err
		}
		logger.Debug(ctx, "tg", "handler.done", attrs...)
		return nil
	}
}
