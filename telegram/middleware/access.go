package middleware

import (
	"github.com/m3rciful/shoplistbot/logger"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// OwnerOptions defines how the single-owner guard behaves.
type OwnerOptions struct {
	OwnerID  int64
	OnReject tele.HandlerFunc
}

// OwnerOnlyMiddleware drops updates from anyone but the configured owner.
// The bot manages a single chat; a zero OwnerID disables the guard.
func OwnerOnlyMiddleware(opts OwnerOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if opts.OwnerID != 0 && c.Sender() != nil && c.Sender().ID != opts.OwnerID {
				logger.TG.Warn("foreign sender rejected",
					slog.String("event", "tg.access_denied"),
					slog.Int64("user_id", c.Sender().ID),
				)
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
