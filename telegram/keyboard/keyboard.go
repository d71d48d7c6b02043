// Package keyboard renders view button layouts as Telegram inline keyboards.
package keyboard

import (
	"github.com/m3rciful/shoplistbot/shoplist"

	tele "gopkg.in/telebot.v4"
)

// Markup converts a view's button layout into an inline keyboard markup.
// Rows and in-row order are preserved exactly.
func Markup(layout shoplist.ButtonLayout) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	inline := make([][]tele.InlineButton, len(layout))
	for i, row := range layout {
		r := make([]tele.InlineButton, len(row))
		for j, btn := range row {
			// markup.Data joins variadic data with "|"; an empty Data
			// argument would still produce a trailing separator.
			var b tele.Btn
			if btn.Data == "" {
				b = markup.Data(btn.Label, btn.Action)
			} else {
				b = markup.Data(btn.Label, btn.Action, btn.Data)
			}
			r[j] = *b.Inline()
		}
		inline[i] = r
	}
	markup.InlineKeyboard = inline
	return markup
}
