package keyboard

import (
	"testing"

	"github.com/m3rciful/shoplistbot/shoplist"
)

func TestMarkupPreservesLayout(t *testing.T) {
	layout := shoplist.ButtonLayout{
		{
			{Label: "🛒", Action: "start_remove"},
			{Label: "📝🛒", Action: "list_recipes"},
		},
		{
			{Label: "Milk", Action: "toggle", Data: "0"},
		},
	}

	markup := Markup(layout)
	kb := markup.InlineKeyboard
	if len(kb) != 2 || len(kb[0]) != 2 || len(kb[1]) != 1 {
		t.Fatalf("keyboard shape = %+v", kb)
	}
	if kb[0][0].Text != "🛒" || kb[0][0].Unique != "start_remove" {
		t.Fatalf("button = %+v", kb[0][0])
	}
	if kb[0][0].Data != "" {
		t.Fatalf("dataless button carries data %q", kb[0][0].Data)
	}
	if kb[1][0].Unique != "toggle" || kb[1][0].Data != "0" {
		t.Fatalf("toggle button = %+v", kb[1][0])
	}
}

func TestMarkupEmptyLayout(t *testing.T) {
	markup := Markup(nil)
	if len(markup.InlineKeyboard) != 0 {
		t.Fatalf("keyboard = %+v", markup.InlineKeyboard)
	}
}
