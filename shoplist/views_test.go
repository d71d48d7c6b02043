package shoplist

import "testing"

func TestSummaryTextFormat(t *testing.T) {
	d := NewDocument()
	if got := d.SummaryText(); got != "Shopping list:" {
		t.Fatalf("empty summary = %q", got)
	}

	d.AddItem("Milk")
	d.AddItem("Eggs")
	want := "Shopping list:\n - Milk\n - Eggs"
	if got := d.SummaryText(); got != want {
		t.Fatalf("summary = %q, want %q", got, want)
	}
}

func TestMainMenuLayout(t *testing.T) {
	layout := MainMenuButtons()
	if len(layout) != 2 {
		t.Fatalf("rows = %d, want 2", len(layout))
	}
	if layout[0][0].Action != ActionStartRemove || layout[0][1].Action != ActionListRecipes {
		t.Fatalf("first row = %+v", layout[0])
	}
	if layout[1][0].Action != ActionStartRecipe {
		t.Fatalf("second row = %+v", layout[1])
	}
}

func TestChecklistButtonsMarkChecked(t *testing.T) {
	d := NewDocument()
	d.AddItem("Milk")
	d.AddItem("Eggs")
	_ = d.Toggle(1)

	layout := d.ChecklistButtons()
	// one row per item plus the confirm row
	if len(layout) != 3 {
		t.Fatalf("rows = %d, want 3", len(layout))
	}
	if layout[0][0].Label != "Milk" || layout[0][0].Data != "0" {
		t.Fatalf("row 0 = %+v", layout[0][0])
	}
	if layout[1][0].Label != "❤ Eggs" || layout[1][0].Data != "1" {
		t.Fatalf("row 1 = %+v", layout[1][0])
	}
	if layout[0][0].Action != ActionToggle {
		t.Fatalf("action = %q", layout[0][0].Action)
	}
	if layout[2][0].Action != ActionRemoveDone {
		t.Fatalf("confirm row = %+v", layout[2][0])
	}
}

func TestRecipePickerButtonsSorted(t *testing.T) {
	d := NewDocument()
	d.Recipes["Soup"] = nil
	d.Recipes["Bread"] = nil
	d.Recipes["Pasta"] = nil

	layout := d.RecipePickerButtons()
	if len(layout) != 4 {
		t.Fatalf("rows = %d, want 4", len(layout))
	}
	want := []string{"Bread", "Pasta", "Soup"}
	for i, name := range want {
		btn := layout[i][0]
		if btn.Label != name || btn.Action != ActionAdd || btn.Data != name {
			t.Fatalf("row %d = %+v, want %q", i, btn, name)
		}
	}
	if layout[3][0].Action != ActionReturnToMainList {
		t.Fatalf("last row = %+v", layout[3][0])
	}
}

func TestDraftText(t *testing.T) {
	d := NewDocument()
	d.BeginDraft()
	if got := d.DraftText(); got != "" {
		t.Fatalf("unnamed draft text = %q", got)
	}

	name := "Pasta"
	d.CurrentRecipe.Name = &name
	d.CurrentRecipe.Ingredients = []string{"Noodles", "Sauce"}
	want := "Pasta:\n - Noodles\n - Sauce"
	if got := d.DraftText(); got != want {
		t.Fatalf("draft text = %q, want %q", got, want)
	}
}
