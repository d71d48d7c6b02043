package shoplist

import (
	"errors"
	"testing"
)

func TestAddItemExpandsRecipe(t *testing.T) {
	d := NewDocument()
	d.Recipes["Pasta"] = []string{"Noodles", "Sauce"}

	d.AddItem("Pasta")
	d.AddItem("Milk")

	want := []string{"Noodles", "Sauce", "Milk"}
	if len(d.Items) != len(want) {
		t.Fatalf("items = %d, want %d", len(d.Items), len(want))
	}
	for i, name := range want {
		if d.Items[i].Name != name {
			t.Fatalf("item %d = %q, want %q", i, d.Items[i].Name, name)
		}
		if d.Items[i].Checked {
			t.Fatalf("item %d starts checked", i)
		}
	}
}

func TestAddItemRecipeLookupIsExact(t *testing.T) {
	d := NewDocument()
	d.Recipes["Pasta"] = []string{"Noodles"}

	d.AddItem("pasta")

	if len(d.Items) != 1 || d.Items[0].Name != "pasta" {
		t.Fatalf("expected literal item, got %+v", d.Items)
	}
}

func TestToggleIsInvolution(t *testing.T) {
	d := NewDocument()
	d.AddItem("Eggs")

	if err := d.Toggle(0); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !d.Items[0].Checked {
		t.Fatal("expected checked after first toggle")
	}
	if err := d.Toggle(0); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if d.Items[0].Checked {
		t.Fatal("expected unchecked after second toggle")
	}
}

func TestToggleOutOfRange(t *testing.T) {
	d := NewDocument()
	d.AddItem("Eggs")

	for _, idx := range []int{-1, 1, 5} {
		if err := d.Toggle(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("toggle(%d) = %v, want ErrIndexOutOfRange", idx, err)
		}
	}
	if d.Items[0].Checked {
		t.Fatal("failed toggle must not mutate items")
	}
}

func TestRemoveCheckedKeepsSurvivorOrder(t *testing.T) {
	d := NewDocument()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		d.AddItem(name)
	}
	_ = d.Toggle(0)
	_ = d.Toggle(2)
	_ = d.Toggle(4)

	if n := d.RemoveChecked(); n != 3 {
		t.Fatalf("removed = %d, want 3", n)
	}
	want := []string{"b", "d"}
	if len(d.Items) != len(want) {
		t.Fatalf("items = %+v, want %v", d.Items, want)
	}
	for i, name := range want {
		if d.Items[i].Name != name {
			t.Fatalf("item %d = %q, want %q", i, d.Items[i].Name, name)
		}
	}
}

func TestCommitDraftUpsertsAndClearsCapture(t *testing.T) {
	d := NewDocument()
	d.Recipes["Pasta"] = []string{"Old"}

	d.BeginDraft()
	if d.Mode() != ModeCapturingName {
		t.Fatalf("mode = %v, want capturing name", d.Mode())
	}
	name := "Pasta"
	d.CurrentRecipe.Name = &name
	d.CurrentRecipe.Ingredients = append(d.CurrentRecipe.Ingredients, "Noodles", "Sauce")

	saved, ok := d.CommitDraft()
	if !ok || saved != "Pasta" {
		t.Fatalf("commit = (%q, %v), want (Pasta, true)", saved, ok)
	}
	if d.Mode() != ModeNormal {
		t.Fatal("capture mode survived commit")
	}
	if got := d.Recipes["Pasta"]; len(got) != 2 || got[0] != "Noodles" {
		t.Fatalf("recipe not replaced: %v", got)
	}
}

func TestCommitDraftWithoutNameDiscards(t *testing.T) {
	d := NewDocument()
	d.BeginDraft()

	if _, ok := d.CommitDraft(); ok {
		t.Fatal("nameless draft must be discarded")
	}
	if len(d.Recipes) != 0 {
		t.Fatalf("recipes = %v, want empty", d.Recipes)
	}
	if d.CurrentRecipe != nil {
		t.Fatal("draft survived commit")
	}
}

func TestCloneIsDeep(t *testing.T) {
	d := NewDocument()
	d.AddItem("Eggs")
	d.Recipes["Pasta"] = []string{"Noodles"}
	d.ActiveMessage = &MessageRef{ChatID: 1, MessageID: 2}

	c := d.Clone()
	c.Items[0].Name = "changed"
	c.Recipes["Pasta"][0] = "changed"
	c.ActiveMessage.MessageID = 99

	if d.Items[0].Name != "Eggs" {
		t.Fatal("clone shares items slice")
	}
	if d.Recipes["Pasta"][0] != "Noodles" {
		t.Fatal("clone shares recipe slice")
	}
	if d.ActiveMessage.MessageID != 2 {
		t.Fatal("clone shares active message")
	}
}

func TestNormalizeRepairsNilCollections(t *testing.T) {
	var d Document
	d.Normalize()
	if d.Items == nil || d.Recipes == nil {
		t.Fatal("collections still nil after normalize")
	}
}
