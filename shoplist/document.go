// Package shoplist holds the persisted shopping document and the event
// router that mutates it. The Document is the single source of truth for
// list items, saved recipes, the active display message, and an
// in-progress recipe capture.
package shoplist

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange reports a toggle request addressing a missing item.
var ErrIndexOutOfRange = errors.New("shoplist: item index out of range")

// Item is a single shopping list entry. Order of items is insertion order
// and is significant for display.
type Item struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

// MessageRef identifies the chat message currently used as the bot's screen.
type MessageRef struct {
	ChatID    int64 `json:"chat_id"`
	MessageID int   `json:"message_id"`
}

// Draft is the transient state of a recipe being dictated. A nil Name means
// the next text line becomes the recipe name.
type Draft struct {
	Name        *string  `json:"name"`
	Ingredients []string `json:"ingredients"`
}

// Document is the persisted aggregate. Exactly one of normal mode and
// recipe-capture mode holds at any time, determined by CurrentRecipe.
type Document struct {
	Items         []Item              `json:"items"`
	Recipes       map[string][]string `json:"recipes"`
	ActiveMessage *MessageRef         `json:"active_message"`
	CurrentRecipe *Draft              `json:"current_recipe"`
}

// Mode enumerates the conversation states of the document.
type Mode int

const (
	// ModeNormal means no recipe capture is in progress.
	ModeNormal Mode = iota
	// ModeCapturingName means a draft exists and awaits its name line.
	ModeCapturingName
	// ModeCapturingIngredients means a named draft collects ingredient lines.
	ModeCapturingIngredients
)

// NewDocument returns the empty document used for a fresh start.
func NewDocument() *Document {
	return &Document{
		Items:   []Item{},
		Recipes: make(map[string][]string),
	}
}

// Normalize repairs nil collections after deserialization.
func (d *Document) Normalize() {
	if d.Items == nil {
		d.Items = []Item{}
	}
	if d.Recipes == nil {
		d.Recipes = make(map[string][]string)
	}
}

// Mode derives the conversation state from the draft presence.
func (d *Document) Mode() Mode {
	switch {
	case d.CurrentRecipe == nil:
		return ModeNormal
	case d.CurrentRecipe.Name == nil:
		return ModeCapturingName
	default:
		return ModeCapturingIngredients
	}
}

// AddItem resolves the input against saved recipes: a matching recipe name
// appends one unchecked item per ingredient, anything else appends a single
// unchecked item with the given name. Lookup is case-sensitive exact match.
func (d *Document) AddItem(name string) {
	if ingredients, ok := d.Recipes[name]; ok {
		for _, ing := range ingredients {
			d.Items = append(d.Items, Item{Name: ing})
		}
		return
	}
	d.Items = append(d.Items, Item{Name: name})
}

// Toggle flips the checked flag of the item at index i.
func (d *Document) Toggle(i int) error {
	if i < 0 || i >= len(d.Items) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(d.Items))
	}
	d.Items[i].Checked = !d.Items[i].Checked
	return nil
}

// RemoveChecked drops all checked items, walking high-index-first so that
// pending removals never shift. Survivors keep their relative order.
// It returns the number of removed items.
func (d *Document) RemoveChecked() int {
	removed := 0
	for i := len(d.Items) - 1; i >= 0; i-- {
		if d.Items[i].Checked {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			removed++
		}
	}
	return removed
}

// BeginDraft starts capturing a new recipe, discarding any previous draft.
func (d *Document) BeginDraft() {
	d.CurrentRecipe = &Draft{Ingredients: []string{}}
}

// CommitDraft upserts the draft into the recipe map and leaves capture mode.
// A draft without a name is discarded. It reports whether a recipe was saved.
func (d *Document) CommitDraft() (string, bool) {
	draft := d.CurrentRecipe
	d.CurrentRecipe = nil
	if draft == nil || draft.Name == nil {
		return "", false
	}
	if d.Recipes == nil {
		d.Recipes = make(map[string][]string)
	}
	d.Recipes[*draft.Name] = draft.Ingredients
	return *draft.Name, true
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		Items:   append([]Item{}, d.Items...),
		Recipes: make(map[string][]string, len(d.Recipes)),
	}
	for name, ingredients := range d.Recipes {
		out.Recipes[name] = append([]string(nil), ingredients...)
	}
	if d.ActiveMessage != nil {
		ref := *d.ActiveMessage
		out.ActiveMessage = &ref
	}
	if d.CurrentRecipe != nil {
		draft := &Draft{Ingredients: append([]string{}, d.CurrentRecipe.Ingredients...)}
		if d.CurrentRecipe.Name != nil {
			name := *d.CurrentRecipe.Name
			draft.Name = &name
		}
		out.CurrentRecipe = draft
	}
	return out
}
