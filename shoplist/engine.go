package shoplist

import (
	"fmt"
	"strconv"
	"strings"
)

// CommentPrefix marks text messages the router ignores entirely.
const CommentPrefix = "#"

// HandleText routes a text message against the document's mode and returns
// the next view. The second result is false when the message is a comment
// in normal mode: the event is a pure no-op and must trigger neither a view
// update nor persistence.
func HandleText(d *Document, text string) (*View, bool) {
	switch d.Mode() {
	case ModeCapturingName:
		name := text
		d.CurrentRecipe.Name = &name
		v := DraftView(d)
		return &v, true
	case ModeCapturingIngredients:
		d.CurrentRecipe.Ingredients = append(d.CurrentRecipe.Ingredients, text)
		v := DraftView(d)
		return &v, true
	default:
		if strings.HasPrefix(text, CommentPrefix) {
			return nil, false
		}
		d.AddItem(text)
		v := SummaryView(d)
		return &v, true
	}
}

// HandleAction routes a button press. A nil view with a nil error means the
// action tag is unknown and the event should be dropped after logging. An
// error aborts the event: no view update, no persistence.
func HandleAction(d *Document, action, payload string) (*View, error) {
	var v View
	switch action {
	case ActionStartRecipe:
		d.BeginDraft()
		v = NewRecipeView()
	case ActionStartRemove:
		v = ChecklistView(d)
	case ActionRecipeDone:
		d.CommitDraft()
		v = SavedView()
	case ActionToggle:
		idx, err := strconv.Atoi(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: bad payload %q", ErrIndexOutOfRange, payload)
		}
		if err := d.Toggle(idx); err != nil {
			return nil, err
		}
		v = ChecklistView(d)
	case ActionRemoveDone:
		d.RemoveChecked()
		v = SummaryView(d)
	case ActionListRecipes:
		v = PickerView(d)
	case ActionAdd:
		d.AddItem(payload)
		v = SummaryView(d)
	case ActionReturnToMainList:
		v = SummaryView(d)
	default:
		return nil, nil
	}
	return &v, nil
}
