package shoplist

import (
	"sort"
	"strconv"
	"strings"
)

// Action tags carried in callback buttons.
const (
	ActionStartRecipe      = "start_recipe"
	ActionStartRemove      = "start_remove"
	ActionRecipeDone       = "recipe_done"
	ActionToggle           = "toggle"
	ActionRemoveDone       = "remove_done"
	ActionListRecipes      = "list_recipes"
	ActionAdd              = "add"
	ActionReturnToMainList = "return_to_main_list"
)

const (
	listHeading      = "Shopping list:"
	newRecipePrompt  = "New recipe:"
	pickRecipePrompt = "Pick a recipe to add:"
	savedConfirm     = "👍"

	checkedMark      = "❤ "
	confirmLabel     = "💚"
	removeMenuLabel  = "🛒"
	recipesMenuLabel = "📝🛒"
	newRecipeLabel   = "📝➕"
)

// Button is one labeled, action-tagged inline button.
type Button struct {
	Label  string
	Action string
	Data   string
}

// ButtonLayout is an ordered grid of buttons attached to a view.
type ButtonLayout [][]Button

// View is the single internal command both event kinds reduce to: the text
// and button grid the active message should show next.
type View struct {
	Text    string
	Buttons ButtonLayout
}

// SummaryText renders the heading plus one bulleted line per item in order.
func (d *Document) SummaryText() string {
	var b strings.Builder
	b.WriteString(listHeading)
	for _, item := range d.Items {
		b.WriteString("\n - ")
		b.WriteString(item.Name)
	}
	return b.String()
}

// DraftText renders the in-progress recipe, or an empty string while the
// draft is absent or still unnamed.
func (d *Document) DraftText() string {
	draft := d.CurrentRecipe
	if draft == nil || draft.Name == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(*draft.Name)
	b.WriteString(":")
	for _, ing := range draft.Ingredients {
		b.WriteString("\n - ")
		b.WriteString(ing)
	}
	return b.String()
}

// MainMenuButtons is the fixed two-row action menu.
func MainMenuButtons() ButtonLayout {
	return ButtonLayout{
		{
			{Label: removeMenuLabel, Action: ActionStartRemove},
			{Label: recipesMenuLabel, Action: ActionListRecipes},
		},
		{
			{Label: newRecipeLabel, Action: ActionStartRecipe},
		},
	}
}

// ChecklistButtons renders one toggle row per item plus the confirm row.
// Checked items carry the checked marker in their label.
func (d *Document) ChecklistButtons() ButtonLayout {
	layout := make(ButtonLayout, 0, len(d.Items)+1)
	for i, item := range d.Items {
		label := item.Name
		if item.Checked {
			label = checkedMark + item.Name
		}
		layout = append(layout, []Button{
			{Label: label, Action: ActionToggle, Data: strconv.Itoa(i)},
		})
	}
	layout = append(layout, []Button{{Label: confirmLabel, Action: ActionRemoveDone}})
	return layout
}

// RecipePickerButtons renders one row per saved recipe, sorted by name so
// the layout is stable, plus the return row.
func (d *Document) RecipePickerButtons() ButtonLayout {
	names := make([]string, 0, len(d.Recipes))
	for name := range d.Recipes {
		names = append(names, name)
	}
	sort.Strings(names)

	layout := make(ButtonLayout, 0, len(names)+1)
	for _, name := range names {
		layout = append(layout, []Button{{Label: name, Action: ActionAdd, Data: name}})
	}
	layout = append(layout, []Button{{Label: confirmLabel, Action: ActionReturnToMainList}})
	return layout
}

// CaptureButtons is the single finish-capture action.
func CaptureButtons() ButtonLayout {
	return ButtonLayout{{{Label: confirmLabel, Action: ActionRecipeDone}}}
}

// SummaryView shows the full list text with the main menu.
func SummaryView(d *Document) View {
	return View{Text: d.SummaryText(), Buttons: MainMenuButtons()}
}

// ChecklistView shows the fixed heading with per-item toggle buttons.
func ChecklistView(d *Document) View {
	return View{Text: listHeading, Buttons: d.ChecklistButtons()}
}

// PickerView shows the recipe picker.
func PickerView(d *Document) View {
	return View{Text: pickRecipePrompt, Buttons: d.RecipePickerButtons()}
}

// DraftView shows the captured recipe so far with the finish button.
func DraftView(d *Document) View {
	return View{Text: d.DraftText(), Buttons: CaptureButtons()}
}

// NewRecipeView prompts for the recipe name.
func NewRecipeView() View {
	return View{Text: newRecipePrompt, Buttons: CaptureButtons()}
}

// SavedView confirms a committed recipe and returns to the main menu.
func SavedView() View {
	return View{Text: savedConfirm, Buttons: MainMenuButtons()}
}
