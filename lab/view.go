package lab

// ColorTag tells the renderer how to tint the mixture.
type ColorTag string

// Mixture colors.
const (
	ColorEmpty     ColorTag = "empty"
	ColorDefault   ColorTag = "default"
	ColorOilTint   ColorTag = "oil-tint"
	ColorSeparated ColorTag = "separated-gradient"
	ColorReacted   ColorTag = "reacted"
)

// Status labels shown next to the beaker.
const (
	StatusEmpty          = "Empty"
	StatusFilling        = "Filling..."
	StatusMixing         = "Mixing..."
	StatusSeparated      = "Oil & Water (Separated)"
	StatusSaponification = "Saponification!"
	StatusSuccess        = "Success!"
)

// Reaction messages shown while all three ingredients are present.
const (
	ReactionStarted = "Reaction Started!"
	ReactionDone    = "Soap Created!"
)

// MixtureView is the render-ready projection of a mixture. It is derived
// from the ingredient set and never stored as the source of truth.
type MixtureView struct {
	FillHeightPercent int          `json:"fill_height_percent"`
	Color             ColorTag     `json:"color"`
	Status            string       `json:"status"`
	ReactionVisible   bool         `json:"reaction_visible"`
	Reaction          string       `json:"reaction,omitempty"`
	Reacted           bool         `json:"reacted"`
	Ingredients       []Ingredient `json:"ingredients"`

	// Generation and Revision identify the lab state the view was taken
	// from. Revision grows with every change and orders views of one lab.
	Generation uint64 `json:"generation"`
	Revision   uint64 `json:"revision"`
}

// Project derives the view of set. reacted selects the post-delay variant of
// the full mixture and is ignored for incomplete sets.
func Project(set IngredientSet, reacted bool) MixtureView {
	v := MixtureView{
		Color:       ColorDefault,
		Ingredients: set.Members(),
	}

	switch set.Len() {
	case 0:
		v.Color = ColorEmpty
		v.Status = StatusEmpty
	case 1:
		v.FillHeightPercent = 30
		v.Status = StatusFilling
		if set.Has(Oil) {
			v.Color = ColorOilTint
		}
	case 2:
		v.FillHeightPercent = 60
		v.Status = StatusMixing
		if set.Has(Oil) && set.Has(Water) {
			v.Status = StatusSeparated
			v.Color = ColorSeparated
		}
	default:
		v.FillHeightPercent = 90
		v.Color = ColorReacted
		v.ReactionVisible = true
		v.Status = StatusSaponification
		v.Reaction = ReactionStarted
		if reacted {
			v.Status = StatusSuccess
			v.Reaction = ReactionDone
			v.Reacted = true
		}
	}

	return v
}

func (v MixtureView) clone() MixtureView {
	v.Ingredients = append([]Ingredient(nil), v.Ingredients...)
	return v
}
