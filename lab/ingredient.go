package lab

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// ErrInvalidIngredient is returned for identifiers outside water, oil and lye.
var ErrInvalidIngredient = errors.New("lab: invalid ingredient")

// Ingredient is one of the three inputs of the simulated reaction.
type Ingredient uint8

// The ingredients, as bits of an IngredientSet.
const (
	Water Ingredient = 1 << iota
	Oil
	Lye
)

const allIngredients = IngredientSet(Water | Oil | Lye)

// Ingredients lists every valid ingredient in display order.
func Ingredients() []Ingredient {
	return []Ingredient{Water, Oil, Lye}
}

// ParseIngredient maps a drag payload such as "oil" to its Ingredient.
func ParseIngredient(name string) (Ingredient, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "water":
		return Water, nil
	case "oil":
		return Oil, nil
	case "lye":
		return Lye, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidIngredient, name)
	}
}

// Valid reports whether i is exactly one of the known ingredients.
func (i Ingredient) Valid() bool {
	return i == Water || i == Oil || i == Lye
}

func (i Ingredient) String() string {
	switch i {
	case Water:
		return "water"
	case Oil:
		return "oil"
	case Lye:
		return "lye"
	default:
		return fmt.Sprintf("Ingredient(%d)", uint8(i))
	}
}

// MarshalText encodes the ingredient by name.
func (i Ingredient) MarshalText() ([]byte, error) {
	if !i.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIngredient, uint8(i))
	}
	return []byte(i.String()), nil
}

// UnmarshalText decodes an ingredient name.
func (i *Ingredient) UnmarshalText(text []byte) error {
	parsed, err := ParseIngredient(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// IngredientSet is the set of ingredients in the vessel. Each ingredient is
// one bit, so duplicates cannot be represented.
type IngredientSet uint8

// Has reports whether i is in the set.
func (s IngredientSet) Has(i Ingredient) bool {
	return s&IngredientSet(i) != 0
}

// With returns the set extended by i.
func (s IngredientSet) With(i Ingredient) IngredientSet {
	return (s | IngredientSet(i)) & allIngredients
}

// Len returns the number of distinct ingredients, always in [0,3].
func (s IngredientSet) Len() int {
	return bits.OnesCount8(uint8(s & allIngredients))
}

// Complete reports whether every ingredient is present.
func (s IngredientSet) Complete() bool {
	return s&allIngredients == allIngredients
}

// Members lists the ingredients in display order.
func (s IngredientSet) Members() []Ingredient {
	members := make([]Ingredient, 0, 3)
	for _, i := range Ingredients() {
		if s.Has(i) {
			members = append(members, i)
		}
	}
	return members
}

func (s IngredientSet) String() string {
	names := make([]string, 0, 3)
	for _, i := range s.Members() {
		names = append(names, i.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}
