package lab

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Project", func() {
	DescribeTable("the projection table",
		func(set IngredientSet, reacted bool, fill int, color ColorTag, status string, visible bool) {
			view := Project(set, reacted)

			Expect(view.FillHeightPercent).To(Equal(fill))
			Expect(view.Color).To(Equal(color))
			Expect(view.Status).To(Equal(status))
			Expect(view.ReactionVisible).To(Equal(visible))
		},
		Entry("empty", IngredientSet(0), false, 0, ColorEmpty, StatusEmpty, false),
		Entry("water", IngredientSet(Water), false, 30, ColorDefault, StatusFilling, false),
		Entry("oil", IngredientSet(Oil), false, 30, ColorOilTint, StatusFilling, false),
		Entry("lye", IngredientSet(Lye), false, 30, ColorDefault, StatusFilling, false),
		Entry("oil and water", IngredientSet(Oil|Water), false, 60, ColorSeparated, StatusSeparated, false),
		Entry("oil and lye", IngredientSet(Oil|Lye), false, 60, ColorDefault, StatusMixing, false),
		Entry("water and lye", IngredientSet(Water|Lye), false, 60, ColorDefault, StatusMixing, false),
		Entry("all", allIngredients, false, 90, ColorReacted, StatusSaponification, true),
		Entry("all, reacted", allIngredients, true, 90, ColorReacted, StatusSuccess, true),
		Entry("reacted flag ignored when incomplete", IngredientSet(Oil), true, 30, ColorOilTint, StatusFilling, false),
	)

	It("should encode ingredients by name", func() {
		data, err := json.Marshal(Project(IngredientSet(Lye|Water), false))
		Expect(err).NotTo(HaveOccurred())

		var decoded map[string]any
		Expect(json.Unmarshal(data, &decoded)).To(Succeed())
		Expect(decoded["ingredients"]).To(Equal([]any{"water", "lye"}))
		Expect(decoded["status"]).To(Equal(StatusMixing))
	})
})

var _ = Describe("Ingredient", func() {
	It("should parse the drag payload names", func() {
		for _, i := range Ingredients() {
			parsed, err := ParseIngredient(" " + i.String() + " ")
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(i))
		}

		parsed, err := ParseIngredient("OIL")
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed).To(Equal(Oil))
	})

	It("should refuse anything else", func() {
		_, err := ParseIngredient("fragrance")
		Expect(err).To(MatchError(ErrInvalidIngredient))

		Expect(Ingredient(0).Valid()).To(BeFalse())
		Expect(Ingredient(Oil | Lye).Valid()).To(BeFalse())
	})

	It("should keep set size within bounds", func() {
		var set IngredientSet
		for _, i := range []Ingredient{Oil, Oil, Water, Lye, Water} {
			set = set.With(i)
		}

		Expect(set.Len()).To(Equal(3))
		Expect(set.Complete()).To(BeTrue())
		Expect(set.String()).To(Equal("{water,oil,lye}"))
		Expect(IngredientSet(0xff).Len()).To(Equal(3))
	})
})
