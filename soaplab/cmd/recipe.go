package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KomalYerkal/Preparation-of-Soap/recipe"
)

var (
	recipeOil       string
	recipeSuperfat  string
	recipeXLSX      string
	recipeOils      []float64
	recipeSuperfats []int
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Compute the water and lye for an oil weight",
	Long: `Compute the water and lye for an oil weight. With --xlsx, a table over ` +
		`--oils and --superfats is written to a spreadsheet instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.SilenceUsage = true

		if recipeXLSX != "" {
			results := recipe.Table(recipeOils, recipeSuperfats)
			if err := recipe.ExportXLSX(recipeXLSX, results); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d rows written to %s\n", len(results), recipeXLSX)
			return nil
		}

		res := recipe.Calculate(recipe.ParseInput(recipeOil, recipeSuperfat))
		fmt.Fprintf(cmd.OutOrStdout(), "oil:      %sg\nsuperfat: %s\nwater:    %s\nlye:      %s\n",
			strconv.FormatFloat(res.OilGrams, 'f', -1, 64),
			res.SuperfatLabel(), res.WaterLabel(), res.LyeLabel())
		return nil
	},
}

func init() {
	f := recipeCmd.Flags()
	f.StringVar(&recipeOil, "oil", "500", "oil weight in grams")
	f.StringVar(&recipeSuperfat, "superfat", "5", "superfat percentage")
	f.StringVar(&recipeXLSX, "xlsx", "", "write a table to this xlsx file")
	f.Float64SliceVar(&recipeOils, "oils", []float64{250, 500, 1000}, "oil weights of the table")
	f.IntSliceVar(&recipeSuperfats, "superfats", []int{0, 5, 10}, "superfats of the table")

	rootCmd.AddCommand(recipeCmd)
}
