package cli

import (
	"github.com/spf13/cobra"

	"mspwatch/internal/app"
)

var (
	ratesCategory string
	ratesJSON     bool
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Display current MSP rates",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.RatesOptions{
			Category: ratesCategory,
			JSON:     ratesJSON,
		}
		return getApp().Rates(cmd.Context(), opts)
	},
}

func init() {
	ratesCmd.Flags().StringVar(&ratesCategory, "category", "", "Filter by category (kharif, rabi, other)")
	ratesCmd.Flags().BoolVar(&ratesJSON, "json", false, "Emit JSON instead of a table")
}
