package cli

import (
	"github.com/spf13/cobra"

	"mspwatch/internal/app"
)

var (
	historyJSON bool
	historyPNG  string
	historyCSV  string
)

var historyCmd = &cobra.Command{
	Use:   "history <crop-id>",
	Short: "Display the multi-season MSP history for a crop",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.HistoryOptions{
			CropID:  args[0],
			JSON:    historyJSON,
			PNGPath: historyPNG,
			CSVPath: historyCSV,
		}
		return getApp().History(cmd.Context(), opts)
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Emit JSON instead of a table")
	historyCmd.Flags().StringVar(&historyPNG, "png", "", "Write a PNG bar chart to this path")
	historyCmd.Flags().StringVar(&historyCSV, "csv", "", "Write a CSV export to this path")
}
