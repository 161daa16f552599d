package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/soocke/lipstick-ar-go/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in configuration presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		ps, err := config.Presets()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tVIDEO\tFPS\tTHRESHOLD\tBLUR\tALPHA\tCOLOR")
		for _, name := range config.PresetNames() {
			c := config.DefaultConfig()
			ps[name].Apply(c)
			fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%.2f\t%.1f\t%.2f\t%s\n",
				name, c.VideoWidth, c.VideoHeight, c.TargetFPS, c.MotionThreshold, c.BlurPx, c.Alpha, c.Color)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
