package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/bikeflow"
	"github.com/theoremus-urban-solutions/bikeflow/traffic"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print station traffic for one time of day",
	Long: `Compute station traffic once and write it to stdout or a file.
--time accepts HH:MM, a minute of day (0-1439), or "all" for the whole day.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		timeArg, _ := cmd.Flags().GetString("time")
		format, _ := cmd.Flags().GetString("format")
		station, _ := cmd.Flags().GetString("station")
		output, _ := cmd.Flags().GetString("output")

		f, err := traffic.ParseTimeFilter(timeArg)
		if err != nil {
			return err
		}
		ds, err := resolveDataset(cmd.Context())
		if err != nil {
			return err
		}
		svc := bikeflow.NewService(ds, 0, logger)

		var buf []byte
		if station != "" {
			buf, err = svc.GetStationResponse(station, f, format)
		} else {
			buf, err = svc.GetTrafficResponse(f, format)
		}
		if err != nil {
			return err
		}

		if output == "" || output == "-" {
			_, err = cmd.OutOrStdout().Write(buf)
			if err == nil && format != "pb" {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return err
		}
		if err := os.WriteFile(output, buf, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		logger.Infow("snapshot written", "path", output, "filter", f.String(), "bytes", len(buf))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().StringP("time", "t", "", "time of day filter (HH:MM, minute of day, or all)")
	snapshotCmd.Flags().StringP("format", "f", "json", "json|pb")
	snapshotCmd.Flags().StringP("station", "s", "", "report a single station by short name")
	snapshotCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
}
