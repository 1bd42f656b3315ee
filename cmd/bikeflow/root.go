package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/bikeflow"
	"github.com/theoremus-urban-solutions/bikeflow/bikeshare"
	"github.com/theoremus-urban-solutions/bikeflow/config"
	"github.com/theoremus-urban-solutions/bikeflow/internal"
	"github.com/theoremus-urban-solutions/bikeflow/store"
)

var (
	configPath  string
	datasetName string
	debug       bool
	stationsURL string
	tripsURL    string
	timezone    string

	logger *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "bikeflow",
	Short: "Bluebikes station traffic by time of day",
	Long: `bikeflow loads a Bluebikes station list and trip log, buckets trips by
minute of day and reports per-station departures and arrivals inside a
two-hour window around a chosen time.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		var err error
		logger, err = internal.InitLogging(debug || config.Config.Logging.Debug)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		internal.SyncLogging()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "config file (default: ./config.yml)")
	pf.StringVarP(&datasetName, "dataset", "d", "", "dataset name from config.datasets[]")
	pf.BoolVar(&debug, "debug", false, "enable development logging")
	pf.StringVar(&stationsURL, "stations", "", "station information JSON URL or path (overrides config)")
	pf.StringVar(&tripsURL, "trips", "", "trip log CSV URL or path (overrides config)")
	pf.StringVar(&timezone, "timezone", "", "zone trip timestamps are recorded in (overrides config)")
}

// loadConfig reads the config file; without an explicit --config a missing
// file falls back to defaults so flags alone are enough.
func loadConfig() error {
	err := config.LoadAppConfig(configPath)
	if err == nil {
		return nil
	}
	if configPath != "" || !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := config.Parse([]byte("{}"))
	if err != nil {
		return err
	}
	config.Config = *cfg
	return nil
}

// selectedData returns the chosen dataset with command-line overrides applied
func selectedData() (string, config.DataConfig) {
	name, data := config.SelectDataset(datasetName)
	if name == "" {
		name = datasetName
	}
	if name == "" {
		name = "default"
	}
	if stationsURL != "" {
		data.StationsURL = stationsURL
	}
	if tripsURL != "" {
		data.TripsURL = tripsURL
	}
	if timezone != "" {
		data.Timezone = timezone
	}
	return name, data
}

// resolveDataset loads the selected dataset from its sources, or from the
// SQLite store when no sources are configured
func resolveDataset(ctx context.Context) (*bikeshare.Dataset, error) {
	name, data := selectedData()
	if data.StationsURL == "" && data.TripsURL == "" && data.CachePath == "" && config.Config.Store.SQLitePath != "" {
		st, err := store.Open(ctx, config.Config.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		// an unnamed selection loads the latest import
		if datasetName == "" {
			name = ""
		}
		ds, err := st.LoadDataset(ctx, name)
		if err != nil {
			return nil, err
		}
		logger.Infow("loaded dataset from store", "path", config.Config.Store.SQLitePath, "dataset", ds.ID, "name", ds.Name)
		return ds, nil
	}
	return bikeflow.LoadDataset(ctx, name, data, logger)
}
