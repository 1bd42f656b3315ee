package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/bikeflow"
	"github.com/theoremus-urban-solutions/bikeflow/config"
	"github.com/theoremus-urban-solutions/bikeflow/store"
)

func storePath(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = config.Config.Store.SQLitePath
	}
	if path == "" {
		return "", errors.New("no SQLite path: set --db or store.sqlitePath")
	}
	return path, nil
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Parse a dataset from its sources and save it in the SQLite store",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := storePath(cmd)
		if err != nil {
			return err
		}
		name, data := selectedData()
		ds, err := bikeflow.LoadDataset(cmd.Context(), name, data, logger)
		if err != nil {
			return err
		}
		st, err := store.Open(cmd.Context(), path)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.SaveDataset(cmd.Context(), ds); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (%d stations, %d trips) into %s\n", ds.Name, len(ds.Stations), len(ds.Trips), path)
		return nil
	},
}

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List datasets in the SQLite store",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := storePath(cmd)
		if err != nil {
			return err
		}
		st, err := store.Open(cmd.Context(), path)
		if err != nil {
			return err
		}
		defer st.Close()
		infos, err := st.ListDatasets(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tID\tZONE\tLOADED\tSTATIONS\tTRIPS")
		for _, info := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n", info.Name, info.ID, info.Timezone, info.LoadedAt.Format("2006-01-02 15:04:05"), info.Stations, info.Trips)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(datasetsCmd)
	importCmd.Flags().String("db", "", "SQLite database path (overrides store.sqlitePath)")
	datasetsCmd.Flags().String("db", "", "SQLite database path (overrides store.sqlitePath)")
}
