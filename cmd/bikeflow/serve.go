package main

import (
	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/bikeflow"
	"github.com/theoremus-urban-solutions/bikeflow/config"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve station traffic over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := resolveDataset(cmd.Context())
		if err != nil {
			return err
		}
		srvCfg := config.Config.Server
		if servePort > 0 {
			srvCfg.Port = servePort
		}
		svc := bikeflow.NewService(ds, config.Config.Traffic.ResponseCacheSize, logger)
		srv := bikeflow.NewServer(svc, srvCfg, logger)
		srv.Start()
		return srv.HandleGracefulShutdown()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides config)")
}
