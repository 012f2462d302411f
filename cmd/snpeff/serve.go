package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/chmille4/snpeff/internal/annotate"
	"github.com/chmille4/snpeff/internal/database"
	"github.com/chmille4/snpeff/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		dbPath string
		addr   string
	)

	cmd := &cobra.Command{
		Use:     "serve <genome>",
		Short:   "Serve the annotator over HTTP",
		Example: `  snpeff serve GRCh38 --addr :8080`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			genomeID := args[0]

			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if dbPath == "" {
				dbPath = databasePath(genomeID)
			}
			g, err := database.Load(dbPath)
			if err != nil {
				return fmt.Errorf("load genome database: %w", err)
			}

			ann := annotate.NewAnnotator(g)
			ann.SetLogger(logger)

			if addr == "" {
				addr = viper.GetString("server.addr")
			}
			if addr == "" {
				addr = ":8080"
			}

			logger.Info("serving genome", zap.String("genome", g.ID()))
			return server.New(ann, logger).Start(addr)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "genome database path (default: data dir)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")

	return cmd
}
