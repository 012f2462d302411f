package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chmille4/snpeff/internal/database"
)

func newBuildCmd() *cobra.Command {
	var (
		gtfPath   string
		fastaPath string
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "build <genome>",
		Short: "Build a genome database from GTF and FASTA files",
		Example: `  snpeff build GRCh38 --gtf gencode.v44.gtf.gz --fasta GRCh38.fa.gz
  snpeff build testdb --gtf genes.gtf -o testdb.bin.gz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			genomeID := args[0]

			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			logger.Info("building genome database",
				zap.String("genome", genomeID),
				zap.String("gtf", gtfPath),
				zap.String("fasta", fastaPath))

			g, err := database.BuildGenome(genomeID, gtfPath, fastaPath)
			if err != nil {
				return fmt.Errorf("build genome: %w", err)
			}

			if outPath == "" {
				outPath = databasePath(genomeID)
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
				return fmt.Errorf("create data directory: %w", err)
			}
			if err := database.Save(outPath, g); err != nil {
				return fmt.Errorf("save database: %w", err)
			}

			logger.Info("database written",
				zap.String("path", outPath),
				zap.Int("chromosomes", len(g.Chromosomes())))
			return nil
		},
	}

	cmd.Flags().StringVar(&gtfPath, "gtf", "", "GTF annotation file (required)")
	cmd.Flags().StringVar(&fastaPath, "fasta", "", "genomic FASTA file")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output database path (default: data dir)")
	cmd.MarkFlagRequired("gtf")

	return cmd
}
