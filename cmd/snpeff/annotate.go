package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/chmille4/snpeff/internal/annotate"
	"github.com/chmille4/snpeff/internal/database"
	"github.com/chmille4/snpeff/internal/effect"
	"github.com/chmille4/snpeff/internal/interval"
	"github.com/chmille4/snpeff/internal/maf"
	"github.com/chmille4/snpeff/internal/output"
	"github.com/chmille4/snpeff/internal/store"
	"github.com/chmille4/snpeff/internal/variant"
	"github.com/chmille4/snpeff/internal/vcf"
)

func newAnnotateCmd() *cobra.Command {
	var (
		dbPath          string
		outputFormat    string
		outputFile      string
		storePath       string
		upDownstreamLen int
		inputFormat     string
		allProteinCode  bool
	)

	cmd := &cobra.Command{
		Use:   "annotate <genome> <input.vcf>",
		Short: "Annotate variants in a VCF file",
		Example: `  snpeff annotate GRCh38 input.vcf
  snpeff annotate -f vcf -o output.vcf GRCh38 input.vcf.gz
  cat input.vcf | snpeff annotate GRCh38 -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			genomeID, inputPath := args[0], args[1]

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
			g.TreatAllAsProteinCoding = allProteinCode

			interval.SetLogger(logger)
			ann := annotate.NewAnnotator(g)
			ann.SetLogger(logger)
			ann.SetUpDownstreamLen(upDownstreamLen)

			if inputFormat == "" {
				inputFormat = detectInputFormat(inputPath)
			}
			var parser annotate.VariantSource
			switch inputFormat {
			case "maf":
				parser, err = maf.NewParser(inputPath)
			case "vcf":
				parser, err = vcf.NewParser(inputPath)
			default:
				return fmt.Errorf("unknown input format %q", inputFormat)
			}
			if err != nil {
				return err
			}
			defer parser.Close()

			var out io.Writer = os.Stdout
			if outputFile != "" {
				f, err := os.Create(outputFile)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			var w annotate.EffectWriter
			switch outputFormat {
			case "tab":
				w = output.NewTabWriter(out)
			case "vcf", "ann":
				w = output.NewVCFWriter(out, output.FormatANN)
			case "eff":
				w = output.NewVCFWriter(out, output.FormatEFF)
			default:
				return fmt.Errorf("unknown output format %q", outputFormat)
			}

			if storePath == "" {
				storePath = viper.GetString("store.path")
			}
			if storePath != "" {
				st, err := store.Open(storePath)
				if err != nil {
					return fmt.Errorf("open effect store: %w", err)
				}
				defer st.Close()
				w = multiWriter{w, store.NewWriter(st)}
				logger.Info("storing effects", zap.String("path", storePath))
			}

			return ann.AnnotateAll(parser, w)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "genome database path (default: data dir)")
	cmd.Flags().StringVarP(&outputFormat, "output-format", "f", "tab", "output format: tab, vcf, eff")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: vcf, maf (auto-detected if not specified)")
	cmd.Flags().StringVar(&storePath, "store", "", "also write effects to a DuckDB database")
	cmd.Flags().IntVar(&upDownstreamLen, "updownstream", annotate.DefaultUpDownstreamLen, "upstream/downstream window size, 0 disables")
	cmd.Flags().BoolVar(&allProteinCode, "treat-all-as-protein-coding", false, "analyze codon changes for all transcripts")

	return cmd
}

// detectInputFormat guesses the input format from the file extension,
// defaulting to VCF.
func detectInputFormat(path string) string {
	name := strings.TrimSuffix(strings.ToLower(path), ".gz")
	if strings.HasSuffix(name, ".maf") || strings.HasSuffix(name, ".txt") {
		return "maf"
	}
	return "vcf"
}

// multiWriter fans effect records out to several writers.
type multiWriter []annotate.EffectWriter

func (mw multiWriter) WriteHeader() error {
	for _, w := range mw {
		if err := w.WriteHeader(); err != nil {
			return err
		}
	}
	return nil
}

func (mw multiWriter) Write(v *variant.Variant, ve *effect.VariantEffect) error {
	for _, w := range mw {
		if err := w.Write(v, ve); err != nil {
			return err
		}
	}
	return nil
}

func (mw multiWriter) Flush() error {
	for _, w := range mw {
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}
