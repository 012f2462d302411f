package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chmille4/snpeff/internal/effect"
	"github.com/chmille4/snpeff/internal/variant"
)

// TabWriter writes one tab-delimited row per effect record.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Chrom",
			"Position",
			"Ref",
			"Alt",
			"Effect",
			"Impact",
			"Functional_Class",
			"Gene_Name",
			"Gene_ID",
			"Transcript_ID",
			"Biotype",
			"Exon_Rank",
			"Codon_Change",
			"Amino_Acid_Change",
			"Errors_Warnings",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single effect record.
func (tw *TabWriter) Write(v *variant.Variant, ve *effect.VariantEffect) error {
	mc := ResolveContext(ve.Marker)

	dash := func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	}

	exonRank := "-"
	if mc.ExonRank > 0 {
		exonRank = fmt.Sprintf("%d", mc.ExonRank)
	}

	values := []string{
		v.Chrom,
		fmt.Sprintf("%d", v.Start()),
		dash(v.Ref()),
		dash(v.Alt()),
		ve.Type.String(),
		ve.Impact(),
		FunctionalClass(ve.Type),
		dash(mc.GeneName),
		dash(mc.GeneID),
		dash(mc.TranscriptID),
		dash(mc.Biotype),
		exonRank,
		dash(CodonChange(ve)),
		dash(AaChange(ve)),
		dash(Findings(ve)),
	}

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
