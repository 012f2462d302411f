package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chmille4/snpeff/internal/effect"
	"github.com/chmille4/snpeff/internal/variant"
)

// Format selects the VCF INFO annotation style.
type Format int

const (
	// FormatANN uses the Sequence Ontology ANN field layout.
	FormatANN Format = iota
	// FormatEFF uses the classic EFF field layout.
	FormatEFF
)

// VCFWriter emits one VCF line per variant with all of its effect records
// folded into a single ANN or EFF INFO field. Records for one variant
// arrive consecutively, so grouping only needs to watch for the variant
// changing between writes.
type VCFWriter struct {
	w      *bufio.Writer
	format Format

	cur  *variant.Variant
	anns []string
}

// NewVCFWriter creates a VCF writer in the given format.
func NewVCFWriter(w io.Writer, format Format) *VCFWriter {
	return &VCFWriter{w: bufio.NewWriter(w), format: format}
}

// WriteHeader writes the VCF header including the INFO declaration.
func (vw *VCFWriter) WriteHeader() error {
	lines := []string{
		"##fileformat=VCFv4.2",
	}
	if vw.format == FormatANN {
		lines = append(lines,
			`##INFO=<ID=ANN,Number=.,Type=String,Description="Functional annotations: 'Allele | Annotation | Annotation_Impact | Gene_Name | Gene_ID | Feature_Type | Feature_ID | Transcript_BioType | Rank | HGVS.c | HGVS.p | cDNA.pos / cDNA.length | CDS.pos / CDS.length | AA.pos / AA.length | Distance | ERRORS / WARNINGS / INFO'">`)
	} else {
		lines = append(lines,
			`##INFO=<ID=EFF,Number=.,Type=String,Description="Predicted effects: 'Effect ( Effect_Impact | Functional_Class | Codon_Change | Amino_Acid_Change | Gene_Name | Transcript_BioType | Gene_Coding | Transcript_ID | Exon_Rank | ERRORS | WARNINGS )'">`)
	}
	lines = append(lines, "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO")

	_, err := vw.w.WriteString(strings.Join(lines, "\n") + "\n")
	return err
}

// Write buffers one effect record, flushing the previous variant's line
// when a new variant starts.
func (vw *VCFWriter) Write(v *variant.Variant, ve *effect.VariantEffect) error {
	if vw.cur != nil && vw.cur != v {
		if err := vw.writeLine(); err != nil {
			return err
		}
	}
	vw.cur = v

	if vw.format == FormatANN {
		vw.anns = append(vw.anns, formatANN(v, ve))
	} else {
		vw.anns = append(vw.anns, formatEFF(ve))
	}
	return nil
}

// writeLine emits the buffered variant as a VCF data line.
func (vw *VCFWriter) writeLine() error {
	v := vw.cur
	tag := "ANN"
	if vw.format == FormatEFF {
		tag = "EFF"
	}

	ref := v.Ref()
	alt := v.Alt()
	if ref == "" {
		ref = "."
	}
	if alt == "" {
		alt = "."
	}

	line := fmt.Sprintf("%s\t%d\t.\t%s\t%s\t.\t.\t%s=%s\n",
		v.Chrom, v.Start(), ref, alt, tag, strings.Join(vw.anns, ","))

	vw.cur = nil
	vw.anns = vw.anns[:0]

	_, err := vw.w.WriteString(line)
	return err
}

// Flush writes the last buffered variant and flushes the writer.
func (vw *VCFWriter) Flush() error {
	if vw.cur != nil {
		if err := vw.writeLine(); err != nil {
			return err
		}
	}
	return vw.w.Flush()
}

// formatANN renders one record as an ANN sub-field.
func formatANN(v *variant.Variant, ve *effect.VariantEffect) string {
	mc := ResolveContext(ve.Marker)

	featureType := ""
	featureID := ""
	if mc.TranscriptID != "" {
		featureType = "transcript"
		featureID = mc.TranscriptID
	}

	rank := ""
	if mc.ExonRank > 0 {
		rank = fmt.Sprintf("%d", mc.ExonRank)
	}

	aaPos := ""
	if ve.CodonNum > 0 {
		aaPos = fmt.Sprintf("%d", ve.CodonNum)
	}

	fields := []string{
		v.Alt(),
		ve.Type.SO(),
		ve.Impact(),
		mc.GeneName,
		mc.GeneID,
		featureType,
		featureID,
		mc.Biotype,
		rank,
		"", // HGVS.c
		"", // HGVS.p
		"", // cDNA.pos
		"", // CDS.pos
		aaPos,
		"", // Distance
		Findings(ve),
	}
	return strings.Join(fields, "|")
}

// formatEFF renders one record as a classic EFF sub-field.
func formatEFF(ve *effect.VariantEffect) string {
	mc := ResolveContext(ve.Marker)

	coding := ""
	if mc.TranscriptID != "" {
		coding = "NON_CODING"
		if mc.Coding {
			coding = "CODING"
		}
	}

	rank := ""
	if mc.ExonRank > 0 {
		rank = fmt.Sprintf("%d", mc.ExonRank)
	}

	fields := []string{
		ve.Impact(),
		FunctionalClass(ve.Type),
		CodonChange(ve),
		AaChange(ve),
		mc.GeneName,
		mc.Biotype,
		coding,
		mc.TranscriptID,
		rank,
		Findings(ve),
	}
	return ve.Type.String() + "(" + strings.Join(fields, "|") + ")"
}
