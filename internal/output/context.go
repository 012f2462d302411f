// Package output provides effect output formatters.
package output

import (
	"strconv"
	"strings"

	"github.com/chmille4/snpeff/internal/effect"
	"github.com/chmille4/snpeff/internal/interval"
)

// MarkerContext is the gene/transcript identity resolved from an effect
// record's marker, formatted for output.
type MarkerContext struct {
	GeneID       string
	GeneName     string
	TranscriptID string
	Biotype      string
	Coding       bool
	ExonRank     int // 0 when the marker is not exon-scoped
}

// ResolveContext walks the marker's parent chain for output fields. Any
// field that cannot be resolved stays empty.
func ResolveContext(m effect.Marker) MarkerContext {
	var mc MarkerContext
	if m == nil {
		return mc
	}

	if g := interval.GeneOf(m); g != nil {
		mc.GeneID = g.ID()
		mc.GeneName = g.Name()
	}
	if tr := interval.TranscriptOf(m); tr != nil {
		mc.TranscriptID = tr.ID()
		mc.Biotype = tr.Biotype()
		mc.Coding = tr.IsProteinCoding()
	}
	if e, ok := m.(*interval.Exon); ok {
		mc.ExonRank = e.Rank()
	}
	return mc
}

// FunctionalClass maps codon-level effect types to the classic
// NONE/SILENT/MISSENSE/NONSENSE classification.
func FunctionalClass(t effect.Type) string {
	switch t {
	case effect.SYNONYMOUS_CODING, effect.SYNONYMOUS_STOP:
		return "SILENT"
	case effect.NON_SYNONYMOUS_CODING, effect.START_LOST:
		return "MISSENSE"
	case effect.STOP_GAINED:
		return "NONSENSE"
	}
	return "NONE"
}

// CodonChange formats the old/new codon pair, empty when absent.
func CodonChange(ve *effect.VariantEffect) string {
	if ve.CodonsOld == "" && ve.CodonsNew == "" {
		return ""
	}
	return ve.CodonsOld + "/" + ve.CodonsNew
}

// AaChange formats an amino-acid change like "G12C"; empty when the record
// has no codon-level detail.
func AaChange(ve *effect.VariantEffect) string {
	if ve.CodonNum == 0 {
		return ""
	}
	if ve.AasOld == ve.AasNew {
		return ve.AasOld + strconv.Itoa(ve.CodonNum)
	}
	return ve.AasOld + strconv.Itoa(ve.CodonNum) + ve.AasNew
}

// Findings joins attached error/warning codes with '+'.
func Findings(ve *effect.VariantEffect) string {
	if len(ve.Findings) == 0 {
		return ""
	}
	parts := make([]string, len(ve.Findings))
	for i, f := range ve.Findings {
		parts[i] = f.String()
	}
	return strings.Join(parts, "+")
}
