package effect

import "github.com/chmille4/snpeff/internal/variant"

// ErrorWarning is a data-quality finding attached to an effect record.
// Warnings flag unreliable annotations; errors flag out-of-bounds
// conditions during sanity checking. Neither aborts the pipeline.
type ErrorWarning int

const (
	ErrWarnNone ErrorWarning = iota
	WarningSequenceNotAvailable
	WarningRefDoesNotMatchGenome
	ErrorOutOfExon
)

func (ew ErrorWarning) String() string {
	switch ew {
	case WarningSequenceNotAvailable:
		return "WARNING_SEQUENCE_NOT_AVAILABLE"
	case WarningRefDoesNotMatchGenome:
		return "WARNING_REF_DOES_NOT_MATCH_GENOME"
	case ErrorOutOfExon:
		return "ERROR_OUT_OF_EXON"
	}
	return ""
}

// IsError reports whether the finding is an error (as opposed to a warning).
func (ew ErrorWarning) IsError() bool { return ew == ErrorOutOfExon }

// Marker is the narrow view of a genomic marker an effect record keeps.
// The concrete marker types live above this package; records hold them
// through this interface so accumulation stays decoupled from the interval
// tree.
type Marker interface {
	ID() string
	Start() int
	End() int
	EffType() Type
}

// VariantEffect is a single (variant, marker, effect) record. Records are
// immutable after insertion except for decoration performed by the producer
// that created them (codon strings, error/warning codes).
type VariantEffect struct {
	Variant *variant.Variant
	Marker  Marker
	Type    Type
	Detail  string

	CodonsOld string
	CodonsNew string
	AasOld    string
	AasNew    string
	CodonNum  int // 1-based codon number, 0 if not codon-level
	CodonIdx  int // 0..2 position within codon

	Findings []ErrorWarning
}

// Impact returns the impact level of the record's effect type.
func (ve *VariantEffect) Impact() string { return ve.Type.Impact() }

// AddFinding attaches a non-fatal error/warning code to the record.
func (ve *VariantEffect) AddFinding(ew ErrorWarning) {
	if ew == ErrWarnNone {
		return
	}
	ve.Findings = append(ve.Findings, ew)
}

// GeneID walks the marker's identity for output; empty if no marker.
func (ve *VariantEffect) MarkerID() string {
	if ve.Marker == nil {
		return ""
	}
	return ve.Marker.ID()
}

// VariantEffects accumulates effect records for one variant evaluation.
// It is owned exclusively by the calling evaluation and is never shared
// between goroutines. Iteration order is insertion order, which follows
// the traversal order of the marker tree.
type VariantEffects struct {
	effects []*VariantEffect
}

// NewVariantEffects creates an empty accumulator.
func NewVariantEffects() *VariantEffects {
	return &VariantEffects{}
}

// Add appends a new record and returns it for decoration.
func (ves *VariantEffects) Add(v *variant.Variant, m Marker, t Type, detail string) *VariantEffect {
	ve := &VariantEffect{Variant: v, Marker: m, Type: t, Detail: detail}
	ves.effects = append(ves.effects, ve)
	return ve
}

// AddErrorWarning attaches a finding to the most recent record; if the
// accumulator is empty it creates a bare record to carry the finding, so
// data-quality signals are never dropped.
func (ves *VariantEffects) AddErrorWarning(v *variant.Variant, m Marker, ew ErrorWarning) {
	if ew == ErrWarnNone {
		return
	}
	if len(ves.effects) == 0 {
		ves.Add(v, m, NONE, "")
	}
	ves.effects[len(ves.effects)-1].AddFinding(ew)
}

// Effects returns the accumulated records in insertion order.
func (ves *VariantEffects) Effects() []*VariantEffect { return ves.effects }

// Len returns the number of accumulated records.
func (ves *VariantEffects) Len() int { return len(ves.effects) }

// HasCodonLevel reports whether any record carries codon-level detail.
func (ves *VariantEffects) HasCodonLevel() bool {
	for _, ve := range ves.effects {
		if ve.Type.IsCodonLevel() {
			return true
		}
	}
	return false
}
