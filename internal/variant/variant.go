// Package variant defines the genomic variant type consumed by the
// annotation engine. Variants are immutable inputs: every field is set at
// construction and never changed during effect computation.
package variant

import (
	"strconv"
	"strings"
)

// Type classifies a variant by the shape of its ref/alt alleles.
type Type int

const (
	// SNP is a single nucleotide polymorphism (one base substituted).
	SNP Type = iota
	// MNP is a multiple nucleotide polymorphism (same-length substitution).
	MNP
	// INS is an insertion (empty ref, non-empty alt).
	INS
	// DEL is a deletion (non-empty ref, empty alt).
	DEL
	// MIXED is a substitution where ref and alt differ in length.
	MIXED
	// INTERVAL is a zero-allele marker (a region of interest, not a
	// sequence change).
	INTERVAL
)

func (t Type) String() string {
	switch t {
	case SNP:
		return "SNP"
	case MNP:
		return "MNP"
	case INS:
		return "INS"
	case DEL:
		return "DEL"
	case MIXED:
		return "MIXED"
	case INTERVAL:
		return "INTERVAL"
	}
	return "UNKNOWN"
}

// Variant is a single genomic change on the forward (reference) strand.
// Coordinates are 1-based and inclusive. Ref and Alt are given after
// anchor-base trimming: an insertion has an empty Ref and Start pointing at
// the first inserted position, a deletion has an empty Alt and [Start, End]
// spanning the deleted bases.
type Variant struct {
	Chrom string
	start int
	end   int
	ref   string
	alt   string
	typ   Type
}

// New builds a variant from trimmed alleles, classifying its type from the
// allele lengths.
func New(chrom string, start int, ref, alt string) *Variant {
	ref = strings.ToUpper(ref)
	alt = strings.ToUpper(alt)

	v := &Variant{Chrom: chrom, start: start, ref: ref, alt: alt}

	switch {
	case ref == "" && alt == "":
		v.typ = INTERVAL
		v.end = start
	case len(ref) == 1 && len(alt) == 1:
		v.typ = SNP
		v.end = start
	case len(ref) == len(alt):
		v.typ = MNP
		v.end = start + len(ref) - 1
	case ref == "":
		v.typ = INS
		v.end = start
	case alt == "":
		v.typ = DEL
		v.end = start + len(ref) - 1
	default:
		v.typ = MIXED
		v.end = start + len(ref) - 1
	}

	return v
}

// NewInterval builds a zero-allele interval variant spanning [start, end].
func NewInterval(chrom string, start, end int) *Variant {
	return &Variant{Chrom: chrom, start: start, end: end, typ: INTERVAL}
}

func (v *Variant) Start() int    { return v.start }
func (v *Variant) End() int      { return v.end }
func (v *Variant) Ref() string   { return v.ref }
func (v *Variant) Alt() string   { return v.alt }
func (v *Variant) VariantType() Type { return v.typ }

func (v *Variant) IsSNP() bool      { return v.typ == SNP }
func (v *Variant) IsMNP() bool      { return v.typ == MNP }
func (v *Variant) IsIns() bool      { return v.typ == INS }
func (v *Variant) IsDel() bool      { return v.typ == DEL }
func (v *Variant) IsMixed() bool    { return v.typ == MIXED }
func (v *Variant) IsInterval() bool { return v.typ == INTERVAL }

// IsVariant reports whether this is an actual sequence change as opposed to
// an interval marker or a ref==alt no-op call.
func (v *Variant) IsVariant() bool {
	return v.typ != INTERVAL && v.ref != v.alt
}

// LenChange is the net change in genome length caused by the variant:
// positive for insertions, negative for deletions, zero for substitutions.
func (v *Variant) LenChange() int {
	return len(v.alt) - len(v.ref)
}

// NetChange returns the bases inserted or deleted by the variant; empty for
// substitutions and intervals.
func (v *Variant) NetChange() string {
	switch v.typ {
	case INS:
		return v.alt
	case DEL:
		return v.ref
	}
	return ""
}

// Size is the number of reference bases the variant spans.
func (v *Variant) Size() int { return v.end - v.start + 1 }

func (v *Variant) String() string {
	return v.Chrom + ":" + strconv.Itoa(v.start) + "_" + v.ref + "/" + v.alt
}
