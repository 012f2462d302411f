package interval

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/chmille4/snpeff/internal/effect"
	"github.com/chmille4/snpeff/internal/variant"
)

// ExonSpliceType characterizes exons based on alternative splicing.
type ExonSpliceType int

const (
	SpliceTypeNone ExonSpliceType = iota
	SpliceTypeRetained
	SpliceTypeSkipped
	SpliceTypeAlt3SS
	SpliceTypeAlt5SS
	SpliceTypeMutuallyExclusive
	SpliceTypeAltPromoter
	SpliceTypeAltPolyA
)

func (t ExonSpliceType) String() string {
	switch t {
	case SpliceTypeRetained:
		return "RETAINED"
	case SpliceTypeSkipped:
		return "SKIPPED"
	case SpliceTypeAlt3SS:
		return "ALT_3SS"
	case SpliceTypeAlt5SS:
		return "ALT_5SS"
	case SpliceTypeMutuallyExclusive:
		return "MUTUALLY_EXCLUSIVE"
	case SpliceTypeAltPromoter:
		return "ALT_PROMOTER"
	case SpliceTypeAltPolyA:
		return "ALT_POLY_A"
	}
	return "NONE"
}

// ParseExonSpliceType parses the serialized splice-type tag. Unknown or
// empty tags map to NONE.
func ParseExonSpliceType(s string) ExonSpliceType {
	switch s {
	case "RETAINED":
		return SpliceTypeRetained
	case "SKIPPED":
		return SpliceTypeSkipped
	case "ALT_3SS":
		return SpliceTypeAlt3SS
	case "ALT_5SS":
		return SpliceTypeAlt5SS
	case "MUTUALLY_EXCLUSIVE":
		return SpliceTypeMutuallyExclusive
	case "ALT_PROMOTER":
		return SpliceTypeAltPromoter
	case "ALT_POLY_A":
		return SpliceTypeAltPolyA
	}
	return SpliceTypeNone
}

// SpliceNode is a splice-site or splice-region child of an exon.
type SpliceNode interface {
	effect.Marker
	Effector
	Intersects(v *variant.Variant) bool
	SetParent(p Parent)
	applyNode(v *variant.Variant) SpliceNode
}

func (ss *SpliceSite) applyNode(v *variant.Variant) SpliceNode {
	n := ss.Apply(v)
	if n == nil {
		return nil
	}
	return n
}

func (sr *SpliceSiteRegion) applyNode(v *variant.Variant) SpliceNode {
	n := sr.Apply(v)
	if n == nil {
		return nil
	}
	return n
}

// Exon is a sequence-bearing marker participating in a transcript's coding
// structure. Frame is {-1, 0, 1, 2}, -1 meaning unknown: the number of
// bases to remove from the feature start to reach the next codon boundary.
// Rank is the 1-based, strand-oriented position among the transcript's
// exons, assigned by the owning Transcript and never recomputed here.
type Exon struct {
	MarkerSeq
	frame       int8
	rank        int
	aaIdxStart  int
	aaIdxEnd    int
	spliceType  ExonSpliceType
	spliceSites []SpliceNode
}

// NewExon builds an exon owned by a transcript.
func NewExon(parent Parent, start, end int, strandMinus bool, id string, rank int) *Exon {
	return &Exon{
		MarkerSeq:  *NewMarkerSeq(parent, start, end, strandMinus, id, effect.EXON),
		frame:      -1,
		rank:       rank,
		aaIdxStart: -1,
		aaIdxEnd:   -1,
	}
}

func (e *Exon) Frame() int                 { return int(e.frame) }
func (e *Exon) Rank() int                  { return e.rank }
func (e *Exon) SetRank(rank int)           { e.rank = rank }
func (e *Exon) SpliceType() ExonSpliceType { return e.spliceType }
func (e *Exon) SetSpliceType(t ExonSpliceType) { e.spliceType = t }
func (e *Exon) AaIdx() (start, end int)    { return e.aaIdxStart, e.aaIdxEnd }

// SetAaIdx records the first and last amino-acid indexes intersecting this
// exon.
func (e *Exon) SetAaIdx(start, end int) {
	e.aaIdxStart = start
	e.aaIdxEnd = end
}

// SetFrame sets the reading frame. A value outside {-1, 0, 1, 2} is a
// programming-contract violation and panics: callers must never produce
// one.
func (e *Exon) SetFrame(frame int) {
	if frame < -1 || frame > 2 {
		panic(fmt.Sprintf("invalid exon frame value: %d", frame))
	}
	e.frame = int8(frame)
}

// SpliceSites returns the exon's splice-site children in creation order.
func (e *Exon) SpliceSites() []SpliceNode { return e.spliceSites }

// AddSpliceSite registers a splice-site child.
func (e *Exon) AddSpliceSite(n SpliceNode) {
	e.spliceSites = append(e.spliceSites, n)
}

// Apply produces a new exon reflecting post-variant coordinates, applying
// the variant to every splice-site child as well. The splice type is not
// updated: it reflects the exon's classification before the sequence
// change.
func (e *Exon) Apply(v *variant.Variant) *Exon {
	ns := e.MarkerSeq.Apply(v)
	if ns == nil {
		return nil
	}

	n := &Exon{
		MarkerSeq:  *ns,
		frame:      e.frame,
		rank:       e.rank,
		aaIdxStart: e.aaIdxStart,
		aaIdxEnd:   e.aaIdxEnd,
		spliceType: e.spliceType,
	}

	for _, ss := range e.spliceSites {
		nss := ss.applyNode(v)
		if nss == nil {
			continue
		}
		nss.SetParent(n)
		n.AddSpliceSite(nss)
	}

	return n
}

// CreateSpliceSiteRegionStart creates the splice-region window anchored at
// the exon's biological start. The requested size is clamped to the exon's
// own length; non-positive sizes create nothing. For minus-strand exons the
// biological start corresponds to the genomic end, so the geometry flips.
// The region is registered as a child; repeated calls create independent
// instances.
func (e *Exon) CreateSpliceSiteRegionStart(size int) *SpliceSiteRegion {
	if size > e.Size() {
		size = e.Size()
	}
	if size <= 0 {
		return nil
	}

	var region *SpliceSiteRegion
	if e.IsStrandPlus() {
		region = NewSpliceSiteRegion(e, e.start, e.start+(size-1), e.strandMinus, e.id)
	} else {
		region = NewSpliceSiteRegion(e, e.end-(size-1), e.end, e.strandMinus, e.id)
	}

	e.AddSpliceSite(region)
	return region
}

// CreateSpliceSiteRegionEnd creates the splice-region window anchored at
// the exon's biological end; see CreateSpliceSiteRegionStart.
func (e *Exon) CreateSpliceSiteRegionEnd(size int) *SpliceSiteRegion {
	if size > e.Size() {
		size = e.Size()
	}
	if size <= 0 {
		return nil
	}

	var region *SpliceSiteRegion
	if e.IsStrandPlus() {
		region = NewSpliceSiteRegion(e, e.end-(size-1), e.end, e.strandMinus, e.id)
	} else {
		region = NewSpliceSiteRegion(e, e.start, e.start+(size-1), e.strandMinus, e.id)
	}

	e.AddSpliceSite(region)
	return region
}

// CreateSpliceSiteAcceptor creates the core acceptor site: the intronic
// bases immediately before the exon's biological start.
func (e *Exon) CreateSpliceSiteAcceptor(size int) *SpliceSite {
	if size <= 0 {
		return nil
	}

	var ss *SpliceSite
	if e.IsStrandPlus() {
		ss = NewSpliceSite(e, e.start-size, e.start-1, e.strandMinus, e.id, effect.SPLICE_SITE_ACCEPTOR)
	} else {
		ss = NewSpliceSite(e, e.end+1, e.end+size, e.strandMinus, e.id, effect.SPLICE_SITE_ACCEPTOR)
	}

	e.AddSpliceSite(ss)
	return ss
}

// CreateSpliceSiteDonor creates the core donor site: the intronic bases
// immediately after the exon's biological end.
func (e *Exon) CreateSpliceSiteDonor(size int) *SpliceSite {
	if size <= 0 {
		return nil
	}

	var ss *SpliceSite
	if e.IsStrandPlus() {
		ss = NewSpliceSite(e, e.end+1, e.end+size, e.strandMinus, e.id, effect.SPLICE_SITE_DONOR)
	} else {
		ss = NewSpliceSite(e, e.start-size, e.start-1, e.strandMinus, e.id, effect.SPLICE_SITE_DONOR)
	}

	e.AddSpliceSite(ss)
	return ss
}

// FrameCorrection shifts the exon's coding start by delta bases to align to
// a codon boundary (used when an adjacent exon contributes partial-codon
// bases). A zero or negative delta is a no-op success. Fails without
// mutating when the exon is not strictly longer than delta.
func (e *Exon) FrameCorrection(delta int) bool {
	if delta <= 0 {
		return true // nothing to do
	}

	if e.Size() <= delta {
		log.Debug("exon too short, cannot correct frame",
			zap.String("exon", e.id),
			zap.Int("size", e.Size()),
			zap.Int("delta", delta))
		return false
	}

	// Correct start or end: the biological start is the genomic end on the
	// minus strand.
	if e.IsStrandPlus() {
		e.start += delta
	} else {
		e.end -= delta
	}

	e.frame = int8((((int(e.frame) - delta) % 3) + 3) % 3)

	// Keep sequence-to-coordinate alignment by trimming the first delta
	// bases of the strand-oriented sequence.
	if len(e.sequence) >= delta {
		e.sequence = e.sequence[delta:]
	}

	return true
}

// Query returns the splice-site children intersecting the given span.
func (e *Exon) Query(start, end int) []SpliceNode {
	var hits []SpliceNode
	for _, ss := range e.spliceSites {
		if end >= ss.Start() && start <= ss.End() {
			hits = append(hits, ss)
		}
	}
	return hits
}

// SanityCheck verifies that the exon's stored reference sequence matches
// the variant's declared reference allele over their overlap. Only SNP and
// MNP variants are checked; all other types return no finding. The check
// never mutates state; it exists to catch genome/VCF version skew.
func (e *Exon) SanityCheck(v *variant.Variant) effect.ErrorWarning {
	if !e.Intersects(v) {
		return effect.ErrWarnNone
	}
	if !v.IsSNP() && !v.IsMNP() {
		return effect.ErrWarnNone
	}

	mstart := v.Start()
	if e.start > mstart {
		mstart = e.start
	}
	idxStart := mstart - e.start

	if !e.HasSequence() {
		return effect.WarningSequenceNotAvailable
	}
	if idxStart >= len(e.sequence) {
		return effect.ErrorOutOfExon
	}

	mend := v.End()
	if e.end < mend {
		mend = e.end
	}
	length := mend - mstart + 1

	realRef := strings.ToUpper(e.BasesAt(idxStart, length))

	chRefStart := mstart - v.Start()
	if chRefStart < 0 {
		return effect.ErrorOutOfExon
	}
	chRefEnd := mend - v.Start()
	ref := v.Ref()
	if chRefEnd >= len(ref) {
		return effect.ErrorOutOfExon
	}

	declaredRef := strings.ToUpper(ref[chRefStart : chRefEnd+1])
	if realRef != declaredRef {
		return effect.WarningRefDoesNotMatchGenome
	}

	return effect.ErrWarnNone
}

// VariantEffect computes exon-level effects for an intersecting variant.
// Decision order: non-coding transcripts, pure intervals and non-variant
// calls get a generic EXON annotation; variants within the CDS of a coding
// transcript get full codon-change analysis. Splice-site children are
// always consulted afterwards; their effects are additive. The return
// value reports whether an exon-level (non-splice) effect was recorded.
func (e *Exon) VariantEffect(v *variant.Variant, effs *effect.VariantEffects) bool {
	if !e.Intersects(v) {
		return false
	}

	tr := e.Transcript()
	coding := tr != nil && (tr.IsProteinCoding() || tr.treatAllAsProteinCoding())

	exonAnnotated := false
	switch {
	case !coding || v.IsInterval() || !v.IsVariant():
		effs.Add(v, e, effect.EXON, "")
		exonAnnotated = true
	case tr.IsCds(v):
		NewCodonChange(v, tr, e, effs).Compute()
		exonAnnotated = true
	}

	if exonAnnotated {
		if ew := e.SanityCheck(v); ew != effect.ErrWarnNone {
			effs.AddErrorWarning(v, e, ew)
		}
	}

	for _, ss := range e.spliceSites {
		if ss.Intersects(v) {
			ss.VariantEffect(v, effs)
		}
	}

	return exonAnnotated
}

// Transcript returns the owning transcript, nil when the exon is detached.
func (e *Exon) Transcript() *Transcript {
	tr, _ := e.parent.(*Transcript)
	return tr
}

func (e *Exon) String() string {
	frame := "."
	if e.frame >= 0 {
		frame = string('0' + byte(e.frame))
	}
	s := fmt.Sprintf("%d-%d", e.start, e.end)
	if e.id != "" {
		s += " '" + e.id + "'"
	}
	return fmt.Sprintf("%s, rank: %d, frame: %s", s, e.rank, frame)
}
