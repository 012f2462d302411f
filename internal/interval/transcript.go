package interval

import (
	"sort"
	"strings"

	"github.com/chmille4/snpeff/internal/effect"
	"github.com/chmille4/snpeff/internal/variant"
)

// Transcript is an ordered sequence of exons plus CDS/UTR bookkeeping.
// Exons are kept in genomic order; biological (strand) order is derived on
// demand. CDS bounds are stored as genomic min/max.
type Transcript struct {
	Marker
	proteinCoding bool
	biotype       string
	exons         []*Exon
	introns       []*Intron
	utrs          []*Utr
	cdsMin        int
	cdsMax        int
	cds           string // cached coding sequence, 5'→3'
}

// NewTranscript builds a transcript owned by a gene.
func NewTranscript(parent Parent, start, end int, strandMinus bool, id string) *Transcript {
	return &Transcript{
		Marker: *NewMarker(parent, start, end, strandMinus, id, effect.TRANSCRIPT),
	}
}

func (t *Transcript) IsProteinCoding() bool     { return t.proteinCoding }
func (t *Transcript) SetProteinCoding(pc bool)  { t.proteinCoding = pc }
func (t *Transcript) Biotype() string           { return t.biotype }
func (t *Transcript) SetBiotype(bt string)      { t.biotype = bt }
func (t *Transcript) Exons() []*Exon            { return t.exons }
func (t *Transcript) Introns() []*Intron        { return t.introns }
func (t *Transcript) Utrs() []*Utr              { return t.utrs }

// AddExon registers an exon, keeping genomic order and invalidating the
// CDS cache.
func (t *Transcript) AddExon(e *Exon) {
	t.exons = append(t.exons, e)
	sort.Slice(t.exons, func(i, j int) bool { return t.exons[i].start < t.exons[j].start })
	t.cds = ""
}

// AddUtr registers a UTR marker.
func (t *Transcript) AddUtr(u *Utr) { t.utrs = append(t.utrs, u) }

// SetCds records the CDS genomic bounds (order-insensitive).
func (t *Transcript) SetCds(a, b int) {
	if a > b {
		a, b = b, a
	}
	t.cdsMin, t.cdsMax = a, b
	t.cds = ""
}

// CdsMin and CdsMax return the CDS genomic bounds; both zero for
// non-coding transcripts.
func (t *Transcript) CdsMin() int { return t.cdsMin }
func (t *Transcript) CdsMax() int { return t.cdsMax }

// HasCds reports whether CDS bounds were set.
func (t *Transcript) HasCds() bool { return t.cdsMax > 0 }

// IsCds reports whether the variant lies within the coding sequence span.
func (t *Transcript) IsCds(v *variant.Variant) bool {
	if !t.HasCds() {
		return false
	}
	return v.End() >= t.cdsMin && v.Start() <= t.cdsMax
}

// ExonsSortedStrand returns exons in biological (5'→3') order.
func (t *Transcript) ExonsSortedStrand() []*Exon {
	out := make([]*Exon, len(t.exons))
	copy(out, t.exons)
	if t.strandMinus {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// RanksAssign numbers the exons 1..n in biological order. Exon ranks are
// owned by the transcript; exons never recompute them.
func (t *Transcript) RanksAssign() {
	for i, e := range t.ExonsSortedStrand() {
		e.SetRank(i + 1)
	}
}

// IntronsCreate derives the introns between consecutive exons, replacing
// any previously derived set.
func (t *Transcript) IntronsCreate() {
	t.introns = nil
	bio := t.ExonsSortedStrand()
	for i := 0; i < len(bio)-1; i++ {
		a, b := bio[i], bio[i+1]
		lo, hi := a.End()+1, b.Start()-1
		if t.strandMinus {
			lo, hi = b.End()+1, a.Start()-1
		}
		if lo > hi {
			continue
		}
		in := NewIntron(t, lo, hi, t.strandMinus, t.id, i+1)
		t.introns = append(t.introns, in)
	}
}

// SpliceSitesCreate derives core donor/acceptor sites and splice-region
// windows for every exon-intron boundary. Splice sites are cheap to
// regenerate and are never serialized, so this must be called after
// loading a genome database.
func (t *Transcript) SpliceSitesCreate() {
	if len(t.introns) == 0 {
		t.IntronsCreate()
	}

	bio := t.ExonsSortedStrand()
	for i, e := range bio {
		first := i == 0
		last := i == len(bio)-1

		if !first {
			e.CreateSpliceSiteAcceptor(CoreSpliceSiteSize)
			e.CreateSpliceSiteRegionStart(SpliceRegionExonSize)
		}
		if !last {
			e.CreateSpliceSiteDonor(CoreSpliceSiteSize)
			e.CreateSpliceSiteRegionEnd(SpliceRegionExonSize)
		}
	}

	for _, in := range t.introns {
		in.CreateSpliceSiteRegionStart()
		in.CreateSpliceSiteRegionEnd()
	}
}

// UtrsCreate derives UTR markers from exon portions outside the CDS span,
// replacing any previously derived set. No-op for non-coding transcripts.
func (t *Transcript) UtrsCreate() {
	if !t.HasCds() {
		return
	}
	t.utrs = nil
	for _, e := range t.exons {
		// Exon bases before the CDS genomic start.
		if e.Start() < t.cdsMin {
			hi := e.End()
			if hi >= t.cdsMin {
				hi = t.cdsMin - 1
			}
			u := t.newUtr(e.Start(), hi, true)
			t.utrs = append(t.utrs, u)
		}
		// Exon bases after the CDS genomic end.
		if e.End() > t.cdsMax {
			lo := e.Start()
			if lo <= t.cdsMax {
				lo = t.cdsMax + 1
			}
			u := t.newUtr(lo, e.End(), false)
			t.utrs = append(t.utrs, u)
		}
	}
}

// newUtr builds the UTR marker for a span on the genomic-left (beforeCds)
// or genomic-right side of the CDS. On the minus strand the genomic-left
// side is the 3' UTR.
func (t *Transcript) newUtr(start, end int, beforeCds bool) *Utr {
	fivePrime := beforeCds != t.strandMinus
	if fivePrime {
		return NewUtr5(t, start, end, t.strandMinus, t.id)
	}
	return NewUtr3(t, start, end, t.strandMinus, t.id)
}

// Cds returns the coding sequence 5'→3', built from exon sequences clipped
// to the CDS span and cached. Empty when bounds or sequences are missing.
func (t *Transcript) Cds() string {
	if t.cds != "" {
		return t.cds
	}
	if !t.HasCds() {
		return ""
	}

	var sb strings.Builder
	for _, e := range t.ExonsSortedStrand() {
		lo, hi, ok := e.IntersectRange(t.cdsMin, t.cdsMax)
		if !ok {
			continue
		}
		if !e.HasSequence() {
			return "" // cannot build a partial CDS
		}
		chunk := e.BasesAt(lo-e.Start(), hi-lo+1)
		if chunk == "" {
			return ""
		}
		if t.strandMinus {
			chunk = ReverseComplement(chunk)
		}
		sb.WriteString(chunk)
	}

	t.cds = sb.String()
	return t.cds
}

// BaseNumberCds maps a genomic position to its 0-based index within the
// coding sequence. Returns -1 for positions outside the CDS (including
// intronic positions inside the CDS span).
func (t *Transcript) BaseNumberCds(pos int) int {
	if !t.HasCds() || pos < t.cdsMin || pos > t.cdsMax {
		return -1
	}

	count := 0
	for _, e := range t.ExonsSortedStrand() {
		lo, hi, ok := e.IntersectRange(t.cdsMin, t.cdsMax)
		if !ok {
			continue
		}
		if pos >= lo && pos <= hi {
			if t.strandMinus {
				return count + (hi - pos)
			}
			return count + (pos - lo)
		}
		count += hi - lo + 1
	}
	return -1
}

// FrameCorrection aligns the first coding exon to a codon boundary when
// its annotated frame indicates leading partial-codon bases (common in
// GTF/GFF annotations of 5'-incomplete transcripts). Returns false when a
// required correction could not be applied.
func (t *Transcript) FrameCorrection() bool {
	if !t.HasCds() {
		return true
	}
	for _, e := range t.ExonsSortedStrand() {
		if _, _, ok := e.IntersectRange(t.cdsMin, t.cdsMax); !ok {
			continue
		}
		// First coding exon.
		if e.Frame() > 0 {
			if !e.FrameCorrection(e.Frame()) {
				return false
			}
			// The trim may move the CDS boundary inward.
			if e.Start() > t.cdsMin && !t.strandMinus {
				t.cdsMin = e.Start()
			}
			if e.End() < t.cdsMax && t.strandMinus {
				t.cdsMax = e.End()
			}
			t.cds = ""
		}
		return true
	}
	return true
}

// AaIndexAssign records, for each coding exon, the first and last
// amino-acid indexes intersecting it.
func (t *Transcript) AaIndexAssign() {
	count := 0
	for _, e := range t.ExonsSortedStrand() {
		lo, hi, ok := e.IntersectRange(t.cdsMin, t.cdsMax)
		if !ok {
			continue
		}
		n := hi - lo + 1
		e.SetAaIdx(count/3, (count+n-1)/3)
		count += n
	}
}

// Apply produces a new transcript with the variant applied to itself and
// every child, or nil if the transcript is deleted entirely.
func (t *Transcript) Apply(v *variant.Variant) *Transcript {
	nm := t.Marker.Apply(v)
	if nm == nil {
		return nil
	}

	n := &Transcript{
		Marker:        *nm,
		proteinCoding: t.proteinCoding,
		biotype:       t.biotype,
		cdsMin:        t.cdsMin,
		cdsMax:        t.cdsMax,
	}

	for _, e := range t.exons {
		ne := e.Apply(v)
		if ne == nil {
			continue
		}
		ne.SetParent(n)
		n.exons = append(n.exons, ne)
	}
	for _, in := range t.introns {
		ni := in.Apply(v)
		if ni == nil {
			continue
		}
		ni.SetParent(n)
		n.introns = append(n.introns, ni)
	}
	for _, u := range t.utrs {
		nu := u.Apply(v)
		if nu == nil {
			continue
		}
		nu.SetParent(n)
		n.utrs = append(n.utrs, nu)
	}

	// CDS bounds follow the coding exons.
	if cm := t.applyCdsBounds(v); cm != nil {
		n.cdsMin, n.cdsMax = cm[0], cm[1]
	}

	return n
}

func (t *Transcript) applyCdsBounds(v *variant.Variant) []int {
	if !t.HasCds() {
		return nil
	}
	cdsMarker := NewMarker(nil, t.cdsMin, t.cdsMax, t.strandMinus, t.id, effect.NONE)
	nc := cdsMarker.Apply(v)
	if nc == nil {
		return []int{0, 0}
	}
	return []int{nc.Start(), nc.End()}
}

// VariantEffect dispatches the variant across the transcript's children:
// UTRs, exons (including their splice sites), and introns. Every
// intersecting child contributes; effects are additive across child kinds.
// When nothing more specific matches, a generic TRANSCRIPT effect is
// recorded.
func (t *Transcript) VariantEffect(v *variant.Variant, effs *effect.VariantEffects) bool {
	if !t.Intersects(v) {
		return false
	}

	before := effs.Len()

	for _, u := range t.utrs {
		if u.Intersects(v) {
			u.VariantEffect(v, effs)
		}
	}

	for _, e := range t.exons {
		if e.Intersects(v) {
			e.VariantEffect(v, effs)
			continue
		}
		// Splice sites extend beyond the exon bounds; consult them even
		// when the exon itself is missed.
		for _, ss := range e.Query(v.Start(), v.End()) {
			ss.VariantEffect(v, effs)
		}
	}

	for _, in := range t.introns {
		if in.Intersects(v) {
			in.VariantEffect(v, effs)
		}
	}

	if effs.Len() == before {
		effs.Add(v, t, effect.TRANSCRIPT, "")
	}
	return true
}

// treatAllAsProteinCoding answers the genome-level configuration query via
// the parent chain.
func (t *Transcript) treatAllAsProteinCoding() bool {
	g := t.Genome()
	return g != nil && g.TreatAllAsProteinCoding
}

// Gene returns the owning gene, nil when detached.
func (t *Transcript) Gene() *Gene {
	g, _ := t.parent.(*Gene)
	return g
}

// Genome walks the parent chain to the owning genome, nil when detached.
func (t *Transcript) Genome() *Genome {
	g := t.Gene()
	if g == nil {
		return nil
	}
	return g.Genome()
}
