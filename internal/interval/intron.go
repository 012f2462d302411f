package interval

import (
	"github.com/chmille4/snpeff/internal/effect"
	"github.com/chmille4/snpeff/internal/variant"
)

// Intron is the gap between two consecutive exons of a transcript. Rank is
// strand-oriented and 1-based, like exon ranks. Introns own the intron-side
// splice-region windows; the core donor/acceptor sites and exon-side
// regions belong to the flanking exons.
type Intron struct {
	Marker
	rank        int
	spliceSites []SpliceNode
}

// NewIntron builds an intron owned by a transcript.
func NewIntron(parent Parent, start, end int, strandMinus bool, id string, rank int) *Intron {
	return &Intron{
		Marker: *NewMarker(parent, start, end, strandMinus, id, effect.INTRON),
		rank:   rank,
	}
}

func (in *Intron) Rank() int { return in.rank }

// SpliceSites returns the intron's splice-region children.
func (in *Intron) SpliceSites() []SpliceNode { return in.spliceSites }

// CreateSpliceSiteRegionStart creates the intron-side splice-region window
// adjacent to the intron's biological start (the donor side). The window
// spans intronic bases SpliceRegionIntronMin..SpliceRegionIntronMax,
// clamped to the intron's own length.
func (in *Intron) CreateSpliceSiteRegionStart() *SpliceSiteRegion {
	lo, hi := SpliceRegionIntronMin, SpliceRegionIntronMax
	if hi > in.Size() {
		hi = in.Size()
	}
	if lo > hi {
		return nil
	}

	var region *SpliceSiteRegion
	if in.IsStrandPlus() {
		region = NewSpliceSiteRegion(in, in.start+(lo-1), in.start+(hi-1), in.strandMinus, in.id)
	} else {
		region = NewSpliceSiteRegion(in, in.end-(hi-1), in.end-(lo-1), in.strandMinus, in.id)
	}

	in.spliceSites = append(in.spliceSites, region)
	return region
}

// CreateSpliceSiteRegionEnd creates the intron-side splice-region window
// adjacent to the intron's biological end (the acceptor side).
func (in *Intron) CreateSpliceSiteRegionEnd() *SpliceSiteRegion {
	lo, hi := SpliceRegionIntronMin, SpliceRegionIntronMax
	if hi > in.Size() {
		hi = in.Size()
	}
	if lo > hi {
		return nil
	}

	var region *SpliceSiteRegion
	if in.IsStrandPlus() {
		region = NewSpliceSiteRegion(in, in.end-(hi-1), in.end-(lo-1), in.strandMinus, in.id)
	} else {
		region = NewSpliceSiteRegion(in, in.start+(lo-1), in.start+(hi-1), in.strandMinus, in.id)
	}

	in.spliceSites = append(in.spliceSites, region)
	return region
}

// Apply shifts the intron for a variant; nil if deleted (e.g. a full
// intron deletion).
func (in *Intron) Apply(v *variant.Variant) *Intron {
	nm := in.Marker.Apply(v)
	if nm == nil {
		return nil
	}
	n := &Intron{Marker: *nm, rank: in.rank}
	for _, ss := range in.spliceSites {
		nss := ss.applyNode(v)
		if nss == nil {
			continue
		}
		nss.SetParent(n)
		n.spliceSites = append(n.spliceSites, nss)
	}
	return n
}

// VariantEffect records the intron hit plus any splice-region hits.
func (in *Intron) VariantEffect(v *variant.Variant, effs *effect.VariantEffects) bool {
	if !in.Intersects(v) {
		return false
	}
	effs.Add(v, in, effect.INTRON, "")
	for _, ss := range in.spliceSites {
		if ss.Intersects(v) {
			ss.VariantEffect(v, effs)
		}
	}
	return true
}
