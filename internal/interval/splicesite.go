package interval

import (
	"github.com/chmille4/snpeff/internal/effect"
	"github.com/chmille4/snpeff/internal/variant"
)

// Splice window sizes (bases). The core donor/acceptor sites are the first
// two intronic bases; the splice region extends SpliceRegionExonSize bases
// into the exon and SpliceRegionIntronMin..SpliceRegionIntronMax bases into
// the adjacent intron.
const (
	CoreSpliceSiteSize    = 2
	SpliceRegionExonSize  = 3
	SpliceRegionIntronMin = 3
	SpliceRegionIntronMax = 8
)

// SpliceSite marks a donor or acceptor window at an exon-intron boundary.
// Splice sites are derived lazily from exon bounds and are never persisted
// in the genome database.
type SpliceSite struct {
	Marker
}

// NewSpliceSite builds a donor or acceptor site. typ must be
// SPLICE_SITE_DONOR or SPLICE_SITE_ACCEPTOR.
func NewSpliceSite(parent Parent, start, end int, strandMinus bool, id string, typ effect.Type) *SpliceSite {
	return &SpliceSite{Marker: *NewMarker(parent, start, end, strandMinus, id, typ)}
}

// Apply shifts the splice site for a variant; nil if deleted.
func (ss *SpliceSite) Apply(v *variant.Variant) *SpliceSite {
	nm := ss.Marker.Apply(v)
	if nm == nil {
		return nil
	}
	return &SpliceSite{Marker: *nm}
}

// VariantEffect records the splice-site hit. Splice effects are additive
// with exon and codon effects, never exclusive.
func (ss *SpliceSite) VariantEffect(v *variant.Variant, effs *effect.VariantEffects) bool {
	if !ss.Intersects(v) {
		return false
	}
	effs.Add(v, ss, ss.typ, "")
	return true
}

// SpliceSiteRegion marks the flanking splice-region window around an
// exon-intron boundary.
type SpliceSiteRegion struct {
	Marker
}

// NewSpliceSiteRegion builds a splice-region window.
func NewSpliceSiteRegion(parent Parent, start, end int, strandMinus bool, id string) *SpliceSiteRegion {
	return &SpliceSiteRegion{
		Marker: *NewMarker(parent, start, end, strandMinus, id, effect.SPLICE_SITE_REGION),
	}
}

// Apply shifts the region for a variant; nil if deleted.
func (sr *SpliceSiteRegion) Apply(v *variant.Variant) *SpliceSiteRegion {
	nm := sr.Marker.Apply(v)
	if nm == nil {
		return nil
	}
	return &SpliceSiteRegion{Marker: *nm}
}

// VariantEffect records the splice-region hit.
func (sr *SpliceSiteRegion) VariantEffect(v *variant.Variant, effs *effect.VariantEffects) bool {
	if !sr.Intersects(v) {
		return false
	}
	effs.Add(v, sr, effect.SPLICE_SITE_REGION, "")
	return true
}
