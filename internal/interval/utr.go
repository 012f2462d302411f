package interval

import (
	"github.com/chmille4/snpeff/internal/effect"
	"github.com/chmille4/snpeff/internal/variant"
)

// Utr is an untranslated region of a coding transcript. The effect type
// distinguishes 5' from 3'.
type Utr struct {
	Marker
}

// NewUtr5 builds a 5' UTR marker.
func NewUtr5(parent Parent, start, end int, strandMinus bool, id string) *Utr {
	return &Utr{Marker: *NewMarker(parent, start, end, strandMinus, id, effect.UTR_5_PRIME)}
}

// NewUtr3 builds a 3' UTR marker.
func NewUtr3(parent Parent, start, end int, strandMinus bool, id string) *Utr {
	return &Utr{Marker: *NewMarker(parent, start, end, strandMinus, id, effect.UTR_3_PRIME)}
}

// Apply shifts the UTR for a variant; nil if deleted.
func (u *Utr) Apply(v *variant.Variant) *Utr {
	nm := u.Marker.Apply(v)
	if nm == nil {
		return nil
	}
	return &Utr{Marker: *nm}
}

// VariantEffect records the UTR hit.
func (u *Utr) VariantEffect(v *variant.Variant, effs *effect.VariantEffects) bool {
	if !u.Intersects(v) {
		return false
	}
	effs.Add(v, u, u.typ, "")
	return true
}
