// Package interval implements the genomic marker hierarchy and the
// variant-effect engine: chromosomes, genes, transcripts, exons, splice
// sites, coordinate transformation under variants, and codon-change
// analysis. Coordinates are 1-based and inclusive on both ends.
//
// The base genome tree is built once at load time and is read-only during
// evaluation; Apply always returns a new marker, so a genome can be shared
// across concurrent evaluations without locking.
package interval

import (
	"sort"

	"github.com/chmille4/snpeff/internal/effect"
	"github.com/chmille4/snpeff/internal/variant"
)

// Parent is the upward view a marker keeps of its owner. The reference is
// non-owning: parents own children through explicit collections, children
// only use the back-reference for upward queries.
type Parent interface {
	ID() string
	Start() int
	End() int
	EffType() effect.Type
}

// Effector computes variant effects for a concrete marker kind.
// The bool result reports whether a marker-level effect was recorded,
// letting callers decide whether to fall back to a default annotation.
type Effector interface {
	VariantEffect(v *variant.Variant, effs *effect.VariantEffects) bool
}

// Marker is a strand-aware genomic interval with identity and a parent
// back-reference. Invariant: start <= end.
type Marker struct {
	start       int
	end         int
	strandMinus bool
	id          string
	typ         effect.Type
	parent      Parent
}

// NewMarker builds a marker owned by parent.
func NewMarker(parent Parent, start, end int, strandMinus bool, id string, typ effect.Type) *Marker {
	return &Marker{
		start:       start,
		end:         end,
		strandMinus: strandMinus,
		id:          id,
		typ:         typ,
		parent:      parent,
	}
}

func (m *Marker) Start() int            { return m.start }
func (m *Marker) End() int              { return m.end }
func (m *Marker) ID() string            { return m.id }
func (m *Marker) EffType() effect.Type  { return m.typ }
func (m *Marker) Parent() Parent        { return m.parent }
func (m *Marker) SetParent(p Parent)    { m.parent = p }
func (m *Marker) IsStrandPlus() bool    { return !m.strandMinus }
func (m *Marker) IsStrandMinus() bool   { return m.strandMinus }

// Size is the number of bases the marker spans.
func (m *Marker) Size() int { return m.end - m.start + 1 }

// Intersects reports whether the marker overlaps [start, end] of v.
func (m *Marker) Intersects(v *variant.Variant) bool {
	return v.End() >= m.start && v.Start() <= m.end
}

// IntersectsRange reports overlap with an arbitrary closed interval.
func (m *Marker) IntersectsRange(start, end int) bool {
	return end >= m.start && start <= m.end
}

// Includes reports whether the marker fully contains [start, end] of v.
func (m *Marker) Includes(v *variant.Variant) bool {
	return v.Start() >= m.start && v.End() <= m.end
}

// Contains reports whether a single position lies inside the marker.
func (m *Marker) Contains(pos int) bool {
	return pos >= m.start && pos <= m.end
}

// IntersectRange clips the marker's span to [start, end], returning the
// overlap bounds and whether the overlap is non-empty.
func (m *Marker) IntersectRange(start, end int) (int, int, bool) {
	lo := m.start
	if start > lo {
		lo = start
	}
	hi := m.end
	if end < hi {
		hi = end
	}
	return lo, hi, lo <= hi
}

func (m *Marker) clone() *Marker {
	c := *m
	return &c
}

// Apply produces a new marker whose coordinates reflect the structural
// effect of the variant, or nil if the variant deletes the marker
// entirely. The receiver is never mutated; callers rely on the original
// remaining valid for sibling computations. Strand is preserved.
func (m *Marker) Apply(v *variant.Variant) *Marker {
	if !v.IsVariant() || v.IsSNP() || v.IsMNP() || v.IsInterval() {
		return m.clone() // no structural change
	}
	if v.Start() > m.end {
		return m.clone() // variant downstream of marker
	}

	switch v.VariantType() {
	case variant.INS:
		return m.applyIns(v)
	case variant.DEL:
		return m.applyDel(v)
	}
	return m.applyMixed(v)
}

// applyIns shifts or stretches the marker for an insertion. The insertion
// point is the first inserted base: insertions at or before the marker
// start shift the whole marker, insertions inside stretch the end.
func (m *Marker) applyIns(v *variant.Variant) *Marker {
	n := m.clone()
	switch {
	case v.Start() <= m.start:
		n.start += v.LenChange()
		n.end += v.LenChange()
	case v.Start() <= m.end:
		n.end += v.LenChange()
	}
	return n
}

// applyDel shrinks or shifts the marker for a deletion, returning nil when
// the deletion swallows the marker whole.
func (m *Marker) applyDel(v *variant.Variant) *Marker {
	if v.Start() <= m.start && v.End() >= m.end {
		return nil // marker entirely removed
	}

	n := m.clone()
	if v.End() < m.start {
		// Deletion entirely upstream: shift both coordinates.
		n.start -= v.Size()
		n.end -= v.Size()
		return n
	}

	// Overlapping deletion: bases removed before the marker move its
	// start, bases removed inside shorten it.
	before := 0
	if v.Start() < m.start {
		before = m.start - v.Start()
	}
	lo, hi, ok := m.IntersectRange(v.Start(), v.End())
	within := 0
	if ok {
		within = hi - lo + 1
	}
	n.start -= before
	n.end -= before + within
	return n
}

// applyMixed treats a mixed substitution as a net length change anchored
// at the variant start.
func (m *Marker) applyMixed(v *variant.Variant) *Marker {
	n := m.clone()
	if v.End() < m.start {
		n.start += v.LenChange()
		n.end += v.LenChange()
		return n
	}
	n.end += v.LenChange()
	if n.end < n.start {
		return nil
	}
	return n
}

// TranscriptOf walks the parent chain from any marker kind up to its
// transcript, nil when the marker has none (genes, chromosomes).
func TranscriptOf(m any) *Transcript {
	for m != nil {
		if tr, ok := m.(*Transcript); ok {
			return tr
		}
		mp, ok := m.(interface{ Parent() Parent })
		if !ok {
			return nil
		}
		m = mp.Parent()
	}
	return nil
}

// GeneOf walks the parent chain from any marker kind up to its gene.
func GeneOf(m any) *Gene {
	if g, ok := m.(*Gene); ok {
		return g
	}
	tr := TranscriptOf(m)
	if tr == nil {
		return nil
	}
	return tr.Gene()
}

// Markers is an ordered collection of markers.
type Markers []*Marker

// Add appends a marker.
func (ms *Markers) Add(m *Marker) { *ms = append(*ms, m) }

// Sort orders markers by start, then end.
func (ms Markers) Sort() {
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].start != ms[j].start {
			return ms[i].start < ms[j].start
		}
		return ms[i].end < ms[j].end
	})
}
