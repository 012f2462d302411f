package interval

import (
	"strings"

	"github.com/chmille4/snpeff/internal/effect"
	"github.com/chmille4/snpeff/internal/variant"
)

// MarkerSeq is a marker that owns the nucleotide sequence spanning its
// coordinates. The sequence is stored 5'→3' on the marker's own strand, so
// for minus-strand markers it is the reverse complement of the genomic
// forward strand. Invariant: len(sequence) == Size() whenever a sequence is
// set.
type MarkerSeq struct {
	Marker
	sequence string
}

// NewMarkerSeq builds a sequence-bearing marker.
func NewMarkerSeq(parent Parent, start, end int, strandMinus bool, id string, typ effect.Type) *MarkerSeq {
	return &MarkerSeq{
		Marker: *NewMarker(parent, start, end, strandMinus, id, typ),
	}
}

// Sequence returns the stored sequence (strand orientation).
func (s *MarkerSeq) Sequence() string { return s.sequence }

// SetSequence stores a sequence; an empty string clears it.
func (s *MarkerSeq) SetSequence(seq string) {
	s.sequence = strings.ToUpper(seq)
}

// HasSequence reports whether a sequence is available.
func (s *MarkerSeq) HasSequence() bool { return len(s.sequence) > 0 }

// BasesAt returns n bases in genomic-forward orientation starting at the
// 0-based offset from the marker's genomic start. For minus-strand markers
// the stored sequence is flipped back to forward orientation. Returns ""
// when the request falls outside the stored sequence.
func (s *MarkerSeq) BasesAt(index, n int) string {
	if index < 0 || n <= 0 || index+n > len(s.sequence) {
		return ""
	}
	if s.strandMinus {
		idx := len(s.sequence) - index - n
		return ReverseComplement(s.sequence[idx : idx+n])
	}
	return s.sequence[index : index+n]
}

// forwardSequence returns the stored sequence in genomic-forward
// orientation.
func (s *MarkerSeq) forwardSequence() string {
	if s.strandMinus {
		return ReverseComplement(s.sequence)
	}
	return s.sequence
}

// setForwardSequence stores a genomic-forward sequence in the marker's
// strand orientation.
func (s *MarkerSeq) setForwardSequence(seq string) {
	if s.strandMinus {
		seq = ReverseComplement(seq)
	}
	s.sequence = seq
}

// Apply produces a coordinate- and sequence-shifted copy of the marker, or
// nil if the variant removes it entirely. The sequence edit happens in
// genomic-forward space and is flipped back to strand orientation; when the
// edited sequence can no longer be aligned to the new coordinates it is
// dropped rather than left inconsistent.
func (s *MarkerSeq) Apply(v *variant.Variant) *MarkerSeq {
	nm := s.Marker.Apply(v)
	if nm == nil {
		return nil
	}

	n := &MarkerSeq{Marker: *nm, sequence: s.sequence}
	if !s.HasSequence() || !s.Intersects(v) || !v.IsVariant() {
		return n
	}

	fwd := s.forwardSequence()
	lo, hi, ok := s.IntersectRange(v.Start(), v.End())
	if !ok {
		return n
	}
	idx := lo - s.start

	switch v.VariantType() {
	case variant.SNP, variant.MNP:
		// Substitute the overlapping span of the alt allele.
		altLo := lo - v.Start()
		altHi := hi - v.Start()
		if altLo < 0 || altHi >= len(v.Alt()) {
			break
		}
		fwd = fwd[:idx] + v.Alt()[altLo:altHi+1] + fwd[idx+(hi-lo+1):]

	case variant.DEL:
		fwd = fwd[:idx] + fwd[idx+(hi-lo+1):]

	case variant.INS:
		if v.Start() <= s.start {
			return n // insertion before the first base, sequence unchanged
		}
		fwd = fwd[:idx] + v.Alt() + fwd[idx:]

	default:
		// Mixed change: replace the overlapping ref span with the alt.
		fwd = fwd[:idx] + v.Alt() + fwd[idx+(hi-lo+1):]
	}

	if len(fwd) != n.Size() {
		n.sequence = "" // cannot realign, drop rather than lie
		return n
	}
	n.setForwardSequence(fwd)
	return n
}
