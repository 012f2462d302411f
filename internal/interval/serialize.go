package interval

import (
	"strconv"
	"strings"
)

// MarkerSerializer is a cursor over the tab-delimited fields of one
// serialized marker record. Each marker type appends its own fields after
// the base marker fields, in a fixed order, and parses them back the same
// way.
type MarkerSerializer struct {
	fields []string
	idx    int
}

// NewMarkerSerializer wraps a serialized line for parsing.
func NewMarkerSerializer(line string) *MarkerSerializer {
	return &MarkerSerializer{fields: strings.Split(line, "\t")}
}

// NextField returns the next field, or "" past the end.
func (s *MarkerSerializer) NextField() string {
	if s.idx >= len(s.fields) {
		return ""
	}
	f := s.fields[s.idx]
	s.idx++
	return f
}

// NextFieldInt returns the next field parsed as int, 0 when malformed.
func (s *MarkerSerializer) NextFieldInt() int {
	n, err := strconv.Atoi(s.NextField())
	if err != nil {
		return 0
	}
	return n
}

func strandField(strandMinus bool) string {
	if strandMinus {
		return "-"
	}
	return "+"
}

// SerializeSave renders the base marker fields: type tag, id, start, end,
// strand.
func (m *Marker) SerializeSave() string {
	return m.typ.String() + "\t" + m.id +
		"\t" + strconv.Itoa(m.start) +
		"\t" + strconv.Itoa(m.end) +
		"\t" + strandField(m.strandMinus)
}

// SerializeParse reads the base marker fields. The type tag is consumed by
// the caller dispatching on marker kind.
func (m *Marker) SerializeParse(s *MarkerSerializer) {
	m.id = s.NextField()
	m.start = s.NextFieldInt()
	m.end = s.NextFieldInt()
	m.strandMinus = s.NextField() == "-"
}

// SerializeSave appends frame, rank, sequence and splice type after the
// base fields. Splice sites are not saved: they are cheap to regenerate
// from exon bounds and must be reconstructed lazily after load.
func (e *Exon) SerializeSave() string {
	return e.Marker.SerializeSave() +
		"\t" + strconv.Itoa(int(e.frame)) +
		"\t" + strconv.Itoa(e.rank) +
		"\t" + e.sequence +
		"\t" + e.spliceType.String()
}

// SerializeParse restores frame, rank, sequence and splice type. The
// splice-site collection stays empty until regenerated.
func (e *Exon) SerializeParse(s *MarkerSerializer) {
	e.Marker.SerializeParse(s)
	e.SetFrame(s.NextFieldInt())
	e.rank = s.NextFieldInt()
	e.SetSequence(s.NextField())
	e.spliceType = ParseExonSpliceType(s.NextField())
}

// SerializeSave appends coding flag, biotype and CDS bounds.
func (t *Transcript) SerializeSave() string {
	coding := "0"
	if t.proteinCoding {
		coding = "1"
	}
	return t.Marker.SerializeSave() +
		"\t" + coding +
		"\t" + t.biotype +
		"\t" + strconv.Itoa(t.cdsMin) +
		"\t" + strconv.Itoa(t.cdsMax)
}

// SerializeParse restores coding flag, biotype and CDS bounds.
func (t *Transcript) SerializeParse(s *MarkerSerializer) {
	t.Marker.SerializeParse(s)
	t.proteinCoding = s.NextField() == "1"
	t.biotype = s.NextField()
	t.cdsMin = s.NextFieldInt()
	t.cdsMax = s.NextFieldInt()
}

// SerializeSave appends gene name and biotype.
func (g *Gene) SerializeSave() string {
	return g.Marker.SerializeSave() + "\t" + g.name + "\t" + g.biotype
}

// SerializeParse restores gene name and biotype.
func (g *Gene) SerializeParse(s *MarkerSerializer) {
	g.Marker.SerializeParse(s)
	g.name = s.NextField()
	g.biotype = s.NextField()
}
