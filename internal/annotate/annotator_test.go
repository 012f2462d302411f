package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chmille4/snpeff/internal/effect"
	"github.com/chmille4/snpeff/internal/interval"
	"github.com/chmille4/snpeff/internal/variant"
)

// buildTestGenome creates a genome with a plus-strand gene at
// 10000-11000 and a minus-strand gene at 20000-21000 on chromosome 1,
// each with a single non-coding transcript and exon.
func buildTestGenome(t *testing.T) *interval.Genome {
	t.Helper()

	g := interval.NewGenome("testgenome")
	chr := interval.NewChromosome(g, "1", 1000000)
	g.AddChromosome(chr)

	add := func(start, end int, minus bool, id string) {
		gene := interval.NewGene(chr, start, end, minus, "ENSG_"+id, id)
		chr.AddGene(gene)
		tr := interval.NewTranscript(gene, start, end, minus, "ENST_"+id)
		tr.SetBiotype("lincRNA")
		gene.AddTranscript(tr)
		tr.AddExon(interval.NewExon(tr, start, end, minus, "ENSE_"+id, 0))
	}
	add(10000, 11000, false, "PLUS")
	add(20000, 21000, true, "MINUS")

	g.Build()
	return g
}

func effTypes(recs []*effect.VariantEffect) []effect.Type {
	var out []effect.Type
	for _, ve := range recs {
		out = append(out, ve.Type)
	}
	return out
}

func TestAnnotate_ExonicHit(t *testing.T) {
	a := NewAnnotator(buildTestGenome(t))

	recs, err := a.Annotate(variant.New("1", 10500, "A", "C"))
	assert.NoError(t, err)
	assert.Contains(t, effTypes(recs), effect.EXON)
}

func TestAnnotate_UnknownChromosome(t *testing.T) {
	a := NewAnnotator(buildTestGenome(t))

	_, err := a.Annotate(variant.New("99", 100, "A", "C"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown chromosome")
}

func TestAnnotate_ChrPrefixTolerated(t *testing.T) {
	a := NewAnnotator(buildTestGenome(t))

	recs, err := a.Annotate(variant.New("chr1", 10500, "A", "C"))
	assert.NoError(t, err)
	assert.NotEmpty(t, recs)
}

func TestAnnotate_UpstreamDownstream(t *testing.T) {
	a := NewAnnotator(buildTestGenome(t))

	tests := []struct {
		name string
		pos  int
		want effect.Type
	}{
		{"before plus gene", 9000, effect.UPSTREAM},
		{"after plus gene", 12000, effect.DOWNSTREAM},
		{"before minus gene", 19000, effect.DOWNSTREAM},
		{"after minus gene", 22000, effect.UPSTREAM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := a.Annotate(variant.New("1", tt.pos, "A", "C"))
			assert.NoError(t, err)
			assert.Equal(t, []effect.Type{tt.want}, effTypes(recs))
		})
	}
}

func TestAnnotate_Intergenic(t *testing.T) {
	a := NewAnnotator(buildTestGenome(t))

	recs, err := a.Annotate(variant.New("1", 500000, "A", "C"))
	assert.NoError(t, err)
	assert.Equal(t, []effect.Type{effect.INTERGENIC}, effTypes(recs))
	assert.Equal(t, "1", recs[0].MarkerID())
}

func TestAnnotate_UpDownstreamDisabled(t *testing.T) {
	a := NewAnnotator(buildTestGenome(t))
	a.SetUpDownstreamLen(0)

	recs, err := a.Annotate(variant.New("1", 9000, "A", "C"))
	assert.NoError(t, err)
	assert.Equal(t, []effect.Type{effect.INTERGENIC}, effTypes(recs))
}

// sliceSource feeds variants from a slice, one bad chromosome included.
type sliceSource struct {
	variants []*variant.Variant
	i        int
}

func (s *sliceSource) Next() (*variant.Variant, error) {
	if s.i >= len(s.variants) {
		return nil, nil
	}
	v := s.variants[s.i]
	s.i++
	return v, nil
}

func (s *sliceSource) Close() error { return nil }

// recordingWriter collects written records for inspection.
type recordingWriter struct {
	headerWritten bool
	flushed       bool
	variants      []*variant.Variant
}

func (w *recordingWriter) WriteHeader() error { w.headerWritten = true; return nil }

func (w *recordingWriter) Write(v *variant.Variant, ve *effect.VariantEffect) error {
	w.variants = append(w.variants, v)
	return nil
}

func (w *recordingWriter) Flush() error { w.flushed = true; return nil }

func TestAnnotateAll_PreservesOrderAndSkipsFailures(t *testing.T) {
	a := NewAnnotator(buildTestGenome(t))

	src := &sliceSource{variants: []*variant.Variant{
		variant.New("1", 10500, "A", "C"),
		variant.New("99", 50, "A", "C"), // unknown chromosome, skipped
		variant.New("1", 20500, "G", "T"),
		variant.New("1", 500000, "G", "T"),
	}}
	w := &recordingWriter{}

	err := a.AnnotateAll(src, w)
	assert.NoError(t, err)
	assert.True(t, w.headerWritten)
	assert.True(t, w.flushed)

	// One record per effect, grouped per variant in input order, with the
	// failing variant absent.
	var seen []int
	last := ""
	for _, v := range w.variants {
		if v.String() != last {
			seen = append(seen, v.Start())
			last = v.String()
		}
	}
	assert.Equal(t, []int{10500, 20500, 500000}, seen)
}
