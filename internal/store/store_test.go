package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmille4/snpeff/internal/effect"
	"github.com/chmille4/snpeff/internal/variant"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestWriteAndLookupRows(t *testing.T) {
	s := openInMemory(t)

	rows := []Row{
		{
			Chrom: "12", Pos: 25245351, Ref: "C", Alt: "A",
			Effect: "NON_SYNONYMOUS_CODING", Impact: "MODERATE",
			GeneName: "KRAS", GeneID: "ENSG00000133703",
			TranscriptID: "ENST00000311936", Biotype: "protein_coding",
			ExonRank: 2, CodonChange: "ggt/Tgt", AaChange: "G12C",
		},
		{
			Chrom: "12", Pos: 25245351, Ref: "C", Alt: "A",
			Effect: "SPLICE_SITE_REGION", Impact: "LOW",
			GeneName: "KRAS", GeneID: "ENSG00000133703",
			TranscriptID: "ENST00000311936", Biotype: "protein_coding",
		},
		{
			Chrom: "7", Pos: 100, Ref: "A", Alt: "T",
			Effect: "INTERGENIC", Impact: "MODIFIER",
		},
	}
	require.NoError(t, s.WriteRows(rows))

	got, err := s.LookupVariant("12", 25245351, "C", "A")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "NON_SYNONYMOUS_CODING", got[0].Effect)
	assert.Equal(t, "G12C", got[0].AaChange)
	assert.Equal(t, int32(2), got[0].ExonRank)

	got, err = s.LookupVariant("7", 100, "A", "T")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = s.LookupVariant("7", 999, "A", "T")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteRows_Empty(t *testing.T) {
	s := openInMemory(t)
	assert.NoError(t, s.WriteRows(nil))
}

func TestCountByImpact(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteRows([]Row{
		{Chrom: "1", Pos: 1, Impact: "HIGH"},
		{Chrom: "1", Pos: 2, Impact: "HIGH"},
		{Chrom: "1", Pos: 3, Impact: "MODIFIER"},
	}))

	counts, err := s.CountByImpact()
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["HIGH"])
	assert.Equal(t, int64(1), counts["MODIFIER"])
}

func TestClear(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteRows([]Row{{Chrom: "1", Pos: 1, Impact: "LOW"}}))
	require.NoError(t, s.Clear())

	counts, err := s.CountByImpact()
	require.NoError(t, err)
	assert.Empty(t, counts)
}

type stubMarker struct{}

func (stubMarker) ID() string           { return "ENST_STUB" }
func (stubMarker) Start() int           { return 1 }
func (stubMarker) End() int             { return 2 }
func (stubMarker) EffType() effect.Type { return effect.EXON }

func TestWriter_BatchesAndFlushes(t *testing.T) {
	s := openInMemory(t)
	w := NewWriter(s)
	require.NoError(t, w.WriteHeader())

	v := variant.New("1", 500, "A", "C")
	ve := &effect.VariantEffect{
		Variant: v,
		Marker:  stubMarker{},
		Type:    effect.NON_SYNONYMOUS_CODING,
		AasOld:  "G", AasNew: "C", CodonNum: 12,
	}
	require.NoError(t, w.Write(v, ve))

	// Nothing visible until Flush.
	got, err := s.LookupVariant("1", 500, "A", "C")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, w.Flush())
	got, err = s.LookupVariant("1", 500, "A", "C")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "NON_SYNONYMOUS_CODING", got[0].Effect)
	assert.Equal(t, "MODERATE", got[0].Impact)
	assert.Equal(t, "G12C", got[0].AaChange)
}
