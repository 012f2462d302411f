package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chmille4/snpeff/internal/variant"
)

func TestType_Impact(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{STOP_GAINED, ImpactHigh},
		{FRAME_SHIFT, ImpactHigh},
		{SPLICE_SITE_DONOR, ImpactHigh},
		{SPLICE_SITE_ACCEPTOR, ImpactHigh},
		{NON_SYNONYMOUS_CODING, ImpactModerate},
		{CODON_DELETION, ImpactModerate},
		{SYNONYMOUS_CODING, ImpactLow},
		{SPLICE_SITE_REGION, ImpactLow},
		{INTRON, ImpactModifier},
		{INTERGENIC, ImpactModifier},
		{UPSTREAM, ImpactModifier},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.Impact())
		})
	}
}

func TestImpactRank(t *testing.T) {
	assert.Greater(t, ImpactRank(ImpactHigh), ImpactRank(ImpactModerate))
	assert.Greater(t, ImpactRank(ImpactModerate), ImpactRank(ImpactLow))
	assert.Greater(t, ImpactRank(ImpactLow), ImpactRank(ImpactModifier))
	assert.Equal(t, 0, ImpactRank("bogus"))
}

func TestType_Tokens(t *testing.T) {
	assert.Equal(t, "NON_SYNONYMOUS_CODING", NON_SYNONYMOUS_CODING.String())
	assert.Equal(t, "missense_variant", NON_SYNONYMOUS_CODING.SO())
	assert.Equal(t, "STOP_GAINED", STOP_GAINED.String())
	assert.Equal(t, "stop_gained", STOP_GAINED.SO())
	assert.Equal(t, "frameshift_variant", FRAME_SHIFT.SO())
	assert.Equal(t, "NONE", NONE.String())
}

func TestType_IsCodonLevel(t *testing.T) {
	assert.True(t, NON_SYNONYMOUS_CODING.IsCodonLevel())
	assert.True(t, FRAME_SHIFT.IsCodonLevel())
	assert.False(t, INTRON.IsCodonLevel())
	assert.False(t, SPLICE_SITE_DONOR.IsCodonLevel())
}

func TestErrorWarning(t *testing.T) {
	assert.True(t, ErrorOutOfExon.IsError())
	assert.False(t, WarningRefDoesNotMatchGenome.IsError())
	assert.Equal(t, "WARNING_SEQUENCE_NOT_AVAILABLE", WarningSequenceNotAvailable.String())
	assert.Equal(t, "", ErrWarnNone.String())
}

type fakeMarker struct{ id string }

func (f *fakeMarker) ID() string    { return f.id }
func (f *fakeMarker) Start() int    { return 1 }
func (f *fakeMarker) End() int      { return 2 }
func (f *fakeMarker) EffType() Type { return EXON }

func TestVariantEffects_Accumulation(t *testing.T) {
	v := variant.New("1", 100, "A", "C")
	m := &fakeMarker{id: "m1"}
	ves := NewVariantEffects()

	ve := ves.Add(v, m, NON_SYNONYMOUS_CODING, "")
	ve.CodonNum = 12
	ves.Add(v, m, SPLICE_SITE_REGION, "")

	assert.Equal(t, 2, ves.Len())
	assert.True(t, ves.HasCodonLevel())
	assert.Equal(t, 12, ves.Effects()[0].CodonNum)
	assert.Equal(t, "m1", ves.Effects()[0].MarkerID())
}

func TestVariantEffects_AddErrorWarning(t *testing.T) {
	v := variant.New("1", 100, "A", "C")
	m := &fakeMarker{id: "m1"}

	// Attaches to the most recent record.
	ves := NewVariantEffects()
	ves.Add(v, m, EXON, "")
	ves.AddErrorWarning(v, m, WarningRefDoesNotMatchGenome)
	assert.Equal(t, 1, ves.Len())
	assert.Equal(t, []ErrorWarning{WarningRefDoesNotMatchGenome}, ves.Effects()[0].Findings)

	// Creates a bare record when empty so the finding survives.
	ves = NewVariantEffects()
	ves.AddErrorWarning(v, m, ErrorOutOfExon)
	assert.Equal(t, 1, ves.Len())
	assert.Equal(t, NONE, ves.Effects()[0].Type)
	assert.Equal(t, []ErrorWarning{ErrorOutOfExon}, ves.Effects()[0].Findings)

	// A none finding is dropped.
	ves.AddErrorWarning(v, m, ErrWarnNone)
	assert.Len(t, ves.Effects()[0].Findings, 1)
}
