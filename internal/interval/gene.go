package interval

import (
	"github.com/chmille4/snpeff/internal/effect"
	"github.com/chmille4/snpeff/internal/variant"
)

// Gene groups the transcripts of a locus.
type Gene struct {
	Marker
	name        string
	biotype     string
	transcripts []*Transcript
}

// NewGene builds a gene owned by a chromosome.
func NewGene(parent Parent, start, end int, strandMinus bool, id, name string) *Gene {
	return &Gene{
		Marker: *NewMarker(parent, start, end, strandMinus, id, effect.GENE),
		name:   name,
	}
}

func (g *Gene) Name() string               { return g.name }
func (g *Gene) Biotype() string            { return g.biotype }
func (g *Gene) SetBiotype(bt string)       { g.biotype = bt }
func (g *Gene) Transcripts() []*Transcript { return g.transcripts }

// AddTranscript registers a transcript.
func (g *Gene) AddTranscript(t *Transcript) {
	g.transcripts = append(g.transcripts, t)
}

// IsProteinCoding reports whether any transcript is protein coding.
func (g *Gene) IsProteinCoding() bool {
	for _, t := range g.transcripts {
		if t.IsProteinCoding() {
			return true
		}
	}
	return false
}

// VariantEffect dispatches the variant across the gene's transcripts.
// A gene hit with no transcript hit records a generic GENE effect.
func (g *Gene) VariantEffect(v *variant.Variant, effs *effect.VariantEffects) bool {
	if !g.Intersects(v) {
		return false
	}

	hit := false
	for _, t := range g.transcripts {
		if t.VariantEffect(v, effs) {
			hit = true
		}
	}
	if !hit {
		effs.Add(v, g, effect.GENE, "")
	}
	return true
}

// Chromosome returns the owning chromosome, nil when detached.
func (g *Gene) Chromosome() *Chromosome {
	c, _ := g.parent.(*Chromosome)
	return c
}

// Genome walks the parent chain to the owning genome, nil when detached.
func (g *Gene) Genome() *Genome {
	c := g.Chromosome()
	if c == nil {
		return nil
	}
	return c.Genome()
}
