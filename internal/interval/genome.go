package interval

import (
	"sort"
	"strings"

	"github.com/chmille4/snpeff/internal/effect"
)

// Chromosome owns the genes of one reference sequence.
type Chromosome struct {
	Marker
	genes []*Gene
}

// NewChromosome builds a chromosome covering [1, length].
func NewChromosome(parent Parent, name string, length int) *Chromosome {
	return &Chromosome{
		Marker: *NewMarker(parent, 1, length, false, name, effect.CHROMOSOME),
	}
}

func (c *Chromosome) Name() string   { return c.id }
func (c *Chromosome) Genes() []*Gene { return c.genes }

// AddGene registers a gene, keeping genes sorted by start.
func (c *Chromosome) AddGene(g *Gene) {
	c.genes = append(c.genes, g)
	sort.Slice(c.genes, func(i, j int) bool { return c.genes[i].start < c.genes[j].start })
}

// GenesAt returns the genes overlapping [start, end].
func (c *Chromosome) GenesAt(start, end int) []*Gene {
	var hits []*Gene
	for _, g := range c.genes {
		if g.IntersectsRange(start, end) {
			hits = append(hits, g)
		}
	}
	return hits
}

// Genome returns the owning genome, nil when detached.
func (c *Chromosome) Genome() *Genome {
	g, _ := c.parent.(*Genome)
	return g
}

// Genome is the root of the marker tree. It is built single-threaded at
// load time; afterwards it is read-only and safe to share across
// concurrent evaluations.
type Genome struct {
	id          string
	chromosomes map[string]*Chromosome

	// TreatAllAsProteinCoding forces codon-level analysis on transcripts
	// that are not annotated as protein coding. Queried by exons through
	// the parent chain.
	TreatAllAsProteinCoding bool
}

// NewGenome creates an empty genome model.
func NewGenome(id string) *Genome {
	return &Genome{id: id, chromosomes: make(map[string]*Chromosome)}
}

// Parent interface: the genome is the top of the chain.
func (g *Genome) ID() string           { return g.id }
func (g *Genome) Start() int           { return 0 }
func (g *Genome) End() int             { return 0 }
func (g *Genome) EffType() effect.Type { return effect.NONE }

// AddChromosome registers a chromosome and wires its back-reference.
func (g *Genome) AddChromosome(c *Chromosome) {
	c.SetParent(g)
	g.chromosomes[normChrom(c.Name())] = c
}

// Chromosome resolves a chromosome by name, tolerating a "chr" prefix.
func (g *Genome) Chromosome(name string) *Chromosome {
	return g.chromosomes[normChrom(name)]
}

// Chromosomes returns all chromosomes sorted by name.
func (g *Genome) Chromosomes() []*Chromosome {
	names := make([]string, 0, len(g.chromosomes))
	for n := range g.chromosomes {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]*Chromosome, len(names))
	for i, n := range names {
		out[i] = g.chromosomes[n]
	}
	return out
}

// Build finalizes the genome after loading: ranks, introns, splice sites,
// UTRs, frame corrections and amino-acid indexes for every transcript.
// Must be called single-threaded before any evaluation starts.
func (g *Genome) Build() {
	for _, c := range g.chromosomes {
		for _, gene := range c.genes {
			for _, t := range gene.transcripts {
				t.RanksAssign()
				t.IntronsCreate()
				t.FrameCorrection()
				t.UtrsCreate()
				t.SpliceSitesCreate()
				t.AaIndexAssign()
			}
		}
	}
}

// Rebuild regenerates the derived structures a saved database omits:
// introns, splice sites, UTRs and amino-acid indexes. Exon ranks and
// frames were corrected before saving, so those passes are not repeated.
func (g *Genome) Rebuild() {
	for _, c := range g.chromosomes {
		for _, gene := range c.genes {
			for _, t := range gene.transcripts {
				t.IntronsCreate()
				t.UtrsCreate()
				t.SpliceSitesCreate()
				t.AaIndexAssign()
			}
		}
	}
}

func normChrom(name string) string {
	if strings.HasPrefix(name, "chr") {
		return name[3:]
	}
	return name
}
