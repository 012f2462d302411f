// Package annotate drives variant-effect evaluation against a genome
// marker tree.
package annotate

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/chmille4/snpeff/internal/effect"
	"github.com/chmille4/snpeff/internal/interval"
	"github.com/chmille4/snpeff/internal/variant"
)

// DefaultUpDownstreamLen is the window around genes reported as
// upstream/downstream hits.
const DefaultUpDownstreamLen = 5000

// VariantSource yields variants to annotate; implemented by the VCF
// parser. Next returns (nil, nil) at end of input.
type VariantSource interface {
	Next() (*variant.Variant, error)
	Close() error
}

// EffectWriter consumes effect records; implemented by the output
// formatters.
type EffectWriter interface {
	WriteHeader() error
	Write(v *variant.Variant, ve *effect.VariantEffect) error
	Flush() error
}

// Annotator evaluates variants against a read-only genome model. The
// genome is shared without locking: markers are never mutated during
// evaluation and each call owns its private accumulator.
type Annotator struct {
	genome          *interval.Genome
	index           map[string]*geneIndex
	upDownstreamLen int
	logger          *zap.Logger
}

// NewAnnotator builds the per-chromosome gene indexes for a genome.
func NewAnnotator(g *interval.Genome) *Annotator {
	a := &Annotator{
		genome:          g,
		index:           make(map[string]*geneIndex),
		upDownstreamLen: DefaultUpDownstreamLen,
		logger:          zap.NewNop(),
	}
	for _, c := range g.Chromosomes() {
		a.index[c.Name()] = buildGeneIndex(c.Genes())
	}
	return a
}

// SetLogger sets the logger for warning and info messages.
func (a *Annotator) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	a.logger = l
}

// SetUpDownstreamLen configures the upstream/downstream window; zero
// disables those annotations.
func (a *Annotator) SetUpDownstreamLen(n int) {
	a.upDownstreamLen = n
}

// Genome returns the genome this annotator evaluates against.
func (a *Annotator) Genome() *interval.Genome {
	return a.genome
}

// Annotate evaluates one variant and returns its effect records in marker
// tree traversal order. A variant that hits no gene gets UPSTREAM,
// DOWNSTREAM or INTERGENIC records, so the result is never empty.
func (a *Annotator) Annotate(v *variant.Variant) ([]*effect.VariantEffect, error) {
	chrom := a.genome.Chromosome(v.Chrom)
	if chrom == nil {
		return nil, fmt.Errorf("unknown chromosome %q", v.Chrom)
	}

	effs := effect.NewVariantEffects()

	idx := a.index[chrom.Name()]
	hit := false
	for _, g := range idx.Overlaps(v.Start(), v.End()) {
		if g.VariantEffect(v, effs) {
			hit = true
		}
	}

	if !hit && a.upDownstreamLen > 0 {
		a.upDownstream(v, idx, effs)
	}
	if effs.Len() == 0 {
		effs.Add(v, chrom, effect.INTERGENIC, "")
	}

	return effs.Effects(), nil
}

// upDownstream records UPSTREAM/DOWNSTREAM hits for genes within the
// configured window. Orientation is biological: a variant before a
// minus-strand gene's genomic start is downstream of it.
func (a *Annotator) upDownstream(v *variant.Variant, idx *geneIndex, effs *effect.VariantEffects) {
	for _, g := range idx.Overlaps(v.Start()-a.upDownstreamLen, v.End()+a.upDownstreamLen) {
		switch {
		case v.End() < g.Start():
			if g.IsStrandMinus() {
				effs.Add(v, g, effect.DOWNSTREAM, "")
			} else {
				effs.Add(v, g, effect.UPSTREAM, "")
			}
		case v.Start() > g.End():
			if g.IsStrandMinus() {
				effs.Add(v, g, effect.UPSTREAM, "")
			} else {
				effs.Add(v, g, effect.DOWNSTREAM, "")
			}
		}
	}
}

// AnnotateAll streams variants from a source through the worker pool into
// a writer, preserving input order. Per-variant failures are logged and
// skipped so one bad record cannot sink a whole file.
func (a *Annotator) AnnotateAll(src VariantSource, w EffectWriter) error {
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	items := make(chan WorkItem, 2*runtime.NumCPU())
	var readErr error

	go func() {
		defer close(items)
		seq := 0
		for {
			v, err := src.Next()
			if err != nil {
				readErr = fmt.Errorf("read variant: %w", err)
				return
			}
			if v == nil {
				return
			}
			items <- WorkItem{Seq: seq, Variant: v}
			seq++
		}
	}()

	results := a.ParallelAnnotate(items, 0)

	if err := OrderedCollect(results, func(r WorkResult) error {
		if r.Err != nil {
			a.logger.Warn("failed to annotate variant",
				zap.String("chrom", r.Variant.Chrom),
				zap.Int("pos", r.Variant.Start()),
				zap.Error(r.Err))
			return nil
		}
		for _, ve := range r.Effects {
			if err := w.Write(r.Variant, ve); err != nil {
				return fmt.Errorf("write effect: %w", err)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if readErr != nil {
		return readErr
	}
	return w.Flush()
}
