package interval

import (
	"strings"
	"testing"
)

// Coding sequence used by the single-exon fixtures: 20 codons starting
// with ATG and ending with a TAA stop. Protein: MAVHLTPEEKSAVTALWGK*
const fixtureCds = "ATGGCGGTGCACCTGACTCCTGAGGAGAAGTCTGCCGTTACTGCCCTGTGGGGCAAGTAA"

// buildCodingTranscript builds a genome with one protein-coding,
// single-exon transcript on chromosome 1. The exon spans 100-199 with the
// CDS at 110-169; ten bases of 5' UTR and thirty of 3' UTR flank it.
// For the minus-strand flavor the same coding sequence is placed on the
// reverse strand, so biological coordinates run from genomic end to start.
func buildCodingTranscript(t *testing.T, strandMinus bool) *Transcript {
	t.Helper()

	forward := strings.Repeat("G", 10) + fixtureCds + strings.Repeat("C", 30)
	if strandMinus {
		forward = strings.Repeat("G", 10) + ReverseComplement(fixtureCds) + strings.Repeat("C", 30)
	}

	g := NewGenome("testgenome")
	chr := NewChromosome(g, "1", 10000)
	g.AddChromosome(chr)

	gene := NewGene(chr, 100, 199, strandMinus, "ENSG00000100001", "HBB1")
	gene.SetBiotype("protein_coding")
	chr.AddGene(gene)

	tr := NewTranscript(gene, 100, 199, strandMinus, "ENST00000100001")
	tr.SetBiotype("protein_coding")
	tr.SetProteinCoding(true)
	gene.AddTranscript(tr)

	ex := NewExon(tr, 100, 199, strandMinus, "ENSE00000100001", 0)
	if strandMinus {
		ex.SetSequence(ReverseComplement(forward))
	} else {
		ex.SetSequence(forward)
	}
	tr.AddExon(ex)
	tr.SetCds(110, 169)

	g.Build()
	return tr
}

// buildPlusStrandGenome builds a genome with one three-exon plus-strand
// transcript, used for splice-site, intron and UTR geometry.
//
//	exon 1: 1000-1099   coding from 1050
//	exon 2: 1200-1299   fully coding
//	exon 3: 1400-1499   coding through 1429
func buildPlusStrandGenome(t *testing.T) *Genome {
	t.Helper()

	g := NewGenome("testgenome")
	chr := NewChromosome(g, "1", 50000)
	g.AddChromosome(chr)

	gene := NewGene(chr, 1000, 1499, false, "ENSG00000100002", "TPX9")
	gene.SetBiotype("protein_coding")
	chr.AddGene(gene)

	tr := NewTranscript(gene, 1000, 1499, false, "ENST00000100002")
	tr.SetBiotype("protein_coding")
	tr.SetProteinCoding(true)
	gene.AddTranscript(tr)

	exons := []struct {
		start, end int
		id         string
		seq        string
	}{
		{1000, 1099, "ENSE00000100002", strings.Repeat("ACGT", 25)},
		{1200, 1299, "ENSE00000100003", strings.Repeat("GGCC", 25)},
		{1400, 1499, "ENSE00000100004", strings.Repeat("TTAA", 25)},
	}
	for _, e := range exons {
		ex := NewExon(tr, e.start, e.end, false, e.id, 0)
		ex.SetSequence(e.seq)
		tr.AddExon(ex)
	}
	tr.SetCds(1050, 1429)

	g.Build()
	return g
}
