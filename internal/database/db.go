// Package database persists genome models as gzipped marker records.
//
// The format is line oriented: a header line, then one tab-delimited
// record per marker in nesting order (chromosome, gene, transcript,
// exon). Containment is implicit in the ordering, so each record attaches
// to the most recent record of its parent kind. Splice sites, introns and
// UTRs are derived structures and are regenerated after load.
package database

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/chmille4/snpeff/internal/interval"
)

const (
	magic         = "SNPEFF_GENOME"
	formatVersion = "1"
)

// Save writes a genome database to path, gzip compressed.
func Save(path string, g *interval.Genome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	w := bufio.NewWriter(zw)

	fmt.Fprintf(w, "%s\t%s\t%s\n", magic, formatVersion, g.ID())

	for _, c := range g.Chromosomes() {
		fmt.Fprintln(w, c.SerializeSave())
		for _, gene := range c.Genes() {
			fmt.Fprintln(w, gene.SerializeSave())
			for _, tr := range gene.Transcripts() {
				fmt.Fprintln(w, tr.SerializeSave())
				for _, e := range tr.Exons() {
					fmt.Fprintln(w, e.SerializeSave())
				}
			}
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("write database: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close gzip stream: %w", err)
	}
	return f.Close()
}

// Load reads a genome database from path and rebuilds its derived
// structures, returning a genome ready for annotation.
func Load(path string) (*interval.Genome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("read gzip stream: %w", err)
	}
	defer zr.Close()

	return Read(zr)
}

// Read parses a genome database from an uncompressed stream.
func Read(r io.Reader) (*interval.Genome, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 64*1024*1024)

	if !sc.Scan() {
		return nil, fmt.Errorf("empty database")
	}
	header := strings.Split(sc.Text(), "\t")
	if len(header) != 3 || header[0] != magic {
		return nil, fmt.Errorf("not a genome database")
	}
	if header[1] != formatVersion {
		return nil, fmt.Errorf("unsupported database version %q", header[1])
	}

	g := interval.NewGenome(header[2])

	var (
		chrom *interval.Chromosome
		gene  *interval.Gene
		tr    *interval.Transcript
		line  = 1
	)

	for sc.Scan() {
		line++
		text := sc.Text()
		if text == "" {
			continue
		}

		s := interval.NewMarkerSerializer(text)
		switch tag := s.NextField(); tag {
		case "CHROMOSOME":
			c := interval.NewChromosome(g, "", 0)
			c.SerializeParse(s)
			g.AddChromosome(c)
			chrom, gene, tr = c, nil, nil

		case "GENE":
			if chrom == nil {
				return nil, fmt.Errorf("line %d: gene before chromosome", line)
			}
			ge := interval.NewGene(chrom, 0, 0, false, "", "")
			ge.SerializeParse(s)
			chrom.AddGene(ge)
			gene, tr = ge, nil

		case "TRANSCRIPT":
			if gene == nil {
				return nil, fmt.Errorf("line %d: transcript before gene", line)
			}
			t := interval.NewTranscript(gene, 0, 0, false, "")
			t.SerializeParse(s)
			gene.AddTranscript(t)
			tr = t

		case "EXON":
			if tr == nil {
				return nil, fmt.Errorf("line %d: exon before transcript", line)
			}
			e := interval.NewExon(tr, 0, 0, false, "", 0)
			e.SerializeParse(s)
			tr.AddExon(e)

		default:
			return nil, fmt.Errorf("line %d: unknown marker kind %q", line, tag)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read database: %w", err)
	}

	g.Rebuild()
	return g, nil
}
