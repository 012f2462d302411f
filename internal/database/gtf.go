package database

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/chmille4/snpeff/internal/interval"
)

// gtfFeature is one parsed GTF line.
type gtfFeature struct {
	chrom       string
	featureType string
	start       int
	end         int
	strandMinus bool
	phase       int // -1 when absent
	attributes  map[string]string
}

// BuildGenome assembles a genome model from a GTF annotation file and an
// optional genomic FASTA. With a FASTA present, exon sequences are sliced
// from the chromosome sequence; without one the model still annotates but
// codon-level effects degrade to warnings.
func BuildGenome(genomeID, gtfPath, fastaPath string) (*interval.Genome, error) {
	var fa *Fasta
	if fastaPath != "" {
		var err error
		fa, err = LoadFasta(fastaPath)
		if err != nil {
			return nil, fmt.Errorf("load FASTA: %w", err)
		}
	}

	f, err := os.Open(gtfPath)
	if err != nil {
		return nil, fmt.Errorf("open GTF file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(gtfPath, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return buildGenome(genomeID, reader, fa)
}

// rawTranscript accumulates GTF features before model assembly.
type rawTranscript struct {
	id          string
	geneID      string
	chrom       string
	start, end  int
	strandMinus bool
	biotype     string
	exons       []gtfFeature
	cds         []gtfFeature
}

type rawGene struct {
	id          string
	name        string
	chrom       string
	start, end  int
	strandMinus bool
	biotype     string
}

func buildGenome(genomeID string, reader io.Reader, fa *Fasta) (*interval.Genome, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	genes := make(map[string]*rawGene)
	transcripts := make(map[string]*rawTranscript)
	var trOrder []string
	chromMax := make(map[string]int)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}
		feat, err := parseGtfLine(line)
		if err != nil {
			continue // skip malformed lines
		}

		if feat.end > chromMax[feat.chrom] {
			chromMax[feat.chrom] = feat.end
		}

		switch feat.featureType {
		case "gene":
			id := stripVersion(feat.attributes["gene_id"])
			if id == "" {
				continue
			}
			genes[id] = &rawGene{
				id:          id,
				name:        feat.attributes["gene_name"],
				chrom:       feat.chrom,
				start:       feat.start,
				end:         feat.end,
				strandMinus: feat.strandMinus,
				biotype:     gtfBiotype(feat.attributes, "gene"),
			}

		case "transcript":
			id := stripVersion(feat.attributes["transcript_id"])
			if id == "" {
				continue
			}
			transcripts[id] = &rawTranscript{
				id:          id,
				geneID:      stripVersion(feat.attributes["gene_id"]),
				chrom:       feat.chrom,
				start:       feat.start,
				end:         feat.end,
				strandMinus: feat.strandMinus,
				biotype:     gtfBiotype(feat.attributes, "transcript"),
			}
			trOrder = append(trOrder, id)

		case "exon":
			id := stripVersion(feat.attributes["transcript_id"])
			if t, ok := transcripts[id]; ok {
				t.exons = append(t.exons, feat)
			}

		case "CDS":
			id := stripVersion(feat.attributes["transcript_id"])
			if t, ok := transcripts[id]; ok {
				t.cds = append(t.cds, feat)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan GTF: %w", err)
	}

	g := interval.NewGenome(genomeID)
	chroms := make(map[string]*interval.Chromosome)
	builtGenes := make(map[string]*interval.Gene)

	chromosome := func(name string) *interval.Chromosome {
		name = normalizeChrom(name)
		if c, ok := chroms[name]; ok {
			return c
		}
		length := chromMax[name]
		if fa != nil {
			if seq := fa.Sequence(name); seq != "" {
				length = len(seq)
			}
		}
		c := interval.NewChromosome(g, name, length)
		g.AddChromosome(c)
		chroms[name] = c
		return c
	}

	for _, id := range trOrder {
		rt := transcripts[id]
		if len(rt.exons) == 0 {
			continue
		}

		gene := builtGenes[rt.geneID]
		if gene == nil {
			rg := genes[rt.geneID]
			if rg == nil {
				// Gene line missing: synthesize from the transcript.
				rg = &rawGene{
					id:          rt.geneID,
					chrom:       rt.chrom,
					start:       rt.start,
					end:         rt.end,
					strandMinus: rt.strandMinus,
				}
			}
			c := chromosome(rg.chrom)
			gene = interval.NewGene(c, rg.start, rg.end, rg.strandMinus, rg.id, rg.name)
			gene.SetBiotype(rg.biotype)
			c.AddGene(gene)
			builtGenes[rg.id] = gene
		}

		tr := interval.NewTranscript(gene, rt.start, rt.end, rt.strandMinus, rt.id)
		tr.SetBiotype(rt.biotype)
		tr.SetProteinCoding(rt.biotype == "protein_coding" || len(rt.cds) > 0)
		gene.AddTranscript(tr)

		sort.Slice(rt.exons, func(i, j int) bool { return rt.exons[i].start < rt.exons[j].start })

		for _, ef := range rt.exons {
			num, _ := strconv.Atoi(ef.attributes["exon_number"])
			exonID := fmt.Sprintf("%s.ex%d", rt.id, num)
			e := interval.NewExon(tr, ef.start, ef.end, ef.strandMinus, exonID, num)

			if fa != nil {
				if seq := fa.Subsequence(rt.chrom, ef.start, ef.end); seq != "" {
					if ef.strandMinus {
						seq = interval.ReverseComplement(seq)
					}
					e.SetSequence(seq)
				}
			}
			// GTF phase of the overlapping CDS feature is the exon frame.
			for _, cf := range rt.cds {
				if cf.end >= ef.start && cf.start <= ef.end && cf.phase >= 0 {
					e.SetFrame(cf.phase)
					break
				}
			}
			tr.AddExon(e)
		}

		if len(rt.cds) > 0 {
			cdsMin, cdsMax := rt.cds[0].start, rt.cds[0].end
			for _, cf := range rt.cds[1:] {
				if cf.start < cdsMin {
					cdsMin = cf.start
				}
				if cf.end > cdsMax {
					cdsMax = cf.end
				}
			}
			tr.SetCds(cdsMin, cdsMax)
		}
	}

	g.Build()
	return g, nil
}

// parseGtfLine parses one GTF data line.
func parseGtfLine(line string) (gtfFeature, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 9 {
		return gtfFeature{}, fmt.Errorf("invalid GTF line: expected 9 fields, got %d", len(fields))
	}

	start, err := strconv.Atoi(fields[3])
	if err != nil {
		return gtfFeature{}, fmt.Errorf("parse start: %w", err)
	}
	end, err := strconv.Atoi(fields[4])
	if err != nil {
		return gtfFeature{}, fmt.Errorf("parse end: %w", err)
	}

	// Anything outside the valid GTF phases means "unknown", the same
	// as the "." placeholder.
	phase := -1
	if p, err := strconv.Atoi(fields[7]); err == nil && p >= 0 && p <= 2 {
		phase = p
	}

	return gtfFeature{
		chrom:       normalizeChrom(fields[0]),
		featureType: fields[2],
		start:       start,
		end:         end,
		strandMinus: fields[6] == "-",
		phase:       phase,
		attributes:  parseGtfAttributes(fields[8]),
	}, nil
}

// parseGtfAttributes parses the GTF attribute column.
// Format: key "value"; key "value"; ...
func parseGtfAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)
	for _, part := range strings.Split(attrStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.Index(part, " ")
		if idx == -1 {
			continue
		}
		key := part[:idx]
		value := strings.Trim(strings.TrimSpace(part[idx+1:]), "\"")
		attrs[key] = value
	}
	return attrs
}

// gtfBiotype resolves the biotype attribute across GENCODE and Ensembl
// naming (gene_type vs gene_biotype).
func gtfBiotype(attrs map[string]string, kind string) string {
	if v := attrs[kind+"_type"]; v != "" {
		return v
	}
	return attrs[kind+"_biotype"]
}

// stripVersion removes the version suffix from an Ensembl ID.
// e.g., "ENST00000456328.2" -> "ENST00000456328"
func stripVersion(id string) string {
	if idx := strings.LastIndex(id, "."); idx != -1 {
		return id[:idx]
	}
	return id
}
