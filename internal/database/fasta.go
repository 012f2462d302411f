package database

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Fasta holds reference sequences keyed by sequence name.
type Fasta struct {
	sequences map[string]string
}

// LoadFasta parses a FASTA file, transparently handling gzip. Sequence
// names are the first whitespace-delimited token of the header, with any
// "chr" prefix removed.
func LoadFasta(path string) (*Fasta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FASTA file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return readFasta(reader)
}

func readFasta(reader io.Reader) (*Fasta, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 256*1024*1024)

	fa := &Fasta{sequences: make(map[string]string)}

	var currentID string
	var currentSeq strings.Builder

	flush := func() {
		if currentID != "" && currentSeq.Len() > 0 {
			fa.sequences[currentID] = currentSeq.String()
		}
		currentSeq.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, ">") {
			flush()
			currentID = parseFastaHeader(line)
		} else {
			currentSeq.WriteString(strings.TrimSpace(line))
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan FASTA: %w", err)
	}
	return fa, nil
}

// parseFastaHeader extracts the sequence name from a header line.
func parseFastaHeader(header string) string {
	header = strings.TrimPrefix(header, ">")
	if idx := strings.IndexAny(header, " \t|"); idx != -1 {
		header = header[:idx]
	}
	return normalizeChrom(header)
}

// Sequence returns the sequence for a name, "" if absent. A "chr" prefix
// on the name is ignored.
func (fa *Fasta) Sequence(name string) string {
	return fa.sequences[normalizeChrom(name)]
}

// Subsequence returns the 1-based inclusive slice [start, end] of a
// sequence, "" when out of range.
func (fa *Fasta) Subsequence(name string, start, end int) string {
	seq := fa.Sequence(name)
	if seq == "" || start < 1 || end > len(seq) || start > end {
		return ""
	}
	return seq[start-1 : end]
}

// Names returns the loaded sequence names.
func (fa *Fasta) Names() []string {
	names := make([]string, 0, len(fa.sequences))
	for n := range fa.sequences {
		names = append(names, n)
	}
	return names
}

func normalizeChrom(chrom string) string {
	if strings.HasPrefix(chrom, "chr") {
		return chrom[3:]
	}
	return chrom
}
