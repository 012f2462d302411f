// Package maf provides MAF (Mutation Annotation Format) file parsing.
package maf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/chmille4/snpeff/internal/variant"
)

// Standard MAF column names
const (
	ColChromosome      = "Chromosome"
	ColStartPosition   = "Start_Position"
	ColReferenceAllele = "Reference_Allele"
	ColTumorSeqAllele2 = "Tumor_Seq_Allele2"
)

// columnIndices holds the indices of the required MAF columns.
type columnIndices struct {
	chromosome      int
	startPosition   int
	referenceAllele int
	tumorSeqAllele2 int
}

// Parser reads variants from a MAF file.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	columns    columnIndices
	headerLine string
}

// NewParser creates a new MAF parser for the given file.
// Supports both plain MAF and gzipped MAF (.maf.gz) files.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open maf file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	_, err = file.Read(buf)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("read maf header: %w", err)
	}

	_, err = file.Seek(0, 0)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("seek maf file: %w", err)
	}

	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	if err := p.parseHeader(); err != nil {
		p.Close()
		return nil, err
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g., stdin).
func NewParserFromReader(r io.Reader) (*Parser, error) {
	p := &Parser{
		reader: bufio.NewReader(r),
	}

	if err := p.parseHeader(); err != nil {
		return nil, err
	}

	return p, nil
}

// parseHeader reads the MAF header line and locates the required columns.
func (p *Parser) parseHeader() error {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return &ParseError{
					Line:    p.lineNumber,
					Message: "no header line found",
				}
			}
			return fmt.Errorf("read header: %w", err)
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}

		p.headerLine = line
		return p.parseColumnIndices(line)
	}
}

// parseColumnIndices locates the required columns in the header.
func (p *Parser) parseColumnIndices(headerLine string) error {
	p.columns = columnIndices{
		chromosome:      -1,
		startPosition:   -1,
		referenceAllele: -1,
		tumorSeqAllele2: -1,
	}

	for i, col := range strings.Split(headerLine, "\t") {
		switch col {
		case ColChromosome:
			p.columns.chromosome = i
		case ColStartPosition:
			p.columns.startPosition = i
		case ColReferenceAllele:
			p.columns.referenceAllele = i
		case ColTumorSeqAllele2:
			p.columns.tumorSeqAllele2 = i
		}
	}

	for name, idx := range map[string]int{
		ColChromosome:      p.columns.chromosome,
		ColStartPosition:   p.columns.startPosition,
		ColReferenceAllele: p.columns.referenceAllele,
		ColTumorSeqAllele2: p.columns.tumorSeqAllele2,
	} {
		if idx == -1 {
			return &ParseError{
				Line:    p.lineNumber,
				Message: fmt.Sprintf("required column %q not found in header", name),
			}
		}
	}

	return nil
}

// Next reads the next variant from the MAF file.
// Returns nil, nil when there are no more variants.
func (p *Parser) Next() (*variant.Variant, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return nil, fmt.Errorf("read variant line: %w", err)
		}
		// A final line without a newline still holds a record.
		if line == "" {
			return nil, nil
		}
	}
	p.lineNumber++

	line = strings.TrimRight(line, "\r\n")
	if line == "" || strings.HasPrefix(line, "#") {
		return p.Next()
	}

	return p.parseLine(line)
}

// parseLine parses a single MAF data line into a variant.
func (p *Parser) parseLine(line string) (*variant.Variant, error) {
	fields := strings.Split(line, "\t")

	minCols := p.columns.chromosome
	for _, idx := range []int{p.columns.startPosition, p.columns.referenceAllele, p.columns.tumorSeqAllele2} {
		if idx > minCols {
			minCols = idx
		}
	}
	if len(fields) <= minCols {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("expected at least %d columns, found %d", minCols+1, len(fields)),
		}
	}

	pos, err := strconv.Atoi(fields[p.columns.startPosition])
	if err != nil {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("invalid position: %s", fields[p.columns.startPosition]),
		}
	}

	ref := strings.ToUpper(fields[p.columns.referenceAllele])
	alt := strings.ToUpper(fields[p.columns.tumorSeqAllele2])

	// MAF uses "-" for the missing allele of an indel.
	if alt == "-" {
		alt = ""
	}
	if ref == "-" {
		ref = ""
		// MAF anchors insertions on the base before; the variant model
		// wants the first inserted base.
		pos++
	}

	return variant.New(fields[p.columns.chromosome], pos, ref, alt), nil
}

// Header returns the MAF header line.
func (p *Parser) Header() string {
	return p.headerLine
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseError represents an error during MAF parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("maf parse error at line %d: %s", e.Line, e.Message)
}
