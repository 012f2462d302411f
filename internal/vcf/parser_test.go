package vcf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chmille4/snpeff/internal/variant"
)

const testHeader = `##fileformat=VCFv4.2
##contig=<ID=1>
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO
`

func newTestParser(t *testing.T, body string) *Parser {
	t.Helper()
	p, err := NewParserFromReader(strings.NewReader(testHeader + body))
	assert.NoError(t, err)
	return p
}

func collect(t *testing.T, p *Parser) []*variant.Variant {
	t.Helper()
	var vs []*variant.Variant
	for {
		v, err := p.Next()
		assert.NoError(t, err)
		if v == nil {
			return vs
		}
		vs = append(vs, v)
	}
}

func TestParser_Header(t *testing.T) {
	p := newTestParser(t, "")
	assert.Len(t, p.Header(), 3)
	assert.Equal(t, "##fileformat=VCFv4.2", p.Header()[0])
}

func TestParser_MissingHeader(t *testing.T) {
	_, err := NewParserFromReader(strings.NewReader("1\t100\t.\tA\tC\t.\t.\t.\n"))
	assert.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestParser_SNP(t *testing.T) {
	p := newTestParser(t, "1\t100\t.\tA\tC\t.\t.\t.\n")
	vs := collect(t, p)

	assert.Len(t, vs, 1)
	assert.Equal(t, "1", vs[0].Chrom)
	assert.Equal(t, 100, vs[0].Start())
	assert.Equal(t, "A", vs[0].Ref())
	assert.Equal(t, "C", vs[0].Alt())
	assert.True(t, vs[0].IsSNP())
}

func TestParser_MultiAllelic(t *testing.T) {
	p := newTestParser(t, "1\t100\t.\tA\tC,G\t.\t.\t.\n")
	vs := collect(t, p)

	assert.Len(t, vs, 2)
	assert.Equal(t, "C", vs[0].Alt())
	assert.Equal(t, "G", vs[1].Alt())
}

func TestParser_AnchorTrimming(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantPos  int
		wantRef  string
		wantAlt  string
		wantType variant.Type
	}{
		{"padded deletion", "1\t100\t.\tAT\tA\t.\t.\t.\n", 101, "T", "", variant.DEL},
		{"padded insertion", "1\t100\t.\tA\tAT\t.\t.\t.\n", 101, "", "T", variant.INS},
		{"long padded deletion", "1\t100\t.\tACGT\tA\t.\t.\t.\n", 101, "CGT", "", variant.DEL},
		{"shared suffix trimmed first", "1\t100\t.\tCTT\tCCTT\t.\t.\t.\n", 101, "", "C", variant.INS},
		{"plain snp untouched", "1\t100\t.\tG\tT\t.\t.\t.\n", 100, "G", "T", variant.SNP},
		{"mnp", "1\t100\t.\tAC\tGT\t.\t.\t.\n", 100, "AC", "GT", variant.MNP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(t, tt.line)
			vs := collect(t, p)
			assert.Len(t, vs, 1)
			assert.Equal(t, tt.wantPos, vs[0].Start())
			assert.Equal(t, tt.wantRef, vs[0].Ref())
			assert.Equal(t, tt.wantAlt, vs[0].Alt())
			assert.Equal(t, tt.wantType, vs[0].VariantType())
		})
	}
}

func TestParser_SkipsMissingAndSymbolicAlleles(t *testing.T) {
	body := "1\t100\t.\tA\t.\t.\t.\t.\n" +
		"1\t200\t.\tA\t<DEL>\t.\t.\t.\n" +
		"1\t300\t.\tA\tC,<DUP>\t.\t.\t.\n"
	p := newTestParser(t, body)
	vs := collect(t, p)

	assert.Len(t, vs, 1)
	assert.Equal(t, 300, vs[0].Start())
}

func TestParser_SkipsEmptyLines(t *testing.T) {
	p := newTestParser(t, "\n1\t100\t.\tA\tC\t.\t.\t.\n\n")
	vs := collect(t, p)
	assert.Len(t, vs, 1)
}

func TestParser_LowercaseAlleles(t *testing.T) {
	p := newTestParser(t, "1\t100\t.\ta\tc\t.\t.\t.\n")
	vs := collect(t, p)
	assert.Equal(t, "A", vs[0].Ref())
	assert.Equal(t, "C", vs[0].Alt())
}

func TestParser_TooFewColumns(t *testing.T) {
	p := newTestParser(t, "1\t100\t.\tA\n")
	_, err := p.Next()
	assert.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, 4, pe.Line)
}

func TestParser_InvalidPosition(t *testing.T) {
	p := newTestParser(t, "1\tabc\t.\tA\tC\t.\t.\t.\n")
	_, err := p.Next()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid position")
}

func TestParser_NoTrailingNewline(t *testing.T) {
	// ReadString returns io.EOF together with the final unterminated
	// line; the record on it must not be lost.
	p := newTestParser(t, "1\t100\t.\tA\tC\t.\t.\t.\n1\t200\t.\tG\tT\t.\t.\t.")
	vs := collect(t, p)
	assert.Len(t, vs, 2)
	assert.Equal(t, 100, vs[0].Start())
	assert.Equal(t, 200, vs[1].Start())
}

func TestParser_NoTrailingNewlineMultiAllelic(t *testing.T) {
	p := newTestParser(t, "1\t100\t.\tA\tC,G\t.\t.\t.")
	vs := collect(t, p)
	assert.Len(t, vs, 2)
	assert.Equal(t, "C", vs[0].Alt())
	assert.Equal(t, "G", vs[1].Alt())
}
