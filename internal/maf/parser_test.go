package maf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chmille4/snpeff/internal/variant"
)

const testHeader = "Hugo_Symbol\tChromosome\tStart_Position\tEnd_Position\tReference_Allele\tTumor_Seq_Allele2\n"

func newTestParser(t *testing.T, body string) *Parser {
	t.Helper()
	p, err := NewParserFromReader(strings.NewReader("#version 2.4\n" + testHeader + body))
	assert.NoError(t, err)
	return p
}

func TestParser_Header(t *testing.T) {
	p := newTestParser(t, "")
	assert.Contains(t, p.Header(), "Chromosome")
}

func TestParser_MissingRequiredColumn(t *testing.T) {
	_, err := NewParserFromReader(strings.NewReader("Hugo_Symbol\tChromosome\tStart_Position\n"))
	assert.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Contains(t, err.Error(), "required column")
}

func TestParser_EmptyFile(t *testing.T) {
	_, err := NewParserFromReader(strings.NewReader(""))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no header line")
}

func TestParser_SNP(t *testing.T) {
	p := newTestParser(t, "KRAS\t12\t25245351\t25245351\tC\tA\n")

	v, err := p.Next()
	assert.NoError(t, err)
	assert.Equal(t, "12", v.Chrom)
	assert.Equal(t, 25245351, v.Start())
	assert.Equal(t, "C", v.Ref())
	assert.Equal(t, "A", v.Alt())
	assert.True(t, v.IsSNP())

	v, err = p.Next()
	assert.NoError(t, err)
	assert.Nil(t, v)
}

func TestParser_Deletion(t *testing.T) {
	// MAF deletions carry "-" as the tumor allele and the true deleted
	// bases as the reference, no anchor base.
	p := newTestParser(t, "KRAS\t12\t100\t102\tACG\t-\n")

	v, err := p.Next()
	assert.NoError(t, err)
	assert.Equal(t, 100, v.Start())
	assert.Equal(t, "ACG", v.Ref())
	assert.Equal(t, "", v.Alt())
	assert.Equal(t, variant.DEL, v.VariantType())
}

func TestParser_Insertion(t *testing.T) {
	// MAF anchors insertions on the base before the inserted sequence;
	// the variant position moves to the first inserted base.
	p := newTestParser(t, "KRAS\t12\t100\t101\t-\tTT\n")

	v, err := p.Next()
	assert.NoError(t, err)
	assert.Equal(t, 101, v.Start())
	assert.Equal(t, "", v.Ref())
	assert.Equal(t, "TT", v.Alt())
	assert.Equal(t, variant.INS, v.VariantType())
}

func TestParser_SkipsCommentsAndBlankLines(t *testing.T) {
	body := "#another comment\n\nKRAS\t12\t100\t100\tA\tC\n"
	p := newTestParser(t, body)

	v, err := p.Next()
	assert.NoError(t, err)
	assert.NotNil(t, v)
	assert.Equal(t, 100, v.Start())
}

func TestParser_TooFewColumns(t *testing.T) {
	p := newTestParser(t, "KRAS\t12\n")
	_, err := p.Next()
	assert.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestParser_InvalidPosition(t *testing.T) {
	p := newTestParser(t, "KRAS\t12\txyz\t100\tA\tC\n")
	_, err := p.Next()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid position")
}

func TestParser_LowercaseAlleles(t *testing.T) {
	p := newTestParser(t, "KRAS\t12\t100\t100\ta\tc\n")
	v, err := p.Next()
	assert.NoError(t, err)
	assert.Equal(t, "A", v.Ref())
	assert.Equal(t, "C", v.Alt())
}

func TestParser_NoTrailingNewline(t *testing.T) {
	// ReadString returns io.EOF together with the final unterminated
	// line; the record on it must not be lost.
	p := newTestParser(t, "KRAS\t12\t100\t100\tC\tA\nTP53\t17\t200\t200\tG\tT")

	v, err := p.Next()
	assert.NoError(t, err)
	assert.Equal(t, 100, v.Start())

	v, err = p.Next()
	assert.NoError(t, err)
	assert.Equal(t, 200, v.Start())
	assert.Equal(t, "17", v.Chrom)

	v, err = p.Next()
	assert.NoError(t, err)
	assert.Nil(t, v)
}
