package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chmille4/snpeff/internal/variant"
)

func TestVCFWriter_ANN(t *testing.T) {
	tr := buildTranscript(t)
	v := variant.New("1", 113, "G", "A")
	recs := annotateOne(t, tr, v)
	assert.Len(t, recs, 1)

	var buf bytes.Buffer
	vw := NewVCFWriter(&buf, FormatANN)
	assert.NoError(t, vw.WriteHeader())
	assert.NoError(t, vw.Write(v, recs[0]))
	assert.NoError(t, vw.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "##fileformat=VCFv4.2", lines[0])
	assert.Contains(t, lines[1], "ID=ANN")
	assert.True(t, strings.HasPrefix(lines[2], "#CHROM"))

	data := strings.Split(lines[3], "\t")
	assert.Equal(t, "1", data[0])
	assert.Equal(t, "113", data[1])
	assert.Equal(t, "G", data[3])
	assert.Equal(t, "A", data[4])
	assert.True(t, strings.HasPrefix(data[7], "ANN="))

	ann := strings.Split(strings.TrimPrefix(data[7], "ANN="), "|")
	assert.Len(t, ann, 16)
	assert.Equal(t, "A", ann[0])
	assert.Equal(t, "missense_variant", ann[1])
	assert.Equal(t, "MODERATE", ann[2])
	assert.Equal(t, "HBB1", ann[3])
	assert.Equal(t, "ENSG01", ann[4])
	assert.Equal(t, "transcript", ann[5])
	assert.Equal(t, "ENST01", ann[6])
	assert.Equal(t, "protein_coding", ann[7])
	assert.Equal(t, "1", ann[8])
	assert.Equal(t, "2", ann[13], "AA position")
}

func TestVCFWriter_EFF(t *testing.T) {
	tr := buildTranscript(t)
	v := variant.New("1", 113, "G", "A")
	recs := annotateOne(t, tr, v)

	var buf bytes.Buffer
	vw := NewVCFWriter(&buf, FormatEFF)
	assert.NoError(t, vw.WriteHeader())
	assert.NoError(t, vw.Write(v, recs[0]))
	assert.NoError(t, vw.Flush())

	out := buf.String()
	assert.Contains(t, out, "ID=EFF")
	assert.Contains(t, out, "EFF=NON_SYNONYMOUS_CODING(MODERATE|MISSENSE|gcg/Acg|A2T|HBB1|protein_coding|CODING|ENST01|1|)")
}

func TestVCFWriter_GroupsRecordsPerVariant(t *testing.T) {
	tr := buildTranscript(t)
	v1 := variant.New("1", 113, "G", "A")
	v2 := variant.New("1", 105, "G", "T")
	recs1 := annotateOne(t, tr, v1)
	recs2 := annotateOne(t, tr, v2) // 5' UTR hit

	var buf bytes.Buffer
	vw := NewVCFWriter(&buf, FormatANN)
	assert.NoError(t, vw.WriteHeader())
	for _, ve := range recs1 {
		assert.NoError(t, vw.Write(v1, ve))
	}
	for _, ve := range recs2 {
		assert.NoError(t, vw.Write(v2, ve))
	}
	assert.NoError(t, vw.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	var data []string
	for _, l := range lines {
		if !strings.HasPrefix(l, "#") {
			data = append(data, l)
		}
	}
	assert.Len(t, data, 2)
	assert.Contains(t, data[0], "\t113\t")
	assert.Contains(t, data[1], "\t105\t")
}

func TestVCFWriter_EmptyAllelesDotted(t *testing.T) {
	tr := buildTranscript(t)
	v := variant.New("1", 113, "", "TTT")
	recs := annotateOne(t, tr, v)

	var buf bytes.Buffer
	vw := NewVCFWriter(&buf, FormatANN)
	assert.NoError(t, vw.Write(v, recs[0]))
	assert.NoError(t, vw.Flush())

	fields := strings.Split(strings.TrimRight(buf.String(), "\n"), "\t")
	assert.Equal(t, ".", fields[3])
	assert.Equal(t, "TTT", fields[4])
}
