package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFasta(t *testing.T) {
	path := writeTempFile(t, "test.fa", ">chr1 some description\nACGT\nACGT\n>2|extra\nTTTT\n")

	fa, err := LoadFasta(path)
	assert.NoError(t, err)

	assert.Equal(t, "ACGTACGT", fa.Sequence("1"), "chr prefix stripped, lines joined")
	assert.Equal(t, "ACGTACGT", fa.Sequence("chr1"))
	assert.Equal(t, "TTTT", fa.Sequence("2"), "header cut at pipe")
	assert.Equal(t, "", fa.Sequence("3"))
	assert.Len(t, fa.Names(), 2)
}

func TestFasta_Subsequence(t *testing.T) {
	path := writeTempFile(t, "test.fa", ">1\nACGTACGTAC\n")
	fa, err := LoadFasta(path)
	assert.NoError(t, err)

	assert.Equal(t, "ACGT", fa.Subsequence("1", 1, 4))
	assert.Equal(t, "C", fa.Subsequence("1", 10, 10))
	assert.Equal(t, "", fa.Subsequence("1", 0, 4), "start below 1")
	assert.Equal(t, "", fa.Subsequence("1", 8, 11), "end past sequence")
	assert.Equal(t, "", fa.Subsequence("1", 5, 4))
	assert.Equal(t, "", fa.Subsequence("9", 1, 4))
}

func TestLoadFasta_MissingFile(t *testing.T) {
	_, err := LoadFasta(filepath.Join(t.TempDir(), "absent.fa"))
	assert.Error(t, err)
}
