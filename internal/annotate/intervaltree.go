package annotate

import (
	"sort"

	"github.com/chmille4/snpeff/internal/interval"
)

// geneIndex provides O(log n + k) overlap queries using a sorted-slice
// approach. Genes are loaded once and never modified after build.
type geneIndex struct {
	entries []geneEntry
	maxEnd  []int // maxEnd[i] = max(End) for entries[:i+1]
}

type geneEntry struct {
	start int
	end   int
	gene  *interval.Gene
}

// buildGeneIndex creates an index over one chromosome's genes.
func buildGeneIndex(genes []*interval.Gene) *geneIndex {
	if len(genes) == 0 {
		return &geneIndex{}
	}

	entries := make([]geneEntry, len(genes))
	for i, g := range genes {
		entries[i] = geneEntry{start: g.Start(), end: g.End(), gene: g}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].start < entries[j].start
	})

	// Build prefix-max array: maxEnd[i] = max(end) for entries[:i+1]
	maxEnd := make([]int, len(entries))
	maxEnd[0] = entries[0].end
	for i := 1; i < len(entries); i++ {
		maxEnd[i] = entries[i].end
		if maxEnd[i-1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i-1]
		}
	}

	return &geneIndex{entries: entries, maxEnd: maxEnd}
}

// Overlaps returns all genes whose [Start, End] range intersects
// [qStart, qEnd], in ascending start order.
func (t *geneIndex) Overlaps(qStart, qEnd int) []*interval.Gene {
	if len(t.entries) == 0 {
		return nil
	}

	var result []*interval.Gene

	// Binary search: find rightmost entry with start <= qEnd.
	// All candidates must have start <= qEnd, so we only need to scan
	// from index 0 to that boundary.
	hi := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].start > qEnd
	})
	// hi is the first index with start > qEnd; candidates are [0, hi).

	for i := hi - 1; i >= 0; i-- {
		// Prune: maxEnd[i] is the max end for entries[:i+1].
		// If maxEnd[i] < qStart, no entry from 0..i can reach qStart.
		if t.maxEnd[i] < qStart {
			break
		}
		if t.entries[i].end >= qStart {
			result = append(result, t.entries[i].gene)
		}
	}

	// Restore ascending start order after the backward scan.
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return result
}
