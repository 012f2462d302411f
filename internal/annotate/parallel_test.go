package annotate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chmille4/snpeff/internal/variant"
)

func TestParallelAnnotate(t *testing.T) {
	a := NewAnnotator(buildTestGenome(t))

	const n = 200
	items := make(chan WorkItem, n)
	for i := 0; i < n; i++ {
		items <- WorkItem{Seq: i, Variant: variant.New("1", 10000+i, "A", "C")}
	}
	close(items)

	count := 0
	for r := range a.ParallelAnnotate(items, 4) {
		assert.NoError(t, r.Err)
		assert.NotEmpty(t, r.Effects)
		count++
	}
	assert.Equal(t, n, count)
}

func TestOrderedCollect_ReordersResults(t *testing.T) {
	results := make(chan WorkResult, 5)
	for _, seq := range []int{3, 1, 4, 0, 2} {
		results <- WorkResult{Seq: seq}
	}
	close(results)

	var got []int
	err := OrderedCollect(results, func(r WorkResult) error {
		got = append(got, r.Seq)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestOrderedCollect_StopsOnError(t *testing.T) {
	results := make(chan WorkResult, 3)
	for seq := 0; seq < 3; seq++ {
		results <- WorkResult{Seq: seq}
	}
	close(results)

	boom := errors.New("boom")
	calls := 0
	err := OrderedCollect(results, func(r WorkResult) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestOrderedCollect_CarriesErrResults(t *testing.T) {
	results := make(chan WorkResult, 2)
	results <- WorkResult{Seq: 0, Err: errors.New("bad variant")}
	results <- WorkResult{Seq: 1}
	close(results)

	var seen []int
	err := OrderedCollect(results, func(r WorkResult) error {
		seen = append(seen, r.Seq)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 1}, seen)
}
