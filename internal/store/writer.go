package store

import (
	"github.com/chmille4/snpeff/internal/effect"
	"github.com/chmille4/snpeff/internal/output"
	"github.com/chmille4/snpeff/internal/variant"
)

const defaultBatchSize = 4096

// Writer adapts a Store to the annotation pipeline's writer interface,
// batching rows for the Appender.
type Writer struct {
	store *Store
	batch []Row
}

// NewWriter creates a batching writer over a store.
func NewWriter(s *Store) *Writer {
	return &Writer{store: s, batch: make([]Row, 0, defaultBatchSize)}
}

// WriteHeader is a no-op; the schema is created when the store opens.
func (w *Writer) WriteHeader() error { return nil }

// Write buffers one effect record, flushing full batches to DuckDB.
func (w *Writer) Write(v *variant.Variant, ve *effect.VariantEffect) error {
	mc := output.ResolveContext(ve.Marker)

	w.batch = append(w.batch, Row{
		Chrom:        v.Chrom,
		Pos:          int64(v.Start()),
		Ref:          v.Ref(),
		Alt:          v.Alt(),
		Effect:       ve.Type.String(),
		Impact:       ve.Impact(),
		GeneName:     mc.GeneName,
		GeneID:       mc.GeneID,
		TranscriptID: mc.TranscriptID,
		Biotype:      mc.Biotype,
		ExonRank:     int32(mc.ExonRank),
		CodonChange:  output.CodonChange(ve),
		AaChange:     output.AaChange(ve),
		Warnings:     output.Findings(ve),
	})

	if len(w.batch) >= defaultBatchSize {
		return w.flushBatch()
	}
	return nil
}

// Flush writes any buffered rows.
func (w *Writer) Flush() error {
	return w.flushBatch()
}

func (w *Writer) flushBatch() error {
	if len(w.batch) == 0 {
		return nil
	}
	if err := w.store.WriteRows(w.batch); err != nil {
		return err
	}
	w.batch = w.batch[:0]
	return nil
}
