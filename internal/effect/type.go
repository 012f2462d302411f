// Package effect defines the variant-effect vocabulary and the accumulator
// that collects effect records during annotation.
package effect

// Type is the closed set of effect classifications produced by the engine.
type Type int

const (
	NONE Type = iota
	CHROMOSOME
	GENE
	TRANSCRIPT
	EXON
	INTRON
	UTR_5_PRIME
	UTR_3_PRIME
	UPSTREAM
	DOWNSTREAM
	INTERGENIC
	SPLICE_SITE_ACCEPTOR
	SPLICE_SITE_DONOR
	SPLICE_SITE_REGION
	SYNONYMOUS_CODING
	SYNONYMOUS_STOP
	NON_SYNONYMOUS_CODING
	CODON_CHANGE
	START_LOST
	STOP_GAINED
	STOP_LOST
	CODON_INSERTION
	CODON_DELETION
	CODON_CHANGE_PLUS_CODON_INSERTION
	CODON_CHANGE_PLUS_CODON_DELETION
	FRAME_SHIFT
)

// String returns the classic EFF-style token for the effect type.
func (t Type) String() string {
	switch t {
	case CHROMOSOME:
		return "CHROMOSOME"
	case GENE:
		return "GENE"
	case TRANSCRIPT:
		return "TRANSCRIPT"
	case EXON:
		return "EXON"
	case INTRON:
		return "INTRON"
	case UTR_5_PRIME:
		return "UTR_5_PRIME"
	case UTR_3_PRIME:
		return "UTR_3_PRIME"
	case UPSTREAM:
		return "UPSTREAM"
	case DOWNSTREAM:
		return "DOWNSTREAM"
	case INTERGENIC:
		return "INTERGENIC"
	case SPLICE_SITE_ACCEPTOR:
		return "SPLICE_SITE_ACCEPTOR"
	case SPLICE_SITE_DONOR:
		return "SPLICE_SITE_DONOR"
	case SPLICE_SITE_REGION:
		return "SPLICE_SITE_REGION"
	case SYNONYMOUS_CODING:
		return "SYNONYMOUS_CODING"
	case SYNONYMOUS_STOP:
		return "SYNONYMOUS_STOP"
	case NON_SYNONYMOUS_CODING:
		return "NON_SYNONYMOUS_CODING"
	case CODON_CHANGE:
		return "CODON_CHANGE"
	case START_LOST:
		return "START_LOST"
	case STOP_GAINED:
		return "STOP_GAINED"
	case STOP_LOST:
		return "STOP_LOST"
	case CODON_INSERTION:
		return "CODON_INSERTION"
	case CODON_DELETION:
		return "CODON_DELETION"
	case CODON_CHANGE_PLUS_CODON_INSERTION:
		return "CODON_CHANGE_PLUS_CODON_INSERTION"
	case CODON_CHANGE_PLUS_CODON_DELETION:
		return "CODON_CHANGE_PLUS_CODON_DELETION"
	case FRAME_SHIFT:
		return "FRAME_SHIFT"
	}
	return "NONE"
}

// SO returns the Sequence Ontology term used in VCF ANN fields.
func (t Type) SO() string {
	switch t {
	case CHROMOSOME:
		return "chromosome"
	case GENE:
		return "gene_variant"
	case TRANSCRIPT:
		return "transcript_variant"
	case EXON:
		return "non_coding_transcript_exon_variant"
	case INTRON:
		return "intron_variant"
	case UTR_5_PRIME:
		return "5_prime_UTR_variant"
	case UTR_3_PRIME:
		return "3_prime_UTR_variant"
	case UPSTREAM:
		return "upstream_gene_variant"
	case DOWNSTREAM:
		return "downstream_gene_variant"
	case INTERGENIC:
		return "intergenic_variant"
	case SPLICE_SITE_ACCEPTOR:
		return "splice_acceptor_variant"
	case SPLICE_SITE_DONOR:
		return "splice_donor_variant"
	case SPLICE_SITE_REGION:
		return "splice_region_variant"
	case SYNONYMOUS_CODING:
		return "synonymous_variant"
	case SYNONYMOUS_STOP:
		return "stop_retained_variant"
	case NON_SYNONYMOUS_CODING:
		return "missense_variant"
	case CODON_CHANGE:
		return "coding_sequence_variant"
	case START_LOST:
		return "start_lost"
	case STOP_GAINED:
		return "stop_gained"
	case STOP_LOST:
		return "stop_lost"
	case CODON_INSERTION:
		return "conservative_inframe_insertion"
	case CODON_DELETION:
		return "conservative_inframe_deletion"
	case CODON_CHANGE_PLUS_CODON_INSERTION:
		return "disruptive_inframe_insertion"
	case CODON_CHANGE_PLUS_CODON_DELETION:
		return "disruptive_inframe_deletion"
	case FRAME_SHIFT:
		return "frameshift_variant"
	}
	return "sequence_feature"
}

// Impact levels, ordered by severity.
const (
	ImpactHigh     = "HIGH"
	ImpactModerate = "MODERATE"
	ImpactLow      = "LOW"
	ImpactModifier = "MODIFIER"
)

// Impact returns the impact level for the effect type.
func (t Type) Impact() string {
	switch t {
	case STOP_GAINED, STOP_LOST, START_LOST, FRAME_SHIFT,
		SPLICE_SITE_ACCEPTOR, SPLICE_SITE_DONOR:
		return ImpactHigh
	case NON_SYNONYMOUS_CODING, CODON_INSERTION, CODON_DELETION,
		CODON_CHANGE_PLUS_CODON_INSERTION, CODON_CHANGE_PLUS_CODON_DELETION:
		return ImpactModerate
	case SYNONYMOUS_CODING, SYNONYMOUS_STOP, CODON_CHANGE,
		SPLICE_SITE_REGION:
		return ImpactLow
	}
	return ImpactModifier
}

// ImpactRank returns a numeric rank for impact comparison (higher is more
// severe).
func ImpactRank(impact string) int {
	switch impact {
	case ImpactHigh:
		return 3
	case ImpactModerate:
		return 2
	case ImpactLow:
		return 1
	}
	return 0
}

// IsCodonLevel reports whether the type carries codon/amino-acid detail.
func (t Type) IsCodonLevel() bool {
	switch t {
	case SYNONYMOUS_CODING, SYNONYMOUS_STOP, NON_SYNONYMOUS_CODING,
		CODON_CHANGE, START_LOST, STOP_GAINED, STOP_LOST,
		CODON_INSERTION, CODON_DELETION,
		CODON_CHANGE_PLUS_CODON_INSERTION, CODON_CHANGE_PLUS_CODON_DELETION,
		FRAME_SHIFT:
		return true
	}
	return false
}
