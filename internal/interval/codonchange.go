package interval

import (
	"strings"

	"github.com/chmille4/snpeff/internal/effect"
	"github.com/chmille4/snpeff/internal/variant"
)

// CodonChange reconstructs old/new codons and amino acids for a variant
// falling within a transcript's coding sequence, and emits one or more
// typed effect records. One instance per (variant, transcript, exon)
// evaluation; it never mutates the transcript or exon.
type CodonChange struct {
	v    *variant.Variant
	tr   *Transcript
	exon *Exon
	effs *effect.VariantEffects
}

// NewCodonChange builds the analysis for a variant known to intersect the
// exon and the transcript's CDS span.
func NewCodonChange(v *variant.Variant, tr *Transcript, exon *Exon, effs *effect.VariantEffects) *CodonChange {
	return &CodonChange{v: v, tr: tr, exon: exon, effs: effs}
}

// Compute performs the reading-frame analysis appropriate for the variant
// type.
func (cc *CodonChange) Compute() {
	if cc.tr.Cds() == "" {
		// Sequence unavailable: record the coding hit without detail.
		cc.effs.Add(cc.v, cc.exon, effect.CODON_CHANGE, "")
		return
	}

	switch cc.v.VariantType() {
	case variant.SNP:
		cc.snp()
	case variant.MNP:
		cc.mnp()
	case variant.INS:
		cc.ins()
	case variant.DEL:
		cc.del()
	case variant.MIXED:
		cc.mixed()
	default:
		cc.effs.Add(cc.v, cc.exon, effect.EXON, "")
	}
}

// add records a decorated codon-level effect.
func (cc *CodonChange) add(typ effect.Type, codonsOld, codonsNew string, codonNum, codonIdx int) *effect.VariantEffect {
	oldFmt, newFmt := formatCodons(codonsOld, codonsNew)
	ve := cc.effs.Add(cc.v, cc.exon, typ, "")
	ve.CodonsOld = oldFmt
	ve.CodonsNew = newFmt
	ve.AasOld = Translate(codonsOld)
	ve.AasNew = Translate(codonsNew)
	ve.CodonNum = codonNum + 1
	ve.CodonIdx = codonIdx
	return ve
}

// fallback records a generic exonic hit when indexes cannot be resolved
// (e.g. the variant clips the CDS span but lands between coding bases).
func (cc *CodonChange) fallback() {
	cc.effs.Add(cc.v, cc.exon, effect.EXON, "")
}

func (cc *CodonChange) snp() {
	cds := cc.tr.Cds()
	idx := cc.tr.BaseNumberCds(cc.v.Start())
	if idx < 0 {
		cc.fallback()
		return
	}

	codonNum, codonIdx := idx/3, idx%3
	cs := codonNum * 3
	if cs+3 > len(cds) {
		cc.fallback()
		return
	}

	refCodon := cds[cs : cs+3]
	altBase := cc.v.Alt()[0]
	if cc.tr.IsStrandMinus() {
		altBase = Complement(altBase)
	}
	altCodon := refCodon[:codonIdx] + string(altBase) + refCodon[codonIdx+1:]

	aaOld := TranslateCodon(refCodon)
	aaNew := TranslateCodon(altCodon)
	cc.add(aaChangeType(aaOld, aaNew, codonNum), refCodon, altCodon, codonNum, codonIdx)
}

func (cc *CodonChange) mnp() {
	cds := cc.tr.Cds()
	idxLo, idxHi, altSeg, ok := cc.cdsSpan()
	if !ok {
		cc.fallback()
		return
	}

	codonLo := (idxLo / 3) * 3
	codonHi := ((idxHi / 3) + 1) * 3
	if codonHi > len(cds) {
		codonHi = len(cds)
	}

	oldCodons := cds[codonLo:codonHi]
	mut := cds[:idxLo] + altSeg + cds[idxHi+1:]
	hiNew := codonHi
	if hiNew > len(mut) {
		hiNew = len(mut)
	}
	newCodons := mut[codonLo:hiNew]

	aasOld := Translate(oldCodons)
	aasNew := Translate(newCodons)

	typ := effect.CODON_CHANGE
	switch {
	case aasOld == aasNew:
		typ = effect.SYNONYMOUS_CODING
		if strings.Contains(aasOld, "*") {
			typ = effect.SYNONYMOUS_STOP
		}
	case strings.Contains(aasNew, "*") && !strings.Contains(aasOld, "*"):
		typ = effect.STOP_GAINED
	case strings.Contains(aasOld, "*") && !strings.Contains(aasNew, "*"):
		typ = effect.STOP_LOST
	case codonLo == 0 && len(aasOld) > 0 && aasOld[0] == 'M' && len(aasNew) > 0 && aasNew[0] != 'M':
		typ = effect.START_LOST
	case len(oldCodons) == 3:
		typ = effect.NON_SYNONYMOUS_CODING
	}

	cc.add(typ, oldCodons, newCodons, idxLo/3, idxLo%3)
}

func (cc *CodonChange) ins() {
	cds := cc.tr.Cds()

	insIdx := cc.tr.BaseNumberCds(cc.v.Start())
	if insIdx < 0 {
		cc.fallback()
		return
	}
	if cc.tr.IsStrandMinus() {
		// On the minus strand a genomic insertion before position p lands
		// after the CDS base that p maps to.
		insIdx++
	}
	if insIdx > len(cds) {
		cc.fallback()
		return
	}

	net := cc.v.Alt()
	if cc.tr.IsStrandMinus() {
		net = ReverseComplement(net)
	}

	codonNum, codonIdx := insIdx/3, insIdx%3

	if len(net)%3 != 0 {
		cc.add(effect.FRAME_SHIFT, "", "", codonNum, codonIdx)
		return
	}

	cs := codonNum * 3
	ce := cs + 3
	if ce > len(cds) {
		ce = len(cds)
	}
	oldCodons := ""
	if codonIdx != 0 {
		oldCodons = cds[cs:ce]
	}
	newCodons := cds[cs:insIdx] + net + cds[insIdx:ce]

	typ := effect.CODON_INSERTION
	if codonIdx != 0 {
		typ = effect.CODON_CHANGE_PLUS_CODON_INSERTION
	}
	if strings.Contains(Translate(newCodons), "*") {
		typ = effect.STOP_GAINED
	}

	cc.add(typ, oldCodons, newCodons, codonNum, codonIdx)
}

func (cc *CodonChange) del() {
	cds := cc.tr.Cds()
	idxLo, idxHi, _, ok := cc.cdsSpan()
	if !ok {
		cc.fallback()
		return
	}

	codonNum, codonIdx := idxLo/3, idxLo%3
	delLen := idxHi - idxLo + 1

	if delLen%3 != 0 {
		cc.add(effect.FRAME_SHIFT, "", "", codonNum, codonIdx)
		return
	}

	codonLo := codonNum * 3
	codonHi := ((idxHi / 3) + 1) * 3
	if codonHi > len(cds) {
		codonHi = len(cds)
	}
	oldCodons := cds[codonLo:codonHi]

	mut := cds[:idxLo] + cds[idxHi+1:]
	newCodons := ""
	if codonIdx != 0 && codonLo+3 <= len(mut) {
		newCodons = mut[codonLo : codonLo+3]
	}

	typ := effect.CODON_DELETION
	if codonIdx != 0 {
		typ = effect.CODON_CHANGE_PLUS_CODON_DELETION
	}
	if strings.Contains(Translate(oldCodons), "*") {
		typ = effect.STOP_LOST
	}

	cc.add(typ, oldCodons, newCodons, codonNum, codonIdx)
}

// mixed treats a substitution with length change as a combined deletion
// and insertion anchored at the variant start.
func (cc *CodonChange) mixed() {
	idxLo, idxHi, altSeg, ok := cc.cdsSpan()
	if !ok {
		cc.fallback()
		return
	}

	codonNum, codonIdx := idxLo/3, idxLo%3
	delLen := idxHi - idxLo + 1

	if (len(altSeg)-delLen)%3 != 0 {
		cc.add(effect.FRAME_SHIFT, "", "", codonNum, codonIdx)
		return
	}

	cds := cc.tr.Cds()
	codonLo := codonNum * 3
	codonHi := ((idxHi / 3) + 1) * 3
	if codonHi > len(cds) {
		codonHi = len(cds)
	}
	oldCodons := cds[codonLo:codonHi]

	mut := cds[:idxLo] + altSeg + cds[idxHi+1:]
	newHi := codonLo + ((len(oldCodons)+len(altSeg)-delLen+2)/3)*3
	if newHi > len(mut) {
		newHi = len(mut)
	}
	newCodons := mut[codonLo:newHi]

	typ := effect.CODON_CHANGE_PLUS_CODON_DELETION
	if len(altSeg) > delLen {
		typ = effect.CODON_CHANGE_PLUS_CODON_INSERTION
	}
	if strings.Contains(Translate(newCodons), "*") && !strings.Contains(Translate(oldCodons), "*") {
		typ = effect.STOP_GAINED
	}

	cc.add(typ, oldCodons, newCodons, codonNum, codonIdx)
}

// cdsSpan clips the variant's reference span to the exon and the CDS,
// returning the 0-based CDS indexes of the biologically first and last
// affected bases and the alt segment in coding orientation.
func (cc *CodonChange) cdsSpan() (idxLo, idxHi int, altSeg string, ok bool) {
	lo, hi, hasOverlap := cc.exon.IntersectRange(cc.v.Start(), cc.v.End())
	if !hasOverlap {
		return 0, 0, "", false
	}
	if lo < cc.tr.cdsMin {
		lo = cc.tr.cdsMin
	}
	if hi > cc.tr.cdsMax {
		hi = cc.tr.cdsMax
	}
	if lo > hi {
		return 0, 0, "", false
	}

	a := cc.tr.BaseNumberCds(lo)
	b := cc.tr.BaseNumberCds(hi)
	if a < 0 || b < 0 {
		return 0, 0, "", false
	}
	if a > b {
		a, b = b, a
	}

	// Alt segment covering the clipped span, in coding orientation.
	alt := cc.v.Alt()
	aLo := lo - cc.v.Start()
	aHi := hi - cc.v.Start()
	if aLo < 0 {
		aLo = 0
	}
	if aHi >= len(alt) {
		aHi = len(alt) - 1
	}
	if aLo <= aHi {
		altSeg = alt[aLo : aHi+1]
	}
	if cc.tr.IsStrandMinus() {
		altSeg = ReverseComplement(altSeg)
	}

	return a, b, altSeg, true
}

// aaChangeType classifies a single-codon substitution.
func aaChangeType(aaOld, aaNew byte, codonNum int) effect.Type {
	switch {
	case aaOld == aaNew:
		if aaOld == '*' {
			return effect.SYNONYMOUS_STOP
		}
		return effect.SYNONYMOUS_CODING
	case aaNew == '*':
		return effect.STOP_GAINED
	case aaOld == '*':
		return effect.STOP_LOST
	case codonNum == 0 && aaOld == 'M':
		return effect.START_LOST
	}
	return effect.NON_SYNONYMOUS_CODING
}

// formatCodons renders codon-change strings: the old codons lowercase, the
// new codons lowercase except for changed positions.
func formatCodons(oldCodons, newCodons string) (string, string) {
	o := strings.ToLower(oldCodons)
	n := []byte(strings.ToLower(newCodons))
	for i := range n {
		if i >= len(o) || o[i] != n[i] {
			n[i] &^= 0x20 // uppercase changed base
		}
	}
	return o, string(n)
}
