package annotate

// SiteClass is the coarse effect class of a variant position.
type SiteClass string

const (
	SpliceSite SiteClass = "SPLICE_SITE"
	InExon     SiteClass = "EXON"
	InIntron   SiteClass = "INTRON"
)

// SpliceMargin is how close to an exon boundary a position counts as splice.
const SpliceMargin = 2

// ClassifySite reports whether pos sits on a splice site (within 2 nt of
// an exon's first or last base), inside an exon, or elsewhere. Exons are
// checked in order and the first match decides.
func ClassifySite(pos int, exons []Interval) SiteClass {
	for _, e := range exons {
		first, last := e.Start, e.End-1
		if near(pos, first) || near(pos, last) {
			return SpliceSite
		}
		if first <= pos && pos <= last {
			return InExon
		}
	}
	return InIntron
}

func near(pos, boundary int) bool {
	return boundary-SpliceMargin <= pos && pos <= boundary+SpliceMargin
}
