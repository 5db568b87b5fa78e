// Package annotate resolves genomic positions to named regions and entities.
package annotate

import "strings"

// RegionKind is the feature class of an interval.
type RegionKind string

const (
	Exon       RegionKind = "EXON"
	Intron     RegionKind = "INTRON"
	CDS        RegionKind = "CDS"
	UTR        RegionKind = "UTR"
	Intergenic RegionKind = "INTERGENIC"
	Unknown    RegionKind = "UNKNOWN"
)

// Coding reports whether hits in this region can change a protein.
func (k RegionKind) Coding() bool { return k == Exon || k == CDS }

// ParseRegionKind maps a feature type (GFF column 3 or a TSV column) to a kind.
func ParseRegionKind(s string) RegionKind {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "EXON":
		return Exon
	case "INTRON":
		return Intron
	case "CDS":
		return CDS
	case "UTR", "FIVE_PRIME_UTR", "THREE_PRIME_UTR", "5UTR", "3UTR":
		return UTR
	case "INTERGENIC":
		return Intergenic
	default:
		return Unknown
	}
}

// UnknownEntity names positions outside every interval.
const UnknownEntity = "Unknown"

// Interval is a half-open [Start,End) region on SeqID. An empty SeqID
// matches any sequence.
type Interval struct {
	SeqID  string     `json:"seq_id,omitempty"`
	Start  int        `json:"start"`
	End    int        `json:"end"`
	Entity string     `json:"entity"`
	Kind   RegionKind `json:"kind"`
}

// Contains reports whether pos on seqID falls inside iv.
func (iv Interval) Contains(seqID string, pos int) bool {
	if iv.SeqID != "" && seqID != "" && iv.SeqID != seqID {
		return false
	}
	return iv.Start <= pos && pos < iv.End
}

// Default is returned for unannotated positions.
var Default = Interval{Entity: UnknownEntity, Kind: Intergenic}

// Index is an ordered, read-only set of intervals. The zero value and nil
// are both empty.
type Index struct {
	ivs []Interval
}

// NewIndex keeps intervals in the given order; lookups return the first
// containing interval.
func NewIndex(ivs []Interval) *Index {
	return &Index{ivs: append([]Interval(nil), ivs...)}
}

// Len returns the number of intervals.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.ivs)
}

// Lookup returns the first interval containing pos, or Default.
func (x *Index) Lookup(seqID string, pos int) Interval {
	if x == nil {
		return Default
	}
	for _, iv := range x.ivs {
		if iv.Contains(seqID, pos) {
			return iv
		}
	}
	return Default
}

// Filter returns the intervals of the given kind in order.
func (x *Index) Filter(kind RegionKind) []Interval {
	if x == nil {
		return nil
	}
	var out []Interval
	for _, iv := range x.ivs {
		if iv.Kind == kind {
			out = append(out, iv)
		}
	}
	return out
}
