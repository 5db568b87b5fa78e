// internal/output/common.go
package output

import (
	"errors"
	"io"
	"syscall"
)

// Canonical header rows for text/TSV outputs.
const (
	CandidateHeader = "rank\tstrand\tmotif\tmotif_start\tcut_site\tcut_distance\tspacer\tgc\tterminator\thairpin\tbinding\tstructural_risk\ttemplates\trecommendation\tscore\tdecided_by\tnote"
	TemplateHeader  = "candidate\trank\tstart\tleft_arm\tright_arm\thairpin\tshield\tsequence"
	HitHeader       = "source_file\tsequence_id\tposition\tentity\tregion\tmismatches\tmismatch_idx\tmatched\tessential\tcategory"
	VariantHeader   = "index\tref\talt\tsite"
)

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Useful when downstream consumers (like `head`) close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
