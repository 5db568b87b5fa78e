// Package refseq loads single reference or patient sequences for design
// and variant calling.
package refseq

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bebop/poly/io/fasta"

	"guidesafe-core/seqops"
)

// ErrNoRecords is returned for a FASTA file without any record.
var ErrNoRecords = errors.New("no FASTA records")

// Record is one validated, upper-cased sequence.
type Record struct {
	Name     string
	Sequence string
}

// Load reads path and returns the record named name, or the first record
// when name is empty. The sequence is normalized and validated.
func Load(path, name string) (Record, error) {
	entries, err := fasta.Read(path)
	if err != nil {
		return Record{}, fmt.Errorf("failed to read FASTA file: %w", err)
	}
	if len(entries) == 0 {
		return Record{}, fmt.Errorf("%s: %w", path, ErrNoRecords)
	}
	for _, e := range entries {
		id := headerID(e.Name)
		if name != "" && id != name && e.Name != name {
			continue
		}
		seq, err := seqops.Validate(e.Sequence)
		if err != nil {
			return Record{}, fmt.Errorf("%s: record %s: %w", path, id, err)
		}
		return Record{Name: id, Sequence: seq}, nil
	}
	return Record{}, fmt.Errorf("%s: record %q not found", path, name)
}

func headerID(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.IndexAny(name, " \t"); i >= 0 {
		return name[:i]
	}
	return name
}
