// core/annotate/loader.go
package annotate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrBadRecord marks a malformed annotation line.
var ErrBadRecord = errors.New("bad annotation record")

// Load reads a GFF3 (.gff/.gff3) or TSV annotation file, choosing the
// parser by extension.
func Load(path string) ([]Interval, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".gff") || strings.HasSuffix(lower, ".gff3") {
		ivs, err := ParseGFF(fh)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return ivs, nil
	}
	ivs, err := ParseTSV(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ivs, nil
}

// ParseGFF reads GFF3 features. Coordinates are converted from 1-based
// inclusive to 0-based half-open. The entity comes from the gene, Name, or
// ID attribute, in that order of preference.
func ParseGFF(r io.Reader) ([]Interval, error) {
	var list []Interval
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Split(line, "\t")
		if len(f) < 9 {
			return nil, fmt.Errorf("%w: line %d: want 9 columns, got %d", ErrBadRecord, ln, len(f))
		}
		start, err := strconv.Atoi(f[3])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad start: %v", ErrBadRecord, ln, err)
		}
		end, err := strconv.Atoi(f[4])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad end: %v", ErrBadRecord, ln, err)
		}
		if start < 1 || end < start {
			return nil, fmt.Errorf("%w: line %d: bad range %d-%d", ErrBadRecord, ln, start, end)
		}
		list = append(list, Interval{
			SeqID:  f[0],
			Start:  start - 1,
			End:    end,
			Entity: gffEntity(f[8]),
			Kind:   ParseRegionKind(f[2]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func gffEntity(attrs string) string {
	kv := map[string]string{}
	for _, a := range strings.Split(attrs, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(a), "=")
		if ok {
			kv[k] = v
		}
	}
	for _, k := range []string{"gene", "Name", "ID"} {
		if v := kv[k]; v != "" {
			return v
		}
	}
	return UnknownEntity
}

// ParseTSV reads "seqid start end entity kind" lines with 0-based
// half-open coordinates. A 4-column form omits seqid.
func ParseTSV(r io.Reader) ([]Interval, error) {
	var list []Interval
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		var iv Interval
		switch len(f) {
		case 4:
		case 5:
			iv.SeqID = f[0]
			f = f[1:]
		default:
			return nil, fmt.Errorf("%w: line %d: bad field count", ErrBadRecord, ln)
		}
		var err error
		if iv.Start, err = strconv.Atoi(f[0]); err != nil {
			return nil, fmt.Errorf("%w: line %d: bad start: %v", ErrBadRecord, ln, err)
		}
		if iv.End, err = strconv.Atoi(f[1]); err != nil {
			return nil, fmt.Errorf("%w: line %d: bad end: %v", ErrBadRecord, ln, err)
		}
		if iv.Start < 0 || iv.End <= iv.Start {
			return nil, fmt.Errorf("%w: line %d: bad range %d-%d", ErrBadRecord, ln, iv.Start, iv.End)
		}
		iv.Entity = f[2]
		iv.Kind = ParseRegionKind(f[3])
		list = append(list, iv)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
