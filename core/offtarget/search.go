// core/offtarget/search.go
package offtarget

import (
	"context"
	"runtime"
	"sync"

	"guidesafe-core/annotate"
)

/* ----------------------- types --------------------- */

// Hit is one window of the haystack within MaxMismatches of the spacer.
type Hit struct {
	SequenceID  string              `json:"sequence_id,omitempty"`
	Position    int                 `json:"position"`
	Entity      string              `json:"entity"`
	Region      annotate.RegionKind `json:"region"`
	Mismatches  int                 `json:"mismatches"`
	MismatchIdx []int               `json:"mismatch_idx,omitempty"` // 0-based offsets in the spacer
	Matched     string              `json:"matched"`
	Essential   bool                `json:"essential"`
}

// Options controls a search. Fields are taken literally: a zero
// MaxMismatches finds exact matches only. Start from DefaultOptions for the
// standard tolerance. Index and Registry may be nil.
type Options struct {
	MaxMismatches int
	Threads       int
	SequenceID    string
	Offset        int // added to reported positions and used for annotation lookup
	Index         *annotate.Index
	Registry      annotate.Registry
}

// DefaultMaxMismatches is the mismatch tolerance used when none is given.
const DefaultMaxMismatches = 3

func DefaultOptions() Options {
	return Options{MaxMismatches: DefaultMaxMismatches, Threads: 1}
}

// minPerWorker keeps goroutine overhead below the scan cost.
const minPerWorker = 4096

/* ---------------------- search -------------------- */

// Search returns every window of haystack within opts.MaxMismatches of
// spacer, position-ascending. Comparison is case-insensitive plain Hamming.
func Search(spacer, haystack string, opts Options) []Hit {
	hits, _ := SearchCtx(context.Background(), spacer, haystack, opts)
	return hits
}

// SearchCtx is Search with cancellation and data-parallel execution over
// opts.Threads position ranges. Threads <= 0 means GOMAXPROCS. Results are
// identical to the serial scan.
func SearchCtx(ctx context.Context, spacer, haystack string, opts Options) ([]Hit, error) {
	sp := upper(spacer)
	hs := upper(haystack)
	m := len(sp)
	if m == 0 || len(hs) < m {
		return nil, ctx.Err()
	}
	last := len(hs) - m // inclusive

	threads := opts.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if limit := (last + 1) / minPerWorker; threads > limit {
		threads = limit
	}
	if threads <= 1 {
		return scan(ctx, sp, hs, 0, last+1, opts)
	}

	parts := make([][]Hit, threads)
	errs := make([]error, threads)
	step := (last + threads) / threads
	var wg sync.WaitGroup
	for w := 0; w < threads; w++ {
		lo := w * step
		hi := lo + step
		if hi > last+1 {
			hi = last + 1
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			parts[w], errs[w] = scan(ctx, sp, hs, lo, hi, opts)
		}(w, lo, hi)
	}
	wg.Wait()

	var out []Hit
	for w := range parts {
		if errs[w] != nil {
			return nil, errs[w]
		}
		out = append(out, parts[w]...)
	}
	return out, nil
}

// checkEvery is how many window starts pass between ctx polls.
const checkEvery = 1 << 14

// scan covers window starts in [lo,hi).
func scan(ctx context.Context, sp, hs string, lo, hi int, opts Options) ([]Hit, error) {
	m := len(sp)
	var out []Hit
window:
	for pos := lo; pos < hi; pos++ {
		if (pos-lo)%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		mm := 0
		var idx []int
		for j := 0; j < m; j++ {
			if hs[pos+j] != sp[j] {
				mm++
				if mm > opts.MaxMismatches {
					continue window
				}
				idx = append(idx, j)
			}
		}
		out = append(out, newHit(hs[pos:pos+m], pos, mm, idx, opts))
	}
	return out, nil
}

func newHit(matched string, pos, mm int, idx []int, opts Options) Hit {
	abs := pos + opts.Offset
	iv := opts.Index.Lookup(opts.SequenceID, abs)
	return Hit{
		SequenceID:  opts.SequenceID,
		Position:    abs,
		Entity:      iv.Entity,
		Region:      iv.Kind,
		Mismatches:  mm,
		MismatchIdx: idx,
		Matched:     matched,
		Essential:   opts.Registry.IsEssential(iv.Entity),
	}
}

func upper(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'a' && c <= 'z' {
			b := []byte(s)
			for k := i; k < len(b); k++ {
				if b[k] >= 'a' && b[k] <= 'z' {
					b[k] -= 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
