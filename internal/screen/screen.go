// internal/screen/screen.go
package screen

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"guidesafe-core/annotate"
	"guidesafe-core/offtarget"
	"guidesafe/internal/fasta"
	"guidesafe/internal/logging"
)

// Config controls the screening pipeline.
type Config struct {
	Threads       int // worker goroutines; <=0 means one per CPU
	ChunkSize     int // FASTA chunking window; 0 disables chunking
	MaxMismatches int
	Index         *annotate.Index
	Registry      annotate.Registry
	Logger        *slog.Logger
}

// Hit is an off-target hit with its origin.
type Hit struct {
	offtarget.Hit
	SourceFile string

	file, record int // input order, for sorting
}

// Key identifies a hit in record coordinates so chunk overlaps collapse.
type Key struct {
	File, Record string
	Position     int
}

type job struct {
	chunk  fasta.Chunk
	file   string
	fileNo int
	recNo  int
}

// Run screens spacer against every record of dbFiles and returns the
// deduplicated hits sorted by (file, record, position) in input order.
func Run(ctx context.Context, cfg Config, spacer string, dbFiles []string) ([]Hit, error) {
	thr := cfg.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}
	lg := cfg.Logger
	if lg == nil {
		lg = logging.Discard()
	}
	chunkSize, overlap, warns := ValidateChunking(cfg.ChunkSize, len(spacer))
	for _, w := range warns {
		lg.Warn(w)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan job, thr*2)
	results := make(chan []Hit, thr*2)
	errs := make(chan error, thr)

	var wg sync.WaitGroup
	wg.Add(thr)
	for w := 0; w < thr; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					hs, err := offtarget.SearchCtx(ctx, spacer, string(j.chunk.Seq), offtarget.Options{
						MaxMismatches: cfg.MaxMismatches,
						Threads:       1,
						SequenceID:    j.chunk.RecordID,
						Offset:        j.chunk.Offset,
						Index:         cfg.Index,
						Registry:      cfg.Registry,
					})
					if err != nil {
						select {
						case errs <- err:
						default:
						}
						cancel()
						return
					}
					out := make([]Hit, len(hs))
					for i := range hs {
						out[i] = Hit{Hit: hs[i], SourceFile: j.file, file: j.fileNo, record: j.recNo}
					}
					select {
					case results <- out:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector + deduper
	var (
		all  []Hit
		cwg  sync.WaitGroup
		seen = make(map[Key]struct{}, 1<<10)
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for hs := range results {
			for _, h := range hs {
				k := Key{File: h.SourceFile, Record: h.SequenceID, Position: h.Position}
				if _, dup := seen[k]; dup {
					continue
				}
				seen[k] = struct{}{}
				all = append(all, h)
			}
		}
	}()

	var ferr error
feed:
	for fi, path := range dbFiles {
		lg.Debug("screening database", "file", path, "chunk_size", chunkSize, "overlap", overlap)
		recNo, lastRec := -1, ""
		err := fasta.StreamChunksPathCtx(ctx, path, chunkSize, overlap, func(c fasta.Chunk) error {
			if c.Offset == 0 || c.RecordID != lastRec {
				recNo++
				lastRec = c.RecordID
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- job{chunk: c, file: path, fileNo: fi, recNo: recNo}:
				return nil
			}
		})
		if err != nil {
			ferr = err
			break feed
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	select {
	case err := <-errs:
		return nil, err
	default:
	}
	if ferr != nil {
		return nil, ferr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.file != b.file {
			return a.file < b.file
		}
		if a.record != b.record {
			return a.record < b.record
		}
		return a.Position < b.Position
	})
	lg.Debug("screen finished", "hits", len(all), "files", len(dbFiles))
	return all, nil
}

// Plain drops the origin fields.
func Plain(hs []Hit) []offtarget.Hit {
	out := make([]offtarget.Hit, len(hs))
	for i := range hs {
		out[i] = hs[i].Hit
	}
	return out
}
