// internal/fasta/stream.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// Chunk is a window of one record. Offset is the 0-based position of
// Seq[0] in the record.
type Chunk struct {
	RecordID string
	Offset   int
	Seq      []byte
	IsLast   bool
}

// StreamChunksPathCtx opens path and emits overlapping chunks of each record.
//
// chunkSize <= 0       → whole record as one chunk
// overlap >= chunkSize → whole record as one chunk
// overlap < 0          → treated as 0
//
// Returning an error from emit stops the stream with that error.
func StreamChunksPathCtx(ctx context.Context, path string, chunkSize, overlap int, emit func(Chunk) error) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	return StreamChunksCtx(ctx, rc, chunkSize, overlap, emit)
}

// StreamChunksCtx is StreamChunksPathCtx over an open reader.
func StreamChunksCtx(ctx context.Context, r io.Reader, chunkSize, overlap int, emit func(Chunk) error) error {
	if overlap < 0 {
		overlap = 0
	}
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		id   string
		have bool
		seq  = make([]byte, 0, 1<<20)
	)

	flush := func() error {
		if !have {
			return nil
		}
		step := chunkSize - overlap
		if chunkSize <= 0 || chunkSize >= len(seq) || step <= 0 {
			return emit(Chunk{RecordID: id, Seq: append([]byte(nil), seq...), IsLast: true})
		}
		for off := 0; off < len(seq); off += step {
			if err := ctx.Err(); err != nil {
				return err
			}
			end := off + chunkSize
			if end > len(seq) {
				end = len(seq)
			}
			last := end == len(seq)
			if err := emit(Chunk{RecordID: id, Offset: off, Seq: append([]byte(nil), seq[off:end]...), IsLast: last}); err != nil {
				return err
			}
			if last {
				break
			}
		}
		return nil
	}

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			seq = seq[:0]
			id = parseHeaderID(line[1:])
			have = true
			continue
		}
		if line[0] == ';' {
			continue
		}
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
