// Package sampleio serializes game.Sample collections as CSV or packed
// binary. The binary layout is pinned explicitly here rather than riding
// on the host's native int widths and endianness: little-endian, score as
// int16, result as uint8, immediately following the packed position
// bytes.
package sampleio

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/ucigauntlet/arbiter/pkg/game"
)

// Format selects the on-disk sample encoding.
type Format int

const (
	CSV Format = iota
	Binary
)

// Writer serializes samples to an underlying stream, taking an exclusive
// lock for the duration of one game's batch so that concurrent workers'
// samples are never interleaved mid-record.
type Writer struct {
	mu     sync.Mutex
	w      io.Writer
	format Format
}

// NewWriter wraps w for sample output in the given format.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// WriteGame appends every sample collected for g, as one locked batch.
func (sw *Writer) WriteGame(g *game.Game) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	switch sw.format {
	case Binary:
		return writeBinary(sw.w, g.Samples)
	default:
		return writeCSV(sw.w, g.Samples)
	}
}

func writeCSV(w io.Writer, samples []game.Sample) error {
	for _, s := range samples {
		if _, err := fmt.Fprintf(w, "%s,%d,%d\n", s.Pos.FEN(), s.Score, s.Result); err != nil {
			return err
		}
	}
	return nil
}

func writeBinary(w io.Writer, samples []game.Sample) error {
	for _, s := range samples {
		if _, err := w.Write(s.Pos.Pack()); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, s.Score); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint8(s.Result)); err != nil {
			return err
		}
	}
	return nil
}
