package sampleio

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/ucigauntlet/arbiter/pkg/game"
	"github.com/ucigauntlet/arbiter/pkg/position"
)

const standardStartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func sampleSet(t *testing.T) []game.Sample {
	t.Helper()
	pos := position.FromFEN(standardStartFEN, false)
	mov, ok := pos.LANToMove("e2e4")
	if !ok {
		t.Fatalf("e2e4 is illegal from the starting position")
	}
	next := pos.Apply(mov)

	return []game.Sample{
		{Pos: pos, Score: 23, Result: game.SampleDraw},
		{Pos: next, Score: -17, Result: game.SampleWin},
	}
}

func TestCSVRoundTripPreservesFENScoreAndResult(t *testing.T) {
	samples := sampleSet(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, CSV)
	if err := w.WriteGame(&game.Game{Samples: samples}); err != nil {
		t.Fatalf("WriteGame: %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	for i := 0; scanner.Scan(); i++ {
		if i >= len(samples) {
			t.Fatalf("more CSV rows than samples written")
		}
		fields := strings.Split(scanner.Text(), ",")
		if len(fields) != 3 {
			t.Fatalf("row %d: got %d fields, want 3: %q", i, len(fields), scanner.Text())
		}

		if fields[0] != samples[i].Pos.FEN() {
			t.Fatalf("row %d: fen = %q, want %q", i, fields[0], samples[i].Pos.FEN())
		}

		score, err := strconv.Atoi(fields[1])
		if err != nil {
			t.Fatalf("row %d: score %q not an integer: %v", i, fields[1], err)
		}
		if int16(score) != samples[i].Score {
			t.Fatalf("row %d: score = %d, want %d", i, score, samples[i].Score)
		}

		result, err := strconv.Atoi(fields[2])
		if err != nil {
			t.Fatalf("row %d: result %q not an integer: %v", i, fields[2], err)
		}
		if game.SampleResult(result) != samples[i].Result {
			t.Fatalf("row %d: result = %d, want %d", i, result, samples[i].Result)
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scanning csv output: %v", err)
	}
}

func TestBinaryWriteProducesOneRecordPerSample(t *testing.T) {
	samples := sampleSet(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, Binary)
	if err := w.WriteGame(&game.Game{Samples: samples}); err != nil {
		t.Fatalf("WriteGame: %v", err)
	}

	perRecord := len(samples[0].Pos.Pack()) + 2 + 1 // packed position + int16 score + uint8 result
	want := perRecord * len(samples)
	if buf.Len() != want {
		t.Fatalf("wrote %d bytes, want %d (%d per record x %d samples)", buf.Len(), want, perRecord, len(samples))
	}
}

func TestWriterLocksAcrossConcurrentGames(t *testing.T) {
	samples := sampleSet(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, CSV)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_ = w.WriteGame(&game.Game{Samples: samples})
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	lines := strings.Count(buf.String(), "\n")
	if lines != 8*len(samples) {
		t.Fatalf("got %d output lines across 8 concurrent writers, want %d", lines, 8*len(samples))
	}
}
