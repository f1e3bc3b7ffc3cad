// Package frame walks an MPEG audio stream frame-by-frame, collecting
// aggregate statistics used by the scoring engine.
//
// The walk itself is adapted from the teacher's own frame-reading loop
// (decode.go's ensureFrameStartsAndLength, and the upstream source.go
// readHeader resync loop retrieved in other_examples): read four bytes,
// accept or resync one byte at a time, seek past the frame body. What
// differs from the teacher is the purpose -- this never decodes audio, it
// only records bitrate/frame-size statistics per spec.md §4.2.
package frame

import (
	"io"
	"math"

	"github.com/sonicaudit/transcodecheck/internal/frameheader"
	"github.com/sonicaudit/transcodecheck/internal/id3"
)

// DefaultMaxFrames is the default cap on frames inspected per file (spec.md
// §3, FrameStats, N=200).
const DefaultMaxFrames = 200

// ReadSeekerAt is satisfied by *os.File and *bytes.Reader; the scanner
// needs random access both to skip an ID3v2 prefix and to walk frame
// bodies it never decodes.
type ReadSeekerAt interface {
	io.ReadSeeker
	io.ReaderAt
}

// Stats aggregates per-frame bitrate and frame-size observations over a
// single scan. It is built once by Scan and never mutated afterward.
type Stats struct {
	FrameCount      int
	Bitrates        []int
	FrameSizes      []int
	IsVBR           bool
	AvgBitrateKbps  int
	MinBitrateKbps  int
	MaxBitrateKbps  int
	FirstSampleRate int
}

// FrameSizeCVPercent returns the coefficient of variation of FrameSizes as
// a percentage, using population variance. Returns 0 for an empty list or
// a zero mean (spec.md §4.2).
func (s Stats) FrameSizeCVPercent() float64 {
	n := len(s.FrameSizes)
	if n == 0 {
		return 0
	}
	sum := 0
	for _, v := range s.FrameSizes {
		sum += v
	}
	mean := float64(sum) / float64(n)
	if mean == 0 {
		return 0
	}
	var sumSquares float64
	for _, v := range s.FrameSizes {
		d := float64(v) - mean
		sumSquares += d * d
	}
	variance := sumSquares / float64(n)
	return 100 * math.Sqrt(variance) / mean
}

// Scan walks r from its ID3v2-adjusted start, recording up to maxFrames
// accepted frame headers. A frame header that fails to parse causes a
// one-byte resync, not an error (spec.md §4.2, §7 InvalidFrame). An empty
// or frame-less stream yields a zero-value Stats, not an error (§7
// NoFramesFound).
func Scan(r ReadSeekerAt, maxFrames int) (Stats, error) {
	if maxFrames <= 0 {
		maxFrames = DefaultMaxFrames
	}

	start := id3.SkipSize(r)
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return Stats{}, err
	}

	var stats Stats
	seenBitrates := make(map[int]struct{})

	var buf [4]byte
	for stats.FrameCount < maxFrames {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			break
		}

		h, err := frameheader.Parse(buf)
		if err != nil {
			if _, serr := r.Seek(-3, io.SeekCurrent); serr != nil {
				break
			}
			continue
		}

		size, err := h.FrameSizeBytes()
		if err != nil || size < 4 {
			if _, serr := r.Seek(-3, io.SeekCurrent); serr != nil {
				break
			}
			continue
		}

		if stats.FrameCount == 0 {
			stats.FirstSampleRate = h.SampleRateHz()
		}
		stats.FrameCount++
		stats.Bitrates = append(stats.Bitrates, h.BitrateKbps())
		stats.FrameSizes = append(stats.FrameSizes, size)
		seenBitrates[h.BitrateKbps()] = struct{}{}

		if _, err := r.Seek(int64(size-4), io.SeekCurrent); err != nil {
			break
		}
	}

	if stats.FrameCount > 0 {
		stats.IsVBR = len(seenBitrates) > 1
		sum := 0
		stats.MinBitrateKbps = stats.Bitrates[0]
		stats.MaxBitrateKbps = stats.Bitrates[0]
		for _, b := range stats.Bitrates {
			sum += b
			if b < stats.MinBitrateKbps {
				stats.MinBitrateKbps = b
			}
			if b > stats.MaxBitrateKbps {
				stats.MaxBitrateKbps = b
			}
		}
		stats.AvgBitrateKbps = sum / len(stats.Bitrates)
	}

	return stats, nil
}
