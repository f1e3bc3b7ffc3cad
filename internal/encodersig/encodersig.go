// Package encodersig scans the leading bytes of an MP3 file for textual
// encoder fingerprints: LAME, Fraunhofer, iTunes, FFmpeg/Lavf, and a bare
// Xing/Info marker. Unlike lameinfo, which parses a structured sub-block,
// this is a blunt substring scan over a larger window -- it is meant to
// catch encoder evidence the structured parse missed or that sits outside
// the Xing/Info sub-block entirely (spec.md §4.4).
package encodersig

import (
	"bytes"
	"unicode/utf8"
)

// WindowBytes bounds how much of the file is scanned.
const WindowBytes = 65536

// versionLookahead is how many characters past a "LAME" match are
// inspected when capturing a version string.
const versionLookahead = 20

// Signatures is the presence set of encoder fingerprints found in a scan.
type Signatures struct {
	// LAMEVersion is the captured version suffix, e.g. "3.100". A "LAME"
	// marker found with no capturable version text following it is
	// treated the same as no marker at all: spec.md §4.4 and the data
	// model in §3 both discard a bare/garbled LAME hit rather than
	// record it as a signature with an empty version.
	LAMEVersion string
	Fraunhofer  bool
	ITunes      bool
	FFmpeg      bool
	Xing        bool
	// Other holds any additional recognized marker strings not covered by
	// the named booleans above. The core rule set never populates this;
	// it exists so a caller can extend detection without widening Scan's
	// signature.
	Other []string
}

// HasLAME reports whether a usable LAME version string was captured.
func (s Signatures) HasLAME() bool { return s.LAMEVersion != "" }

// DistinctCount returns the number of the first four fingerprint booleans
// (lame, fraunhofer, itunes, ffmpeg) that are true. xing is deliberately
// excluded, per spec.md §4.4.
func (s Signatures) DistinctCount() int {
	n := 0
	if s.HasLAME() {
		n++
	}
	if s.Fraunhofer {
		n++
	}
	if s.ITunes {
		n++
	}
	if s.FFmpeg {
		n++
	}
	return n
}

// Scan reads up to WindowBytes of data and reports which encoder
// fingerprints it recognizes. Presence tests for "LAME" run against the
// raw byte buffer; the textual markers run against a lossy-UTF-8
// rendering of the same window, per spec.md §4.4.
func Scan(data []byte) Signatures {
	window := data
	if len(window) > WindowBytes {
		window = window[:WindowBytes]
	}

	var s Signatures

	if idx := bytes.Index(window, []byte("LAME")); idx >= 0 {
		end := idx + 4 + versionLookahead
		if end > len(window) {
			end = len(window)
		}
		s.LAMEVersion = captureVersion(window[idx+4 : end])
	}

	text := toLossyUTF8(window)

	s.Fraunhofer = bytes.Contains(text, []byte("Fraunhofer")) || bytes.Contains(text, []byte("FhG"))
	hasLavf := bytes.Contains(text, []byte("Lavf"))
	hasApple := bytes.Contains(text, []byte("Apple"))
	s.ITunes = bytes.Contains(text, []byte("iTunes")) || (hasLavf && hasApple)
	s.FFmpeg = hasLavf || bytes.Contains(text, []byte("libmp3lame"))
	s.Xing = bytes.Contains(text, []byte("Xing")) || bytes.Contains(text, []byte("Info"))

	return s
}

// captureVersion keeps the longest prefix of ASCII alphanumerics, '.', and
// '-' found in buf, per spec.md §4.4.
func captureVersion(buf []byte) string {
	end := 0
	for end < len(buf) {
		c := buf[end]
		isAllowed := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '.' || c == '-'
		if !isAllowed {
			break
		}
		end++
	}
	return string(buf[:end])
}

// toLossyUTF8 renders buf as valid UTF-8, replacing invalid sequences with
// the Unicode replacement character, so substring search over arbitrary
// binary audio data never panics or behaves unpredictably on cut
// multi-byte sequences.
func toLossyUTF8(buf []byte) []byte {
	if utf8.Valid(buf) {
		return buf
	}
	out := make([]byte, 0, len(buf))
	for len(buf) > 0 {
		r, size := utf8.DecodeRune(buf)
		out = utf8.AppendRune(out, r)
		buf = buf[size:]
	}
	return out
}
