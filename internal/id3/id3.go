// Package id3 decodes the parts of an ID3v2 header needed to skip past a
// tag that precedes the MPEG audio frames in an MP3 file.
//
// Grounded on the 7-bit-chunked size field handling in dhowden/tag's
// id3v2.go (get7BitChunkedInt) and the equivalent skipTags step in
// hajimehoshi/go-mp3's source.go, generalized into a named helper per the
// design note in spec.md §9: the ID3v2 size is not a plain big-endian u32,
// each byte only contributes its low 7 bits.
package id3

import "io"

// HeaderSize is the fixed size of an ID3v2 header: "ID3" + version(2) +
// flags(1) + size(4).
const HeaderSize = 10

// Syncsafe32 decodes a 4-byte syncsafe integer: each byte contributes its
// low 7 bits, high bits are ignored.
func Syncsafe32(b [4]byte) int {
	return int(b[0]&0x7F)<<21 | int(b[1]&0x7F)<<14 | int(b[2]&0x7F)<<7 | int(b[3]&0x7F)
}

// SkipSize reports how many bytes to skip from the start of the stream to
// reach the first byte after an ID3v2 tag. It reads through r.ReadAt at
// absolute offsets, so r's current position is neither used nor changed.
// It returns 0 if no "ID3" magic is present.
// A short read while parsing the header is treated as "no tag" rather than
// an error: ID3v2 presence here is advisory, not something that should
// abort the caller's scan.
func SkipSize(r io.ReaderAt) int64 {
	var magic [3]byte
	if _, err := r.ReadAt(magic[:], 0); err != nil {
		return 0
	}
	if string(magic[:]) != "ID3" {
		return 0
	}
	var sizeField [4]byte
	if _, err := r.ReadAt(sizeField[:], 6); err != nil {
		return 0
	}
	return int64(HeaderSize + Syncsafe32(sizeField))
}
