// Package lameinfo locates the Xing/Info VBR header and the LAME tag
// sub-block embedded in the first audio frame of an MP3 file.
//
// This is the forensically useful half of the format: the LAME tag
// honestly records the lowpass filter frequency the encoder applied, and
// that value survives a transcode even when the container claims a much
// higher bitrate.
//
// The package keeps the teacher's shape for this concern -- an exported
// Header struct, named flag constants, a single Extract entry point --
// but the search strategy itself is rewritten: the teacher computes the
// Xing offset exactly from decoded side-info size because it is about to
// decode audio starting there; this package has no decoder, so it locates
// "Xing"/"Info" by substring search over a byte window, the way a
// forensic scanner must.
package lameinfo

import (
	"bytes"
)

// Flag bits in the Xing/Info header's 32-bit flags field.
const (
	FlagFrameCount = 0x0001
	FlagByteCount  = 0x0002
	FlagTOC        = 0x0004
	FlagQuality    = 0x0008
)

// SearchWindowBytes bounds how far into the file Extract looks for the
// Xing/Info marker.
const SearchWindowBytes = 2048

// FallbackWindowBytes bounds the fallback "bare LAME tag" search used when
// no Xing/Info marker is present at all.
const FallbackWindowBytes = 500

// lameTagSearchSpan bounds how far past the end of the Xing/Info fields
// Extract looks for the "LAME"/"Lavc" sub-tag.
const lameTagSearchSpan = 50

// Header is the parsed content of the Xing/Info header and its trailing
// LAME (or Lavc) sub-block.
//
// Optional fields are nil pointers when absent, never a sentinel zero --
// zero is a legitimate value for several of these fields (e.g. quality 0).
type Header struct {
	// Encoder is the encoder version string, e.g. "LAME3.100" or "Lavc58.met".
	Encoder string
	// LowpassHz is the encoder's lowpass filter cutoff in Hz, present only
	// when a LAME tag was found and its lowpass byte falls in [50, 220].
	LowpassHz *int
	// VBRMethod is the 0-15 VBR method nibble, present only for a LAME tag.
	VBRMethod *int
	// Quality is the 0-15 quality nibble, present only for a LAME tag.
	Quality *int
	// IsVBRHeader is true for a "Xing" marker, false for "Info" (and for
	// the bare-LAME fallback, where no marker was found at all).
	IsVBRHeader bool
	// TotalFrames is the Xing/Info frame count field, when its flag bit is set.
	TotalFrames *int
	// TotalBytes is the Xing/Info byte count field, when its flag bit is set.
	TotalBytes *int
}

func intPtr(v int) *int { return &v }

// Extract locates and parses the Xing/Info header plus its trailing LAME
// sub-block within the first SearchWindowBytes of data. It returns
// (nil, false) if no evidence of either the VBR header or a bare LAME tag
// is found at all.
func Extract(data []byte) (*Header, bool) {
	window := data
	if len(window) > SearchWindowBytes {
		window = window[:SearchWindowBytes]
	}

	xingPos := bytes.Index(window, []byte("Xing"))
	infoPos := bytes.Index(window, []byte("Info"))

	var markerPos int
	var isXing bool
	switch {
	case xingPos >= 0:
		markerPos, isXing = xingPos, true
	case infoPos >= 0:
		markerPos, isXing = infoPos, false
	default:
		return fallbackLAMEOnly(window)
	}

	h := &Header{IsVBRHeader: isXing}

	flagsEnd := markerPos + 8
	if flagsEnd > len(window) {
		// Marker found but truncated before the flags field: nothing more
		// to recover.
		return h, true
	}
	flags := uint32(window[markerPos+4])<<24 | uint32(window[markerPos+5])<<16 |
		uint32(window[markerPos+6])<<8 | uint32(window[markerPos+7])

	offset := flagsEnd
	if flags&FlagFrameCount != 0 {
		if offset+4 <= len(window) {
			h.TotalFrames = intPtr(int(uint32(window[offset])<<24 | uint32(window[offset+1])<<16 |
				uint32(window[offset+2])<<8 | uint32(window[offset+3])))
		}
		offset += 4
	}
	if flags&FlagByteCount != 0 {
		if offset+4 <= len(window) {
			h.TotalBytes = intPtr(int(uint32(window[offset])<<24 | uint32(window[offset+1])<<16 |
				uint32(window[offset+2])<<8 | uint32(window[offset+3])))
		}
		offset += 4
	}
	if flags&FlagTOC != 0 {
		offset += 100 // TOC is skipped without parsing.
	}
	if flags&FlagQuality != 0 {
		offset += 4 // Xing quality field is skipped without parsing.
	}

	if offset < 0 || offset > len(window) {
		return h, true
	}
	searchTo := offset + lameTagSearchSpan
	if searchTo > len(window) {
		searchTo = len(window)
	}
	sub := window[offset:searchTo]

	if rel := bytes.Index(sub, []byte("LAME")); rel >= 0 {
		applyLAMETag(h, window, offset+rel)
		return h, true
	}
	if rel := bytes.Index(sub, []byte("Lavc")); rel >= 0 {
		applyLavcTag(h, window, offset+rel)
		return h, true
	}

	return h, true
}

// fallbackLAMEOnly handles the case where no Xing/Info marker exists at
// all: search the first FallbackWindowBytes for a bare "LAME" tag. This
// can match bytes inside genuine audio data and fabricate a lowpass
// reading; that tolerant behavior is intentional here, matching what a
// quick forensic pass does when the VBR header itself is missing or
// stripped.
func fallbackLAMEOnly(window []byte) (*Header, bool) {
	limit := window
	if len(limit) > FallbackWindowBytes {
		limit = limit[:FallbackWindowBytes]
	}
	rel := bytes.Index(limit, []byte("LAME"))
	if rel < 0 {
		return nil, false
	}
	h := &Header{}
	applyLAMEVersionAndLowpass(h, window, rel)
	return h, true
}

// applyLAMETag fills encoder, VBR method, quality, and lowpass from a
// "LAME" tag located at pos within buf.
func applyLAMETag(h *Header, buf []byte, pos int) {
	applyLAMEVersionAndLowpass(h, buf, pos)
	if pos+9 < len(buf) {
		infoByte := buf[pos+9]
		h.Quality = intPtr(int(infoByte>>4) & 0x0F)
		h.VBRMethod = intPtr(int(infoByte) & 0x0F)
	}
}

// applyLAMEVersionAndLowpass extracts the 9-byte version string and the
// lowpass byte at offset 10, shared by both the Xing-anchored and the
// fallback bare-LAME paths.
func applyLAMEVersionAndLowpass(h *Header, buf []byte, pos int) {
	versionEnd := pos + 9
	if versionEnd > len(buf) {
		versionEnd = len(buf)
	}
	h.Encoder = string(bytes.TrimRight(buf[pos:versionEnd], "\x00"))

	if pos+10 < len(buf) {
		lowpassByte := buf[pos+10]
		if lowpassByte >= 50 && lowpassByte <= 220 {
			h.LowpassHz = intPtr(int(lowpassByte) * 100)
		}
	}
}

// applyLavcTag fills the encoder version from a "Lavc" (libavcodec) tag;
// Lavc carries no lowpass field.
func applyLavcTag(h *Header, buf []byte, pos int) {
	versionEnd := pos + 12
	if versionEnd > len(buf) {
		versionEnd = len(buf)
	}
	h.Encoder = string(bytes.TrimRight(buf[pos:versionEnd], "\x00"))
}
