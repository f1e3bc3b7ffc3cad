// Copyright 2017 Hajime Hoshi
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package frameheader decodes 4-byte MPEG audio frame headers.
//
// A FrameHeader is the raw 32-bit big-endian header word. All derived
// fields (bitrate, sample rate, frame size, ...) are computed from it on
// demand; nothing here performs audio decoding, only bit-field extraction.
package frameheader

import (
	"errors"
	"fmt"
	"time"
)

// FrameHeader is the raw 32-bit value of a 4-byte MPEG audio frame header.
type FrameHeader uint32

// MPEG version identifiers.
type Version int

const (
	VersionReserved Version = iota
	Version1
	Version2
	Version25
)

func (v Version) String() string {
	switch v {
	case Version1:
		return "MPEG1"
	case Version2:
		return "MPEG2"
	case Version25:
		return "MPEG2.5"
	default:
		return "reserved"
	}
}

// MPEG layer identifiers.
type Layer int

const (
	LayerReserved Layer = iota
	LayerI
	LayerII
	LayerIII
)

func (l Layer) String() string {
	switch l {
	case LayerI:
		return "I"
	case LayerII:
		return "II"
	case LayerIII:
		return "III"
	default:
		return "reserved"
	}
}

// ChannelMode identifies the channel layout of the frame.
type ChannelMode int

const (
	Stereo ChannelMode = iota
	JointStereo
	DualChannel
	Mono
)

func (m ChannelMode) String() string {
	switch m {
	case Stereo:
		return "Stereo"
	case JointStereo:
		return "JointStereo"
	case DualChannel:
		return "DualChannel"
	case Mono:
		return "Mono"
	default:
		return "unknown"
	}
}

// ErrInvalidHeader is returned when a 4-byte sequence is not a valid frame header.
var ErrInvalidHeader = errors.New("frameheader: not a valid frame header")

// Bitrate lookup tables (kbps), index 0..15. Index 0 (free format) and
// index 15 (bad) are sentinels and are never returned as a valid bitrate.
var bitrateTableV1L1 = [16]int{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, 0}
var bitrateTableV1L2 = [16]int{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, 0}
var bitrateTableV1L3 = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}
var bitrateTableV2L1 = [16]int{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, 0}
var bitrateTableV2L23 = [16]int{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0}

// Sample-rate lookup tables (Hz), index 0..3. Index 3 is reserved.
var sampleRateV1 = [4]int{44100, 48000, 32000, 0}
var sampleRateV2 = [4]int{22050, 24000, 16000, 0}
var sampleRateV25 = [4]int{11025, 12000, 8000, 0}

// Parse decodes 4 header bytes into a FrameHeader, validating the sync
// word and every reserved bit combination along the way.
func Parse(b [4]byte) (FrameHeader, error) {
	h := FrameHeader(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
	if !h.IsValid() {
		return 0, ErrInvalidHeader
	}
	return h, nil
}

// IsValid reports whether h has a correct sync word and no reserved field.
func (h FrameHeader) IsValid() bool {
	if h&0xFFE00000 != 0xFFE00000 {
		return false
	}
	if h.Version() == VersionReserved || h.Layer() == LayerReserved {
		return false
	}
	if h.bitrateIndex() == 0 || h.bitrateIndex() == 15 {
		return false
	}
	if h.sampleRateIndex() == 3 {
		return false
	}
	return true
}

func (h FrameHeader) versionBits() int {
	return int((h >> 19) & 0x03)
}

// Version returns the MPEG version encoded in h.
func (h FrameHeader) Version() Version {
	switch h.versionBits() {
	case 0:
		return Version25
	case 2:
		return Version2
	case 3:
		return Version1
	default:
		return VersionReserved
	}
}

func (h FrameHeader) layerBits() int {
	return int((h >> 17) & 0x03)
}

// Layer returns the MPEG layer encoded in h.
func (h FrameHeader) Layer() Layer {
	switch h.layerBits() {
	case 1:
		return LayerIII
	case 2:
		return LayerII
	case 3:
		return LayerI
	default:
		return LayerReserved
	}
}

func (h FrameHeader) bitrateIndex() int {
	return int((h >> 12) & 0x0F)
}

func (h FrameHeader) sampleRateIndex() int {
	return int((h >> 10) & 0x03)
}

// BitrateKbps returns the bitrate in kbps, or 0 if h is invalid.
func (h FrameHeader) BitrateKbps() int {
	if !h.IsValid() {
		return 0
	}
	idx := h.bitrateIndex()
	v, l := h.Version(), h.Layer()
	switch {
	case v == Version1 && l == LayerI:
		return bitrateTableV1L1[idx]
	case v == Version1 && l == LayerII:
		return bitrateTableV1L2[idx]
	case v == Version1 && l == LayerIII:
		return bitrateTableV1L3[idx]
	case l == LayerI:
		return bitrateTableV2L1[idx]
	case l == LayerII, l == LayerIII:
		return bitrateTableV2L23[idx]
	default:
		return 0
	}
}

// SampleRateHz returns the sample rate in Hz, or 0 if h is invalid.
func (h FrameHeader) SampleRateHz() int {
	if !h.IsValid() {
		return 0
	}
	idx := h.sampleRateIndex()
	switch h.Version() {
	case Version1:
		return sampleRateV1[idx]
	case Version2:
		return sampleRateV2[idx]
	case Version25:
		return sampleRateV25[idx]
	default:
		return 0
	}
}

// Padding reports whether the padding bit is set.
func (h FrameHeader) Padding() bool {
	return h&0x0200 != 0
}

// ChannelMode returns the channel mode encoded in h.
func (h FrameHeader) ChannelMode() ChannelMode {
	return ChannelMode((h >> 6) & 0x03)
}

// SamplesPerFrame returns the number of PCM samples a frame of this
// version/layer combination represents.
func (h FrameHeader) SamplesPerFrame() int {
	switch h.Layer() {
	case LayerI:
		return 384
	case LayerII:
		return 1152
	case LayerIII:
		if h.Version() == Version1 {
			return 1152
		}
		return 576
	default:
		return 0
	}
}

// FrameSizeBytes computes the frame size in bytes per spec §4.1, using
// truncating integer division exactly as the bitstream format requires.
func (h FrameHeader) FrameSizeBytes() (int, error) {
	if !h.IsValid() {
		return 0, ErrInvalidHeader
	}
	bitrate := h.BitrateKbps()
	sampleRate := h.SampleRateHz()
	padding := 0
	if h.Padding() {
		padding = 1
	}
	if h.Layer() == LayerI {
		return (12*bitrate*1000/sampleRate + padding) * 4, nil
	}
	return 144*bitrate*1000/sampleRate + padding, nil
}

// FrameDuration returns the playback duration of one frame.
func (h FrameHeader) FrameDuration() time.Duration {
	sr := h.SampleRateHz()
	if sr == 0 {
		return 0
	}
	samples := h.SamplesPerFrame()
	return time.Duration(int64(time.Second) * int64(samples) / int64(sr))
}

// BytesPerSecond returns the nominal stereo 16-bit PCM byte rate implied by
// the frame's sample rate (4 bytes per sample frame).
func (h FrameHeader) BytesPerSecond() int {
	return h.SampleRateHz() * 4
}

// String renders h for diagnostics.
func (h FrameHeader) String() string {
	return fmt.Sprintf("%s Layer%s %dkbps %dHz", h.Version(), h.Layer(), h.BitrateKbps(), h.SampleRateHz())
}
