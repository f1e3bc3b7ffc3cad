package frameheader

import (
	"testing"
	"time"
)

// createMPEG1Header builds a valid MPEG1 Layer III frame header for testing.
// Base: 0xFFFB9000 = sync(11) + MPEG1(11) + LayerIII(01) + no-CRC(1) +
// bitrate index 9 (128kbps) + sampling freq bits cleared.
func createMPEG1Header(samplingFreqIndex int) FrameHeader {
	base := uint32(0xFFFB9000)
	base |= uint32(samplingFreqIndex&0x3) << 10
	return FrameHeader(base)
}

func createMPEG2Header(samplingFreqIndex int) FrameHeader {
	// MPEG2: version bits = 10 -> 0xFFF3 instead of 0xFFFB.
	base := uint32(0xFFF39000)
	base |= uint32(samplingFreqIndex&0x3) << 10
	return FrameHeader(base)
}

func TestParse_ValidHeader128kbps(t *testing.T) {
	h, err := Parse([4]byte{0xFF, 0xFB, 0x90, 0x00})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if h.Version() != Version1 {
		t.Errorf("Version() = %v, want MPEG1", h.Version())
	}
	if h.Layer() != LayerIII {
		t.Errorf("Layer() = %v, want III", h.Layer())
	}
	if got, want := h.BitrateKbps(), 128; got != want {
		t.Errorf("BitrateKbps() = %d, want %d", got, want)
	}
	if got, want := h.SampleRateHz(), 44100; got != want {
		t.Errorf("SampleRateHz() = %d, want %d", got, want)
	}
	if h.Padding() {
		t.Error("Padding() = true, want false")
	}
	if h.ChannelMode() != Stereo {
		t.Errorf("ChannelMode() = %v, want Stereo", h.ChannelMode())
	}
	size, err := h.FrameSizeBytes()
	if err != nil {
		t.Fatalf("FrameSizeBytes() error = %v", err)
	}
	if size != 417 {
		t.Errorf("FrameSizeBytes() = %d, want 417", size)
	}
	if got, want := h.SamplesPerFrame(), 1152; got != want {
		t.Errorf("SamplesPerFrame() = %d, want %d", got, want)
	}
}

func TestParse_PaddingAddsOneByte(t *testing.T) {
	h, err := Parse([4]byte{0xFF, 0xFB, 0x92, 0x00})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !h.Padding() {
		t.Error("Padding() = false, want true")
	}
	size, err := h.FrameSizeBytes()
	if err != nil {
		t.Fatalf("FrameSizeBytes() error = %v", err)
	}
	if size != 418 {
		t.Errorf("FrameSizeBytes() = %d, want 418", size)
	}
}

func TestParse_InvalidSync(t *testing.T) {
	tests := [][4]byte{
		{0x00, 0x00, 0x00, 0x00},
		{0xFF, 0x00, 0x00, 0x00},
	}
	for _, b := range tests {
		if _, err := Parse(b); err == nil {
			t.Errorf("Parse(%v) should fail sync check", b)
		}
	}
}

func TestParse_ReservedVersion(t *testing.T) {
	// 0xE8 = 11101000: sync OK, version bits = 01 (reserved).
	if _, err := Parse([4]byte{0xFF, 0xE8, 0x90, 0x00}); err == nil {
		t.Error("Parse() should reject reserved version")
	}
}

func TestParse_ReservedLayer(t *testing.T) {
	// 0xE0 = 11100000: sync OK, MPEG2.5, layer bits = 00 (reserved).
	if _, err := Parse([4]byte{0xFF, 0xE0, 0x90, 0x00}); err == nil {
		t.Error("Parse() should reject reserved layer")
	}
}

func TestParse_InvalidBitrateIndex(t *testing.T) {
	// Index 15 (free/bad) and index 0 (free format) are both rejected.
	if _, err := Parse([4]byte{0xFF, 0xFB, 0xF0, 0x00}); err == nil {
		t.Error("Parse() should reject bitrate index 15")
	}
	if _, err := Parse([4]byte{0xFF, 0xFB, 0x00, 0x00}); err == nil {
		t.Error("Parse() should reject bitrate index 0")
	}
}

func TestParse_ReservedSampleRate(t *testing.T) {
	// 0x9C = 10011100: bitrate idx 9, sample rate idx = 11 (reserved).
	if _, err := Parse([4]byte{0xFF, 0xFB, 0x9C, 0x00}); err == nil {
		t.Error("Parse() should reject reserved sample rate")
	}
}

func TestIsValid_AcceptsAllLayers(t *testing.T) {
	// Unlike a decode-only parser, the forensic parser must accept Layer I
	// and Layer II headers too -- transcode detection inspects bitrate
	// tables and frame sizes, it never decodes samples.
	tests := []struct {
		name   string
		header FrameHeader
		want   bool
	}{
		{"Layer3 MPEG1 valid", FrameHeader(0xFFFB9044), true},
		{"Layer1 MPEG1 valid", FrameHeader(0xFFFF9044), true},
		{"Layer2 MPEG1 valid", FrameHeader(0xFFFD9044), true},
		{"reserved layer invalid", FrameHeader(0xFFF09044), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.header.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v (header: 0x%08X)", got, tt.want, uint32(tt.header))
			}
		})
	}
}

func TestSamplesPerFrame_MPEG1(t *testing.T) {
	h := createMPEG1Header(0)
	if got, want := h.SamplesPerFrame(), 1152; got != want {
		t.Errorf("SamplesPerFrame() for MPEG1 = %d, want %d", got, want)
	}
}

func TestSamplesPerFrame_MPEG2(t *testing.T) {
	h := createMPEG2Header(0)
	if got, want := h.SamplesPerFrame(), 576; got != want {
		t.Errorf("SamplesPerFrame() for MPEG2 = %d, want %d", got, want)
	}
}

func TestFrameDuration_MPEG1_44100(t *testing.T) {
	h := createMPEG1Header(0)
	got := h.FrameDuration()
	want := time.Duration(int64(time.Second) * 1152 / 44100)
	if diff := got - want; diff < -time.Microsecond || diff > time.Microsecond {
		t.Errorf("FrameDuration() = %v, want %v", got, want)
	}
}

func TestFrameDuration_MPEG1_48000(t *testing.T) {
	h := createMPEG1Header(1)
	got := h.FrameDuration()
	want := 24 * time.Millisecond
	if diff := got - want; diff < -time.Microsecond || diff > time.Microsecond {
		t.Errorf("FrameDuration() = %v, want %v", got, want)
	}
}

func TestBytesPerSecond(t *testing.T) {
	tests := []struct {
		name   string
		header FrameHeader
		want   int
	}{
		{"44100Hz", createMPEG1Header(0), 44100 * 4},
		{"48000Hz", createMPEG1Header(1), 48000 * 4},
		{"32000Hz", createMPEG1Header(2), 32000 * 4},
		{"MPEG2 22050Hz", createMPEG2Header(0), 22050 * 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.header.BytesPerSecond(); got != tt.want {
				t.Errorf("BytesPerSecond() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBitrateTable_MPEG1Layer3(t *testing.T) {
	cases := []struct {
		byte2 byte
		want  int
	}{
		{0x10, 32}, {0x20, 40}, {0x30, 48}, {0x40, 56},
		{0x50, 64}, {0x60, 80}, {0x70, 96}, {0x80, 112},
		{0x90, 128}, {0xA0, 160}, {0xB0, 192}, {0xC0, 224},
		{0xD0, 256}, {0xE0, 320},
	}
	for _, c := range cases {
		h, err := Parse([4]byte{0xFF, 0xFB, c.byte2, 0x00})
		if err != nil {
			t.Fatalf("Parse(byte2=0x%02X) error = %v", c.byte2, err)
		}
		if got := h.BitrateKbps(); got != c.want {
			t.Errorf("byte2=0x%02X: BitrateKbps() = %d, want %d", c.byte2, got, c.want)
		}
	}
}

func TestParse_MPEG2And25SampleRates(t *testing.T) {
	// Version bits = 10 (MPEG2): 0xF3.
	h, err := Parse([4]byte{0xFF, 0xF3, 0x90, 0x00})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got, want := h.SampleRateHz(), 22050; got != want {
		t.Errorf("MPEG2 SampleRateHz() = %d, want %d", got, want)
	}

	// Version bits = 00 (MPEG2.5): 0xE3.
	h, err = Parse([4]byte{0xFF, 0xE3, 0x90, 0x00})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got, want := h.SampleRateHz(), 11025; got != want {
		t.Errorf("MPEG2.5 SampleRateHz() = %d, want %d", got, want)
	}
}
