// Package transcodecheck detects MP3 files that have been transcoded from
// a lower-quality lossy source. Analyze wires together frame-header
// parsing, Xing/Info + LAME extraction, encoder-signature scanning, and
// the rule-based scoring engine into a single per-file verdict.
package transcodecheck

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sonicaudit/transcodecheck/internal/encodersig"
	"github.com/sonicaudit/transcodecheck/internal/frame"
	"github.com/sonicaudit/transcodecheck/internal/lowpass"
	"github.com/sonicaudit/transcodecheck/internal/scoring"
	"github.com/sonicaudit/transcodecheck/internal/spectral"
	"github.com/sonicaudit/transcodecheck/lameinfo"
)

// defaultSampleRateHz is used when the frame scan finds no frames at all
// (spec.md §7, NoFramesFound).
const defaultSampleRateHz = 44100

// agreementBonus is the combined-score bonus applied when spectral and
// binary evidence independently agree something is wrong (spec.md §4.6).
const agreementBonus = 15

// Analyze reads path and runs the full forensic pipeline against it. It
// never returns an error and never panics: an unreadable file is
// surfaced as Verdict = ERROR with the OS error message recorded and
// every numeric field left at zero, per spec.md §7 (FileUnreadable is the
// only failure mode that terminates the per-file pipeline).
//
// analyzer may be nil, in which case the spectral pass is skipped
// (equivalent to cfg.SkipSpectral).
func Analyze(path string, cfg Config, analyzer spectral.Analyzer) AnalysisResult {
	fileName := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		msg := err.Error()
		return AnalysisResult{
			FilePath: path,
			FileName: fileName,
			Verdict:  VerdictError,
			Error:    &msg,
		}
	}

	// I/O discipline per spec.md §5: one read of the whole file, then an
	// in-memory stream for the frame walk and prefix slices for the
	// other two passes.
	stats, _ := frame.Scan(bytes.NewReader(data), cfg.MaxScanFrames)

	bitrate := stats.AvgBitrateKbps
	sampleRate := stats.FirstSampleRate
	if stats.FrameCount == 0 {
		sampleRate = defaultSampleRateHz
	}

	lameWindow := data
	if len(lameWindow) > lameinfo.SearchWindowBytes {
		lameWindow = lameWindow[:lameinfo.SearchWindowBytes]
	}
	lameHeader, _ := lameinfo.Extract(lameWindow)

	sigWindow := data
	if len(sigWindow) > encodersig.WindowBytes {
		sigWindow = sigWindow[:encodersig.WindowBytes]
	}
	sigs := encodersig.Scan(sigWindow)

	if analyzer == nil || cfg.SkipSpectral {
		analyzer = spectral.NoopAnalyzer{}
	}
	var spectralResult spectral.Result
	if !cfg.SkipSpectral {
		spectralResult = analyzer.Analyze(data, sampleRate)
	}

	ctx := scoring.RuleContext{
		BitrateKbps: bitrate,
		Lame:        lameHeader,
		Signatures:  sigs,
		FrameSizeCV: stats.FrameSizeCVPercent(),
	}
	binaryScore, flags := scoring.BinaryScore(ctx)

	engine := scoring.Engine{
		SuspectThreshold:   cfg.SuspectThreshold,
		TranscodeThreshold: cfg.TranscodeThreshold,
		AgreementBonus:     agreementBonus,
	}
	combined, verdict := engine.Combine(binaryScore, spectralResult.Score)

	var lowpassHz *int
	if lameHeader != nil && lameHeader.LowpassHz != nil {
		v := *lameHeader.LowpassHz
		lowpassHz = &v
	}

	var durationSecs float64
	if bitrate > 0 {
		durationSecs = float64(len(data)*8) / float64(bitrate*1000)
	}

	var binaryDetails map[string]string
	if len(flags) > 0 {
		binaryDetails = map[string]string{"frame_size_cv_pct": formatCV(ctx.FrameSizeCV)}
		if lowpassHz != nil && lowpass.IsMismatch(bitrate, *lowpassHz) {
			binaryDetails["expected_lowpass_hz"] = strconv.Itoa(lowpass.Expected(bitrate))
			binaryDetails["likely_source_bitrate"] = lowpass.LikelySource(*lowpassHz)
		}
	}

	return AnalysisResult{
		FilePath:        path,
		FileName:        fileName,
		BitrateKbps:     bitrate,
		SampleRateHz:    sampleRate,
		DurationSecs:    durationSecs,
		Verdict:         verdict,
		CombinedScore:   combined,
		SpectralScore:   spectralResult.Score,
		BinaryScore:     binaryScore,
		Flags:           flags,
		Encoder:         scoring.ResolveEncoder(lameHeader, sigs),
		LowpassHz:       lowpassHz,
		SpectralDetails: spectralResult.Details,
		BinaryDetails:   binaryDetails,
		Error:           nil,
	}
}

func formatCV(cv float64) string {
	// Two decimal places is enough precision for a diagnostic detail
	// string; callers needing the raw value should use FrameStats
	// directly rather than this formatted detail.
	return strconv.FormatFloat(cv, 'f', 2, 64)
}
