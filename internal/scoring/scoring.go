// Package scoring combines the binary forensic evidence gathered by the
// rest of the pipeline with an externally supplied spectral score into a
// verdict. The three rules in spec.md §4.6 are modeled as a list of
// (predicate, points, flag) values driven by a RuleContext, per the
// design note in spec.md §9 -- adding a fourth rule later is a matter of
// appending to the list, not threading a new conditional through
// BinaryScore.
package scoring

import (
	"fmt"

	"github.com/sonicaudit/transcodecheck/internal/encodersig"
	"github.com/sonicaudit/transcodecheck/internal/lowpass"
	"github.com/sonicaudit/transcodecheck/lameinfo"
)

// Verdict is the final classification of a single file.
type Verdict string

const (
	VerdictOK       Verdict = "OK"
	VerdictSuspect   Verdict = "SUSPECT"
	VerdictTranscode Verdict = "TRANSCODE"
	VerdictError     Verdict = "ERROR"
)

// RuleContext carries every input a binary-evidence Rule might need to
// decide whether it fires. It is built once per file and never mutated.
type RuleContext struct {
	BitrateKbps int
	Lame        *lameinfo.Header
	Signatures  encodersig.Signatures
	FrameSizeCV float64
}

// Rule is one binary-evidence contribution to the score: a predicate
// gating whether it fires, the points it adds when it does, and the flag
// string it emits.
type Rule struct {
	Name      string
	Points    int
	Predicate func(RuleContext) bool
	Flag      func(RuleContext) string
}

// Rules is the ordered list of binary-evidence rules from spec.md §4.6.
// Order matters only for the order flags appear in the output; point
// accumulation is commutative.
var Rules = []Rule{
	{
		Name:   "lowpass_mismatch",
		Points: 35,
		Predicate: func(c RuleContext) bool {
			if c.Lame == nil || c.Lame.LowpassHz == nil {
				return false
			}
			return lowpass.IsMismatch(c.BitrateKbps, *c.Lame.LowpassHz)
		},
		Flag: func(c RuleContext) string {
			actual := *c.Lame.LowpassHz
			return fmt.Sprintf("lowpass_mismatch(%dHz, likely_source=%s)", actual, lowpass.LikelySource(actual))
		},
	},
	{
		Name:   "multi_encoder_sigs",
		Points: 20,
		Predicate: func(c RuleContext) bool {
			return c.Signatures.DistinctCount() > 1
		},
		Flag: func(c RuleContext) string {
			return "multi_encoder_sigs"
		},
	},
	{
		Name:   "irregular_frames",
		Points: 10,
		Predicate: func(c RuleContext) bool {
			return c.BitrateKbps >= 256 && c.FrameSizeCV > 15.0
		},
		Flag: func(c RuleContext) string {
			return "irregular_frames"
		},
	},
}

// BinaryScore runs every Rule against ctx and returns the accumulated
// points plus the flags emitted by the rules that fired, in Rules order.
func BinaryScore(ctx RuleContext) (points int, flags []string) {
	for _, r := range Rules {
		if r.Predicate(ctx) {
			points += r.Points
			flags = append(flags, r.Flag(ctx))
		}
	}
	return points, flags
}

// ResolveEncoder picks the best available encoder label, per spec.md
// §4.6: the LAME header's own string first, then the signature scan's
// captured LAME version, then a named marker boolean, then "unknown".
func ResolveEncoder(lame *lameinfo.Header, sig encodersig.Signatures) string {
	if lame != nil && lame.Encoder != "" {
		return lame.Encoder
	}
	if sig.LAMEVersion != "" {
		return sig.LAMEVersion
	}
	switch {
	case sig.Fraunhofer:
		return "Fraunhofer"
	case sig.ITunes:
		return "iTunes"
	case sig.FFmpeg:
		return "FFmpeg"
	default:
		return "unknown"
	}
}

// Engine combines a binary score with an external spectral score into a
// combined score and a verdict. Thresholds are configuration, not
// constants: spec.md §9 requires tests be able to vary them.
type Engine struct {
	SuspectThreshold   int
	TranscodeThreshold int
	// AgreementBonus is added to the combined score when both the
	// spectral and binary scores independently clear their own
	// agreement floors (spec.md §4.6: spectral >= 30 AND binary >= 20).
	AgreementBonus int
}

// DefaultEngine returns an Engine configured with spec.md §4.6's default
// thresholds.
func DefaultEngine() Engine {
	return Engine{
		SuspectThreshold:   35,
		TranscodeThreshold: 65,
		AgreementBonus:     15,
	}
}

const (
	agreementSpectralFloor = 30
	agreementBinaryFloor   = 20
)

// Combine computes combined_score = min(100, binary + spectral +
// agreement_bonus) and the verdict that follows from it.
func (e Engine) Combine(binaryScore, spectralScore int) (combined int, verdict Verdict) {
	combined = binaryScore + spectralScore
	if spectralScore >= agreementSpectralFloor && binaryScore >= agreementBinaryFloor {
		combined += e.AgreementBonus
	}
	if combined > 100 {
		combined = 100
	}
	if combined < 0 {
		combined = 0
	}

	switch {
	case combined >= e.TranscodeThreshold:
		verdict = VerdictTranscode
	case combined >= e.SuspectThreshold:
		verdict = VerdictSuspect
	default:
		verdict = VerdictOK
	}
	return combined, verdict
}
