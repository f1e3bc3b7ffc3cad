// Package lowpass encodes the domain knowledge that links a nominal MP3
// bitrate to the lowpass filter cutoff a legitimate encoder would apply at
// that bitrate. A transcode from a lower real bitrate tends to carry the
// lower source's lowpass even when the container claims a much higher
// nominal bitrate; this package is the table lookup the scoring engine
// uses to recognize that mismatch (spec.md §4.5).
package lowpass

// Expected returns the lowpass frequency, in Hz, a legitimate encode at
// bitrateKbps should exhibit.
func Expected(bitrateKbps int) int {
	switch {
	case bitrateKbps >= 320:
		return 20500
	case bitrateKbps >= 256:
		return 20000
	case bitrateKbps >= 224:
		return 19500
	case bitrateKbps >= 192:
		return 18500
	case bitrateKbps >= 160:
		return 17500
	case bitrateKbps >= 128:
		return 16000
	case bitrateKbps >= 112:
		return 15500
	case bitrateKbps >= 96:
		return 15000
	default:
		return 14000
	}
}

// MinimumAcceptable returns the lowest lowpass frequency, in Hz, that does
// not itself trigger a mismatch at bitrateKbps. A return value of 0 means
// this bitrate tier never flags a mismatch.
func MinimumAcceptable(bitrateKbps int) int {
	switch {
	case bitrateKbps >= 256:
		return 18000
	case bitrateKbps >= 192:
		return 17000
	case bitrateKbps >= 160:
		return 16000
	case bitrateKbps >= 128:
		return 15000
	default:
		return 0
	}
}

// IsMismatch reports whether actualLowpassHz is suspiciously low for
// bitrateKbps: the minimum for that tier is enforced (non-zero) and the
// actual value is present (positive) and falls below it.
func IsMismatch(bitrateKbps, actualLowpassHz int) bool {
	min := MinimumAcceptable(bitrateKbps)
	return min > 0 && actualLowpassHz > 0 && actualLowpassHz < min
}

// LikelySource labels the probable true source bitrate purely from the
// observed lowpass frequency, for use once IsMismatch has already
// flagged the pair as suspicious.
func LikelySource(actualLowpassHz int) string {
	switch {
	case actualLowpassHz <= 11000:
		return "64kbps or lower"
	case actualLowpassHz <= 14000:
		return "96kbps"
	case actualLowpassHz <= 16000:
		return "128kbps"
	case actualLowpassHz <= 17500:
		return "160kbps"
	case actualLowpassHz <= 18500:
		return "192kbps"
	default:
		return "lower bitrate"
	}
}
