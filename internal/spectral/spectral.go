// Package spectral defines the contract the scoring engine uses to
// combine its binary forensic evidence with an externally supplied
// spectral/FFT analysis. The analyzer itself -- decoding audio and
// running an FFT to estimate a genuine lowpass cutoff -- is explicitly
// out of scope for this repository; what belongs here is the interface
// that lets ScoringEngine treat it as an opaque collaborator, plus a
// no-op implementation for callers that skip the spectral pass entirely.
package spectral

// Result is what a spectral analysis contributes to an AnalysisResult.
type Result struct {
	// Score is in [0, 100]; 0 when the analyzer was skipped.
	Score int
	Flags []string
	// Details holds analyzer-specific diagnostic key/value pairs, kept as
	// a loosely-typed map since the analyzer implementation is external
	// to this repository.
	Details map[string]string
}

// Analyzer performs (or declines to perform) a spectral analysis of an
// audio buffer at a known sample rate.
type Analyzer interface {
	Analyze(data []byte, sampleRateHz int) Result
}

// NoopAnalyzer always returns a zero Result. It is used whenever
// Config.SkipSpectral is set, and as the default when a caller supplies
// no Analyzer at all.
type NoopAnalyzer struct{}

// Analyze implements Analyzer by doing nothing.
func (NoopAnalyzer) Analyze(data []byte, sampleRateHz int) Result {
	return Result{}
}
